// Package render produces the minified product page HTML snippets for the
// Unas shop. Output carries no inter-tag whitespace so the CMS editor does
// not mangle it.
package render

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// Fixed sections shared by every product page. The text is owned by the shop
// team; edits here ship to every regenerated page.
const (
	fixedCompanyIntro = `<div class="ventilatorhaz-bemutatkozo"><div class="ventilatorhaz-bemutatkozo-kep"><img src="https://shop.unas.hu/shop_ordered/55564/pic/nemesventilatorhaz-csapata.webp" alt="A Nemes Ventilátorház csapata"></div><div class="ventilatorhaz-bemutatkozo-szoveg"><h2>Vásároljon Magyarország egyik legmegbízhatóbb légtechnikai áruházából</h2><p>A Ventilátorház a Budapest 18. kerületében, a Királyhágó utca 30. található. Sokszoros díjnyertes cég vagyunk, több évtizedes tapasztalattal és hibátlan véleményekkel. Ha kérdése van, hívja munkatársainkat bizalommal a <strong>+36-70-369-9944</strong> telefonszámon!</p><div class="ventilatorhaz-gombok"><a href="https://www.nemesventilatorhaz.hu/visszahivaskero" class="ventilatorhaz-btn ventilatorhaz-btn-callback">Ingyenes tanácsadást kérek</a><a href="tel:+36703699944" class="ventilatorhaz-btn ventilatorhaz-btn-call">Felhívom most</a></div></div></div>`

	fixedTrustindex = `<script defer async src='https://cdn.trustindex.io/loader.js?cbff376529ad876c29862863c17'></script>`

	fixedWhyWeRecommend = `<div style="text-align: center; padding: 20px 0; border-bottom: 2px solid #333; margin-bottom: 20px;"><h1 style="margin: 0;">Miért ajánljuk?</h1></div>`
)

// Intro is the opening section; the video column renders only when an embed
// URL is present.
type Intro struct {
	YouTubeEmbedURL string
	Headline        string
	Paragraph1      string
	Paragraph2      string
}

// Datasheet is the factory datasheet download box.
type Datasheet struct {
	ProductName string
	PDFURL      string
	DrawingURL  string
	DrawingAlt  string
}

// TableRow is one parameter row of the technical data table. CommonValue
// spans every variant column when set; otherwise Values are per variant.
type TableRow struct {
	Name        string
	Unit        string
	Highlight   bool
	CommonValue string
	Values      []string
}

// TechTable is the per-variant technical specification table.
type TechTable struct {
	Title         string
	Subtitle      string
	Variants      []string
	Rows          []TableRow
	DimensionRows []TableRow
}

// Curve is one characteristic-curve image in the gallery.
type Curve struct {
	ImageURL string
	Title    string
	Alt      string
}

// CurveGallery is the lightbox gallery of characteristic curves.
type CurveGallery struct {
	Title    string
	Subtitle string
	Curves   []Curve
}

// FAQ is the accordion question list; it also emits schema.org FAQPage
// markup.
type FAQ struct {
	Title     string
	Questions []model.QA
}

// ResidentialPage feeds the lakossági template.
type ResidentialPage struct {
	Intro      Intro
	Datasheet  Datasheet
	DidYouKnow string
	UspBlocks  []model.UspBlock
}

// IndustrialPage feeds the ipari template; the table, gallery and FAQ are
// optional.
type IndustrialPage struct {
	Intro      Intro
	Datasheet  Datasheet
	DidYouKnow string
	TechTable  *TechTable
	Curves     *CurveGallery
	UspBlocks  []model.UspBlock
	FAQ        *FAQ
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

// Residential renders the lakossági product page snippet.
func Residential(p ResidentialPage) string {
	var b strings.Builder
	b.WriteString(`<div class="termekoldal-container">`)

	writeIntro(&b, p.Intro)
	writeDatasheet(&b, p.Datasheet, "")
	writeDidYouKnow(&b, p.DidYouKnow)
	b.WriteString(`</div>`)

	b.WriteString(fixedCompanyIntro)
	b.WriteString(fixedTrustindex)
	b.WriteString(fixedWhyWeRecommend)

	writeUspBlocks(&b, p.UspBlocks)

	b.WriteString(`</div>`)
	return b.String()
}

// Industrial renders the ipari product page snippet.
func Industrial(p IndustrialPage) string {
	var b strings.Builder
	b.WriteString(`<div class="termekoldal-container">`)

	writeIntro(&b, p.Intro)
	writeDatasheet(&b, p.Datasheet, p.Datasheet.ProductName)
	writeDidYouKnow(&b, p.DidYouKnow)
	b.WriteString(`</div>`)

	if p.TechTable != nil {
		writeTechTable(&b, *p.TechTable)
	}
	if p.Curves != nil && len(p.Curves.Curves) > 0 {
		writeCurveGallery(&b, *p.Curves)
	}

	b.WriteString(fixedCompanyIntro)
	b.WriteString(fixedTrustindex)
	b.WriteString(fixedWhyWeRecommend)

	writeUspBlocks(&b, p.UspBlocks)

	if p.FAQ != nil && len(p.FAQ.Questions) > 0 {
		writeFAQ(&b, *p.FAQ)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func writeIntro(b *strings.Builder, in Intro) {
	b.WriteString(`<div class="intro-video-section">`)
	if in.YouTubeEmbedURL != "" {
		b.WriteString(`<div class="intro-video-col"><div class="video-wrapper"><iframe src="` + in.YouTubeEmbedURL + `" title="YouTube video player" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share" referrerpolicy="strict-origin-when-cross-origin" allowfullscreen=""></iframe></div></div>`)
	}
	b.WriteString(`<div class="intro-text-col"><h3>` + escapeHTML(in.Headline) + `</h3><p>` + in.Paragraph1 + `</p><p>` + in.Paragraph2 + `</p></div>`)
	b.WriteString(`</div>`)
}

// writeDatasheet renders the datasheet box; when productName is non-empty the
// intro sentence names the product (ipari variant).
func writeDatasheet(b *strings.Builder, d Datasheet, productName string) {
	b.WriteString(`<div class="gyariadatlap-container"><div class="gyariadatlap-box">`)
	subject := "A ventilátor"
	if productName != "" {
		subject = "A " + escapeHTML(productName)
	}
	b.WriteString(`<div class="gyariadatlap-left"><h2>Gyári adatlap</h2><p>` + subject + ` hivatalos, gyártói adatlapja tartalmazza az összes fontos műszaki adatot – teljesítmény-, nyomás- és zajszinteket, méreteket, valamint szerelési információkat. Hasznos segítség villanyszerelőknek, építészeknek vagy bárkinek, aki pontos technikai információt szeretne a beszereléshez.</p>`)
	b.WriteString(`<a href="` + d.PDFURL + `" class="gyariadatlap-btn" target="_blank">A gyári adatlap letöltése</a></div>`)
	b.WriteString(`<div class="gyariadatlap-right"><img src="` + d.DrawingURL + `" alt="` + escapeHTML(d.DrawingAlt) + `"></div>`)
	b.WriteString(`</div>`)
}

func writeDidYouKnow(b *strings.Builder, text string) {
	b.WriteString(`<div class="tudta"><div class="tudta-ikon">i</div><div class="tudta-tartalom"><p><strong>Tudta?</strong> ` + escapeHTML(text) + `</p></div></div>`)
}

func writeUspBlocks(b *strings.Builder, blocks []model.UspBlock) {
	for i, usp := range blocks {
		style := ""
		if i == len(blocks)-1 {
			style = ` style="border-bottom: none;"`
		}
		b.WriteString(`<div class="feature-row"` + style + `>`)
		b.WriteString(`<div class="feature-col feature-image"><img src="` + usp.ImageURL + `" alt="` + escapeHTML(usp.ImageAlt) + `" style="width: 100%; display: block; border-radius: 8px;"></div>`)
		b.WriteString(`<div class="feature-col feature-text"><h3>` + escapeHTML(usp.Title) + `</h3><p>` + usp.Paragraph1 + `</p>`)
		if usp.Paragraph2 != "" {
			b.WriteString(`<p>` + usp.Paragraph2 + `</p>`)
		}
		b.WriteString(`</div></div>`)
	}
}

func writeTechTable(b *strings.Builder, t TechTable) {
	title := t.Title
	if title == "" {
		title = "Műszaki adatok"
	}
	subtitle := t.Subtitle
	if subtitle == "" {
		subtitle = "Az összes változat részletes specifikációja"
	}

	b.WriteString(`<div class="ventilator-table-section" id="muszaki-adatok">`)
	b.WriteString(`<h2 class="section-title">` + escapeHTML(title) + `</h2>`)
	b.WriteString(`<p class="section-subtitle">` + escapeHTML(subtitle) + `</p>`)
	b.WriteString(`<div class="ventilator-table-scroll"><table class="ventilator-data-table">`)

	b.WriteString(`<thead><tr><th colspan="2">Paraméter</th>`)
	for _, v := range t.Variants {
		b.WriteString(`<th>` + escapeHTML(v) + `</th>`)
	}
	b.WriteString(`</tr></thead>`)

	b.WriteString(`<tbody>`)
	for _, row := range t.Rows {
		writeTableRow(b, row, len(t.Variants), row.Highlight)
	}
	b.WriteString(`</tbody>`)

	if len(t.DimensionRows) > 0 {
		b.WriteString(`<tbody class="dimension-rows">`)
		for _, row := range t.DimensionRows {
			writeTableRow(b, row, len(t.Variants), false)
		}
		b.WriteString(`</tbody>`)
	}

	b.WriteString(`</table></div></div>`)
}

func writeTableRow(b *strings.Builder, row TableRow, variants int, highlight bool) {
	if highlight {
		b.WriteString(`<tr class="highlight-row">`)
	} else {
		b.WriteString(`<tr>`)
	}
	b.WriteString(`<th>` + escapeHTML(row.Name) + `</th><td class="unit">` + escapeHTML(row.Unit) + `</td>`)
	if row.CommonValue != "" {
		b.WriteString(`<td colspan="` + strconv.Itoa(variants) + `">` + escapeHTML(row.CommonValue) + `</td>`)
	} else {
		for _, v := range row.Values {
			b.WriteString(`<td>` + escapeHTML(v) + `</td>`)
		}
	}
	b.WriteString(`</tr>`)
}

func writeCurveGallery(b *strings.Builder, g CurveGallery) {
	title := g.Title
	if title == "" {
		title = "Jelleggörbék"
	}
	subtitle := g.Subtitle
	if subtitle == "" {
		subtitle = "Kattintson a képre a nagyításhoz"
	}

	b.WriteString(`<div class="jelleggorbe-section" id="jelleggorbek">`)
	b.WriteString(`<h2 class="section-title">` + escapeHTML(title) + `</h2>`)
	b.WriteString(`<p class="section-subtitle">` + escapeHTML(subtitle) + `</p>`)
	b.WriteString(`<div class="jelleggorbe-galeria">`)
	for _, c := range g.Curves {
		b.WriteString(`<div class="jelleggorbe-kep-container">`)
		b.WriteString(`<a href="` + c.ImageURL + `" data-lightbox="jelleggorbek" data-title="` + escapeHTML(c.Title) + `" class="jelleggorbe-kep-link">`)
		b.WriteString(`<img src="` + c.ImageURL + `" alt="` + escapeHTML(c.Alt) + `" class="jelleggorbe-kep" /></a>`)
		b.WriteString(`<p class="jelleggorbe-kep-leiras">` + escapeHTML(c.Title) + `</p>`)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></div>`)
}

func writeFAQ(b *strings.Builder, f FAQ) {
	title := f.Title
	if title == "" {
		title = "Gyakran Ismételt Kérdések"
	}

	b.WriteString(`<div class="termekgyik">`)
	b.WriteString(`<h2 class="termekgyik-cim">` + escapeHTML(title) + `</h2>`)
	for _, q := range f.Questions {
		b.WriteString(`<div class="termekgyik-item">`)
		b.WriteString(`<button type="button" class="termekgyik-kerdes" aria-expanded="false" onclick="event.preventDefault(); document.querySelectorAll('.termekgyik-kerdes').forEach(b => { if(b !== this) b.setAttribute('aria-expanded', 'false'); }); this.setAttribute('aria-expanded', this.getAttribute('aria-expanded') === 'true' ? 'false' : 'true');">`)
		b.WriteString(`<span>` + escapeHTML(q.Question) + `</span>`)
		b.WriteString(`<svg class="termekgyik-icon" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><path d="M6 9l6 6 6-6"/></svg>`)
		b.WriteString(`</button>`)
		b.WriteString(`<div class="termekgyik-valasz"><p>` + escapeHTML(q.Answer) + `</p></div>`)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<script type="application/ld+json">` + faqSchema(f.Questions) + `</script>`)
}

// faqSchema emits schema.org FAQPage JSON-LD for the question list.
func faqSchema(questions []model.QA) string {
	type answer struct {
		Type string `json:"@type"`
		Text string `json:"text"`
	}
	type question struct {
		Type           string `json:"@type"`
		Name           string `json:"name"`
		AcceptedAnswer answer `json:"acceptedAnswer"`
	}
	entities := make([]question, len(questions))
	for i, q := range questions {
		entities[i] = question{
			Type:           "Question",
			Name:           q.Question,
			AcceptedAnswer: answer{Type: "Answer", Text: q.Answer},
		}
	}
	doc := struct {
		Context    string     `json:"@context"`
		Type       string     `json:"@type"`
		MainEntity []question `json:"mainEntity"`
	}{
		Context:    "https://schema.org",
		Type:       "FAQPage",
		MainEntity: entities,
	}
	out, _ := json.Marshal(doc)
	return string(out)
}
