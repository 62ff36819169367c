package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

func sampleResidential() ResidentialPage {
	return ResidentialPage{
		Intro: Intro{
			Headline:   "Silenta 100",
			Paragraph1: "A Silenta 100 óránként 95 m³ levegőt mozgat.",
			Paragraph2: "Amiért kiemelkedik a kategóriájából: Halk működés.",
		},
		Datasheet: Datasheet{
			ProductName: "Silenta 100",
			PDFURL:      "https://example.com/adatlap.pdf",
			DrawingURL:  "https://example.com/rajz.webp",
			DrawingAlt:  "Méretezett rajz",
		},
		DidYouKnow: "Ez a ventilátor 26%-kal csendesebb a kategóriája átlagánál.",
		UspBlocks: []model.UspBlock{
			{ID: "zaj-1", Title: "Halk működés", Paragraph1: "<p>Csendes.</p>", ImageURL: "/images/usps/halk.jpg", ImageAlt: "Halk működés"},
			{ID: "ved-1", Title: "Fröccsenésvédett", Paragraph1: "IPX4.", ImageURL: "/images/usps/ipx4.jpg", ImageAlt: "Fröccsenésvédett"},
		},
	}
}

func TestResidential(t *testing.T) {
	t.Parallel()
	html := Residential(sampleResidential())

	t.Run("carries the fixed sections", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, `class="ventilatorhaz-bemutatkozo"`)
		assert.Contains(t, html, "cdn.trustindex.io/loader.js")
		assert.Contains(t, html, "Miért ajánljuk?")
		assert.Contains(t, html, "+36-70-369-9944")
	})

	t.Run("minified output", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, html, "\n")
		assert.NotContains(t, html, "> <")
	})

	t.Run("datasheet box with generic subject", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, "Gyári adatlap")
		assert.Contains(t, html, "A ventilátor hivatalos")
		assert.Contains(t, html, `href="https://example.com/adatlap.pdf"`)
	})

	t.Run("did-you-know box", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, `<strong>Tudta?</strong> Ez a ventilátor 26%-kal csendesebb`)
	})

	t.Run("only the last usp row drops its divider", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1, strings.Count(html, `style="border-bottom: none;"`))
		last := strings.LastIndex(html, `<div class="feature-row"`)
		assert.Contains(t, html[last:], `style="border-bottom: none;"`)
	})

	t.Run("usp paragraphs are trusted html", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, "<p><p>Csendes.</p></p>")
	})

	t.Run("no video column without embed url", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, html, "intro-video-col")
	})
}

func TestResidentialVideoColumn(t *testing.T) {
	t.Parallel()
	p := sampleResidential()
	p.Intro.YouTubeEmbedURL = "https://www.youtube.com/embed/abc123"

	html := Residential(p)
	assert.Contains(t, html, `<iframe src="https://www.youtube.com/embed/abc123"`)
	assert.Contains(t, html, "intro-video-col")
}

func TestResidentialEscapesUserText(t *testing.T) {
	t.Parallel()
	p := sampleResidential()
	p.Intro.Headline = `Vents 100 "LD" <Turbo>`
	p.UspBlocks = []model.UspBlock{{Title: "Gyors & halk", ImageAlt: `"idézet"`}}

	html := Residential(p)
	assert.Contains(t, html, "<h3>Vents 100 &quot;LD&quot; &lt;Turbo&gt;</h3>")
	assert.Contains(t, html, "<h3>Gyors &amp; halk</h3>")
	assert.Contains(t, html, `alt="&quot;idézet&quot;"`)
}

func TestIndustrial(t *testing.T) {
	t.Parallel()
	page := IndustrialPage{
		Intro: Intro{Headline: "VKO 150", Paragraph1: "p1", Paragraph2: "p2"},
		Datasheet: Datasheet{
			ProductName: "VKO 150",
			PDFURL:      "https://example.com/vko.pdf",
			DrawingURL:  "https://example.com/vko.webp",
		},
		DidYouKnow: "Az ipari ventilátorok folyamatos üzemre készülnek.",
		TechTable: &TechTable{
			Variants: []string{"VKO 150", "VKO 200", "VKO 250"},
			Rows: []TableRow{
				{Name: "Légszállítás", Unit: "m³/h", Values: []string{"298", "455", "890"}, Highlight: true},
				{Name: "Feszültség", Unit: "V", CommonValue: "230"},
			},
			DimensionRows: []TableRow{
				{Name: "Hossz", Unit: "mm", Values: []string{"240", "260", "280"}},
			},
		},
		Curves: &CurveGallery{
			Curves: []Curve{{ImageURL: "https://example.com/gorbe.webp", Title: "VKO 150 jelleggörbe", Alt: "jelleggörbe"}},
		},
		UspBlocks: []model.UspBlock{{Title: "Fémház", Paragraph1: "Tartós.", ImageURL: "/images/usps/femhaz.jpg"}},
		FAQ: &FAQ{Questions: []model.QA{
			{Question: "Szerelhető csőbe?", Answer: "Igen, 150 mm csőátmérőhöz."},
		}},
	}

	html := Industrial(page)

	t.Run("datasheet subject names the product", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, "A VKO 150 hivatalos")
	})

	t.Run("tech table with defaults and variant columns", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, "<h2 class=\"section-title\">Műszaki adatok</h2>")
		assert.Contains(t, html, "Az összes változat részletes specifikációja")
		assert.Contains(t, html, `<th colspan="2">Paraméter</th><th>VKO 150</th><th>VKO 200</th><th>VKO 250</th>`)
		assert.Contains(t, html, `<tr class="highlight-row"><th>Légszállítás</th>`)
		assert.Contains(t, html, `<td colspan="3">230</td>`)
		assert.Contains(t, html, `<tbody class="dimension-rows">`)
	})

	t.Run("curve gallery with lightbox links", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, "Jelleggörbék")
		assert.Contains(t, html, `data-lightbox="jelleggorbek"`)
		assert.Contains(t, html, `data-title="VKO 150 jelleggörbe"`)
	})

	t.Run("faq accordion and schema markup", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, html, "Gyakran Ismételt Kérdések")
		assert.Contains(t, html, "<span>Szerelhető csőbe?</span>")
		require.Contains(t, html, `<script type="application/ld+json">`)
		assert.Contains(t, html, `"@type":"FAQPage"`)
		assert.Contains(t, html, `"name":"Szerelhető csőbe?"`)
		assert.Contains(t, html, `"text":"Igen, 150 mm csőátmérőhöz."`)
	})
}

func TestIndustrialOptionalSectionsOmitted(t *testing.T) {
	t.Parallel()
	html := Industrial(IndustrialPage{
		Intro:     Intro{Headline: "VKO 150"},
		Datasheet: Datasheet{ProductName: "VKO 150"},
	})

	assert.NotContains(t, html, "ventilator-table-section")
	assert.NotContains(t, html, "jelleggorbe-section")
	assert.NotContains(t, html, "termekgyik")
}
