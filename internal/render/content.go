package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// ComposeOptions carries the assets the wizard cannot derive from the
// session: datasheet and drawing URLs, an optional video embed and FAQ
// entries written by the operator.
type ComposeOptions struct {
	YouTubeEmbedURL string
	DatasheetPDFURL string
	DrawingURL      string
	DrawingAlt      string
	FAQ             []model.QA
}

// Compose builds the final generated content for a session: the short
// description and the minified page HTML. Only confirmed field values appear
// in the prose; inferred and missing ones are left out rather than stated as
// fact.
func Compose(sess *model.WizardSession, opts ComposeOptions) model.GeneratedContent {
	selected := make([]model.UspBlock, 0, len(sess.Selected))
	selected = append(selected, sess.Selected...)

	intro := Intro{
		YouTubeEmbedURL: opts.YouTubeEmbedURL,
		Headline:        sess.ProductName,
		Paragraph1:      introParagraph(sess),
		Paragraph2:      highlightsParagraph(sess),
	}
	sheet := Datasheet{
		ProductName: sess.ProductName,
		PDFURL:      opts.DatasheetPDFURL,
		DrawingURL:  opts.DrawingURL,
		DrawingAlt:  opts.DrawingAlt,
	}
	tudta := didYouKnowText(sess)

	var html string
	if sess.Category == model.CategoryIndustrial {
		page := IndustrialPage{
			Intro:      intro,
			Datasheet:  sheet,
			DidYouKnow: tudta,
			TechTable:  techTable(sess),
			UspBlocks:  selected,
		}
		if len(opts.FAQ) > 0 {
			page.FAQ = &FAQ{Questions: opts.FAQ}
		}
		html = Industrial(page)
	} else {
		html = Residential(ResidentialPage{
			Intro:      intro,
			Datasheet:  sheet,
			DidYouKnow: tudta,
			UspBlocks:  selected,
		})
	}

	zap.L().Info("content composed",
		zap.String("product", sess.ProductName),
		zap.String("category", string(sess.Category)),
		zap.Int("usp_blocks", len(selected)),
		zap.Int("html_bytes", len(html)),
	)

	return model.GeneratedContent{
		ShortDescription: shortDescription(sess),
		HTML:             html,
		FAQ:              opts.FAQ,
	}
}

// categoryLabels are the customer-facing names of the product categories.
var categoryLabels = map[model.Category]string{
	model.CategoryBathroomAxial:  "fürdőszobai axiális ventilátor",
	model.CategoryBathroomRadial: "fürdőszobai radiális ventilátor",
	model.CategoryDuct:           "csőventilátor",
	model.CategoryIndustrial:     "ipari ventilátor",
	model.CategoryHeatRecovery:   "hővisszanyerős szellőztető",
}

func shortDescription(sess *model.WizardSession) string {
	var parts []string

	label := categoryLabels[sess.Category]
	if label == "" {
		label = "ventilátor"
	}
	lead := fmt.Sprintf("A %s egy %s", sess.ProductName, label)
	if m, ok := confirmedString(sess, model.FieldManufacturer); ok {
		lead = fmt.Sprintf("A %s a %s gyártó %s terméke", sess.ProductName, m, label)
	}
	parts = append(parts, lead+".")

	var specs []string
	if v, ok := confirmedNumber(sess, model.FieldNoiseDB); ok {
		specs = append(specs, FormatMeasure(v, "dB zajszint"))
	}
	if v, ok := confirmedNumber(sess, model.FieldAirflowM3H); ok {
		specs = append(specs, FormatMeasure(v, "m³/h légszállítás"))
	}
	if v, ok := confirmedNumber(sess, model.FieldPowerW); ok {
		specs = append(specs, FormatMeasure(v, "W teljesítményfelvétel"))
	}
	if len(specs) > 0 {
		parts = append(parts, "Főbb adatai: "+strings.Join(specs, ", ")+".")
	}

	if sess.Positioning != nil && len(sess.Positioning.Highlights) > 0 {
		parts = append(parts, strings.Join(sess.Positioning.Highlights, ", ")+".")
	}

	if v, ok := confirmedNumber(sess, model.FieldPriceHUF); ok {
		parts = append(parts, fmt.Sprintf("Ára: %s.", FormatHUF(v)))
	}

	return strings.Join(parts, " ")
}

func introParagraph(sess *model.WizardSession) string {
	var specs []string
	if v, ok := confirmedNumber(sess, model.FieldAirflowM3H); ok {
		specs = append(specs, fmt.Sprintf("óránként %s levegőt mozgat", FormatMeasure(v, "m³")))
	}
	if v, ok := confirmedNumber(sess, model.FieldNoiseDB); ok {
		specs = append(specs, fmt.Sprintf("mindössze %s zajszint mellett", FormatMeasure(v, "dB")))
	}
	if len(specs) == 0 {
		return fmt.Sprintf("A %s megbízható megoldás a helyiség szellőztetésére.", sess.ProductName)
	}
	return fmt.Sprintf("A %s %s.", sess.ProductName, strings.Join(specs, ", "))
}

func highlightsParagraph(sess *model.WizardSession) string {
	if sess.Positioning == nil || len(sess.Positioning.Highlights) == 0 {
		return "Az alábbiakban összegyűjtöttük, miért ajánljuk ezt a terméket."
	}
	return "Amiért kiemelkedik a kategóriájából: " +
		strings.Join(sess.Positioning.Highlights, ", ") + "."
}

// didYouKnowText prefers the below-average noise figure, the strongest
// conversion argument the shop has.
func didYouKnowText(sess *model.WizardSession) string {
	if sess.Positioning != nil && sess.Positioning.NoiseDiffPercent > 0 {
		return fmt.Sprintf("Ez a ventilátor %d%%-kal csendesebb a kategóriája átlagánál.",
			sess.Positioning.NoiseDiffPercent)
	}
	if v, ok := confirmedNumber(sess, model.FieldLifetimeHours); ok {
		return fmt.Sprintf("A motor élettartama %s üzemóra, ami folyamatos használat mellett is évekre elegendő.",
			FormatNumber(v))
	}
	return "A megfelelő szellőztetés a penészesedés leghatékonyabb ellenszere."
}

// techTable builds a single-variant specification table from the confirmed
// numeric fields.
func techTable(sess *model.WizardSession) *TechTable {
	type rowSpec struct {
		field string
		name  string
		unit  string
	}
	specs := []rowSpec{
		{model.FieldAirflowM3H, "Légszállítás", "m³/h"},
		{model.FieldPressurePa, "Nyomás", "Pa"},
		{model.FieldNoiseDB, "Zajszint", "dB"},
		{model.FieldPowerW, "Teljesítményfelvétel", "W"},
		{model.FieldCurrentA, "Áramfelvétel", "A"},
		{model.FieldRPM, "Fordulatszám", "rpm"},
		{model.FieldDuctDiameter, "Csőátmérő", "mm"},
	}

	var rows []TableRow
	for _, s := range specs {
		if v, ok := confirmedNumber(sess, s.field); ok {
			rows = append(rows, TableRow{
				Name:   s.name,
				Unit:   s.unit,
				Values: []string{FormatNumber(v)},
			})
		}
	}
	if ip, ok := confirmedString(sess, model.FieldIPRating); ok {
		rows = append(rows, TableRow{Name: "Védettség", Unit: "IP", Values: []string{ip}})
	}
	if len(rows) == 0 {
		return nil
	}

	return &TechTable{
		Variants: []string{sess.ProductName},
		Rows:     rows,
	}
}

func confirmedNumber(sess *model.WizardSession, key string) (float64, bool) {
	f := sess.Field(key)
	if f == nil || !f.Confirmed() {
		return 0, false
	}
	return model.AsNumber(f.Value)
}

func confirmedString(sess *model.WizardSession, key string) (string, bool) {
	f := sess.Field(key)
	if f == nil || !f.Confirmed() {
		return "", false
	}
	s, ok := f.Value.(string)
	return s, ok && s != ""
}
