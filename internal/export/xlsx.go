// Package export writes a wizard session's data to an XLSX workbook for the
// shop team's spreadsheet workflow.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// statusLabels map field statuses to the column text the shop team reads.
var statusLabels = map[model.DataStatus]string{
	model.StatusConfirmed: "biztos",
	model.StatusInferred:  "következtetett",
	model.StatusMissing:   "hiányzó",
}

// WriteSession writes the session's extracted fields, positioning and
// selected USP blocks to an XLSX workbook at path.
func WriteSession(path string, sess *model.WizardSession) error {
	f := xlsx.NewFile()

	if err := writeFieldsSheet(f, sess); err != nil {
		return err
	}
	if err := writePositioningSheet(f, sess); err != nil {
		return err
	}
	if err := writeUspSheet(f, sess); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}

	zap.L().Info("session exported",
		zap.String("path", path),
		zap.String("product", sess.ProductName),
		zap.Int("fields", len(sess.Extracted)),
		zap.Int("usps", len(sess.Selected)),
	)
	return nil
}

func writeFieldsSheet(f *xlsx.File, sess *model.WizardSession) error {
	sheet, err := f.AddSheet("Műszaki adatok")
	if err != nil {
		return eris.Wrap(err, "export: add fields sheet")
	}

	addRow(sheet, "Mező", "Érték", "Státusz", "Forrás")
	for _, field := range sess.Extracted {
		addRow(sheet,
			field.Field,
			model.FormatValue(field.Value),
			statusLabels[field.Status],
			field.Source,
		)
	}
	return nil
}

func writePositioningSheet(f *xlsx.File, sess *model.WizardSession) error {
	sheet, err := f.AddSheet("Pozicionálás")
	if err != nil {
		return eris.Wrap(err, "export: add positioning sheet")
	}

	addRow(sheet, "Kulcs", "Érték")
	p := sess.Positioning
	if p == nil {
		return nil
	}
	if p.NoiseCategory != "" {
		addRow(sheet, model.KeyNoiseCategory, p.NoiseCategory)
	}
	if p.NoiseDiffPercent > 0 {
		addRow(sheet, model.KeyNoiseDiffPercent, model.FormatValue(p.NoiseDiffPercent))
	}
	if p.AirflowCategory != "" {
		addRow(sheet, model.KeyAirflowCategory, p.AirflowCategory)
	}
	if p.PowerCategory != "" {
		addRow(sheet, model.KeyPowerCategory, p.PowerCategory)
	}
	if p.PriceCategory != "" {
		addRow(sheet, model.KeyPriceCategory, p.PriceCategory)
	}
	for _, h := range p.Highlights {
		addRow(sheet, model.KeyHighlights, h)
	}
	return nil
}

func writeUspSheet(f *xlsx.File, sess *model.WizardSession) error {
	sheet, err := f.AddSheet("USP blokkok")
	if err != nil {
		return eris.Wrap(err, "export: add usp sheet")
	}

	addRow(sheet, "Sorrend", "Azonosító", "Cím", "1. bekezdés", "2. bekezdés", "Kép")
	for _, b := range sess.Selected {
		addRow(sheet,
			model.FormatValue(b.Order+1),
			b.ID,
			b.Title,
			b.Paragraph1,
			b.Paragraph2,
			b.ImageURL,
		)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().Value = c
	}
}
