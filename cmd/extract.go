package main

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/extract"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

var (
	extractName         string
	extractManufacturer string
	extractCategory     string
	extractPDFURL       string
	extractPrice        float64
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Start a new product session and extract datasheet fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		category := model.Category(extractCategory)
		if !category.Valid() {
			return eris.Errorf("unknown category %q (known: %v)", extractCategory, model.Categories)
		}

		ex, err := newExtractor()
		if err != nil {
			return err
		}

		result, err := ex.ExtractDatasheet(ctx, extract.Request{
			ProductName:  extractName,
			Manufacturer: extractManufacturer,
			Category:     category,
			DatasheetURL: extractPDFURL,
			PriceHUF:     extractPrice,
		})
		if err != nil {
			return eris.Wrap(err, "extract datasheet")
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess := &model.WizardSession{
			ID:           uuid.New().String(),
			Phase:        model.PhaseExtract,
			ProductName:  extractName,
			Manufacturer: extractManufacturer,
			Category:     category,
			Extracted:    result.Fields,
			Warnings:     result.Warnings,
		}
		if err := st.SaveSession(ctx, sess); err != nil {
			return err
		}

		zap.L().Info("session created",
			zap.String("session_id", sess.ID),
			zap.String("product", sess.ProductName),
			zap.Int("fields", len(sess.Extracted)),
			zap.Int("warnings", len(sess.Warnings)),
		)
		return printJSON(sess)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractName, "name", "", "product name (required)")
	extractCmd.Flags().StringVar(&extractManufacturer, "manufacturer", "", "manufacturer (required)")
	extractCmd.Flags().StringVar(&extractCategory, "category", "", "product category (required)")
	extractCmd.Flags().StringVar(&extractPDFURL, "pdf-url", "", "datasheet URL (PDF or HTML)")
	extractCmd.Flags().Float64Var(&extractPrice, "price", 0, "price in HUF")
	_ = extractCmd.MarkFlagRequired("name")
	_ = extractCmd.MarkFlagRequired("manufacturer")
	_ = extractCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(extractCmd)
}
