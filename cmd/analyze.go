package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/extract"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Research manufacturer and seller USPs for the session's product",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := loadSession(ctx, st)
		if err != nil {
			return err
		}
		if sess.Manufacturer == "" {
			return eris.New("session has no manufacturer, run extract first")
		}

		ex, err := newExtractor()
		if err != nil {
			return err
		}

		analysis, err := ex.AnalyzeCompetitors(ctx, extract.Request{
			ProductName:  sess.ProductName,
			Manufacturer: sess.Manufacturer,
			Category:     sess.Category,
		}, sess.Extracted)
		if err != nil {
			return eris.Wrap(err, "analyze competitors")
		}
		return printJSON(analysis)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&sessionFlag, "session", "", "session id (default: latest)")
	rootCmd.AddCommand(analyzeCmd)
}
