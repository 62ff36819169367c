package main

import (
	"github.com/spf13/cobra"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

var historyProduct string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the append-only used-USP history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.History(ctx)
		if err != nil {
			return err
		}

		if historyProduct != "" {
			filtered := make([]model.UsedUspRecord, 0, len(records))
			for _, rec := range records {
				if rec.ProductName == historyProduct {
					filtered = append(filtered, rec)
				}
			}
			records = filtered
		}
		return printJSON(records)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyProduct, "product", "", "filter by product name")
	rootCmd.AddCommand(historyCmd)
}
