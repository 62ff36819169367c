package main

import (
	"github.com/spf13/cobra"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/export"
)

var exportOutPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session's spec table to an XLSX workbook",
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
		return export.WriteSession(exportOutPath, sess)
	},
}

func init() {
	exportCmd.Flags().StringVar(&sessionFlag, "session", "", "session id (default: latest)")
	exportCmd.Flags().StringVar(&exportOutPath, "out", "termek.xlsx", "output XLSX path")
	rootCmd.AddCommand(exportCmd)
}
