package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/library"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/positioning"
)

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Position the product against its category benchmark",
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

		table, err := library.LoadBenchmarks(cfg.Library.BenchmarkPath)
		if err != nil {
			return err
		}

		result := positioning.Evaluate(sess.Extracted, table.ForCategory(sess.Category))
		sess.Positioning = &result
		if sess.Phase < model.PhasePosition {
			sess.Phase = model.PhasePosition
		}
		if err := st.SaveSession(ctx, sess); err != nil {
			return err
		}

		zap.L().Info("product positioned",
			zap.String("session_id", sess.ID),
			zap.String("product", sess.ProductName),
			zap.Strings("highlights", result.Highlights),
		)
		return printJSON(result)
	},
}

func init() {
	positionCmd.Flags().StringVar(&sessionFlag, "session", "", "session id (default: latest)")
	rootCmd.AddCommand(positionCmd)
}
