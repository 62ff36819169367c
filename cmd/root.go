package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ventilatorhaz",
	Short: "Termékleírás-generátor a Ventilátorház webshophoz",
	Long:  "Multi-step content wizard: extracts datasheet fields via Claude, positions the product against category benchmarks, matches and curates USP marketing blocks, and renders the minified product page HTML.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
