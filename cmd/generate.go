package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/render"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/usp"
)

var (
	genPDFURL     string
	genDrawingURL string
	genDrawingAlt string
	genVideoURL   string
	genFAQPath    string
	genOutPath    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the final product page HTML and short description",
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

		sel := uspSession(sess)
		if !sel.CanProceed() {
			return eris.Errorf("cannot generate: %d usp blocks selected, at least %d required", len(sel.Selected), usp.ProceedMin)
		}
		if advisory := sel.Advisory(); advisory != "" {
			zap.L().Warn("selection below recommended size", zap.String("advisory", advisory))
		}

		opts := render.ComposeOptions{
			YouTubeEmbedURL: genVideoURL,
			DatasheetPDFURL: genPDFURL,
			DrawingURL:      genDrawingURL,
			DrawingAlt:      genDrawingAlt,
		}
		if genFAQPath != "" {
			data, err := os.ReadFile(genFAQPath)
			if err != nil {
				return eris.Wrapf(err, "read faq file %s", genFAQPath)
			}
			if err := json.Unmarshal(data, &opts.FAQ); err != nil {
				return eris.Wrapf(err, "parse faq file %s", genFAQPath)
			}
		}

		content := render.Compose(sess, opts)
		sess.Generated = &content
		sess.Phase = model.PhaseGenerate
		if err := st.SaveSession(ctx, sess); err != nil {
			return err
		}

		if genOutPath != "" {
			if err := os.WriteFile(genOutPath, []byte(content.HTML), 0o644); err != nil {
				return eris.Wrapf(err, "write %s", genOutPath)
			}
			zap.L().Info("html written", zap.String("path", genOutPath), zap.Int("bytes", len(content.HTML)))
			return printJSON(map[string]any{
				"rovid_leiras": content.ShortDescription,
				"html_path":    genOutPath,
			})
		}
		return printJSON(content)
	},
}

func init() {
	generateCmd.Flags().StringVar(&sessionFlag, "session", "", "session id (default: latest)")
	generateCmd.Flags().StringVar(&genPDFURL, "pdf-url", "", "factory datasheet URL for the download box")
	generateCmd.Flags().StringVar(&genDrawingURL, "drawing-url", "", "dimensional drawing image URL")
	generateCmd.Flags().StringVar(&genDrawingAlt, "drawing-alt", "", "dimensional drawing alt text")
	generateCmd.Flags().StringVar(&genVideoURL, "video-url", "", "YouTube embed URL for the intro")
	generateCmd.Flags().StringVar(&genFAQPath, "faq", "", "JSON file with FAQ entries [{question, answer}]")
	generateCmd.Flags().StringVar(&genOutPath, "out", "", "write HTML to file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}
