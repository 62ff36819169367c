package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/extract"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/library"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/usp"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API used by the CMS front-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ex, err := newExtractor()
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"https://*", "http://*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/api/extract", handleExtract(ex))
		r.Post("/api/analyze", handleAnalyze(ex))
		r.Post("/api/rephrase", handleRephrase(ex))
		r.Post("/api/match", handleMatch())

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func handleExtract(ex *extract.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductName  string  `json:"termek_nev"`
			Manufacturer string  `json:"gyarto"`
			Category     string  `json:"kategoria"`
			PDFURL       string  `json:"pdf_url"`
			PriceHUF     float64 `json:"ar_ft"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		result, err := ex.ExtractDatasheet(r.Context(), extract.Request{
			ProductName:  req.ProductName,
			Manufacturer: req.Manufacturer,
			Category:     model.Category(req.Category),
			DatasheetURL: req.PDFURL,
			PriceHUF:     req.PriceHUF,
		})
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"extracted_data": result.Fields,
			"warnings":       result.Warnings,
		})
	}
}

func handleAnalyze(ex *extract.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductName  string                 `json:"termek_nev"`
			Manufacturer string                 `json:"gyarto"`
			Category     string                 `json:"kategoria"`
			Extracted    []model.ExtractedField `json:"extracted_data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		analysis, err := ex.AnalyzeCompetitors(r.Context(), extract.Request{
			ProductName:  req.ProductName,
			Manufacturer: req.Manufacturer,
			Category:     model.Category(req.Category),
		}, req.Extracted)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, analysis)
	}
}

func handleRephrase(ex *extract.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title       string `json:"title"`
			Paragraph1  string `json:"paragraph_1"`
			Paragraph2  string `json:"paragraph_2"`
			ProductName string `json:"termek_nev"`
			Context     string `json:"context"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		result, err := ex.RephraseUsp(r.Context(), extract.RephraseRequest{
			Title:       req.Title,
			Paragraph1:  req.Paragraph1,
			Paragraph2:  req.Paragraph2,
			ProductName: req.ProductName,
			Context:     req.Context,
		})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"rephrased": result,
		})
	}
}

// handleMatch evaluates the USP library against posted fields without
// touching any stored session; the CMS preview uses it.
func handleMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Extracted   []model.ExtractedField   `json:"extracted_data"`
			Positioning *model.PositioningResult `json:"positioning"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		lib, err := library.LoadUspLibrary(cfg.Library.UspLibraryPath)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		matched := usp.Match(lib, model.NewValues(req.Extracted, req.Positioning))
		writeJSON(w, http.StatusOK, map[string]any{"matched": matched})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
