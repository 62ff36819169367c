package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/extract"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/store"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/usp"
	"github.com/Soborbo/ventilatorhaz-leirasok/pkg/anthropic"
)

// sessionFlag selects a wizard session by id; empty means the most recently
// updated one.
var sessionFlag string

// openStore opens the configured session/history backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// loadSession fetches the flagged or latest wizard session.
func loadSession(ctx context.Context, st store.Store) (*model.WizardSession, error) {
	if sessionFlag != "" {
		return st.GetSession(ctx, sessionFlag)
	}
	return st.LatestSession(ctx)
}

// newExtractor builds the LLM extractor from config. The API key is the only
// knob without a default.
func newExtractor() (*extract.Extractor, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic.key is not configured (VENTILATORHAZ_ANTHROPIC_KEY)")
	}
	return extract.New(anthropic.NewClient(cfg.Anthropic.Key), extract.Options{
		Model:             cfg.Anthropic.Model,
		MaxTokens:         cfg.Anthropic.MaxTokens,
		RequestsPerMinute: cfg.Anthropic.RequestsPerMinute,
		HTTPTimeout:       time.Duration(cfg.Extract.HTTPTimeoutSecs) * time.Second,
		MaxPDFBytes:       cfg.Extract.MaxPDFBytes,
	}), nil
}

// uspSession rehydrates the in-memory selection session from the persisted
// wizard session.
func uspSession(sess *model.WizardSession) *usp.Session {
	return &usp.Session{
		ProductName: sess.ProductName,
		Selected:    sess.Selected,
		Available:   sess.Available,
	}
}

// saveSelection writes the selection session back and persists.
func saveSelection(ctx context.Context, st store.Store, sess *model.WizardSession, sel *usp.Session) error {
	sess.Selected = sel.Selected
	sess.Available = sel.Available
	return st.SaveSession(ctx, sess)
}

// printJSON pretty-prints v to stdout; command results are consumed by both
// operators and scripts.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
