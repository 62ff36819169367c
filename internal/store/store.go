// Package store persists wizard sessions and the append-only used-USP
// history behind a small port so the core stays free of storage concerns.
package store

import (
	"context"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// Store is the persistence interface for the content wizard. The history
// methods are the only thing the USP core requires; sessions carry the
// operator's working state between CLI invocations.
type Store interface {
	// Sessions
	SaveSession(ctx context.Context, sess *model.WizardSession) error
	GetSession(ctx context.Context, id string) (*model.WizardSession, error)
	LatestSession(ctx context.Context) (*model.WizardSession, error)

	// Used-USP history (append-only)
	History(ctx context.Context) ([]model.UsedUspRecord, error)
	AppendHistory(ctx context.Context, rec model.UsedUspRecord) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
