package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. This is the
// default single-operator backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	product    TEXT NOT NULL,
	phase      INTEGER NOT NULL DEFAULT 1,
	state      TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS usp_history (
	id           TEXT PRIMARY KEY,
	usp_id       TEXT NOT NULL,
	title        TEXT NOT NULL,
	product_name TEXT NOT NULL,
	used_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
CREATE INDEX IF NOT EXISTS idx_usp_history_usp_id ON usp_history(usp_id);
CREATE INDEX IF NOT EXISTS idx_usp_history_title ON usp_history(title);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSession(ctx context.Context, sess *model.WizardSession) error {
	now := time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now

	stateJSON, err := json.Marshal(sess)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal session")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, product, phase, state, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   product = excluded.product,
		   phase = excluded.phase,
		   state = excluded.state,
		   updated_at = excluded.updated_at`,
		sess.ID, sess.ProductName, sess.Phase, string(stateJSON), sess.CreatedAt, sess.UpdatedAt,
	)
	return eris.Wrapf(err, "sqlite: save session %s", sess.ID)
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.WizardSession, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

func (s *SQLiteStore) LatestSession(ctx context.Context) (*model.WizardSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT state FROM sessions ORDER BY updated_at DESC LIMIT 1`)
	return scanSession(row)
}

func (s *SQLiteStore) History(ctx context.Context) ([]model.UsedUspRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, usp_id, title, product_name, used_at FROM usp_history ORDER BY used_at`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query history")
	}
	defer rows.Close()

	var records []model.UsedUspRecord
	for rows.Next() {
		var rec model.UsedUspRecord
		if err := rows.Scan(&rec.ID, &rec.UspID, &rec.Title, &rec.ProductName, &rec.UsedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan history record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate history")
}

func (s *SQLiteStore) AppendHistory(ctx context.Context, rec model.UsedUspRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usp_history (id, usp_id, title, product_name, used_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.UspID, rec.Title, rec.ProductName, rec.UsedAt,
	)
	return eris.Wrap(err, "sqlite: append history")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSession(row scannable) (*model.WizardSession, error) {
	var stateJSON string
	err := row.Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan session")
	}
	var sess model.WizardSession
	if err := json.Unmarshal([]byte(stateJSON), &sess); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal session")
	}
	return &sess, nil
}

// ErrNoSession is returned when no wizard session exists yet.
var ErrNoSession = eris.New("store: no session found")
