package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool. Use it when several
// operators share the used-USP history: unlike a per-machine SQLite file,
// concurrent appends from different seats cannot lose records.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	product    TEXT NOT NULL,
	phase      INTEGER NOT NULL DEFAULT 1,
	state      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS usp_history (
	id           TEXT PRIMARY KEY,
	usp_id       TEXT NOT NULL,
	title        TEXT NOT NULL,
	product_name TEXT NOT NULL,
	used_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
CREATE INDEX IF NOT EXISTS idx_usp_history_usp_id ON usp_history(usp_id);
CREATE INDEX IF NOT EXISTS idx_usp_history_title ON usp_history(title);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSession(ctx context.Context, sess *model.WizardSession) error {
	now := time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now

	stateJSON, err := json.Marshal(sess)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal session")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, product, phase, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		   product = EXCLUDED.product,
		   phase = EXCLUDED.phase,
		   state = EXCLUDED.state,
		   updated_at = EXCLUDED.updated_at`,
		sess.ID, sess.ProductName, sess.Phase, string(stateJSON), sess.CreatedAt, sess.UpdatedAt,
	)
	return eris.Wrapf(err, "postgres: save session %s", sess.ID)
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (*model.WizardSession, error) {
	row := s.pool.QueryRow(ctx, `SELECT state FROM sessions WHERE id = $1`, id)
	return scanPgSession(row)
}

func (s *PostgresStore) LatestSession(ctx context.Context) (*model.WizardSession, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT state FROM sessions ORDER BY updated_at DESC LIMIT 1`)
	return scanPgSession(row)
}

func (s *PostgresStore) History(ctx context.Context) ([]model.UsedUspRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, usp_id, title, product_name, used_at FROM usp_history ORDER BY used_at`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query history")
	}
	defer rows.Close()

	var records []model.UsedUspRecord
	for rows.Next() {
		var rec model.UsedUspRecord
		if err := rows.Scan(&rec.ID, &rec.UspID, &rec.Title, &rec.ProductName, &rec.UsedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan history record")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate history")
}

func (s *PostgresStore) AppendHistory(ctx context.Context, rec model.UsedUspRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO usp_history (id, usp_id, title, product_name, used_at) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.UspID, rec.Title, rec.ProductName, rec.UsedAt,
	)
	return eris.Wrap(err, "postgres: append history")
}

func scanPgSession(row pgx.Row) (*model.WizardSession, error) {
	var stateJSON []byte
	err := row.Scan(&stateJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan session")
	}
	var sess model.WizardSession
	if err := json.Unmarshal(stateJSON, &sess); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal session")
	}
	return &sess, nil
}
