// Package store records compose runs in a local SQLite file so past
// runs can be listed and compared. The pipeline itself is stateless;
// only the CLI wrapper writes here.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// RunRecord summarizes one compose run.
type RunRecord struct {
	ID            string    `json:"id"`
	SitesLoaded   int       `json:"sites_loaded"`
	SitesExcluded int       `json:"sites_excluded"`
	Regions       int       `json:"regions"`
	Unassigned    int       `json:"unassigned"`
	Clusters      int       `json:"clusters"`
	Layers        int       `json:"layers"`
	SourceYear    int       `json:"source_year"`
	CreatedAt     time.Time `json:"created_at"`
}

// RunStore persists run records using modernc.org/sqlite.
type RunStore struct {
	db *sql.DB
}

// Open opens the run database at the given path and configures WAL mode.
func Open(dsn string) (*RunStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &RunStore{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS compose_runs (
	id         TEXT PRIMARY KEY,
	summary    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_compose_runs_created_at ON compose_runs(created_at);
`

// Migrate creates the schema if it does not exist.
func (s *RunStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run summary and returns it with id and timestamp
// filled in.
func (s *RunStore) RecordRun(ctx context.Context, rec RunRecord) (*RunRecord, error) {
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	summary, err := json.Marshal(rec)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal run summary")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO compose_runs (id, summary, created_at) VALUES (?, ?, ?)`,
		rec.ID, string(summary), rec.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: insert run")
	}
	return &rec, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT summary FROM compose_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var summary string
		if err := rows.Scan(&summary); err != nil {
			return nil, eris.Wrap(err, "store: scan run row")
		}
		var rec RunRecord
		if err := json.Unmarshal([]byte(summary), &rec); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal run summary")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate run rows")
	}
	return records, nil
}
