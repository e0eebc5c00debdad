// Package history persists a record of past generation runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded pipeline run.
type Run struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Groups     int
	Links      int
	LineErrors int
	Output     string
	Outcome    string
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and initializes) the history database at path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		group_count INTEGER NOT NULL,
		link_count INTEGER NOT NULL,
		line_errors INTEGER NOT NULL,
		output TEXT NOT NULL,
		outcome TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts one run.
func (s *Store) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, started_at, duration_ms, group_count, link_count, line_errors, output, outcome) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.StartedAt.Unix(), run.Duration.Milliseconds(),
		run.Groups, run.Links, run.LineErrors, run.Output, run.Outcome,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, duration_ms, group_count, link_count, line_errors, output, outcome FROM runs ORDER BY started_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedUnix, durationMs int64
		if err := rows.Scan(&r.ID, &startedUnix, &durationMs, &r.Groups, &r.Links, &r.LineErrors, &r.Output, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(startedUnix, 0)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
