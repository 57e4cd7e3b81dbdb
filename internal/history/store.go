// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists one summary row per conversion run in a local
// SQLite database, so past runs can be listed from the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/locforge/pkg/types"
)

const dbFile = "history.db"

// defaultLimit bounds Recent when the caller passes no limit.
const defaultLimit = 20

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database under dir, creating the
// schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mode TEXT NOT NULL,
		outcome TEXT NOT NULL,
		units INTEGER NOT NULL,
		records INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		truncated INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		message TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends one run summary to the ledger.
func (s *Store) Record(ctx context.Context, run types.RunSummary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (mode, outcome, units, records, skipped, truncated, started_at, duration_ms, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(run.Mode), string(run.Outcome),
		run.Units, run.Records, run.Skipped, boolInt(run.Truncated),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(), run.Message,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first. A limit below 1
// falls back to the default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if limit < 1 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT mode, outcome, units, records, skipped, truncated, started_at, duration_ms, message
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		var (
			run        types.RunSummary
			mode       string
			outcome    string
			truncated  int
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&mode, &outcome, &run.Units, &run.Records, &run.Skipped,
			&truncated, &startedAt, &durationMS, &run.Message); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Mode = types.Mode(mode)
		run.Outcome = types.RunOutcome(outcome)
		run.Truncated = truncated != 0
		if t, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
			run.StartedAt = t
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
