// Package storage persists run history for the subproc CLI in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	command     TEXT NOT NULL,
	dir         TEXT NOT NULL DEFAULT '',
	started_ms  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	exit_code   INTEGER NOT NULL,
	signaled    INTEGER NOT NULL DEFAULT 0,
	signal      TEXT NOT NULL DEFAULT '',
	stdout_tail TEXT NOT NULL DEFAULT '',
	stderr_tail TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_ms DESC);
`

// Run is one recorded child-process run.
type Run struct {
	RunID      string
	Command    string // full command line, space-joined
	Dir        string
	StartedAt  time.Time
	Duration   time.Duration
	ExitCode   int
	Signaled   bool // the escalation policy fired
	Signal     string
	StdoutTail string
	StderrTail string
}

// Store is a SQLite-backed run-history store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun inserts a run. A missing RunID is generated.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if strings.TrimSpace(run.Command) == "" {
		return fmt.Errorf("command is required")
	}

	signaled := 0
	if run.Signaled {
		signaled = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			run_id, command, dir, started_ms, duration_ms,
			exit_code, signaled, signal, stdout_tail, stderr_tail
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.Command,
		run.Dir,
		run.StartedAt.UnixMilli(),
		run.Duration.Milliseconds(),
		run.ExitCode,
		signaled,
		run.Signal,
		run.StdoutTail,
		run.StderrTail,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, command, dir, started_ms, duration_ms,
		       exit_code, signaled, signal, stdout_tail, stderr_tail
		FROM runs
		ORDER BY started_ms DESC, run_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedMs, durationMs int64
		var signaled int
		if err := rows.Scan(
			&r.RunID, &r.Command, &r.Dir, &startedMs, &durationMs,
			&r.ExitCode, &signaled, &r.Signal, &r.StdoutTail, &r.StderrTail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMs)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.Signaled = signaled != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
