// Package db persists run history to Postgres. It is optional: the pipeline
// runs fully without a database, and commands only open one when a database
// URL is configured.
package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the Postgres connection used for run history.
type DB struct {
	conn *sql.DB
}

// Open connects to the database at the given URL.
func Open(url string) (*DB, error) {
	conn, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS attempt_runs (
    id          BIGSERIAL PRIMARY KEY,
    run_id      TEXT NOT NULL,
    test_file   TEXT NOT NULL,
    attempt     INTEGER NOT NULL,
    status      TEXT NOT NULL,
    exit_code   INTEGER,
    duration_ms INTEGER,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_attempt_runs_file ON attempt_runs(run_id, test_file, attempt);

CREATE TABLE IF NOT EXISTS run_summaries (
    id          BIGSERIAL PRIMARY KEY,
    run_id      TEXT NOT NULL UNIQUE,
    passed      INTEGER NOT NULL,
    code_issues INTEGER NOT NULL,
    exhausted   INTEGER NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate applies the schema. All statements are idempotent.
func (d *DB) Migrate() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// RunLog scopes attempt logging to one run.
type RunLog struct {
	db    *DB
	runID string
}

// NewRun starts a run log with a fresh random run id.
func (d *DB) NewRun() *RunLog {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return &RunLog{db: d, runID: hex.EncodeToString(buf)}
}

// RunID returns the identifier rows of this run are keyed by.
func (r *RunLog) RunID() string {
	return r.runID
}

// LogAttempt inserts one execution-attempt row.
func (r *RunLog) LogAttempt(testFile string, attempt int, status string, exitCode int, durationMs int) error {
	_, err := r.db.conn.Exec(
		`INSERT INTO attempt_runs (run_id, test_file, attempt, status, exit_code, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.runID, testFile, attempt, status, exitCode, durationMs,
	)
	if err != nil {
		return fmt.Errorf("log attempt: %w", err)
	}
	return nil
}

// LogSummary inserts the run's final tallies.
func (r *RunLog) LogSummary(passed, codeIssues, exhausted int) error {
	_, err := r.db.conn.Exec(
		`INSERT INTO run_summaries (run_id, passed, code_issues, exhausted)
		 VALUES ($1, $2, $3, $4)`,
		r.runID, passed, codeIssues, exhausted,
	)
	if err != nil {
		return fmt.Errorf("log summary: %w", err)
	}
	return nil
}
