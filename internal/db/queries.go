package db

import "fmt"

// RunSummary is a row from the run_summaries table.
type RunSummary struct {
	RunID      string
	Passed     int
	CodeIssues int
	Exhausted  int
	CreatedAt  string
}

// AttemptRun is a row from the attempt_runs table.
type AttemptRun struct {
	TestFile   string
	Attempt    int
	Status     string
	ExitCode   int
	DurationMs int
}

// RecentRuns returns the most recent run summaries, newest first.
func (d *DB) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := d.conn.Query(
		`SELECT run_id, passed, code_issues, exhausted, created_at::text
		 FROM run_summaries ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.Passed, &s.CodeIssues, &s.Exhausted, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RunAttempts returns every attempt row of a run in execution order.
func (d *DB) RunAttempts(runID string) ([]AttemptRun, error) {
	rows, err := d.conn.Query(
		`SELECT test_file, attempt, status, exit_code, duration_ms
		 FROM attempt_runs WHERE run_id = $1 ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRun
	for rows.Next() {
		var a AttemptRun
		if err := rows.Scan(&a.TestFile, &a.Attempt, &a.Status, &a.ExitCode, &a.DurationMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
