// Package ledger accumulates the failures observed during one run and
// persists them as a single JSON document at the end.
package ledger

import (
	"fmt"

	"testforge/internal/fsutil"
)

// Record describes one failed execution of a test artifact. Attempt numbers
// are 1-indexed and strictly increasing per artifact within a run.
type Record struct {
	TestFile string `json:"test_file"`
	Error    string `json:"error"`
	Attempt  int    `json:"attempt"`
}

// Ledger holds the two disjoint failure classes of a run: authoring defects
// in generated tests (retried) and production-code defects (not retried).
type Ledger struct {
	TestIssues []Record `json:"test_issues"`
	CodeIssues []Record `json:"code_issues"`
}

// New returns an empty ledger. Both collections are non-nil so an empty run
// still serializes as two empty arrays.
func New() *Ledger {
	return &Ledger{
		TestIssues: []Record{},
		CodeIssues: []Record{},
	}
}

// AddTestIssue appends an authoring-defect record.
func (l *Ledger) AddTestIssue(testFile, errText string, attempt int) {
	l.TestIssues = append(l.TestIssues, Record{TestFile: testFile, Error: errText, Attempt: attempt})
}

// AddCodeIssue appends a production-code-defect record.
func (l *Ledger) AddCodeIssue(testFile, errText string, attempt int) {
	l.CodeIssues = append(l.CodeIssues, Record{TestFile: testFile, Error: errText, Attempt: attempt})
}

// Empty reports whether the run produced no failure records at all.
func (l *Ledger) Empty() bool {
	return len(l.TestIssues) == 0 && len(l.CodeIssues) == 0
}

// Save writes the ledger to path, overwriting any ledger from a prior run.
func (l *Ledger) Save(path string) error {
	if err := fsutil.WriteJSON(path, l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Load reads a previously saved ledger.
func Load(path string) (*Ledger, error) {
	l := New()
	if err := fsutil.ReadJSON(path, l); err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", path, err)
	}
	return l, nil
}
