// Package validate drives the bounded validate-and-repair loop over
// generated test artifacts.
package validate

import (
	"context"
	"fmt"
	"io"
	"os"

	"testforge/internal/artifact"
	"testforge/internal/coverage"
	"testforge/internal/ledger"
	"testforge/internal/llm"
	"testforge/internal/prompt"
)

// Status of an artifact within the loop.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusRepairing Status = "repairing"
	StatusPassed    Status = "passed"
	StatusCodeIssue Status = "code_issue"
	StatusExhausted Status = "exhausted"
)

// DefaultMaxIterations bounds the retry budget per artifact.
const DefaultMaxIterations = 3

// EventLog receives one record per execution attempt. Implemented by the run
// history store; optional.
type EventLog interface {
	LogAttempt(testFile string, attempt int, status string, exitCode int, durationMs int) error
}

// Result records how one artifact finished.
type Result struct {
	TestFile string `json:"test_file"`
	Status   Status `json:"status"`
	Attempts int    `json:"attempts"`
}

// Loop processes artifacts strictly sequentially: one artifact at a time,
// one attempt at a time. Repair must see the exact error text of the
// immediately preceding attempt, and the coverage context is not
// concurrency-safe.
type Loop struct {
	runner      Runner
	client      llm.CompletionClient
	ledger      *ledger.Ledger
	classifier  Classifier
	policy      llm.EscalationPolicy
	sink        coverage.Sink
	events      EventLog
	workDir     string
	maxAttempts int
	progress    io.Writer
}

// NewLoop creates a Loop with the default classifier, escalation policy and
// retry budget.
func NewLoop(runner Runner, client llm.CompletionClient, led *ledger.Ledger) *Loop {
	return &Loop{
		runner:      runner,
		client:      client,
		ledger:      led,
		classifier:  &MarkerClassifier{},
		policy:      llm.Escalate(llm.Params{MaxTokens: 700, Temperature: 0.4}, 0.1),
		sink:        coverage.Nop{},
		maxAttempts: DefaultMaxIterations,
	}
}

// SetClassifier replaces the failure classifier.
func (l *Loop) SetClassifier(c Classifier) { l.classifier = c }

// SetPolicy replaces the repair escalation policy.
func (l *Loop) SetPolicy(p llm.EscalationPolicy) { l.policy = p }

// SetCoverage sets the coverage sink bracketing the batch.
func (l *Loop) SetCoverage(s coverage.Sink) { l.sink = s }

// SetEvents sets an optional run-history event log.
func (l *Loop) SetEvents(e EventLog) { l.events = e }

// SetWorkDir sets the working directory test executions run from.
func (l *Loop) SetWorkDir(dir string) { l.workDir = dir }

// SetMaxAttempts overrides the retry budget.
func (l *Loop) SetMaxAttempts(n int) {
	if n > 0 {
		l.maxAttempts = n
	}
}

// SetProgress sets a writer for per-attempt progress lines.
func (l *Loop) SetProgress(w io.Writer) { l.progress = w }

func (l *Loop) logf(format string, args ...interface{}) {
	if l.progress != nil {
		fmt.Fprintf(l.progress, "  → "+format+"\n", args...)
	}
}

// ProcessDir validates every artifact in dir, in directory listing order,
// with coverage instrumentation started before the first artifact and
// reported after the last. A service-layer error aborts the batch; results
// collected so far are returned alongside it.
func (l *Loop) ProcessDir(ctx context.Context, dir string) ([]Result, error) {
	files, err := artifact.List(dir)
	if err != nil {
		return nil, err
	}

	if err := l.sink.Start(ctx); err != nil {
		return nil, fmt.Errorf("start coverage: %w", err)
	}

	var results []Result
	for _, path := range files {
		res, err := l.ProcessArtifact(ctx, path)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}

	if err := l.sink.Report(ctx); err != nil {
		return results, fmt.Errorf("coverage report: %w", err)
	}
	return results, nil
}

// ProcessArtifact runs the per-artifact state machine:
// Pending → Running → {Passed, CodeIssue, Exhausted}, entering Repairing from
// Running on a non-assertion failure while attempts remain.
func (l *Loop) ProcessArtifact(ctx context.Context, path string) (Result, error) {
	res := Result{TestFile: path, Status: StatusPending}

	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		res.Status = StatusRunning
		res.Attempts = attempt
		l.logf("running tests for %s (attempt %d)", path, attempt)

		out, err := l.runner.Run(ctx, l.workDir, path)
		if err != nil {
			return res, fmt.Errorf("execute %s: %w", path, err)
		}

		if out.ExitCode == 0 {
			res.Status = StatusPassed
			l.logf("tests passed for %s", path)
			l.logEvent(path, attempt, string(StatusPassed), out)
			return res, nil
		}

		if l.classifier.Classify(out.Stderr) == Compliance {
			// The production code disagrees with the asserted expectation;
			// never regenerate — surface for human review instead.
			l.ledger.AddCodeIssue(path, out.Stderr, attempt)
			res.Status = StatusCodeIssue
			l.logf("logged as a code compliance issue for review: %s", path)
			l.logEvent(path, attempt, string(StatusCodeIssue), out)
			return res, nil
		}

		l.ledger.AddTestIssue(path, out.Stderr, attempt)
		res.Status = StatusRepairing
		l.logf("test failed, regenerating %s (attempt %d)", path, attempt)
		l.logEvent(path, attempt, string(StatusRepairing), out)

		if err := l.repair(ctx, path, out.Stderr, attempt); err != nil {
			return res, err
		}
	}

	res.Status = StatusExhausted
	l.logf("retry budget exhausted for %s", path)
	return res, nil
}

// repair asks the completion service for a fixed test, feeding back the error
// text and the current (possibly already repaired) artifact content, with
// sampling parameters escalated per the policy, then overwrites the artifact.
func (l *Loop) repair(ctx context.Context, path, errText string, attempt int) error {
	current, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact %s: %w", path, err)
	}

	p, err := prompt.Render(prompt.RepairTest, prompt.Vars{
		"error":        errText,
		"test_content": string(current),
	})
	if err != nil {
		return fmt.Errorf("render repair prompt: %w", err)
	}

	text, err := l.client.Complete(ctx, p, l.policy(attempt))
	if err != nil {
		return fmt.Errorf("repair %s: %w", path, err)
	}
	return artifact.Overwrite(path, text)
}

func (l *Loop) logEvent(path string, attempt int, status string, out *Outcome) {
	if l.events == nil {
		return
	}
	if err := l.events.LogAttempt(path, attempt, status, out.ExitCode, int(out.Duration.Milliseconds())); err != nil {
		l.logf("log attempt event: %v", err)
	}
}
