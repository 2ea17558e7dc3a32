// Package coverage brackets a validation batch with coverage instrumentation.
// Instrumentation spans the whole batch — started before the first artifact
// and reported after the last — so per-artifact coverage is not isolated.
package coverage

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Sink receives the start/report lifecycle around a batch.
type Sink interface {
	Start(ctx context.Context) error
	Report(ctx context.Context) error
}

// Nop is the sink used when no coverage tooling is configured.
type Nop struct{}

func (Nop) Start(context.Context) error  { return nil }
func (Nop) Report(context.Context) error { return nil }

// CommandSink drives an external coverage tool through shell commands run in
// Dir, e.g. "coverage erase" before the batch and
// "coverage combine && coverage report" after it. Report output goes to Out.
type CommandSink struct {
	Dir           string
	StartCommand  string
	ReportCommand string
	Out           io.Writer
}

func (s *CommandSink) Start(ctx context.Context) error {
	return s.run(ctx, s.StartCommand)
}

func (s *CommandSink) Report(ctx context.Context) error {
	return s.run(ctx, s.ReportCommand)
}

func (s *CommandSink) run(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = s.Dir
	if s.Out != nil {
		cmd.Stdout = s.Out
		cmd.Stderr = s.Out
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("coverage command %q: %w", command, err)
	}
	return nil
}
