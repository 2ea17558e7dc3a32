package validate

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"testforge/internal/prompt"
)

// Outcome is the result of executing one test artifact.
type Outcome struct {
	ExitCode int
	Stderr   string
	Duration time.Duration
}

// Runner executes a test artifact as an isolated process. Success is exit
// code zero; failure text is read from the process's error stream.
type Runner interface {
	Run(ctx context.Context, dir string, testFile string) (*Outcome, error)
}

// ExecRunner shells out through sh -c with a rendered command template, e.g.
// "python -m unittest {{test_file}}". Every execution gets an explicit
// timeout so a hanging test cannot stall the run.
type ExecRunner struct {
	CommandTemplate string
	Timeout         time.Duration // defaults to 2m
}

func (e *ExecRunner) Run(ctx context.Context, dir string, testFile string) (*Outcome, error) {
	command, err := prompt.Render(e.CommandTemplate, prompt.Vars{"test_file": testFile})
	if err != nil {
		return nil, fmt.Errorf("render exec command: %w", err)
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	var stderrBuf strings.Builder
	cmd.Stderr = &stderrBuf

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &Outcome{
				ExitCode: -1,
				Stderr:   fmt.Sprintf("execution timed out after %s\n%s", timeout, stderrBuf.String()),
				Duration: duration,
			}, nil
		}
		exitErr, ok := runErr.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("exec %q: %w", command, runErr)
		}
		return &Outcome{ExitCode: exitErr.ExitCode(), Stderr: stderrBuf.String(), Duration: duration}, nil
	}
	return &Outcome{ExitCode: 0, Stderr: stderrBuf.String(), Duration: duration}, nil
}
