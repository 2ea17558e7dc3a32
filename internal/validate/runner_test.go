package validate

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_Success(t *testing.T) {
	r := &ExecRunner{CommandTemplate: "true # {{test_file}}"}

	out, err := r.Run(context.Background(), t.TempDir(), "test_math.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", out.ExitCode)
	}
}

func TestExecRunner_FailureCapturesStderr(t *testing.T) {
	r := &ExecRunner{CommandTemplate: "echo 'AssertionError: 5 != 6' >&2; exit 1 # {{test_file}}"}

	out, err := r.Run(context.Background(), t.TempDir(), "test_math.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", out.ExitCode)
	}
	if !strings.Contains(out.Stderr, "AssertionError: 5 != 6") {
		t.Errorf("expected stderr to be captured, got %q", out.Stderr)
	}
}

func TestExecRunner_SubstitutesTestFile(t *testing.T) {
	r := &ExecRunner{CommandTemplate: "echo {{test_file}} >&2; exit 1"}

	out, err := r.Run(context.Background(), t.TempDir(), "unit_tests/test_math.py")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Stderr, "unit_tests/test_math.py") {
		t.Errorf("expected test file in command, got %q", out.Stderr)
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	r := &ExecRunner{
		CommandTemplate: "sleep 5 # {{test_file}}",
		Timeout:         100 * time.Millisecond,
	}

	out, err := r.Run(context.Background(), t.TempDir(), "test_math.py")
	if err != nil {
		t.Fatalf("a timeout is an outcome, not an error: %v", err)
	}
	if out.ExitCode != -1 {
		t.Errorf("expected exit code -1 on timeout, got %d", out.ExitCode)
	}
	if !strings.Contains(out.Stderr, "timed out") {
		t.Errorf("expected timeout text in stderr, got %q", out.Stderr)
	}
}

func TestExecRunner_BadTemplate(t *testing.T) {
	r := &ExecRunner{CommandTemplate: "run {{unknown_var}}"}
	if _, err := r.Run(context.Background(), t.TempDir(), "test_math.py"); err == nil {
		t.Error("expected error for unknown template variable")
	}
}
