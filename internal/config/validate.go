package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a ForgeConfig for structural and semantic errors. It
// returns every validation error found (empty if valid).
func Validate(cfg *ForgeConfig) []ValidationError {
	var errs []ValidationError
	f := cfg.Forge

	if f.Repo == "" {
		errs = append(errs, ValidationError{Field: "forge.repo", Message: "is required"})
	}
	if f.MaxIterations < 1 {
		errs = append(errs, ValidationError{Field: "forge.max_iterations", Message: "must be at least 1"})
	}

	if f.Completion.Temperature < 0 || f.Completion.Temperature > 2 {
		errs = append(errs, ValidationError{Field: "forge.completion.temperature", Message: "must be between 0 and 2"})
	}
	if f.Completion.MaxTokens < 1 {
		errs = append(errs, ValidationError{Field: "forge.completion.max_tokens", Message: "must be positive"})
	}
	if f.Completion.EscalationStep < 0 {
		errs = append(errs, ValidationError{Field: "forge.completion.escalation_step", Message: "must not be negative"})
	}

	if !strings.Contains(f.Exec.Command, "{{test_file}}") {
		errs = append(errs, ValidationError{Field: "forge.exec.command", Message: "must reference {{test_file}}"})
	}
	if f.Exec.Timeout != "" {
		if _, err := time.ParseDuration(f.Exec.Timeout); err != nil {
			errs = append(errs, ValidationError{
				Field:   "forge.exec.timeout",
				Message: fmt.Sprintf("invalid duration %q", f.Exec.Timeout),
			})
		}
	}

	return errs
}

// ExecTimeout parses the configured execution timeout, falling back to the
// given default when unset or unparseable.
func (f *Forge) ExecTimeout(fallback time.Duration) time.Duration {
	if f.Exec.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(f.Exec.Timeout)
	if err != nil {
		return fallback
	}
	return d
}
