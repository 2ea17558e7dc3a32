package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"testforge/internal/config"
	"testforge/internal/ledger"
	"testforge/internal/llm"
	"testforge/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Execute generated test artifacts and repair failing ones",
	Long: `Runs every test artifact in the output directory. Passing artifacts are
left alone. Failures containing the assertion marker are recorded as code
compliance issues for human review; anything else is treated as a defect in
the generated test and regenerated with the error as feedback, up to the
configured retry budget. The failure ledger is written at the end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f := &cfg.Forge

		client, err := buildClient(f)
		if err != nil {
			return err
		}
		return runValidation(cmd, f, client)
	},
}

// runValidation drives the validation loop and persists the ledger. Shared by
// the validate and run commands.
func runValidation(cmd *cobra.Command, f *config.Forge, client llm.CompletionClient) error {
	runLog, closeDB, err := openRunLog(f)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer closeDB()

	led := ledger.New()
	var events validate.EventLog
	if runLog != nil {
		events = runLog
	}

	loop := newLoop(client, f, led, events)
	loop.SetCoverage(newCoverageSink(f, cmd.OutOrStdout()))
	loop.SetProgress(cmd.ErrOrStderr())

	results, loopErr := loop.ProcessDir(cmd.Context(), f.OutputPath())

	// The ledger reflects everything observed up to an abort; persist it
	// before surfacing the error.
	if saveErr := led.Save(f.LedgerPath()); saveErr != nil {
		if loopErr == nil {
			loopErr = saveErr
		}
	}

	var passed, codeIssues, exhausted int
	for _, res := range results {
		switch res.Status {
		case validate.StatusPassed:
			passed++
		case validate.StatusCodeIssue:
			codeIssues++
		case validate.StatusExhausted:
			exhausted++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%d attempt(s))\n", statusLabel(res.Status), res.TestFile, res.Attempts)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d passed, %d code issues, %d exhausted — ledger written to %s\n",
		passed, codeIssues, exhausted, f.LedgerPath())

	if runLog != nil {
		if err := runLog.LogSummary(passed, codeIssues, exhausted); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log run summary: %v\n", err)
		}
	}

	return loopErr
}

func statusLabel(s validate.Status) string {
	switch s {
	case validate.StatusPassed:
		return "PASS"
	case validate.StatusCodeIssue:
		return "CODE"
	case validate.StatusExhausted:
		return "GAVE UP"
	default:
		return "ABORTED"
	}
}
