package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"testforge/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the failure ledger from the last run",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		led, err := ledger.Load(cfg.Forge.LedgerPath())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if led.Empty() {
			fmt.Fprintln(out, "no failures recorded — everything passed")
			return nil
		}

		fmt.Fprintf(out, "test issues (%d):\n", len(led.TestIssues))
		for _, rec := range led.TestIssues {
			fmt.Fprintf(out, "  %s (attempt %d): %s\n", rec.TestFile, rec.Attempt, firstLine(rec.Error))
		}
		fmt.Fprintf(out, "code issues (%d):\n", len(led.CodeIssues))
		for _, rec := range led.CodeIssues {
			fmt.Fprintf(out, "  %s (attempt %d): %s\n", rec.TestFile, rec.Attempt, firstLine(rec.Error))
		}
		return nil
	},
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
