package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"testforge/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent runs from the run-history database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Forge.DatabaseURL == "" {
			return fmt.Errorf("no database_url configured")
		}

		d, err := db.Open(cfg.Forge.DatabaseURL)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.Migrate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			attempts, err := d.RunAttempts(args[0])
			if err != nil {
				return err
			}
			for _, a := range attempts {
				fmt.Fprintf(out, "%s attempt %d: %s (exit %d, %dms)\n",
					a.TestFile, a.Attempt, a.Status, a.ExitCode, a.DurationMs)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := d.RecentRuns(limit)
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %s  %d passed, %d code issues, %d exhausted\n",
				r.RunID, r.CreatedAt, r.Passed, r.CodeIssues, r.Exhausted)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to show")
}
