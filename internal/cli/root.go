package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "testforge",
	Short: "testforge — generate and self-repair unit tests for a codebase",
	Long: `testforge turns function metadata extracted from a codebase into unit
tests via a text-completion service, then validates each generated test by
executing it. Failures are classified: defects in the generated test are
repaired by bounded regeneration with escalating sampling parameters, while
assertion failures are recorded for human review — they signal the production
code disagrees with the expected behavior.

Every run writes a failure ledger; optionally each attempt is also recorded
to a Postgres run-history database.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: testforge.yaml, ~/.testforge/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(historyCmd)
}
