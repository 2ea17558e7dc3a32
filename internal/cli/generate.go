package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"testforge/internal/descriptor"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate test artifacts for every function in the metadata file",
	Long: `Reads the metadata document produced by the analysis stage and asks the
completion service for unit tests, one request per function. Generated tests
accumulate into one artifact per source file in the output directory, which
is cleared first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f := &cfg.Forge

		store, err := descriptor.Load(f.MetadataPath())
		if err != nil {
			return err
		}

		client, err := buildClient(f)
		if err != nil {
			return err
		}

		syn := newSynthesizer(client, f)
		syn.SetProgress(cmd.ErrOrStderr())
		if err := syn.Generate(cmd.Context(), store); err != nil {
			return fmt.Errorf("generate tests: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "generated tests for %d functions across %d files into %s\n",
			store.FunctionCount(), len(store.Files), f.OutputPath())
		return nil
	},
}
