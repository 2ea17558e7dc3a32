package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"testforge/internal/descriptor"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate tests and validate them in one pass",
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
		fmt.Fprintf(cmd.OutOrStdout(), "generated tests for %d functions across %d files\n",
			store.FunctionCount(), len(store.Files))

		return runValidation(cmd, f, client)
	},
}
