package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/galleryd/internal/config"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create and activate the Default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		path, err := config.InitDefaultConfig()
		if errors.Is(err, os.ErrExist) {
			_, _ = fmt.Fprintf(out, "Configuration already exists at:\n  %s\nIt is now the active config.\n", path)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}

		_, _ = fmt.Fprintf(out, "Config created at:\n  %s\n\n", path)
		config.DefaultConfig().Print(out)
		_, _ = fmt.Fprintln(out, "\nThis config is now active (label: Default).")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
