package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/galleryd/internal/config"
)

var configAddCmd = &cobra.Command{
	Use:   "add <label> [file]",
	Short: "Create a new config from the defaults, or import an existing YAML file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		out := cmd.OutOrStdout()

		if len(args) == 2 {
			if err := config.AddConfig(label, args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Imported %s as config %q\n", args[1], label)
			return nil
		}

		path, err := config.CreateEmptyConfig(label)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configAddCmd)
}
