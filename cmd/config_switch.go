package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/brogergvhs/galleryd/internal/config"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			list, err := config.ListConfigs()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no configs available")
			}

			items := make([]string, len(list))
			cursor := 0
			for i, c := range list {
				items[i] = c.Label
				if c.Active {
					items[i] += "  (active)"
					cursor = i
				}
			}

			prompt := promptui.Select{
				Label:     "Select config",
				Items:     items,
				CursorPos: cursor,
				Stdout:    nopCloser{cmd.ErrOrStderr()},
			}

			idx, _, err := prompt.Run()
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
				return errors.New("selection cancelled")
			}
			if err != nil {
				return fmt.Errorf("select config: %w", err)
			}

			label = list[idx].Label
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Switched to:", label)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}

// nopCloser lets promptui draw on a plain writer.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
