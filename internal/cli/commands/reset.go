// hotkeys reset: drop customizations.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f9-o/hotkeys/pkg/pprint"
)

func NewResetCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "reset [command-id]",
		Short: "Restore default shortcuts",
		Example: `  hotkeys reset git.merge
  hotkeys reset --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("--all takes no command id")
			}
			if !all && len(args) != 1 {
				return fmt.Errorf("expected a command id, or --all")
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			var changed bool
			target := "all commands"
			if all {
				changed = rt.Manager.ResetAll(cmd.Context())
			} else {
				target = rt.Manager.DisplayName(args[0])
				changed = rt.Manager.ResetOne(cmd.Context(), args[0])
			}

			if rt.Flags.JSONOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"changed": changed})
			}
			if changed {
				pprint.Success("Restored defaults for %s", target)
			} else {
				pprint.Info("Nothing to reset for %s", target)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Reset every command")
	return cmd
}
