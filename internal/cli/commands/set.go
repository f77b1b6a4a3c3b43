// hotkeys set: assign a custom shortcut to one command.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/pkg/pprint"
)

func NewSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <command-id> <shortcut>",
		Short: "Assign a shortcut to a command",
		Long: `Assign a shortcut to a command. The shortcut may be written as
alt+ctrl+KeyS, Ctrl+Alt+S or ⌥⌘S. Setting a command back to its default
removes the customization.`,
		Example: `  hotkeys set git.merge ctrl+alt+g
  hotkeys set file.save "⌥⌘S" --platform mac`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			id := args[0]

			b, err := binding.Parse(args[1])
			if err != nil {
				return err
			}
			if err := rt.Manager.SetBinding(cmd.Context(), id, b); err != nil {
				return err
			}

			display := binding.Format(b, rt.Manager.IsMac())
			if rt.Flags.JSONOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"id":      id,
					"key":     binding.Key(b),
					"display": display,
					"custom":  rt.Manager.IsCustom(id),
				})
			}
			if rt.Manager.IsCustom(id) {
				pprint.Success("%s → %s", rt.Manager.DisplayName(id), display)
			} else {
				pprint.Success("%s → %s (default; customization removed)", rt.Manager.DisplayName(id), display)
			}
			return nil
		},
	}
}
