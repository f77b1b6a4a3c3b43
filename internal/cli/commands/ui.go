// hotkeys ui: interactive shortcut settings screen.
package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/registry"
	"github.com/f9-o/hotkeys/internal/tui"
)

func NewUICmd() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse, record and reset shortcuts interactively",
		Example: `  hotkeys ui
  hotkeys ui --platform mac
  hotkeys ui --no-watch`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			app := tui.New(tui.Config{
				Manager: rt.Manager,
				Log:     rt.Log.Logger,
				Source:  rt.Config.Registry.Path,
				OnDispatch: func(id string) {
					rt.Log.Info("command dispatched", "command", id)
				},
			})

			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

			if rt.Config.Registry.Watch && !noWatch {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go func() {
					err := registry.Watch(ctx, rt.Config.Registry.Path, rt.Log.Logger, func(cmds []v1.Command) {
						p.Send(tui.CommandsMsg(cmds))
					})
					if err != nil {
						rt.Log.Warn("registry watch stopped", "err", err)
					}
				}()
			}

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the command manifest changes")
	return cmd
}
