// hotkeys list: show every command with its resolved shortcut.
package commands

import (
	"github.com/spf13/cobra"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/internal/hotkeys"
	"github.com/f9-o/hotkeys/pkg/pprint"
)

// Source values for a listed shortcut.
const (
	SourceDefault = "default"
	SourceCustom  = "custom"
	SourceNone    = "none"
)

// Entry is one row of `hotkeys list --json`.
type Entry struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Binding *v1.Binding `json:"binding,omitempty"`
	Key     string      `json:"key,omitempty"`
	Display string      `json:"display,omitempty"`
	Source  string      `json:"source"`
}

// Entries builds the listing rows in registry order.
func Entries(mgr *hotkeys.Manager) []Entry {
	isMac := mgr.IsMac()
	cmds := mgr.Commands()
	out := make([]Entry, 0, len(cmds))
	for _, c := range cmds {
		e := Entry{ID: c.ID, Name: c.DisplayName, Source: SourceNone}
		if b, ok := mgr.Binding(c.ID); ok {
			e.Binding = &b
			e.Key = binding.Key(b)
			e.Display = binding.Format(b, isMac)
			e.Source = SourceDefault
			if mgr.IsCustom(c.ID) {
				e.Source = SourceCustom
			}
		}
		out = append(out, e)
	}
	return out
}

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List commands and their shortcuts",
		Example: `  hotkeys list
  hotkeys list --json
  hotkeys list --platform mac`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			entries := Entries(rt.Manager)

			if rt.Flags.JSONOutput {
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			isMac := rt.Manager.IsMac()
			tbl := pprint.NewTable("ID", "NAME", "SHORTCUT", "SOURCE")
			for _, e := range entries {
				shortcut := pprint.Keycaps(nil)
				if e.Binding != nil {
					shortcut = pprint.Keycaps(binding.DisplayParts(*e.Binding, isMac))
				}
				source := e.Source
				switch source {
				case SourceCustom:
					source = pprint.StyleAccent.Render(source)
				case SourceNone:
					source = pprint.StyleWarning.Render(source)
				default:
					source = pprint.StyleMuted.Render(source)
				}
				tbl.AddRow(e.ID, e.Name, shortcut, source)
			}
			tbl.Render()
			return nil
		},
	}
}
