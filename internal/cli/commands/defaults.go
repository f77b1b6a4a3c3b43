// hotkeys defaults: show the computed default table and how it was found.
package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/f9-o/hotkeys/internal/allocator"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/pkg/pprint"
)

// DefaultsReport is the JSON form of `hotkeys defaults`.
type DefaultsReport struct {
	Platform      string            `json:"platform"`
	Defaults      map[string]string `json:"defaults"`
	ShiftFallback []string          `json:"shift_fallback,omitempty"`
	Synthetic     []string          `json:"synthetic,omitempty"`
	Exhausted     []string          `json:"exhausted,omitempty"`
}

func NewDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "defaults",
		Short:        "Show the computed default shortcuts, ignoring customizations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			isMac := rt.Manager.IsMac()
			cmds := rt.Manager.Commands()
			table, report := allocator.AllocateWithReport(cmds, isMac)

			platform := "other"
			if isMac {
				platform = "mac"
			}

			if rt.Flags.JSONOutput {
				out := DefaultsReport{
					Platform:      platform,
					Defaults:      make(map[string]string, len(table)),
					ShiftFallback: report.ShiftFallback,
					Synthetic:     report.Synthetic,
					Exhausted:     report.Exhausted,
				}
				for id, b := range table {
					out.Defaults[id] = binding.Key(b)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			pprint.Header("default shortcuts")
			tbl := pprint.NewTable("ID", "NAME", "DEFAULT")
			for _, c := range cmds {
				shortcut := pprint.Keycaps(nil)
				if b, ok := table[c.ID]; ok {
					shortcut = pprint.Keycaps(binding.DisplayParts(b, isMac))
				}
				tbl.AddRow(c.ID, c.DisplayName, shortcut)
			}
			tbl.Render()
			pprint.Rule(60)

			pprint.KV("Platform", platform)
			pprint.KV("Commands", strconv.Itoa(len(cmds)))
			if n := len(report.ShiftFallback); n > 0 {
				pprint.KV("Shift", strconv.Itoa(n)+" needed a Shift variant")
			}
			if n := len(report.Synthetic); n > 0 {
				pprint.Warn("%d commands got synthetic F25+ keys; consider fewer commands or more distinct names", n)
			}
			if n := len(report.Exhausted); n > 0 {
				pprint.Warn("%d commands have no default shortcut", n)
			}
			return nil
		},
	}
}
