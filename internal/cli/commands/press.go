// hotkeys press: simulate a keydown and report which command would fire.
package commands

import (
	"github.com/spf13/cobra"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/internal/matcher"
	"github.com/f9-o/hotkeys/pkg/pprint"
)

// PressResult is the JSON form of `hotkeys press`.
type PressResult struct {
	Key        string `json:"key"`
	Dispatched string `json:"dispatched,omitempty"`
	Suppressed bool   `json:"suppressed,omitempty"`
}

func NewPressCmd() *cobra.Command {
	var (
		editable bool
		repeat   bool
	)

	cmd := &cobra.Command{
		Use:   "press <shortcut>",
		Short: "Simulate a keystroke and show which command it dispatches",
		Example: `  hotkeys press ctrl+alt+m
  hotkeys press ctrl+alt+m --editable`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())

			b, err := binding.Parse(args[0])
			if err != nil {
				return err
			}
			ev := &v1.KeyEvent{Code: b.Code, Alt: b.Alt, Ctrl: b.Ctrl, Meta: b.Meta, Shift: b.Shift, Repeat: repeat}
			if editable {
				ev.Target = &v1.Node{Tag: "textarea"}
			}

			res := PressResult{Key: binding.Key(b)}
			bus := matcher.NewBus()
			m := matcher.New(bus, rt.Manager, func(id string) { res.Dispatched = id }, rt.Log.Logger)
			m.Enable()
			defer m.Disable()
			bus.Emit(ev)
			res.Suppressed = editable && matcher.IsEditable(ev.Target)

			if rt.Flags.JSONOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			display := binding.Format(b, rt.Manager.IsMac())
			switch {
			case res.Dispatched != "":
				pprint.Success("%s dispatches %s (%s)", display, rt.Manager.DisplayName(res.Dispatched), res.Dispatched)
			case res.Suppressed:
				pprint.Info("%s ignored: focus is in an editable field", display)
			case repeat:
				pprint.Info("%s ignored: auto-repeat", display)
			default:
				pprint.Info("%s is not bound", display)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&editable, "editable", false, "Deliver the key to a text field")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "Mark the key as auto-repeat")
	return cmd
}
