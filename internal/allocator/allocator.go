// Package allocator computes collision-free default shortcuts for a command set.
//
// Allocation is a pure function of the command list and the platform flag:
// the same input always yields the same table. Pinned commands take
// Digit1..Digit9 in registry order; every other command walks an ordered
// candidate list built from its name, ID and synonyms, then a fixed fallback
// pool, then the same list with Shift, and finally synthetic F25+ codes.
package allocator

import (
	"sort"
	"strconv"

	"golang.org/x/text/cases"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
)

const (
	// MaxPinned is the number of pinned commands that receive digit shortcuts.
	MaxPinned = 9
	// MaxSyntheticSteps bounds the synthetic-code search for a single command.
	// The F-number counter is shared by all commands and nothing else claims
	// F25+, so the first step always lands on a free code; the bound only
	// guarantees termination.
	MaxSyntheticSteps = 40
	// FirstSyntheticF is the first function-key number past the real F-row.
	FirstSyntheticF = 25
)

// Report describes how hard the allocator had to work for each command.
type Report struct {
	ShiftFallback []string // got a Shift variant of a candidate
	Synthetic     []string // got a synthetic F25+ code
	Exhausted     []string // left without a default
}

// Allocate returns the default binding table for commands on the given platform.
func Allocate(commands []v1.Command, isMac bool) v1.BindingTable {
	table, _ := AllocateWithReport(commands, isMac)
	return table
}

// AllocateWithReport is Allocate plus a summary of fallback usage.
func AllocateWithReport(commands []v1.Command, isMac bool) (v1.BindingTable, Report) {
	var report Report
	table := make(v1.BindingTable, len(commands))
	used := make(map[string]bool, len(commands))

	pinned, general := partition(commands)

	for i, cmd := range pinned {
		b := base("Digit"+strconv.Itoa(i+1), isMac, false)
		table[cmd.ID] = b
		used[binding.Key(b)] = true
	}

	synthetic := FirstSyntheticF
	for _, cmd := range general {
		candidates := candidateCodes(cmd)

		if b, ok := firstFree(candidates, isMac, false, used); ok {
			table[cmd.ID] = b
			used[binding.Key(b)] = true
			continue
		}
		if b, ok := firstFree(candidates, isMac, true, used); ok {
			table[cmd.ID] = b
			used[binding.Key(b)] = true
			report.ShiftFallback = append(report.ShiftFallback, cmd.ID)
			continue
		}

		var last v1.Binding
		assigned := false
		for step := 0; step < MaxSyntheticSteps; step++ {
			last = base("F"+strconv.Itoa(synthetic), isMac, true)
			synthetic++
			if !used[binding.Key(last)] {
				assigned = true
				break
			}
		}
		if !assigned {
			// Unreachable while the counter is shared; kept so a taken
			// synthetic code can never break uniqueness.
			report.Exhausted = append(report.Exhausted, cmd.ID)
			continue
		}
		table[cmd.ID] = last
		used[binding.Key(last)] = true
		report.Synthetic = append(report.Synthetic, cmd.ID)
	}

	return table, report
}

func base(code string, isMac, shift bool) v1.Binding {
	return v1.Binding{
		Code:  code,
		Alt:   true,
		Ctrl:  !isMac,
		Meta:  isMac,
		Shift: shift,
	}
}

func firstFree(codes []string, isMac, shift bool, used map[string]bool) (v1.Binding, bool) {
	for _, code := range codes {
		b := base(code, isMac, shift)
		if !used[binding.Key(b)] {
			return b, true
		}
	}
	return v1.Binding{}, false
}

// partition splits commands into pinned (registry order, at most MaxPinned)
// and general (sorted by case-folded display name, then ID). Duplicate IDs
// after the first are ignored.
func partition(commands []v1.Command) (pinned, general []v1.Command) {
	seen := make(map[string]bool, len(commands))
	for _, cmd := range commands {
		if cmd.ID == "" || seen[cmd.ID] {
			continue
		}
		seen[cmd.ID] = true
		if cmd.Pinned && len(pinned) < MaxPinned {
			pinned = append(pinned, cmd)
			continue
		}
		general = append(general, cmd)
	}

	fold := cases.Fold()
	keys := make(map[string]string, len(general))
	for _, cmd := range general {
		keys[cmd.ID] = fold.String(cmd.DisplayName)
	}
	sort.SliceStable(general, func(i, j int) bool {
		ki, kj := keys[general[i].ID], keys[general[j].ID]
		if ki != kj {
			return ki < kj
		}
		return general[i].ID < general[j].ID
	})
	return pinned, general
}

// candidateCodes builds the ordered, de-duplicated candidate list for cmd.
func candidateCodes(cmd v1.Command) []string {
	seen := make(map[string]bool, len(fallbackPool)+8)
	out := make([]string, 0, len(fallbackPool)+8)
	add := func(codes ...string) {
		for _, c := range codes {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}

	add(mnemonicCodes(cmd.DisplayName, "")...)
	add(mnemonicCodes(cmd.ID, idSeparators)...)
	for _, syn := range cmd.Synonyms {
		add(mnemonicCodes(syn, "")...)
	}
	add(fallbackPool...)
	return out
}
