// Package hotkeys owns the live shortcut state of an application: the
// command list, the computed defaults, the user's overrides and the
// resolved table the event matcher reads.
package hotkeys

import (
	"sort"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
)

// Resolve merges defaults and overrides: an override wins, else the default,
// else the command is unbound.
//
// The result never holds two equal bindings. Overrides are placed first in
// ID order, so if two overrides collide the lower ID keeps the shortcut and
// the other command is left unbound. A default equal to any placed binding is
// dropped.
func Resolve(defaults v1.BindingTable, overrides map[string]v1.Binding) v1.BindingTable {
	out := make(v1.BindingTable, len(defaults)+len(overrides))
	taken := make(map[string]bool, len(defaults)+len(overrides))

	for _, id := range sortedIDs(overrides) {
		b := overrides[id]
		k := binding.Key(b)
		if taken[k] {
			continue
		}
		taken[k] = true
		out[id] = b
	}

	for _, id := range sortedIDs(defaults) {
		if _, overridden := overrides[id]; overridden {
			continue
		}
		b := defaults[id]
		k := binding.Key(b)
		if taken[k] {
			continue
		}
		taken[k] = true
		out[id] = b
	}
	return out
}

// ApplyOverride returns a copy of overrides with id set to b, honouring the
// elision rule: an override equal to the command's default is removed
// instead of stored.
func ApplyOverride(overrides map[string]v1.Binding, defaults v1.BindingTable, id string, b v1.Binding) map[string]v1.Binding {
	out := make(map[string]v1.Binding, len(overrides)+1)
	for k, v := range overrides {
		out[k] = v
	}
	if def, ok := defaults[id]; ok && binding.Equal(def, b) {
		delete(out, id)
		return out
	}
	out[id] = b
	return out
}

func sortedIDs[T any](m map[string]T) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
