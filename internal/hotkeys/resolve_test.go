package hotkeys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
)

func altCtrl(code string) v1.Binding { return v1.Binding{Code: code, Alt: true, Ctrl: true} }

func TestResolveOverrideWins(t *testing.T) {
	defaults := v1.BindingTable{"merge": altCtrl("KeyM"), "save": altCtrl("KeyS")}
	overrides := map[string]v1.Binding{"merge": altCtrl("KeyG")}

	got := Resolve(defaults, overrides)

	assert.Equal(t, v1.BindingTable{"merge": altCtrl("KeyG"), "save": altCtrl("KeyS")}, got)
}

func TestResolveOverrideTakesDefaultsShortcut(t *testing.T) {
	defaults := v1.BindingTable{"merge": altCtrl("KeyM"), "save": altCtrl("KeyS")}
	overrides := map[string]v1.Binding{"merge": altCtrl("KeyS")}

	got := Resolve(defaults, overrides)

	assert.Equal(t, altCtrl("KeyS"), got["merge"])
	_, bound := got["save"]
	assert.False(t, bound, "default that collides with an override is dropped")
}

func TestResolveCollidingOverrides(t *testing.T) {
	overrides := map[string]v1.Binding{"b": altCtrl("KeyX"), "a": altCtrl("KeyX")}

	got := Resolve(v1.BindingTable{}, overrides)

	assert.Equal(t, v1.BindingTable{"a": altCtrl("KeyX")}, got)
}

func TestResolveOverrideForUnknownCommand(t *testing.T) {
	got := Resolve(v1.BindingTable{"a": altCtrl("KeyA")}, map[string]v1.Binding{"ghost": altCtrl("KeyZ")})
	assert.Len(t, got, 2)
}

func TestResolveUnique(t *testing.T) {
	defaults := v1.BindingTable{}
	overrides := map[string]v1.Binding{}
	for i, code := range []string{"KeyA", "KeyB", "KeyC", "KeyD", "KeyE"} {
		id := string(rune('a' + i))
		defaults[id] = altCtrl(code)
		overrides[id] = altCtrl([]string{"KeyB", "KeyC", "KeyA", "KeyA", "KeyQ"}[i])
	}

	got := Resolve(defaults, overrides)

	seen := map[string]string{}
	for id, b := range got {
		k := binding.Key(b)
		if other, dup := seen[k]; dup {
			t.Fatalf("%s and %s share %s", id, other, k)
		}
		seen[k] = id
	}
}

func TestApplyOverrideElides(t *testing.T) {
	defaults := v1.BindingTable{"merge": altCtrl("KeyM")}
	current := map[string]v1.Binding{"merge": altCtrl("KeyG")}

	next := ApplyOverride(current, defaults, "merge", altCtrl("KeyM"))

	assert.Empty(t, next)
	assert.Len(t, current, 1, "input is not mutated")

	next = ApplyOverride(current, defaults, "merge", altCtrl("KeyH"))
	assert.Equal(t, map[string]v1.Binding{"merge": altCtrl("KeyH")}, next)
}
