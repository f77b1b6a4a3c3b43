package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/pkg/errs"
)

func boolp(b bool) *bool { return &b }

func strp(s string) *string { return &s }

func ev(code string) *v1.KeyEvent { return &v1.KeyEvent{Code: code} }

func TestEqual(t *testing.T) {
	a := v1.Binding{Code: "KeyS", Alt: true, Ctrl: true}
	assert.True(t, Equal(a, v1.Binding{Code: "KeyS", Alt: true, Ctrl: true}))
	assert.False(t, Equal(a, v1.Binding{Code: "KeyS", Alt: true, Ctrl: true, Shift: true}))
	assert.False(t, Equal(a, v1.Binding{Code: "KeyD", Alt: true, Ctrl: true}))
}

func TestNormalize(t *testing.T) {
	got := Normalize(v1.RawBinding{Code: strp("KeyA"), Alt: boolp(true)})
	assert.Equal(t, v1.Binding{Code: "KeyA", Alt: true}, got)

	got = Normalize(v1.RawBinding{Ctrl: boolp(false), Meta: boolp(true), Shift: boolp(true)})
	assert.Equal(t, v1.Binding{Meta: true, Shift: true}, got)
}

func TestKeyFixedOrder(t *testing.T) {
	b := v1.Binding{Code: "F5", Shift: true, Meta: true, Ctrl: true, Alt: true}
	assert.Equal(t, "alt+ctrl+meta+shift+F5", Key(b))
	assert.Equal(t, "KeyA", Key(v1.Binding{Code: "KeyA"}))

	// Distinct bindings never share a key.
	assert.NotEqual(t, Key(v1.Binding{Code: "KeyA", Alt: true}), Key(v1.Binding{Code: "KeyA", Ctrl: true}))
}

func TestMatchesIsExact(t *testing.T) {
	b := v1.Binding{Code: "KeyS", Alt: true, Ctrl: true}

	e := ev("KeyS")
	e.Alt, e.Ctrl = true, true
	assert.True(t, Matches(b, e))

	e.Shift = true
	assert.False(t, Matches(b, e), "extra modifier must not match")

	e = ev("KeyS")
	e.Alt = true
	assert.False(t, Matches(b, e), "missing modifier must not match")

	assert.False(t, Matches(b, nil))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(v1.Binding{Code: "KeyA", Ctrl: true}))
	assert.False(t, Valid(v1.Binding{Code: "KeyA", Shift: true}))
	assert.False(t, Valid(v1.Binding{Code: "ShiftLeft", Ctrl: true}))
	assert.False(t, Valid(v1.Binding{Alt: true}))
}

func TestDisplayParts(t *testing.T) {
	b := v1.Binding{Code: "KeyK", Alt: true, Ctrl: true, Meta: true, Shift: true}

	assert.Equal(t, []string{"Ctrl", "Alt", "Shift", "Meta", "K"}, DisplayParts(b, false))
	assert.Equal(t, []string{"⌃", "⌥", "⇧", "⌘", "K"}, DisplayParts(b, true))

	assert.Equal(t, []string{"Ctrl", "Alt", "1"}, DisplayParts(v1.Binding{Code: "Digit1", Alt: true, Ctrl: true}, false))
	assert.Equal(t, []string{"⌥", "⌘", "/"}, DisplayParts(v1.Binding{Code: "Slash", Alt: true, Meta: true}, true))
	assert.Equal(t, []string{"Alt", "Esc"}, DisplayParts(v1.Binding{Code: "Escape", Alt: true}, false))
	assert.Equal(t, []string{"Alt", "Shift", "F25"}, DisplayParts(v1.Binding{Code: "F25", Alt: true, Shift: true}, false))
}

func TestFormat(t *testing.T) {
	b := v1.Binding{Code: "KeyS", Alt: true, Ctrl: true}
	assert.Equal(t, "Ctrl+Alt+S", Format(b, false))
	assert.Equal(t, "⌃⌥S", Format(b, true))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want v1.Binding
	}{
		{"alt+ctrl+KeyS", v1.Binding{Code: "KeyS", Alt: true, Ctrl: true}},
		{"Ctrl+Alt+s", v1.Binding{Code: "KeyS", Alt: true, Ctrl: true}},
		{"cmd+shift+f5", v1.Binding{Code: "F5", Meta: true, Shift: true}},
		{"option+command+1", v1.Binding{Code: "Digit1", Alt: true, Meta: true}},
		{"⌘⇧K", v1.Binding{Code: "KeyK", Meta: true, Shift: true}},
		{"ctrl+/", v1.Binding{Code: "Slash", Ctrl: true}},
		{"ctrl+BracketLeft", v1.Binding{Code: "BracketLeft", Ctrl: true}},
		{"alt+esc", v1.Binding{Code: "Escape", Alt: true}},
		{"alt+shift+F25", v1.Binding{Code: "F25", Alt: true, Shift: true}},
		{"KeyA", v1.Binding{Code: "KeyA"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRoundTripsKey(t *testing.T) {
	for _, b := range []v1.Binding{
		{Code: "KeyZ", Alt: true, Ctrl: true},
		{Code: "Digit0", Alt: true, Meta: true, Shift: true},
		{Code: "Backquote", Ctrl: true},
		{Code: "F24", Alt: true, Ctrl: true, Shift: true},
	} {
		got, err := Parse(Key(b))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "ctrl+", "shift", "hyper+a", "ctrl+nope"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.True(t, errs.IsCode(err, errs.ErrParse))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(v1.Binding{Code: "KeyA", Meta: true}))
	assert.True(t, errs.IsCode(Validate(v1.Binding{Code: "AltLeft", Alt: true}), errs.ErrNoRealKey))
	assert.True(t, errs.IsCode(Validate(v1.Binding{Code: "", Ctrl: true}), errs.ErrNoRealKey))
	assert.True(t, errs.IsCode(Validate(v1.Binding{Code: "KeyA", Shift: true}), errs.ErrNoModifier))
}
