package matcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/capture"
	"github.com/f9-o/hotkeys/internal/core/logger"
	"github.com/f9-o/hotkeys/internal/hotkeys"
)

func newManager(t *testing.T) *hotkeys.Manager {
	t.Helper()
	mgr := hotkeys.NewManager(hotkeys.Options{Log: logger.Discard()})
	mgr.Start(context.Background())
	mgr.SetCommands(context.Background(), []v1.Command{
		{ID: "save", DisplayName: "Save"},
		{ID: "open", DisplayName: "Open"},
	})
	return mgr
}

type dispatchLog struct{ ids []string }

func (d *dispatchLog) fn(id string) { d.ids = append(d.ids, id) }

func saveKey() *v1.KeyEvent { return &v1.KeyEvent{Code: "KeyS", Alt: true, Ctrl: true} }

func TestMatcherDispatchesOnce(t *testing.T) {
	bus := NewBus()
	var d dispatchLog
	m := New(bus, newManager(t), d.fn, logger.Discard())
	m.Enable()

	var later int
	bus.Subscribe(false, func(*v1.KeyEvent) { later++ })

	ev := saveKey()
	assert.True(t, bus.Emit(ev))
	assert.Equal(t, []string{"save"}, d.ids)
	assert.True(t, ev.PropagationStopped())
	assert.Equal(t, 0, later, "bubble listeners do not see a consumed event")
}

func TestMatcherNoMatch(t *testing.T) {
	bus := NewBus()
	var d dispatchLog
	New(bus, newManager(t), d.fn, logger.Discard()).Enable()

	ev := &v1.KeyEvent{Code: "KeyS", Ctrl: true}
	assert.False(t, bus.Emit(ev))
	assert.Empty(t, d.ids)
	assert.False(t, ev.PropagationStopped())
}

func TestMatcherIgnoresRepeat(t *testing.T) {
	var d dispatchLog
	m := New(NewBus(), newManager(t), d.fn, logger.Discard())

	ev := saveKey()
	ev.Repeat = true
	assert.False(t, m.Handle(ev))
	assert.Empty(t, d.ids)
}

func TestMatcherSuppressedInEditable(t *testing.T) {
	form := &v1.Node{Tag: "form"}
	tests := []struct {
		name   string
		target v1.Element
		fires  bool
	}{
		{"textarea", &v1.Node{Tag: "TEXTAREA", ParentNode: form}, false},
		{"text input", &v1.Node{Tag: "input", Attributes: map[string]string{"type": "text"}}, false},
		{"untyped input", &v1.Node{Tag: "input"}, false},
		{"checkbox", &v1.Node{Tag: "input", Attributes: map[string]string{"type": "checkbox"}}, true},
		{"contenteditable", &v1.Node{Tag: "div", Attributes: map[string]string{"contenteditable": ""}}, false},
		{"contenteditable false", &v1.Node{Tag: "div", Attributes: map[string]string{"contenteditable": "false"}}, true},
		{"role textbox", &v1.Node{Tag: "div", Attributes: map[string]string{"role": "textbox"}}, false},
		{"inside editor", &v1.Node{Tag: "span", ParentNode: &v1.Node{Tag: "div", Attributes: map[string]string{"contenteditable": "true"}}}, false},
		{"button", &v1.Node{Tag: "button", ParentNode: form}, true},
		{"no target", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dispatchLog
			m := New(NewBus(), newManager(t), d.fn, logger.Discard())
			ev := saveKey()
			if tt.target != nil {
				ev.Target = tt.target
			}
			assert.Equal(t, tt.fires, m.Handle(ev))
			assert.Equal(t, tt.fires, len(d.ids) == 1)
			assert.Equal(t, tt.fires, ev.DefaultPrevented())
		})
	}
}

func TestMatcherPauseDetaches(t *testing.T) {
	bus := NewBus()
	var d dispatchLog
	m := New(bus, newManager(t), d.fn, logger.Discard())

	assert.False(t, m.Active())
	m.Enable()
	assert.True(t, m.Active())
	assert.Equal(t, 1, bus.Len())

	m.Pause()
	assert.False(t, m.Active())
	assert.Equal(t, 0, bus.Len())
	bus.Emit(saveKey())
	assert.False(t, m.Handle(saveKey()))
	assert.Empty(t, d.ids)

	m.Resume()
	bus.Emit(saveKey())
	assert.Equal(t, []string{"save"}, d.ids)

	m.Disable()
	m.Resume()
	assert.Equal(t, 0, bus.Len())
}

func TestMatcherWithCaptureSession(t *testing.T) {
	bus := NewBus()
	mgr := newManager(t)
	var d dispatchLog
	m := New(bus, mgr, d.fn, logger.Discard())
	m.Enable()
	s := capture.NewSession(mgr, m, logger.Discard())

	require.NoError(t, s.Start("open"))
	bus.Emit(saveKey())
	assert.Empty(t, d.ids, "no dispatch while capturing")

	_, err := s.HandleKey(context.Background(), &v1.KeyEvent{Code: "KeyP", Alt: true, Ctrl: true})
	require.NoError(t, err)

	bus.Emit(&v1.KeyEvent{Code: "KeyP", Alt: true, Ctrl: true})
	assert.Equal(t, []string{"open"}, d.ids)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(false, func(*v1.KeyEvent) { order = append(order, "bubble") })
	unsub := bus.Subscribe(true, func(*v1.KeyEvent) { order = append(order, "capture") })

	bus.Emit(&v1.KeyEvent{Code: "KeyA"})
	assert.Equal(t, []string{"capture", "bubble"}, order)

	unsub()
	unsub()
	order = nil
	bus.Emit(&v1.KeyEvent{Code: "KeyA"})
	assert.Equal(t, []string{"bubble"}, order)
	assert.Equal(t, 1, bus.Len())
}
