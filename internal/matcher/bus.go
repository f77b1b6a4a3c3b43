package matcher

import (
	"sync"

	v1 "github.com/f9-o/hotkeys/api/v1"
)

// Listener receives key events from a Bus.
type Listener func(ev *v1.KeyEvent)

type subscription struct {
	id      uint64
	capture bool
	fn      Listener
}

// Bus delivers key events to listeners. Capture-phase listeners run before
// bubble-phase ones; within a phase, in subscription order. A listener that
// calls StopPropagation ends delivery.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

// NewBus returns an empty Bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers fn and returns a func that removes it. The returned
// func is safe to call more than once.
func (b *Bus) Subscribe(capture bool, fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, capture: capture, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Emit delivers ev and reports whether a listener prevented its default action.
func (b *Bus) Emit(ev *v1.KeyEvent) bool {
	b.mu.Lock()
	ordered := make([]Listener, 0, len(b.subs))
	for _, s := range b.subs {
		if s.capture {
			ordered = append(ordered, s.fn)
		}
	}
	for _, s := range b.subs {
		if !s.capture {
			ordered = append(ordered, s.fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range ordered {
		fn(ev)
		if ev.PropagationStopped() {
			break
		}
	}
	return ev.DefaultPrevented()
}
