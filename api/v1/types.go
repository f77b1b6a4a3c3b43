// Package v1 defines the public data types shared across all hotkeys layers.
package v1

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Bindings
// ─────────────────────────────────────────────────────────────────────────────

// Binding is one physical key plus the four modifier flags.
// Code is layout independent: "KeyA", "Digit1", "F5", "Slash".
type Binding struct {
	Code  string `json:"code"  yaml:"code"`
	Alt   bool   `json:"alt"   yaml:"alt"`
	Ctrl  bool   `json:"ctrl"  yaml:"ctrl"`
	Meta  bool   `json:"meta"  yaml:"meta"`
	Shift bool   `json:"shift" yaml:"shift"`
}

// RawBinding is the loose wire form of a Binding where any field may be absent.
type RawBinding struct {
	Code  *string `json:"code,omitempty"`
	Alt   *bool   `json:"alt,omitempty"`
	Ctrl  *bool   `json:"ctrl,omitempty"`
	Meta  *bool   `json:"meta,omitempty"`
	Shift *bool   `json:"shift,omitempty"`
}

// BindingTable maps command ID to its binding. No two entries are equal.
type BindingTable map[string]Binding

// Clone returns an independent copy of t.
func (t BindingTable) Clone() BindingTable {
	out := make(BindingTable, len(t))
	for id, b := range t {
		out[id] = b
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Commands (registry records)
// ─────────────────────────────────────────────────────────────────────────────

// Command is an addressable action that can receive a shortcut.
type Command struct {
	ID          string   `yaml:"id"       json:"id"`
	DisplayName string   `yaml:"name"     json:"name"`
	Synonyms    []string `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Pinned      bool     `yaml:"pinned,omitempty"   json:"pinned,omitempty"`
}

// DispatchFunc is invoked with the command ID when a shortcut fires.
type DispatchFunc func(commandID string)

// ─────────────────────────────────────────────────────────────────────────────
// Key events
// ─────────────────────────────────────────────────────────────────────────────

// KeyEvent is a single keydown delivered by the host.
type KeyEvent struct {
	Code   string
	Alt    bool
	Ctrl   bool
	Meta   bool
	Shift  bool
	Repeat bool

	// Target is the focused element the event was delivered to. May be nil.
	Target Element

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event as consumed by a handler.
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// StopPropagation prevents later listeners from seeing the event.
func (e *KeyEvent) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *KeyEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether StopPropagation was called.
func (e *KeyEvent) PropagationStopped() bool { return e.propagationStopped }

// Element is the minimal view of a focus target the matcher needs.
type Element interface {
	TagName() string
	Attr(name string) (string, bool)
	Parent() Element
}

// Node is a plain Element implementation for hosts without a DOM.
type Node struct {
	Tag        string
	Attributes map[string]string
	ParentNode *Node
}

// TagName returns the lower-cased tag.
func (n *Node) TagName() string { return strings.ToLower(n.Tag) }

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attributes[name]
	return v, ok
}

// Parent returns the enclosing element, or nil at the root.
func (n *Node) Parent() Element {
	if n.ParentNode == nil {
		return nil
	}
	return n.ParentNode
}
