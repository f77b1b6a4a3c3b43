// Package tui: keyboard bindings for the settings screen chrome.
package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the settings screen's own keys. They are all bare keys, so
// they never collide with command shortcuts, which always carry Alt or Ctrl.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Reset    key.Binding
	ResetAll key.Binding
	Filter   key.Binding
	Platform key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeymap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "record shortcut")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ResetAll: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Platform: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle mac")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Reset, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Edit, k.Reset, k.ResetAll},
		{k.Platform, k.Help, k.Quit},
	}
}
