// Package keymap defines key bindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings used across the dashboard.
type KeyMap struct {
	// Navigation.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions.
	Enter  key.Binding
	Back   key.Binding
	Quit   key.Binding
	Help   key.Binding
	Tab    key.Binding
	Delete key.Binding
	Expand key.Binding
	Toggle key.Binding

	// Views.
	Feed    key.Binding
	Chat    key.Binding
	Capture key.Binding
	Roadmap key.Binding

	// Modes.
	Semantic key.Binding
	Theme    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete post"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand post"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle stage"),
		),
		Feed: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "feed"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chat"),
		),
		Capture: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "capture"),
		),
		Roadmap: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "roadmap"),
		),
		Semantic: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "semantic search"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
	}
}

// ShortHelp returns the key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns the key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Enter, k.Back, k.Tab},
		{k.Feed, k.Chat, k.Capture, k.Roadmap},
		{k.Delete, k.Expand, k.Semantic, k.Theme},
		{k.Help, k.Quit},
	}
}

// Matches reports whether the given key message matches the binding.
func Matches(msg string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if msg == k {
			return true
		}
	}
	return false
}
