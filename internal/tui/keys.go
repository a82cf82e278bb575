package tui

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines key bindings for the review session
type KeyMap struct {
	Keep key.Binding
	Drop key.Binding
	Undo key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default review key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Keep: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "keep"),
		),
		Drop: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "drop"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drop, k.Keep, k.Undo, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Drop, k.Keep},
		{k.Undo},
		{k.Help, k.Quit},
	}
}
