package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the top-level key bindings for the application
type KeyMap struct {
	Search   key.Binding
	Filter   key.Binding
	Category key.Binding
	Home     key.Binding
	Browse   key.Binding
	Open     key.Binding
	Cloud    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "letter"),
		),
		Home: key.NewBinding(
			key.WithKeys("H", "esc"),
			key.WithHelp("H", "home/reset"),
		),
		Browse: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "browse all"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open"),
		),
		Cloud: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "cloud link"),
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
	return []key.Binding{k.Search, k.Filter, k.Category, k.Home, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Filter, k.Category},
		{k.Home, k.Browse, k.Open},
		{k.Cloud, k.Help, k.Quit},
	}
}

var keys = DefaultKeyMap()
