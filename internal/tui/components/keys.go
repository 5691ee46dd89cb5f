package components

import "github.com/charmbracelet/bubbles/key"

// GridKeyMap defines key bindings for card grid navigation
type GridKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	PageDown key.Binding
	PageUp   key.Binding
}

// DefaultGridKeyMap returns the default grid key bindings
func DefaultGridKeyMap() GridKeyMap {
	return GridKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
	}
}

// PickerKeyMap defines key bindings for list pickers (filter modal, category bar)
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Clear  key.Binding
	Enter  key.Binding
	Back   key.Binding
	Escape key.Binding
}

// DefaultPickerKeyMap returns the default picker key bindings
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/C-p", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/C-n", "next"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "tab"),
			key.WithHelp("space", "toggle"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "clear filter"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "back"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Package-level key map instances
var (
	GridKeys   = DefaultGridKeyMap()
	PickerKeys = DefaultPickerKeyMap()
)
