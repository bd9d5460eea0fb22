package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the dashboard key bindings.
type KeyMap struct {
	Quit  key.Binding
	Pause key.Binding
	Reset key.Binding
	Up    key.Binding
	Down  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Pause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rerun")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Pause, k.Reset, k.Quit}
}
