package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/anecdotes/internal/tui/form"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Vote    key.Binding
	Refresh key.Binding
	Focus   key.Binding
	Dismiss key.Binding
	Quit    key.Binding
	ForceQ  key.Binding
	Submit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Vote: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "vote"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQ: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: form.SubmitKey(),
	}
}

// listKeys is the help shown while the list has focus.
type listKeys struct{ keyMap }

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Vote, k.Refresh, k.Focus, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Dismiss, k.ForceQ}}
}

// formKeys is the help shown while the form has focus.
type formKeys struct{ keyMap }

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Focus, k.Dismiss, k.ForceQ}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
