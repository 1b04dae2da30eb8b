package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	approve key.Binding
	reject  key.Binding
	del     key.Binding
	open    key.Binding
	tab     key.Binding
	reload  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		approve: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
		reject:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
		del:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		reload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.tab},
		{k.approve, k.reject, k.del},
		{k.open, k.reload, k.quit},
	}
}
