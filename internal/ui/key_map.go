package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	focus  key.Binding
	enter  key.Binding
	rate   key.Binding
	add    key.Binding
	remove key.Binding
	open   key.Binding
	back   key.Binding
	quit   key.Binding
	force  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		focus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		rate:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-0", "rate")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to list")),
		remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		open:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open imdb")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		force:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focus, k.enter, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.focus, k.enter},
		{k.rate, k.add, k.remove, k.open},
		{k.back, k.quit, k.force},
	}
}
