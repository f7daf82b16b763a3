package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	focus   key.Binding
	next    key.Binding
	prev    key.Binding
	home    key.Binding
	watched key.Binding
	comment key.Binding
	open    key.Binding
	save    key.Binding
	cancel  key.Binding
	help    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select section")),
		focus:   key.NewBinding(key.WithKeys("tab", "s"), key.WithHelp("tab/s", "sections")),
		next:    key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next section")),
		prev:    key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "prev section")),
		home:    key.NewBinding(key.WithKeys("H", "h"), key.WithHelp("h", "home")),
		watched: key.NewBinding(key.WithKeys("w", " "), key.WithHelp("w/space", "toggle watched")),
		comment: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open video")),
		save:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.watched, k.comment, k.focus, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.focus},
		{k.next, k.prev, k.home},
		{k.watched, k.comment, k.open},
		{k.help, k.quit},
	}
}

// editHelp is shown while the comment editor has focus.
func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.save, k.cancel}
}
