package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings that work on every tab. Per-tab actions live on
// the component key maps.
type KeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Jump    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:    key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab/l", "next tab")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab/h", "prev tab")),
		Jump:    key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "go to tab")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "keep")),
	}
}

// tabFor maps a Jump key to its tab.
func tabFor(msg string) (SessionState, bool) {
	if len(msg) != 1 || msg[0] < '1' || int(msg[0]-'1') >= len(tabTitles) {
		return 0, false
	}
	return SessionState(msg[0] - '1'), true
}
