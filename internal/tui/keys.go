package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Increment key.Binding
	Decrement key.Binding
	Add       key.Binding
	Search    key.Binding
	Recipe    key.Binding
	Refresh   key.Binding
	Submit    key.Binding
	Next      key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Increment: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add one")),
	Decrement: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove one")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Recipe:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "suggest recipe")),
	Refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
