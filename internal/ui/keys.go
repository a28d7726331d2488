package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	top       key.Binding
	bottom    key.Binding
	open      key.Binding
	back      key.Binding
	edit      key.Binding
	themeMenu key.Binding
	command   key.Binding
	chat      key.Binding
	copyPath  key.Binding
	quit      key.Binding
	forceQuit key.Binding

	// sub-state keys
	confirm key.Binding
	cancel  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("j/k", "move"),
		),
		down: key.NewBinding(
			key.WithKeys("j", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/G", "top/bottom"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
		),
		open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "open"),
		),
		back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "back"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		themeMenu: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		chat: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ask"),
		),
		copyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// listHelp and contentHelp are the status-line legends for the two modes.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.up, k.open, k.edit, k.themeMenu, k.command, k.chat, k.copyPath, k.quit}
}

func (k keyMap) contentHelp() []key.Binding {
	b := k.back
	q := k.quit
	q.SetHelp("q", "list")
	open := k.open
	open.SetHelp("o", "follow")
	return []key.Binding{k.up, k.top, open, b, k.edit, k.themeMenu, k.command, k.chat, q}
}

func (k keyMap) menuHelp() []key.Binding {
	up := k.up
	return []key.Binding{up, k.confirm, k.cancel}
}
