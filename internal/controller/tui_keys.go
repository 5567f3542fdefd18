package controller

import "github.com/charmbracelet/bubbles/key"

type treeKeyMap struct {
	up       key.Binding
	down     key.Binding
	expand   key.Binding
	collapse key.Binding
	toggle   key.Binding
	anchor   key.Binding
	extend   key.Binding
	all      key.Binding
	clear    key.Binding
	single   key.Binding
	insert   key.Binding
	remove   key.Binding
	jump     key.Binding
	help     key.Binding
	quit     key.Binding
}

func newTreeKeyMap() treeKeyMap {
	return treeKeyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "toggle"),
		),
		anchor: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "set anchor"),
		),
		extend: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "select from anchor"),
		),
		all: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		single: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "single/multiple"),
		),
		insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert after"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump to"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k treeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.extend, k.expand, k.jump, k.help, k.quit}
}

func (k treeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.expand, k.collapse},
		{k.toggle, k.anchor, k.extend, k.all, k.clear, k.single},
		{k.insert, k.remove, k.jump, k.help, k.quit},
	}
}
