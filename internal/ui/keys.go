package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Reset   key.Binding
	Theme   key.Binding
	Sample  key.Binding
	Animate key.Binding
	Help    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reset, k.Theme},
		{k.Sample, k.Animate},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
	Sample:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause sampling")),
	Animate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "pause animation")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
