package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Scenarios key.Binding
	Simulator key.Binding
	Compare   key.Binding
	Optimize  key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scenarios, k.Simulator, k.Compare, k.Optimize, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scenarios, k.Simulator, k.Compare, k.Optimize}, {k.Help, k.Back, k.Quit}}
}

var keys = keyMap{
	Scenarios: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scenarios")),
	Simulator: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "simulator")),
	Compare:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
	Optimize:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "goal seek")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
