package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings and the ones shown in help.
type keyMap struct {
	Dashboard key.Binding
	Scenarios key.Binding
	Compare   key.Binding
	Optimize  key.Binding
	Results   key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding

	// shown in help only; scenes bind these themselves
	Focus     key.Binding
	Adjust    key.Binding
	Frequency key.Binding
	Mode      key.Binding
	Reset     key.Binding
	Select    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Scenarios: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "scenarios")),
		Compare:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "compare")),
		Optimize:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "optimize")),
		Results:   key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "year table")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Focus:     key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "choose input")),
		Adjust:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "adjust (shift: ×10)")),
		Frequency: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "monthly/yearly")),
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "rate/split mode")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset inputs")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "select")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dashboard, k.Scenarios, k.Compare, k.Optimize, k.Results, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Scenarios, k.Compare, k.Optimize, k.Results},
		{k.Focus, k.Adjust, k.Frequency, k.Mode, k.Reset},
		{k.Select, k.Back, k.Help, k.Quit},
	}
}
