package browse

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the browser key bindings
type keyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding
	Today     key.Binding
	Reform    key.Binding
	WeekNums  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevMonth: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next month")),
		PrevYear:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev year")),
		NextYear:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next year")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Reform:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "cycle reform")),
		WeekNums:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week numbers")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth, k.PrevYear, k.NextYear},
		{k.Today, k.Reform, k.WeekNums},
		{k.Help, k.Quit},
	}
}
