package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add      key.Binding
	Delete   key.Binding
	Quit     key.Binding
	Refresh  key.Binding
	Start    key.Binding
	Stop     key.Binding
	Suspend  key.Binding
	Recover  key.Binding
	Purge    key.Binding
	Launch   key.Binding
	StartAll key.Binding
	StopAll  key.Binding
	Table    key.Binding
	CopyIP   key.Binding
	Shell    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "stop"),
		),
		Suspend: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "suspend"),
		),
		Recover: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "recover"),
		),
		Purge: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "purge"),
		),
		Launch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "quick launch"),
		),
		StartAll: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "start all"),
		),
		StopAll: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "stop all"),
		),
		Table: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "table"),
		),
		CopyIP: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy ip"),
		),
		Shell: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "shell"),
		),
	}
}

// shortHelp is the one-line hint shown above the list.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.Start, k.Stop, k.Suspend, k.Shell, k.Refresh, k.Table, k.Quit}
}
