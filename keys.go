package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit            key.Binding
	OpenHelp        key.Binding
	RowDown         key.Binding
	RowUp           key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
	Top             key.Binding
	Bottom          key.Binding
	ScrollLeft      key.Binding
	ScrollRight     key.Binding
	FlagMode        key.Binding
	ShowFlaggedOnly key.Binding
	NextFlag        key.Binding
	PrevFlag        key.Binding
	Filter          key.Binding
	ClearFilter     key.Binding
	Search          key.Binding
	Jump            key.Binding
	ShowComment     key.Binding
	EditComment     key.Binding
	TimeWindow      key.Binding
	ZoomOut         key.Binding
	Summary         key.Binding
	SaveToFile      key.Binding
	ExportToFile    key.Binding
	CopyRow         key.Binding
	CopyLink        key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/home", "first row"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G/end", "last row"),
	),
	ScrollLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "scroll the grid left"),
	),
	ScrollRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "scroll the grid right"),
	),
	FlagMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "flag exposure"),
	),
	ShowFlaggedOnly: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "toggle flagged only"),
	),
	NextFlag: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next flagged"),
	),
	PrevFlag: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "previous flagged"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "regex filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear filter"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to row"),
	),
	ShowComment: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "show comments"),
	),
	EditComment: key.NewBinding(
		key.WithKeys("e", "#"),
		key.WithHelp("e", "edit comment on row"),
	),
	TimeWindow: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "time window"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "zoom out to full nights"),
	),
	Summary: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "night summary"),
	),
	SaveToFile: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save snapshot"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export rows to csv"),
	),
	CopyRow: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy row"),
	),
	CopyLink: key.NewBinding(
		key.WithKeys("Y"),
		key.WithHelp("Y", "copy dashboard link"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.RowDown,
		k.RowUp,
		k.PageUp,
		k.PageDown,
		k.Top,
		k.Bottom,
		k.FlagMode,
		k.ShowFlaggedOnly,
		k.NextFlag,
		k.PrevFlag,
		k.Filter,
		k.ClearFilter,
		k.Search,
		k.Jump,
		k.EditComment,
		k.ShowComment,
		k.TimeWindow,
		k.ZoomOut,
		k.Summary,
		k.SaveToFile,
		k.ExportToFile,
		k.CopyRow,
		k.CopyLink,
	}
}
