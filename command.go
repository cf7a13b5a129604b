package main

type Command int

const (
	CmdNone Command = iota
	CmdJump
	CmdSearch
	CmdFilter
	CmdComment
	CmdFlag
)

type CommandInput struct {
	cmd Command
	buf string
}

func (m *model) startCommand(cmd Command, initial string) {
	m.ui.mode = modeCommand
	m.ui.command = CommandInput{cmd: cmd, buf: initial}
}

func commandBadge(cmd Command) string {
	switch cmd {
	case CmdSearch:
		return "[SEARCH]"
	case CmdFilter:
		return "[FILTER]"
	case CmdJump:
		return "[JUMP]"
	case CmdComment:
		return "[COMMENT]"
	case CmdFlag:
		return "[FLAG]"
	default:
		return "[NORMAL]"
	}
}

func commandPrompt(cmd Command) string {
	switch cmd {
	case CmdSearch:
		return "search: "
	case CmdFilter:
		return "filter: "
	case CmdJump:
		return "row: "
	case CmdComment:
		return "comment: "
	case CmdFlag:
		return "g good  q questionable  j junk  c clear"
	default:
		return ""
	}
}

// activeCommandLine returns the command prompt text for the footer.
func (m *model) activeCommandLine() string {
	ci := m.ui.command
	return commandBadge(ci.cmd) + " " + commandPrompt(ci.cmd) + ci.buf
}
