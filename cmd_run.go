package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

func (m *model) runCommand() tea.Cmd {
	ci := m.ui.command
	switch ci.cmd {
	case CmdJump:
		n, err := strconv.Atoi(strings.TrimSpace(ci.buf))
		if err != nil {
			return m.startNotice("Invalid row number", "warn", noticeDuration)
		}
		return m.jumpToLine(n)

	case CmdSearch:
		m.ui.searchQuery = ci.buf
		if !m.searchNext(ci.buf) && ci.buf != "" {
			return m.startNotice(fmt.Sprintf("No match for %q", ci.buf), "warn", noticeDuration)
		}
		return nil

	case CmdFilter:
		if err := m.setFilterPattern(ci.buf); err != nil {
			return m.startNotice("Invalid regex: "+err.Error(), "error", noticeDuration)
		}
		return nil

	case CmdComment:
		if m.addComment(ci.buf) {
			return m.startNotice("Comment saved", "success", noticeDuration)
		}
		return m.startNotice("Comment cleared", "info", noticeDuration)
	}
	return nil
}

func (m *model) exitCommandMode() {
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.exitCommandMode()
		m.refreshView("command-cancel", false)
		return m, nil
	}

	if m.ui.command.cmd == CmdFlag {
		return m.handleFlagCommandKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		cmd := m.runCommand()
		m.exitCommandMode()
		m.refreshView("command-run", false)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyBackspace:
		buf := []rune(m.ui.command.buf)
		if len(buf) > 0 {
			m.ui.command.buf = string(buf[:len(buf)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.ui.command.buf += " "
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if runewidth.RuneWidth(r) > 0 {
				m.ui.command.buf += string(r)
			}
		}
	}
	return m, nil
}
