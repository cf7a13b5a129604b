package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-digest/logging"
)

// ExposureFlag is the observer's verdict on an exposure, as used by the
// exposure log.
type ExposureFlag string

const (
	FlagNone         ExposureFlag = ""
	FlagGood         ExposureFlag = "good"
	FlagQuestionable ExposureFlag = "questionable"
	FlagJunk         ExposureFlag = "junk"
)

// parseExposureFlag accepts only known values; anything else, including the
// backend's "none", is FlagNone.
func parseExposureFlag(s string) ExposureFlag {
	switch ExposureFlag(strings.ToLower(strings.TrimSpace(s))) {
	case FlagGood:
		return FlagGood
	case FlagQuestionable:
		return FlagQuestionable
	case FlagJunk:
		return FlagJunk
	default:
		return FlagNone
	}
}

func (m *model) flagCurrent(flag ExposureFlag) bool {
	id, ok := m.currentRowID()
	if !ok {
		return false
	}
	if flag == FlagNone {
		delete(m.data.flaggedRows, id)
		logging.Debugf("cursor %d id %d unflagged", m.cursor, id)
	} else {
		m.data.flaggedRows[id] = flag
		logging.Debugf("cursor %d id %d flagged %s", m.cursor, id, flag)
	}
	if m.data.showOnlyFlagged {
		m.applyFilter()
	}
	return true
}

func (m *model) handleFlagCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var flag ExposureFlag
	switch msg.String() {
	case "g":
		flag = FlagGood
	case "q":
		flag = FlagQuestionable
	case "j":
		flag = FlagJunk
	case "c":
		flag = FlagNone
	default:
		return m, nil
	}

	row := m.cursor + 1
	changed := m.flagCurrent(flag)
	m.exitCommandMode()
	m.refreshView("flag", false)
	if !changed {
		return m, m.startNotice("No row selected", "warn", noticeDuration)
	}
	label := string(flag)
	if flag == FlagNone {
		label = "cleared"
	}
	return m, m.startNotice(fmt.Sprintf("Row %d flag: %s", row, label), "", noticeDuration)
}

func (m *model) jumpToNextFlag() bool {
	if !m.checkViewPortHasData() {
		return false
	}
	for i := m.cursor + 1; i < len(m.data.filteredIndices); i++ {
		row := m.data.rows[m.data.filteredIndices[i]]
		if _, ok := m.data.flaggedRows[row.id]; ok {
			m.cursor = i
			return true
		}
	}
	logging.Debug("no next flagged row")
	return false
}

func (m *model) jumpToPreviousFlag() bool {
	if !m.checkViewPortHasData() {
		return false
	}
	for i := m.cursor - 1; i >= 0; i-- {
		row := m.data.rows[m.data.filteredIndices[i]]
		if _, ok := m.data.flaggedRows[row.id]; ok {
			m.cursor = i
			return true
		}
	}
	logging.Debug("no previous flagged row")
	return false
}
