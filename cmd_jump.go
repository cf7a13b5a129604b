package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) checkViewPortHasData() bool {
	return len(m.data.filteredIndices) > 0 && m.cursor >= 0
}

func (m *model) currentRowID() (uint64, bool) {
	if m.cursor < 0 || m.cursor >= len(m.data.filteredIndices) {
		return 0, false
	}
	return m.data.rows[m.data.filteredIndices[m.cursor]].id, true
}

func (m *model) currentRow() (*exposureRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.data.filteredIndices) {
		return nil, false
	}
	return &m.data.rows[m.data.filteredIndices[m.cursor]], true
}

func (m *model) moveCursor(delta int) {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.data.filteredIndices)-1)
}

func (m *model) pageDown() {
	m.moveCursor(max(1, m.lastVisibleRowCount))
}

func (m *model) pageUp() {
	m.moveCursor(-max(1, m.lastVisibleRowCount))
}

func (m *model) jumpToStart() {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = len(m.data.filteredIndices) - 1
}

// jumpToLine moves to the row with the given source row number.
func (m *model) jumpToLine(lineNo int) tea.Cmd {
	if lineNo <= 0 || lineNo > len(m.data.rows) {
		return m.startNotice(fmt.Sprintf("Row %d out of bounds", lineNo), "warn", noticeDuration)
	}
	for i, idx := range m.data.filteredIndices {
		if m.data.rows[idx].originalIndex == lineNo {
			m.cursor = i
			return nil
		}
	}
	return m.startNotice(fmt.Sprintf("Row %d hidden by filter or time window", lineNo), "warn", noticeDuration)
}
