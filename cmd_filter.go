package main

import (
	"regexp"

	"github.com/andareed/siftly-digest/logging"
)

func (m *model) setFilterPattern(pattern string) error {
	logging.Infof("setting filter pattern to %q", pattern)
	if pattern == "" {
		m.data.filterRegex = nil
	} else {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return err
		}
		m.data.filterRegex = re
	}
	m.applyFilter()
	return nil
}

// includeRow reports whether a row passes the flagged-only toggle, the
// committed time window and the regex filter. Rows without a timestamp are
// never hidden by the window.
func (m *model) includeRow(row exposureRow) bool {
	if m.data.showOnlyFlagged {
		if _, ok := m.data.flaggedRows[row.id]; !ok {
			return false
		}
	}
	if m.data.hasTimeBounds && row.hasTime && !m.data.window.IsZero() {
		if !m.data.window.Contains(row.obsStart) {
			return false
		}
	}
	if m.data.filterRegex != nil && !m.data.filterRegex.MatchString(row.String()) {
		return false
	}
	return true
}

// applyFilter rebuilds filteredIndices and keeps the cursor on the same row
// when that row is still visible.
func (m *model) applyFilter() {
	selected, hadSelection := m.currentRowID()

	m.data.filteredIndices = m.data.filteredIndices[:0]
	for i, row := range m.data.rows {
		if m.includeRow(row) {
			m.data.filteredIndices = append(m.data.filteredIndices, i)
		}
	}

	if len(m.data.filteredIndices) == 0 {
		m.cursor = -1
		return
	}
	if hadSelection {
		for i, idx := range m.data.filteredIndices {
			if m.data.rows[idx].id == selected {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.data.filteredIndices) {
		m.cursor = len(m.data.filteredIndices) - 1
	}
}
