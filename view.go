package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/andareed/siftly-digest/logging"
)

const (
	commentDrawerHeight = 4
	summaryDrawerHeight = 6
)

func (m *model) contentWidth() int {
	return max(0, m.terminalWidth-2*appMarginH)
}

// gutterWidth is the row-number column plus flag pill and comment marker.
func (m *model) gutterWidth() int {
	return len(fmt.Sprintf("%d", len(m.data.rows))) +
		runewidth.StringWidth(pillMarker) +
		runewidth.StringWidth(commentMarker)
}

// layout sizes the table viewport and drawers from the terminal size and
// the open drawers.
func (m *model) layout() {
	if m.terminalWidth <= 0 || m.terminalHeight <= 0 {
		return
	}
	contentW := m.contentWidth()
	innerW := max(0, contentW-2)

	used := 2*appMarginV + 1 + 2 + footerHeight + m.chartHeight()
	if m.ui.drawerOpen {
		used += commentDrawerHeight + 2
	}
	if m.ui.summaryOpen {
		used += summaryDrawerHeight + 2
	}
	if m.ui.timeWindow.open {
		used += timeWindowDrawerHeight
	}

	m.viewport.Width = innerW
	m.viewport.Height = max(1, m.terminalHeight-used)
	m.drawerPort.Width = innerW
	m.drawerPort.Height = commentDrawerHeight
	m.summaryPort.Width = max(0, innerW-2)
	m.summaryPort.Height = summaryDrawerHeight
	m.data.header = layoutColumns(m.data.header, max(0, innerW-m.gutterWidth()))
}

// refreshView re-renders the table and drawers after a state change.
func (m *model) refreshView(reason string, relayout bool) {
	logging.Debugf("refreshView reason=%s relayout=%v", reason, relayout)
	if relayout {
		m.layout()
	}
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderViewport())
	if m.ui.drawerOpen {
		m.refreshDrawerContent()
	}
	if m.ui.summaryOpen {
		m.refreshSummaryContent()
	}
}

func (m *model) headerView() string {
	var cells []string
	for _, col := range m.data.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(col.Name))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return headerStyle.Render(strings.Repeat(" ", m.gutterWidth()) + headerRow)
}

func (m *model) footerView(width int) string {
	st := FooterState{
		Source:      m.sourceLabel(),
		FilterLabel: "None",
		FlaggedOnly: m.data.showOnlyFlagged,
		Row:         m.cursor + 1,
		TotalRows:   len(m.data.filteredIndices),
		AllRows:     len(m.data.rows),
		Legend:      "(? help · f filter · / search · t window · z zoom out · s summary)",
	}
	switch m.ui.mode {
	case modeCommand:
		st.Mode = m.ui.command.cmd
		st.ModeInput = m.activeCommandLine()
	case modeTimeWindow:
		st.ModeLabel = "WINDOW"
	}
	if m.data.filterRegex != nil && m.data.filterRegex.String() != "" {
		st.FilterLabel = m.data.filterRegex.String()
	}
	st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	if st.StatusMessage == "" {
		st.StatusMessage = m.timeWindowStatusLabel()
	}

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d vp=%dx%d cur=%d vis=%d-%d ch=%d hf=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd,
			m.ui.debugCursorHeight, m.ui.debugHeightFree,
		)
	}
	return RenderFooter(width, st, DefaultFooterStyles())
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return lipgloss.Place(
			m.terminalWidth, m.terminalHeight,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	bordered := tableStyle.Render(m.viewport.View())
	contentW := lipgloss.Width(bordered)

	var parts []string
	if m.chartVisible() {
		parts = append(parts, m.chartView())
	}
	parts = append(parts, m.headerView(), bordered)
	if m.ui.drawerOpen {
		parts = append(parts, commentArea.Width(contentW-2).Render(m.drawerPort.View()))
	}
	if m.ui.summaryOpen {
		parts = append(parts, summaryArea.Width(contentW-2).Render(m.summaryPort.View()))
	}
	if m.ui.timeWindow.open {
		parts = append(parts, m.timeWindowDrawerView(contentW-2))
	}
	parts = append(parts, m.footerView(contentW))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *model) renderRowAt(filteredIdx int) (string, int, bool) {
	if filteredIdx < 0 || filteredIdx >= len(m.data.filteredIndices) {
		return "", 0, false
	}

	selected := filteredIdx == m.cursor
	rowBgStyle := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if selected {
		rowBgStyle = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + termenv.ResetSeq + "m"

	rowPtr := &m.data.rows[m.data.filteredIndices[filteredIdx]]
	row := *rowPtr

	_, commentPresent := m.data.commentRows[row.id]
	flag := m.getRowMarker(row.id)

	numberWidth := m.gutterWidth() - runewidth.StringWidth(pillMarker)
	firstLineMarker := flag + rowBgStyle.Render(fmt.Sprintf("%*d", numberWidth, row.originalIndex))
	additionalLineMarker := flag + rowBgStyle.Render(strings.Repeat(" ", numberWidth))
	if commentPresent {
		firstLineMarker = flag + rowBgStyle.Render(commentMarker+fmt.Sprintf("%*d", numberWidth-runewidth.StringWidth(commentMarker), row.originalIndex))
	}

	contentRow := row
	if m.ui.searchQuery != "" {
		cols := make([]string, len(row.cols))
		for i, col := range row.cols {
			cols[i] = highlightMatches(col, m.ui.searchQuery)
		}
		contentRow.cols = cols
	}
	content := contentRow.Render(cellStyle, m.data.header)
	rowPtr.height = contentRow.height

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		left := additionalLineMarker
		if i == 0 {
			left = firstLineMarker
		}
		if m.ui.searchQuery != "" {
			line = restoreRowStyleAfterReset(line, rowPrefix)
		}
		lines[i] = left + rowPrefix + line + rowSuffix
	}
	return strings.Join(lines, "\n"), contentRow.height, true
}

func highlightMatches(text string, query string) string {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(q)
	if len(lowerText) != len(text) {
		// case folding changed byte offsets; skip highlighting this cell
		return text
	}
	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx == -1 {
			b.WriteString(text[start:])
			break
		}
		idx += start
		b.WriteString(text[start:idx])
		b.WriteString(searchHighlight.Render(text[idx : idx+len(lowerQuery)]))
		start = idx + len(lowerQuery)
	}
	return b.String()
}

func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	reset := termenv.CSI + termenv.ResetSeq + "m"
	if rowPrefix == "" || !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	tc := lipgloss.ColorProfile().Color(value)
	if tc == nil {
		return ""
	}
	return termenv.CSI + tc.Sequence(bg) + "m"
}

func (m *model) getRowMarker(id uint64) string {
	switch m.data.flaggedRows[id] {
	case FlagGood:
		return goodMarker.Render(pillMarker)
	case FlagQuestionable:
		return questionableMarker.Render(pillMarker)
	case FlagJunk:
		return junkMarker.Render(pillMarker)
	default:
		return defaultMarker
	}
}

func (m *model) renderViewport() string {
	if len(m.data.filteredIndices) == 0 || m.cursor < 0 {
		m.ui.visibleStart, m.ui.visibleEnd = 0, 0
		m.lastVisibleRowCount = 0
		if len(m.data.rows) > 0 {
			return footerHintStyle.Render("No exposures in this window or filter. Press z to zoom out, F to clear the filter.")
		}
		return footerHintStyle.Render("No exposures for these nights.")
	}
	if m.cursor >= len(m.data.filteredIndices) {
		m.cursor = len(m.data.filteredIndices) - 1
	}

	renderedRows, startIdx, endIdx := m.computeVisibleRows(m.cursor, m.viewport.Height)
	m.ui.visibleStart = startIdx
	m.ui.visibleEnd = endIdx
	m.lastVisibleRowCount = len(renderedRows)

	var b strings.Builder
	for _, r := range renderedRows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

// computeVisibleRows renders the cursor row and fills the remaining height
// around it, keeping the cursor roughly centred.
func (m *model) computeVisibleRows(cursor int, viewportHeight int) ([]string, int, int) {
	cursorRenderedRow, cursorHeight, ok := m.renderRowAt(cursor)
	if !ok {
		return nil, 0, 0
	}

	heightFree := viewportHeight - cursorHeight
	desiredAboveHeight := max(heightFree/2, 0)
	m.ui.debugCursorHeight = cursorHeight
	m.ui.debugHeightFree = heightFree

	upIndex := cursor - 1
	downIndex := cursor + 1
	var above, below []string
	aboveHeight := 0

	for heightFree > 0 && (upIndex >= 0 || downIndex < len(m.data.filteredIndices)) {
		if upIndex >= 0 && aboveHeight < desiredAboveHeight {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		if downIndex < len(m.data.filteredIndices) {
			rendered, height, ok := m.renderRowAt(downIndex)
			if ok && height <= heightFree {
				below = append(below, rendered)
				heightFree -= height
				downIndex++
				continue
			}
		}
		if upIndex >= 0 {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		break
	}

	renderedRows := make([]string, 0, len(above)+1+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		renderedRows = append(renderedRows, above[i])
	}
	renderedRows = append(renderedRows, cursorRenderedRow)
	renderedRows = append(renderedRows, below...)

	return renderedRows, cursor - len(above), cursor + len(below)
}
