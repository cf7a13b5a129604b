package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/andareed/siftly-digest/selection"
	"github.com/andareed/siftly-digest/timerange"
)

const (
	chartPlotHeight = 4
	// plot rows, the axis row and the border
	chartBoxHeight      = chartPlotHeight + 1 + 2
	doubleClickInterval = 400 * time.Millisecond
)

var chartBlocks = []rune(" ▁▂▃▄▅▆▇█")

func (m *model) chartVisible() bool {
	return m.data.hasTimeBounds
}

func (m *model) chartHeight() int {
	if !m.chartVisible() {
		return 0
	}
	return chartBoxHeight
}

// chartWidth is the number of plot columns inside the chart border.
func (m *model) chartWidth() int {
	return max(0, m.contentWidth()-2)
}

// chartOrigin is the screen cell of the first plot column.
func (m *model) chartOrigin() (x, y int) {
	return appMarginH + 1, appMarginV + 1
}

// chartLabel maps a screen cell to a plot column. Cells outside the plot
// and axis rows have no label.
func (m *model) chartLabel(x, y int) selection.Label {
	if !m.chartVisible() {
		return selection.Outside
	}
	x0, y0 := m.chartOrigin()
	w := m.chartWidth()
	if x < x0 || x >= x0+w || y < y0 || y > y0+chartPlotHeight {
		return selection.Outside
	}
	return selection.At(float64(x - x0))
}

// chartPosToMillis maps a plot column onto the committed window: the first
// column is the window start and the last column the window end.
func (m *model) chartPosToMillis(pos float64) int64 {
	w := m.data.window
	start := timerange.ToMillis(w.Start)
	cols := m.chartWidth()
	if cols <= 1 {
		return start
	}
	pos = math.Max(0, math.Min(pos, float64(cols-1)))
	span := float64(w.End.Sub(w.Start).Milliseconds())
	return start + int64(math.Round(pos/float64(cols-1)*span))
}

func (m *model) chartColumnOf(t time.Time, cols int) int {
	w := m.data.window
	span := w.Duration()
	if cols <= 1 || span <= 0 {
		return 0
	}
	frac := float64(t.Sub(w.Start)) / float64(span)
	return clamp(int(math.Round(frac*float64(cols-1))), 0, cols-1)
}

// chartCounts buckets the visible rows into plot columns.
func (m *model) chartCounts(cols int) []int {
	counts := make([]int, cols)
	if cols == 0 {
		return counts
	}
	for _, idx := range m.data.filteredIndices {
		row := m.data.rows[idx]
		if !row.hasTime || !m.data.window.Contains(row.obsStart) {
			continue
		}
		counts[m.chartColumnOf(row.obsStart, cols)]++
	}
	return counts
}

func (m *model) chartView() string {
	cols := m.chartWidth()
	if !m.chartVisible() || cols <= 0 {
		return ""
	}
	counts := m.chartCounts(cols)
	peak := 0
	total := 0
	for _, c := range counts {
		peak = max(peak, c)
		total += c
	}

	levels := make([]int, cols)
	steps := chartPlotHeight * (len(chartBlocks) - 1)
	for i, c := range counts {
		if c > 0 && peak > 0 {
			levels[i] = max(1, int(math.Ceil(float64(c)/float64(peak)*float64(steps))))
		}
	}

	lo, hi, dragging := m.selector.State().Bounds()
	lines := make([]string, 0, chartPlotHeight+1)
	for r := 0; r < chartPlotHeight; r++ {
		floor := (chartPlotHeight - 1 - r) * (len(chartBlocks) - 1)
		cells := make([]rune, cols)
		for i, lv := range levels {
			cells[i] = chartBlocks[clamp(lv-floor, 0, len(chartBlocks)-1)]
		}
		lines = append(lines, highlightSpan(cells, int(lo), int(hi), dragging))
	}
	lines = append(lines, m.chartAxisLine(cols, total))
	return chartArea.Render(strings.Join(lines, "\n"))
}

// highlightSpan renders cells with the provisional drag interval styled.
func highlightSpan(cells []rune, lo, hi int, active bool) string {
	plain := chartBarStyle.Render
	if !active {
		return plain(string(cells))
	}
	lo = clamp(lo, 0, len(cells)-1)
	hi = clamp(hi, lo, len(cells)-1)
	var b strings.Builder
	if lo > 0 {
		b.WriteString(plain(string(cells[:lo])))
	}
	b.WriteString(chartSelectStyle.Render(string(cells[lo : hi+1])))
	if hi+1 < len(cells) {
		b.WriteString(plain(string(cells[hi+1:])))
	}
	return b.String()
}

func (m *model) chartAxisLine(cols, total int) string {
	left := timerange.Format(m.data.window.Start)
	right := timerange.Format(m.data.window.End)
	mid := fmt.Sprintf("%s exposures", humanize.Comma(int64(total)))
	if _, _, ok := m.selector.State().Bounds(); ok {
		mid = "release to zoom, double click for full nights"
	}

	free := cols - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if free < runewidth.StringWidth(mid)+2 {
		return chartAxisStyle.Render(runewidth.Truncate(left+" "+right, cols, ""))
	}
	gap := free - runewidth.StringWidth(mid)
	return chartAxisStyle.Render(left + strings.Repeat(" ", gap/2) + mid + strings.Repeat(" ", gap-gap/2) + right)
}

// handleMouse feeds chart presses, drags and releases into the selector.
// Two presses within doubleClickInterval reset the window to the full range.
func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		m.refreshView("wheel", false)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		m.refreshView("wheel", false)
		return m, nil
	}

	if !m.chartVisible() || m.selector == nil {
		return m, nil
	}

	before := m.data.window
	label := m.chartLabel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		now := m.now()
		if label.Present && !m.ui.lastPress.IsZero() && now.Sub(m.ui.lastPress) <= doubleClickInterval {
			m.ui.lastPress = time.Time{}
			m.selector.Handle(selection.DoubleClick{})
		} else {
			if label.Present {
				m.ui.lastPress = now
			}
			m.selector.Handle(selection.PointerDown{At: label})
		}
	case tea.MouseActionMotion:
		m.selector.Handle(selection.PointerMove{At: label})
		if st := m.selector.State(); st.Cursor.Present && st.Cursor != st.Anchor {
			// a drag is not the first half of a double click
			m.ui.lastPress = time.Time{}
		}
	case tea.MouseActionRelease:
		if m.selector.Handle(selection.PointerUp{}) {
			m.ui.lastPress = time.Time{}
		}
	default:
		return m, nil
	}

	m.refreshView("chart-mouse", false)
	if !m.data.window.Equal(before) {
		return m, m.startNotice(m.timeWindowStatusLabel(), "info", noticeDuration)
	}
	return m, nil
}
