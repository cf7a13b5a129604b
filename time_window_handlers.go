package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/andareed/siftly-digest/editor"
	"github.com/andareed/siftly-digest/logging"
	"github.com/andareed/siftly-digest/timerange"
)

func (m *model) openTimeWindowDrawer() tea.Cmd {
	if !m.data.hasTimeBounds {
		return m.startNotice("No timestamps available", "warn", noticeDuration)
	}
	tw := &m.ui.timeWindow
	w := m.data.window
	tw.open = true
	tw.start = newEndpointField(editor.Start, w.Start, w.End, m.data.full)
	tw.end = newEndpointField(editor.End, w.End, w.Start, m.data.full)
	m.setTimeWindowFocus(timeWindowFocusStart)
	m.ui.mode = modeTimeWindow
	m.refreshView("time-window-open", true)
	return nil
}

func (m *model) closeTimeWindowDrawer() {
	m.ui.timeWindow.open = false
	m.setTimeWindowFocus(timeWindowFocusScrubber)
	m.ui.mode = modeView
	m.refreshView("time-window-close", true)
}

// syncTimeWindowEditors tells both editors about a newly committed window.
// Drafts are only replaced when their own endpoint changed.
func (m *model) syncTimeWindowEditors() {
	tw := &m.ui.timeWindow
	if !tw.open {
		return
	}
	start, end := m.data.window.Start, m.data.window.End
	tw.start.state.Full = m.data.full
	tw.end.state.Full = m.data.full
	tw.start.apply(editor.Sync{Committed: start, Other: &end})
	tw.end.apply(editor.Sync{Committed: end, Other: &start})
}

func (m *model) focusedField() *endpointField {
	tw := &m.ui.timeWindow
	switch tw.focus {
	case timeWindowFocusStart:
		return &tw.start
	case timeWindowFocusEnd:
		return &tw.end
	default:
		return nil
	}
}

func (m *model) setTimeWindowFocus(focus int) {
	tw := &m.ui.timeWindow
	tw.focus = focus
	switch focus {
	case timeWindowFocusStart:
		tw.start.input.Focus()
		tw.end.input.Blur()
	case timeWindowFocusEnd:
		tw.start.input.Blur()
		tw.end.input.Focus()
	default:
		tw.start.input.Blur()
		tw.end.input.Blur()
	}
}

// commitEndpoint turns an editor outcome into a new committed window.
func (m *model) commitEndpoint(ep editor.Endpoint, out editor.Outcome) {
	if !out.Committed {
		return
	}
	w := m.data.window
	if ep == editor.Start {
		w.Start = out.Value
	} else {
		w.End = out.Value
	}
	logging.Debugf("%s editor committed %s", ep, timerange.Format(out.Value))
	m.setSelectedTimeRange(w)
}

// leaveField blurs the focused editor, committing its draft when valid.
func (m *model) leaveField() {
	if f := m.focusedField(); f != nil {
		out := f.apply(editor.Blur{})
		m.commitEndpoint(f.state.Endpoint, out)
	}
}

func (m *model) handleTimeWindowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tw := &m.ui.timeWindow
	field := m.focusedField()
	onScrubber := field == nil

	switch {
	case msg.Type == tea.KeyEsc:
		if field != nil {
			field.apply(editor.KeyEscape{})
			m.setTimeWindowFocus(timeWindowFocusScrubber)
		} else {
			m.closeTimeWindowDrawer()
		}
		m.refreshView("time-window-esc", false)
		return m, nil

	case msg.Type == tea.KeyEnter:
		if field == nil {
			m.closeTimeWindowDrawer()
			return m, nil
		}
		out := field.apply(editor.KeyEnter{})
		m.commitEndpoint(field.state.Endpoint, out)
		if out.DropFocus {
			m.setTimeWindowFocus(timeWindowFocusScrubber)
		}
		m.refreshView("time-window-enter", false)
		return m, nil

	case msg.Type == tea.KeyTab:
		m.leaveField()
		m.setTimeWindowFocus((tw.focus + 1) % 3)
		m.refreshView("time-window-tab", false)
		return m, nil

	case msg.Type == tea.KeyShiftTab:
		m.leaveField()
		m.setTimeWindowFocus((tw.focus + 2) % 3)
		m.refreshView("time-window-tab", false)
		return m, nil

	case onScrubber && msg.Type == tea.KeyLeft:
		m.shiftTimeWindow(-m.timeWindowStep())
	case onScrubber && msg.Type == tea.KeyRight:
		m.shiftTimeWindow(m.timeWindowStep())
	case onScrubber && msg.Type == tea.KeyShiftLeft:
		m.expandTimeWindow(-m.timeWindowStep())
	case onScrubber && msg.Type == tea.KeyShiftRight:
		m.expandTimeWindow(m.timeWindowStep())
	case onScrubber && msg.String() == "-":
		m.adjustTimeWindowStep(false)
	case onScrubber && (msg.String() == "+" || msg.String() == "="):
		m.adjustTimeWindowStep(true)
	case onScrubber && (msg.String() == "r" || msg.String() == "z"):
		m.zoomOut()
	case onScrubber && (msg.String() == "t" || msg.String() == "q"):
		m.closeTimeWindowDrawer()
		return m, nil

	case field != nil:
		var cmd tea.Cmd
		field.input, cmd = field.input.Update(msg)
		field.apply(editor.TextEdit{Text: field.input.Value()})
		return m, cmd
	}

	m.refreshView("time-window-scrub", false)
	return m, nil
}

func (m *model) endpointFieldView(label string, f *endpointField, focused bool) string {
	style := fieldStyle
	switch {
	case !f.state.Valid():
		style = fieldInvalidStyle
	case focused:
		style = fieldFocusedStyle
	}
	return style.Render(label + " " + f.input.View())
}

func (m *model) timeWindowDrawerView(width int) string {
	tw := &m.ui.timeWindow
	innerWidth := max(0, width-2)
	lineStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth)

	fields := lipgloss.JoinHorizontal(lipgloss.Top,
		m.endpointFieldView("Start", &tw.start, tw.focus == timeWindowFocusStart),
		" ",
		m.endpointFieldView("End", &tw.end, tw.focus == timeWindowFocusEnd),
		"  ",
		m.timeWindowFieldHint(),
	)

	scrubber := m.timeWindowScrubberLine(innerWidth)
	if tw.focus == timeWindowFocusScrubber {
		scrubber = scrubberFocusedStyle.Render(scrubber)
	}
	step := formatStep(m.timeWindowStep())
	help := fmt.Sprintf("tab: next  enter: apply  esc: revert/close  ←/→: move %s  shift+←/→: expand %s  -/+: step  r: full nights",
		step, step)

	content := strings.Join([]string{
		lineStyle.Render(fields),
		lineStyle.Render(scrubber),
		lineStyle.Render(footerHintStyle.Render(help)),
	}, "\n")
	return timeWindowArea.Width(width).Render(content)
}

func (m *model) timeWindowFieldHint() string {
	tw := &m.ui.timeWindow
	var bad []string
	if !tw.start.state.Valid() {
		bad = append(bad, "start")
	}
	if !tw.end.state.Valid() {
		bad = append(bad, "end")
	}
	if len(bad) == 0 {
		return footerHintStyle.Render("\n" + timerange.DisplayLayout + " UTC")
	}
	return invalidHintStyle.Render("\n" + strings.Join(bad, ", ") + " reverts on commit")
}

// timeWindowScrubberLine draws the committed window as a bracket inside the
// full range.
func (m *model) timeWindowScrubberLine(width int) string {
	if !m.data.hasTimeBounds {
		return "Scrubber: n/a"
	}
	full := m.data.full
	w := m.data.window

	minLabel := timerange.Format(full.Start)
	maxLabel := timerange.Format(full.End)
	padding := 2
	barWidth := width - runewidth.StringWidth(minLabel) - runewidth.StringWidth(maxLabel) - padding*2
	if barWidth < 10 {
		return "Window: " + w.String()
	}

	span := full.Duration().Seconds()
	startPos := int(float64(barWidth-1) * full.Clamp(w.Start).Sub(full.Start).Seconds() / span)
	endPos := int(float64(barWidth-1) * full.Clamp(w.End).Sub(full.Start).Seconds() / span)
	startPos = clamp(startPos, 0, barWidth-1)
	endPos = clamp(endPos, startPos, barWidth-1)

	bar := []rune(strings.Repeat("-", barWidth))
	for i := startPos; i <= endPos; i++ {
		bar[i] = '='
	}
	bar[startPos] = '['
	bar[endPos] = ']'

	return fmt.Sprintf("%s  %s  %s", minLabel, string(bar), maxLabel)
}
