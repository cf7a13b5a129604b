package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/andareed/siftly-digest/digest"
	"github.com/andareed/siftly-digest/logging"
)

type summaryLoadedMsg struct {
	summary digest.Summary
	err     error
}

type summaryState struct {
	loading bool
	loaded  bool
	value   digest.Summary
	err     error
}

// fetchSummaryCmd loads the backend night summary in the background.
func (m *model) fetchSummaryCmd() tea.Cmd {
	if m.client == nil || !m.data.source.online() {
		return nil
	}
	client := m.client
	q := m.query
	timeout := client.HTTP.Timeout
	m.summary.loading = true
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		s, err := client.Summary(ctx, q)
		return summaryLoadedMsg{summary: s, err: err}
	}
}

func (m *model) handleSummaryLoaded(msg summaryLoadedMsg) tea.Cmd {
	m.summary = summaryState{loaded: msg.err == nil, value: msg.summary, err: msg.err}
	m.refreshView("summary-loaded", false)
	if msg.err != nil {
		logging.Warnf("night summary: %v", msg.err)
		return m.startNotice("Night summary unavailable", "error", noticeDuration)
	}
	return nil
}

func (m *model) summaryLines() []string {
	var lines []string
	src := m.data.source
	switch {
	case src.online():
		nights := src.startDayObs.ForDisplay()
		if src.endDayObs != src.startDayObs {
			nights += " to " + src.endDayObs.ForDisplay()
		}
		lines = append(lines, fmt.Sprintf("Nights %s, %s", nights, src.telescope))
	case src.path != "":
		lines = append(lines, "Offline file "+src.path+" (no backend summary)")
	}

	switch {
	case m.summary.loading:
		lines = append(lines, "Loading night summary...")
	case m.summary.err != nil:
		lines = append(lines, "Night summary unavailable: "+m.summary.err.Error())
	case m.summary.loaded:
		s := m.summary.value
		lines = append(lines,
			fmt.Sprintf("Exposures: %s   Efficiency: %d%%   Time loss: %s %s",
				humanize.Comma(int64(s.Exposures)), s.Efficiency, s.TimeLoss, s.TimeLossDetails),
			fmt.Sprintf("Night hours: %.2f   Open shutter: %.2f hours   Instrument: %s",
				s.NightHours, s.SumExposureTime/3600, s.Instrument),
		)
	}

	if m.data.hasTimeBounds {
		st := m.windowStats()
		lines = append(lines, fmt.Sprintf("Window %s: %s exposures, %s open shutter",
			m.data.window.String(), humanize.Comma(int64(st.exposures)), formatOpenTime(st.openTime)))
	}
	return lines
}

func formatOpenTime(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return d.String()
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func (m *model) refreshSummaryContent() {
	width := max(10, m.summaryPort.Width)
	m.summaryPort.SetContent(wordwrap.String(strings.Join(m.summaryLines(), "\n"), width))
}
