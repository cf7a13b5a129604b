package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andareed/siftly-digest/logging"
	"github.com/andareed/siftly-digest/timerange"
)

// computeTimeBounds parses every row's timestamp and sets the full range:
// the dayobs bounds when the nights are known, the data bounds otherwise.
func (m *model) computeTimeBounds() {
	m.data.timeColumnIndex = findTimeColumnIndex(m.data.header)
	m.data.expTimeIndex = findColumnIndex(m.data.header, "exp_time")

	var minTime, maxTime time.Time
	hasAny := false
	for i := range m.data.rows {
		row := &m.data.rows[i]
		row.hasTime = false
		if m.data.timeColumnIndex < 0 {
			continue
		}
		ts, ok := timerange.ParseTimestamp(row.cell(m.data.timeColumnIndex))
		if !ok {
			continue
		}
		row.obsStart = ts
		row.hasTime = true
		if !hasAny {
			minTime, maxTime, hasAny = ts, ts, true
			continue
		}
		if ts.Before(minTime) {
			minTime = ts
		}
		if ts.After(maxTime) {
			maxTime = ts
		}
	}

	switch {
	case m.data.source.startDayObs != 0:
		m.data.full = timerange.FullRange(m.data.source.startDayObs, m.data.source.endDayObs)
	case hasAny:
		m.data.full = timerange.Range{Start: minTime.Truncate(time.Minute), End: ceilMinute(maxTime)}
	default:
		m.data.full = timerange.Range{}
	}
	m.data.hasTimeBounds = m.data.full.End.After(m.data.full.Start)
	logging.Debugf("time bounds column=%d full=%s has=%v", m.data.timeColumnIndex, m.data.full, m.data.hasTimeBounds)
}

// ceilMinute rounds t up so the editors, which show whole minutes, can
// reach the last exposure.
func ceilMinute(t time.Time) time.Time {
	c := t.Truncate(time.Minute)
	if c.Before(t) {
		c = c.Add(time.Minute)
	}
	return c
}

// restoreWindow commits prev when it lies inside the full range, and the
// full range otherwise.
func (m *model) restoreWindow(prev timerange.Range) {
	if !m.data.hasTimeBounds {
		m.data.window = timerange.Range{}
		return
	}
	if prev.IsZero() || prev.Equal(m.data.full) {
		m.data.window = m.data.full
		return
	}
	startMs, endMs := timerange.ToMillis(prev.Start), timerange.ToMillis(prev.End)
	m.data.window = timerange.ValidRange(&startMs, &endMs, m.data.full)
}

// setSelectedTimeRange is the single writer of the committed window. Ranges
// with a missing endpoint are ignored.
func (m *model) setSelectedTimeRange(r timerange.Range) {
	if r.Start.IsZero() || r.End.IsZero() {
		logging.Debugf("ignoring window with missing endpoint: %s", r)
		return
	}
	r, err := timerange.New(r.Start.UTC(), r.End.UTC())
	if err != nil {
		logging.Warnf("ignoring window: %v", err)
		return
	}
	m.data.window = r
	m.applyFilter()
	m.syncTimeWindowEditors()
	logging.Infof("window committed %s", r)
}

func (m *model) zoomOut() bool {
	if !m.data.hasTimeBounds || m.data.window.Equal(m.data.full) {
		return false
	}
	m.setSelectedTimeRange(m.data.full)
	return true
}

// shiftTimeWindow moves the committed window by delta, keeping its length
// and stopping at the full range edges.
func (m *model) shiftTimeWindow(delta time.Duration) {
	if !m.data.hasTimeBounds {
		return
	}
	full := m.data.full
	w := m.data.window
	dur := w.Duration()
	if dur >= full.Duration() {
		m.setSelectedTimeRange(full)
		return
	}

	start := w.Start.Add(delta)
	end := w.End.Add(delta)
	if start.Before(full.Start) {
		start = full.Start
		end = start.Add(dur)
	}
	if end.After(full.End) {
		end = full.End
		start = end.Add(-dur)
	}
	m.setSelectedTimeRange(timerange.Range{Start: start, End: end})
}

// expandTimeWindow grows the window towards the start (negative delta) or
// the end (positive delta).
func (m *model) expandTimeWindow(delta time.Duration) {
	if !m.data.hasTimeBounds {
		return
	}
	w := m.data.window
	if delta < 0 {
		w.Start = m.data.full.Clamp(w.Start.Add(delta))
	} else {
		w.End = m.data.full.Clamp(w.End.Add(delta))
	}
	m.setSelectedTimeRange(w)
}

func (m *model) timeWindowStep() time.Duration {
	step := m.ui.timeWindow.step
	if step <= 0 {
		return timeWindowStepDefault
	}
	return min(max(step, timeWindowStepMin), timeWindowStepMax)
}

func (m *model) adjustTimeWindowStep(increase bool) {
	step := m.timeWindowStep()
	if increase {
		step *= 2
	} else {
		step /= 2
	}
	m.ui.timeWindow.step = min(max(step, timeWindowStepMin), timeWindowStepMax)
}

func formatStep(step time.Duration) string {
	if step%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(step/time.Hour))
	}
	return fmt.Sprintf("%dm", int(step/time.Minute))
}

func (m *model) timeWindowStatusLabel() string {
	if !m.data.hasTimeBounds {
		return "Window: n/a"
	}
	if m.data.window.Equal(m.data.full) {
		return "Window: full " + m.data.window.String()
	}
	return "Window: " + m.data.window.String()
}

// windowStats counts the timestamped rows inside the committed window and
// sums their exposure time.
type windowStats struct {
	exposures int
	openTime  time.Duration
}

func (m *model) windowStats() windowStats {
	var st windowStats
	for _, idx := range m.data.filteredIndices {
		row := m.data.rows[idx]
		if !row.hasTime {
			continue
		}
		st.exposures++
		if secs, err := strconv.ParseFloat(strings.TrimSpace(row.cell(m.data.expTimeIndex)), 64); err == nil {
			st.openTime += time.Duration(secs * float64(time.Second))
		}
	}
	return st
}
