// Package timerange holds the time window types shared by the viewer: the
// committed range, the fixed endpoint display format and the dayobs helpers
// used to derive the full range of a set of observing nights.
package timerange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is the endpoint text format, e.g. "22:15  2024-05-01".
const DisplayLayout = "15:04  2006-01-02"

var ErrReversed = errors.New("start is after end")

// Range is an inclusive [Start, End] window in UTC. It is replaced, never
// mutated, when a new window is committed.
type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Range, error) {
	if start.After(end) {
		return Range{}, fmt.Errorf("range %s - %s: %w", Format(start), Format(end), ErrReversed)
	}
	return Range{Start: start.UTC(), End: end.UTC()}, nil
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) Equal(o Range) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

// Clamp pulls t inside the range.
func (r Range) Clamp(t time.Time) time.Time {
	if t.Before(r.Start) {
		return r.Start
	}
	if t.After(r.End) {
		return r.End
	}
	return t
}

func (r Range) String() string {
	return fmt.Sprintf("%s - %s", Format(r.Start), Format(r.End))
}

// Format renders t in DisplayLayout, always in UTC.
func Format(t time.Time) string {
	return t.UTC().Format(DisplayLayout)
}

// ErrLayout is returned by Parse for text that is not exactly DisplayLayout.
var ErrLayout = errors.New("time must be HH:mm  yyyy-MM-dd")

// Parse reads s in DisplayLayout as UTC. The input must match the layout
// exactly: two-digit fields and the double space.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DisplayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrLayout)
	}
	if t.Format(DisplayLayout) != s {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrLayout)
	}
	return t, nil
}

func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// ValidRange returns [start, end] when both are present and inside full,
// otherwise full itself.
func ValidRange(startMillis, endMillis *int64, full Range) Range {
	if startMillis == nil || endMillis == nil {
		return full
	}
	if *startMillis >= ToMillis(full.Start) && *endMillis <= ToMillis(full.End) {
		return Range{Start: FromMillis(*startMillis), End: FromMillis(*endMillis)}
	}
	return full
}

// ParseTimestamp reads the timestamp formats found in exposure exports.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	DisplayLayout,
}
