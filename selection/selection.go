// Package selection implements drag-to-zoom over a chart axis.
//
// A gesture starts with PointerDown, is extended by PointerMove and ends with
// PointerUp, at which point the provisional interval is ordered, mapped to
// timestamps and committed. DoubleClick commits the full range.
package selection

import (
	"github.com/andareed/siftly-digest/timerange"
)

// Label is an optional axis position reported by the chart surface. It is
// absent when the pointer is outside the plottable area.
type Label struct {
	Pos     float64
	Present bool
}

func At(pos float64) Label { return Label{Pos: pos, Present: true} }

// Outside is the label for events outside the plot area.
var Outside = Label{}

type Event interface{ isEvent() }

type (
	PointerDown struct{ At Label }
	PointerMove struct{ At Label }
	PointerUp   struct{}
	DoubleClick struct{}
)

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (DoubleClick) isEvent() {}

// State is the provisional selection. Both ends are unset outside a gesture.
type State struct {
	Anchor Label
	Cursor Label
}

func (s State) Active() bool { return s.Anchor.Present }

// Bounds returns the provisional interval in ascending order.
func (s State) Bounds() (lo, hi float64, ok bool) {
	if !s.Anchor.Present || !s.Cursor.Present {
		return 0, 0, false
	}
	if s.Anchor.Pos <= s.Cursor.Pos {
		return s.Anchor.Pos, s.Cursor.Pos, true
	}
	return s.Cursor.Pos, s.Anchor.Pos, true
}

// Mapper converts an axis position to epoch milliseconds.
type Mapper func(pos float64) int64

// Identity treats axis positions as epoch milliseconds.
func Identity(pos float64) int64 { return int64(pos) }

// Reduce applies ev to s. When the event commits a window the new range is
// returned with committed set.
func Reduce(s State, ev Event, toMillis Mapper, full timerange.Range) (next State, r timerange.Range, committed bool) {
	if toMillis == nil {
		toMillis = Identity
	}
	switch ev := ev.(type) {
	case PointerDown:
		if !ev.At.Present {
			return s, timerange.Range{}, false
		}
		return State{Anchor: ev.At}, timerange.Range{}, false

	case PointerMove:
		if !s.Anchor.Present {
			return s, timerange.Range{}, false
		}
		s.Cursor = ev.At
		return s, timerange.Range{}, false

	case PointerUp:
		lo, hi, ok := s.Bounds()
		if !ok || lo == hi {
			return State{}, timerange.Range{}, false
		}
		r = timerange.Range{
			Start: timerange.FromMillis(toMillis(lo)),
			End:   timerange.FromMillis(toMillis(hi)),
		}
		return State{}, r, true

	case DoubleClick:
		return State{}, full, true
	}
	return s, timerange.Range{}, false
}

// Selector keeps the provisional selection for one chart and hands committed
// ranges to the owner of the active window.
type Selector struct {
	state    State
	toMillis Mapper
	full     timerange.Range
	commit   func(timerange.Range)
}

func New(full timerange.Range, toMillis Mapper, commit func(timerange.Range)) *Selector {
	if toMillis == nil {
		toMillis = Identity
	}
	return &Selector{full: full, toMillis: toMillis, commit: commit}
}

func (s *Selector) State() State { return s.state }

// Handle feeds one event through Reduce and reports whether a range was
// committed.
func (s *Selector) Handle(ev Event) bool {
	next, r, committed := Reduce(s.state, ev, s.toMillis, s.full)
	s.state = next
	if committed && s.commit != nil {
		s.commit(r)
	}
	return committed
}

// Cancel drops a provisional drag without committing it.
func (s *Selector) Cancel() { s.state = State{} }
