// Package editor implements validated free-text editing of one endpoint of a
// time range. Keystrokes only change the draft; validity is recomputed from
// the draft for display, and a commit trigger either accepts the draft or
// silently reverts it to the committed value.
package editor

import (
	"time"

	"github.com/andareed/siftly-digest/timerange"
)

// Endpoint says which end of the range an editor owns.
type Endpoint int

const (
	Start Endpoint = iota
	End
)

func (e Endpoint) String() string {
	if e == End {
		return "end"
	}
	return "start"
}

type Event interface{ isEvent() }

type (
	// TextEdit replaces the draft with the field's current text.
	TextEdit struct{ Text string }
	Blur     struct{}
	KeyEnter struct{}
	// KeyEscape reverts the draft without committing.
	KeyEscape struct{}
	// Sync reports an external change to the committed value or to the
	// other endpoint. A nil Other disables the ordering check.
	Sync struct {
		Committed time.Time
		Other     *time.Time
	}
)

func (TextEdit) isEvent()  {}
func (Blur) isEvent()      {}
func (KeyEnter) isEvent()  {}
func (KeyEscape) isEvent() {}
func (Sync) isEvent()      {}

// State is everything one endpoint field needs.
type State struct {
	Endpoint  Endpoint
	Full      timerange.Range
	Committed time.Time
	Other     *time.Time
	Draft     string
}

func NewState(ep Endpoint, committed time.Time, other *time.Time, full timerange.Range) State {
	return State{
		Endpoint:  ep,
		Full:      full,
		Committed: committed,
		Other:     other,
		Draft:     timerange.Format(committed),
	}
}

// Parsed validates the draft and returns the parsed value when it is valid.
func (s State) Parsed() (time.Time, bool) {
	t, err := timerange.Parse(s.Draft)
	if err != nil {
		return time.Time{}, false
	}
	if t.Before(s.Full.Start) || t.After(s.Full.End) {
		return time.Time{}, false
	}
	if s.Other != nil {
		if s.Endpoint == Start && !t.Before(*s.Other) {
			return time.Time{}, false
		}
		if s.Endpoint == End && !t.After(*s.Other) {
			return time.Time{}, false
		}
	}
	return t, true
}

func (s State) Valid() bool {
	_, ok := s.Parsed()
	return ok
}

// Outcome is what the host must do after an event.
type Outcome struct {
	Committed bool
	Value     time.Time // set when Committed
	DropFocus bool
}

func Reduce(s State, ev Event) (State, Outcome) {
	switch ev := ev.(type) {
	case TextEdit:
		s.Draft = ev.Text
		return s, Outcome{}

	case Blur:
		return tryCommit(s)

	case KeyEnter:
		s, out := tryCommit(s)
		out.DropFocus = true
		return s, out

	case KeyEscape:
		s.Draft = timerange.Format(s.Committed)
		return s, Outcome{DropFocus: true}

	case Sync:
		s.Other = ev.Other
		if !ev.Committed.Equal(s.Committed) {
			s.Committed = ev.Committed
			s.Draft = timerange.Format(ev.Committed)
		}
		return s, Outcome{}
	}
	return s, Outcome{}
}

func tryCommit(s State) (State, Outcome) {
	t, ok := s.Parsed()
	if !ok {
		s.Draft = timerange.Format(s.Committed)
		return s, Outcome{}
	}
	s.Committed = t
	s.Draft = timerange.Format(t)
	return s, Outcome{Committed: true, Value: t}
}
