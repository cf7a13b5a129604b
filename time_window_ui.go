package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/andareed/siftly-digest/editor"
	"github.com/andareed/siftly-digest/timerange"
)

const (
	timeWindowFocusStart = iota
	timeWindowFocusEnd
	timeWindowFocusScrubber
)

const (
	timeWindowDrawerContentHeight = 5
	timeWindowDrawerHeight        = timeWindowDrawerContentHeight + 2
	timeWindowStepMin             = 5 * time.Minute
	timeWindowStepDefault         = 30 * time.Minute
	timeWindowStepMax             = 4 * time.Hour
)

// endpointField pairs a text input with the editor state for one end of
// the committed window.
type endpointField struct {
	state editor.State
	input textinput.Model
}

func newEndpointField(ep editor.Endpoint, committed time.Time, other time.Time, full timerange.Range) endpointField {
	f := endpointField{
		state: editor.NewState(ep, committed, &other, full),
		input: initTimeWindowInput(),
	}
	f.input.SetValue(f.state.Draft)
	return f
}

// apply runs ev through the editor and mirrors the draft into the input.
func (f *endpointField) apply(ev editor.Event) editor.Outcome {
	var out editor.Outcome
	f.state, out = editor.Reduce(f.state, ev)
	if f.input.Value() != f.state.Draft {
		f.input.SetValue(f.state.Draft)
		f.input.CursorEnd()
	}
	return out
}

type timeWindowUI struct {
	open  bool
	focus int
	start endpointField
	end   endpointField
	step  time.Duration
}

func initTimeWindowInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = timerange.DisplayLayout
	ti.CharLimit = len(timerange.DisplayLayout)
	ti.Width = len(timerange.DisplayLayout) + 1
	ti.Prompt = ""
	return ti
}
