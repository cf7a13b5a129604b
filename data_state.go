package main

import (
	"regexp"

	"github.com/andareed/siftly-digest/timerange"
)

// nightSource records where the rows came from so the summary drawer and
// dashboard links can describe the same nights.
type nightSource struct {
	startDayObs timerange.DayObs
	endDayObs   timerange.DayObs
	telescope   string
	path        string // set for offline files
}

func (s nightSource) online() bool { return s.path == "" && s.startDayObs != 0 }

type dataState struct {
	header          []ColumnMeta
	rows            []exposureRow
	flaggedRows     map[uint64]ExposureFlag
	commentRows     map[uint64]string
	showOnlyFlagged bool
	filterRegex     *regexp.Regexp
	filteredIndices []int // indices into rows that pass the filter and window

	// full bounds every window; window is the committed one.
	full            timerange.Range
	window          timerange.Range
	timeColumnIndex int
	expTimeIndex    int
	hasTimeBounds   bool

	source nightSource
}

func newDataState(header []ColumnMeta, rows []exposureRow) dataState {
	return dataState{
		header:          header,
		rows:            rows,
		flaggedRows:     make(map[uint64]ExposureFlag),
		commentRows:     make(map[uint64]string),
		timeColumnIndex: -1,
		expTimeIndex:    -1,
	}
}
