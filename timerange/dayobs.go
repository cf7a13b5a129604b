package timerange

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const dayObsLayout = "20060102"

var ErrInvalidDayObs = errors.New("dayobs must be in yyyyMMdd format")

// DayObs identifies an observing night by the calendar date it starts on.
// The night runs from 12:00 UTC on that date to 11:59:59 UTC the next day.
type DayObs int

func ParseDayObs(s string) (DayObs, error) {
	if len(s) != len(dayObsLayout) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidDayObs)
	}
	if _, err := time.Parse(dayObsLayout, s); err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidDayObs)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidDayObs)
	}
	return DayObs(n), nil
}

func DayObsFromTime(t time.Time) DayObs {
	n, _ := strconv.Atoi(t.UTC().Format(dayObsLayout))
	return DayObs(n)
}

func (d DayObs) String() string {
	return strconv.Itoa(int(d))
}

func (d DayObs) date() time.Time {
	t, err := time.Parse(dayObsLayout, d.String())
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d DayObs) Valid() bool {
	return !d.date().IsZero()
}

// ForDisplay renders the dayobs as yyyy-MM-dd.
func (d DayObs) ForDisplay() string {
	return d.date().Format("2006-01-02")
}

func (d DayObs) AddDays(n int) DayObs {
	return DayObsFromTime(d.date().AddDate(0, 0, n))
}

// DayObsStart is 12:00:00 UTC on the dayobs date.
func DayObsStart(d DayObs) time.Time {
	return d.date().Add(12 * time.Hour)
}

// DayObsEnd is 11:59:59 UTC on the following date.
func DayObsEnd(d DayObs) time.Time {
	return d.date().AddDate(0, 0, 1).Add(11*time.Hour + 59*time.Minute + 59*time.Second)
}

// FullRange spans the nights from start to end inclusive.
func FullRange(start, end DayObs) Range {
	return Range{Start: DayObsStart(start), End: DayObsEnd(end)}
}

// CurrentDayObs is the night in progress at now.
func CurrentDayObs(now time.Time) DayObs {
	return DayObsFromTime(now.UTC().Add(-12 * time.Hour))
}

// DefaultDayObs is yesterday's date in UTC.
func DefaultDayObs(now time.Time) DayObs {
	return DayObsFromTime(now.UTC().AddDate(0, 0, -1))
}

// DayObsRange lists every night between start and end inclusive.
func DayObsRange(start, end DayObs) ([]DayObs, error) {
	if !start.Valid() || !end.Valid() || start > end {
		return nil, fmt.Errorf("dayobs range %s-%s: %w", start, end, ErrInvalidDayObs)
	}
	var out []DayObs
	for d := start; d <= end; d = d.AddDays(1) {
		out = append(out, d)
	}
	return out, nil
}
