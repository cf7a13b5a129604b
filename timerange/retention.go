package timerange

import (
	"fmt"
	"time"
)

// Retention is the per-site data retention policy. Days <= 0 means no policy.
type Retention struct {
	HostDisplayName string
	Days            int
}

type Availability struct {
	Min  DayObs // zero when there is no retention policy
	Max  DayObs
	Days int
}

func AvailableDayObs(now time.Time, r Retention) Availability {
	current := CurrentDayObs(now)
	if r.Days <= 0 {
		return Availability{Max: current}
	}
	return Availability{
		Min:  current.AddDays(-r.Days),
		Max:  current,
		Days: r.Days,
	}
}

func InRetention(d DayObs, now time.Time, r Retention) bool {
	a := AvailableDayObs(now, r)
	if a.Days == 0 {
		return d <= a.Max
	}
	return d >= a.Min && d <= a.Max
}

// ValidateNights checks a start/end dayobs pair against ordering and the
// retention window.
func ValidateNights(start, end DayObs, now time.Time, r Retention) error {
	if !start.Valid() || !end.Valid() {
		return ErrInvalidDayObs
	}
	if start > end {
		return fmt.Errorf("startDayobs must be before or equal to endDayobs")
	}
	if InRetention(start, now, r) && InRetention(end, now, r) {
		return nil
	}
	a := AvailableDayObs(now, r)
	if a.Days == 0 {
		return fmt.Errorf("date range must be before current dayObs %s", a.Max)
	}
	return fmt.Errorf("date range must be within the last %d days (%s to %s)", a.Days, a.Min, a.Max)
}
