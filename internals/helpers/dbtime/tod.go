package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// Tod is a wall-clock time of day ("HH:MM[:SS]") typed by HR for a shift.
type Tod struct{ time.Time }

// Parse accepts "HH:MM" or "HH:MM:SS" on a 24h clock.
func Parse(s string) (Tod, error) {
	s = strings.TrimSpace(s)
	layout := "15:04:05"
	if len(s) == len("15:04") {
		layout = "15:04"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Tod{}, fmt.Errorf("invalid time %q, want HH:MM[:SS]", s)
	}
	return Tod{Time: t}, nil
}

// On places the time of day on date's calendar day in loc.
func (t Tod) On(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

func (t Tod) String() string { return t.Format("15:04:05") }
