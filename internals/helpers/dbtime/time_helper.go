package dbtime

import (
	"fmt"
	"strings"
	"time"

	"kioskhr_backend/internals/configs"
)

const DateLayout = "2006-01-02"

// Loc returns the configured business location, never nil.
func Loc() *time.Location {
	if configs.BusinessLocation == nil {
		return time.UTC
	}
	return configs.BusinessLocation
}

// StartOfDay is local midnight of t's business day.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns [start, end) of t's business day. DST days are 23 or 25 hours.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// StartOfWeek is the Sunday midnight on or before t.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	d := StartOfDay(t, loc)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek is the exclusive end of t's week (next Sunday midnight).
func EndOfWeek(t time.Time, loc *time.Location) time.Time {
	return StartOfWeek(t, loc).AddDate(0, 0, 7)
}

func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
}

// DateKey formats t as YYYY-MM-DD in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDate reads YYYY-MM-DD as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// Combine places a time of day on the given business date and returns UTC.
func Combine(date time.Time, tod Tod, loc *time.Location) time.Time {
	return tod.On(date, loc).UTC()
}
