package clock

import (
	"errors"
	"time"
)

// ErrUnparsableDate is returned when a visit date string matches none of
// the accepted layouts.
var ErrUnparsableDate = errors.New("unparsable date, use YYYY-MM-DD or an ISO timestamp")

// Layouts accepted for timestamps that carry a time component.
// Naive timestamps (no offset) are read in the clinic's zone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

const bareDateLayout = "2006-01-02"

// ResolveVisitDate converts a visit date string into an instant.
//
// A bare date (YYYY-MM-DD, length <= 10) is anchored at noon in loc so
// that the calendar day survives display in any timezone offset; midnight
// anchoring rolls the date to the adjacent day for clients east or west
// of the server. A string with a time component is trusted as given.
// An empty string resolves to now.
func ResolveVisitDate(raw string, loc *time.Location, now func() time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if raw == "" {
		return now(), nil
	}

	if len(raw) <= len(bareDateLayout) {
		day, err := time.ParseInLocation(bareDateLayout, raw, loc)
		if err != nil {
			return time.Time{}, ErrUnparsableDate
		}
		return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc), nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsableDate
}

// DayBounds returns the half-open interval [start, end) covering the
// calendar day of t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
