package domain

import (
	"fmt"
	"time"
)

const (
	OnlyDate = "2006-01-02"

	// isoSeconds and isoMicros match Python's datetime.isoformat() for aware UTC times
	isoSeconds = "2006-01-02T15:04:05-07:00"
	isoMicros  = "2006-01-02T15:04:05.000000-07:00"
)

// DefaultRangeDays is how far back range endpoints start when no start date is given
const DefaultRangeDays = 7

// BeginningOfDay returns midnight UTC of the given instant's UTC date
func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the default start of a range query relative to today
func WeekStart(today time.Time) time.Time {
	return BeginningOfDay(today).AddDate(0, 0, -DefaultRangeDays)
}

// ParseDate parses a YYYY-MM-DD value; an empty value yields def
func ParseDate(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	t, err := time.Parse(OnlyDate, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must use YYYY-MM-DD", ErrValidation, value)
	}
	return t, nil
}

// DaysBetween lists every calendar day from start to end inclusive.
// It returns nil when start is after end.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = BeginningOfDay(start), BeginningOfDay(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatEpochMillis renders epoch milliseconds as an ISO-8601 UTC timestamp,
// adding microseconds only when the instant is not on a whole second.
func FormatEpochMillis(ms int64) string {
	t := time.UnixMilli(ms).UTC()
	if t.Nanosecond() == 0 {
		return t.Format(isoSeconds)
	}
	return t.Format(isoMicros)
}
