package utils

import "time"

const DateLayout = "2006-01-02"

func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// ParseTimeParam accepts either a full RFC3339 timestamp or a bare
// YYYY-MM-DD date. The second return reports the date-only case so
// callers can widen a "to" bound to the end of that day.
func ParseTimeParam(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
