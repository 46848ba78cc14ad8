package photos

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses a YYYY-MM-DD date as midnight in the local time zone.
func ParseDate(text string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(text), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidArgument, text)
	}
	return t, nil
}

// ParseDateRange parses two YYYY-MM-DD dates into a range covering both
// whole days: midnight of start through the last nanosecond of end.
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	from, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, start, end)
	}
	return from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}
