// Package dateutil provides small date helpers shared across packages.
package dateutil

import "time"

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayRange returns the half-open interval [midnight, next midnight)
// containing t.
func DayRange(t time.Time) (start, end time.Time) {
	start = TruncateToDay(t)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
