package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
)

// Today returns today's date string (YYYY-MM-DD) in the local timezone.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// ParseDay parses a calendar-day string in the standard format (YYYY-MM-DD).
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// ValidDay reports whether the string is a well-formed calendar day.
func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// NextDay returns the calendar day immediately after the given day.
// Returns an empty string if the input is not a valid day.
func NextDay(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(constants.DateFormat)
}

// PrevDay returns the calendar day immediately before the given day.
// Returns an empty string if the input is not a valid day.
func PrevDay(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(constants.DateFormat)
}

// IsNextDay reports whether day b is exactly one calendar day after day a.
func IsNextDay(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NextDay(a) == b
}

// DaysBetween returns the number of calendar days from a to b (positive when
// b is after a). Returns 0 when either day is invalid.
func DaysBetween(a, b string) int {
	ta, err := ParseDay(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}
