package utils

import (
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// IsDueOn determines if a habit is due on the given date based on its
// frequency. Weekly and custom habits without a weekday set fall back to a
// times-per-week target and are treated as due any day.
func IsDueOn(habit models.Habit, date time.Time) bool {
	switch habit.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly, models.FrequencyCustom:
		details := habit.FrequencyDetails
		if details == nil || len(details.Weekdays) == 0 {
			// No weekday mask: the habit floats within the week
			return true
		}
		for _, wd := range details.Weekdays {
			if date.Weekday() == wd {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsDueToday determines if a habit is due today.
func IsDueToday(habit models.Habit) bool {
	return IsDueOn(habit, time.Now())
}

// CompletedOn reports whether the habit's log has a completed entry for the day.
func CompletedOn(habit models.Habit, day string) bool {
	for _, entry := range habit.Log {
		if entry.Day == day {
			return entry.Completed
		}
	}
	return false
}
