package engine

import (
	"sort"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// RecomputeStreak derives the new streak length and most recent completed day
// after an edit has been applied to the log.
//
// Completion edits extend or reset the running streak based only on how the
// edited day relates to the previous last-completed day. Un-completion edits
// trigger a full recount over the log, but only when they un-log the active
// last-completed day; edits to older days leave the streak untouched even if
// they break contiguity in the literal log. That asymmetry is intentional.
func RecomputeStreak(lastCompleted string, streak int, log []models.LogEntry, edit models.LogEdit) (int, string) {
	if edit.Completed {
		switch {
		case lastCompleted != "" && utils.IsNextDay(lastCompleted, edit.Day):
			return streak + 1, edit.Day
		case edit.Day == lastCompleted:
			// Re-editing the already-counted day, e.g. changing quality
			return streak, edit.Day
		default:
			return 1, edit.Day
		}
	}

	if edit.Day != lastCompleted {
		return streak, lastCompleted
	}

	// The active day was un-logged: recount from scratch over what remains.
	days := completedDays(log)
	if len(days) == 0 {
		return 0, ""
	}

	run := 1
	for i := 1; i < len(days); i++ {
		if !utils.IsNextDay(days[i], days[i-1]) {
			break
		}
		run++
	}
	return run, days[0]
}

// completedDays returns the days with a completed entry, newest first.
func completedDays(log []models.LogEntry) []string {
	var days []string
	for _, e := range log {
		if e.Completed {
			days = append(days, e.Day)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}
