package engine

import "github.com/julianstephens/habitkit/internal/models"

// ApplyEdit is the single mutating entry point for habit state. It applies a
// log edit and recomputes all derived state, returning a new Habit value; the
// input habit is never modified. On a validation error the input habit is
// returned unchanged alongside the error.
//
// Given the same initial habit and the same ordered sequence of edits, the
// result is always identical.
func ApplyEdit(habit models.Habit, edit models.LogEdit) (models.Habit, error) {
	newLog, err := UpsertEntry(habit.Log, edit)
	if err != nil {
		return habit, err
	}

	streak, lastCompleted := RecomputeStreak(habit.LastCompleted, habit.Streak, newLog, edit)
	xp, level := ApplyProgression(habit.XP, habit.Level, streak, edit)

	next := habit
	next.Log = newLog
	next.Streak = streak
	next.LastCompleted = lastCompleted
	next.XP = xp
	next.Level = level
	return next, nil
}
