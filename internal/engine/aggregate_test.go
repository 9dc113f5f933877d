package engine

import (
	"testing"

	"github.com/julianstephens/habitkit/internal/models"
)

func TestApplyEditFirstCompletion(t *testing.T) {
	habit := models.NewHabit("h1", "Morning run")

	got, err := ApplyEdit(habit, models.LogEdit{Day: "2025-03-10", Completed: true})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}

	if got.Streak != 1 {
		t.Errorf("streak = %d, want 1", got.Streak)
	}
	if got.XP != 12 {
		t.Errorf("xp = %d, want 12", got.XP)
	}
	if got.Level != 1 {
		t.Errorf("level = %d, want 1", got.Level)
	}
	if got.LastCompleted != "2025-03-10" {
		t.Errorf("lastCompleted = %q, want 2025-03-10", got.LastCompleted)
	}
	if len(got.Log) != 1 {
		t.Errorf("log length = %d, want 1", len(got.Log))
	}
}

func TestApplyEditDoesNotMutateInput(t *testing.T) {
	habit := models.NewHabit("h1", "Meditate")
	habit, err := ApplyEdit(habit, models.LogEdit{Day: "2025-03-10", Completed: true})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}

	before := habit
	beforeLogLen := len(habit.Log)

	if _, err := ApplyEdit(habit, models.LogEdit{Day: "2025-03-11", Completed: true}); err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}

	if habit.Streak != before.Streak || habit.XP != before.XP || habit.LastCompleted != before.LastCompleted {
		t.Errorf("input habit was mutated: %+v", habit)
	}
	if len(habit.Log) != beforeLogLen {
		t.Errorf("input log was mutated: len = %d, want %d", len(habit.Log), beforeLogLen)
	}
}

func TestApplyEditInvalidEditReturnsHabitUnchanged(t *testing.T) {
	habit := models.NewHabit("h1", "Read")
	habit, err := ApplyEdit(habit, models.LogEdit{Day: "2025-03-10", Completed: true})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}

	got, err := ApplyEdit(habit, models.LogEdit{Day: "2025-03-11", Completed: true, DurationMin: -1})
	if err == nil {
		t.Fatal("ApplyEdit() error = nil, want validation error")
	}
	if got.Streak != habit.Streak || got.XP != habit.XP || len(got.Log) != len(habit.Log) {
		t.Errorf("habit changed after rejected edit: %+v", got)
	}
}

func TestApplyEditContiguity(t *testing.T) {
	// N consecutive daily completions yield streak == N.
	habit := models.NewHabit("h1", "Stretch")
	days := []string{"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13", "2025-03-14"}

	var err error
	for i, day := range days {
		habit, err = ApplyEdit(habit, models.LogEdit{Day: day, Completed: true})
		if err != nil {
			t.Fatalf("ApplyEdit(%s) error = %v", day, err)
		}
		if habit.Streak != i+1 {
			t.Fatalf("after day %s: streak = %d, want %d", day, habit.Streak, i+1)
		}
	}
}

func TestApplyEditGapReset(t *testing.T) {
	habit := models.NewHabit("h1", "Journal")
	habit, err := ApplyEdit(habit, models.LogEdit{Day: "2025-03-10", Completed: true})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}

	// Skip 2025-03-11 entirely.
	habit, err = ApplyEdit(habit, models.LogEdit{Day: "2025-03-12", Completed: true})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if habit.Streak != 1 {
		t.Errorf("streak = %d, want 1 after gap", habit.Streak)
	}
}

func TestApplyEditIdempotentReEdit(t *testing.T) {
	habit := models.NewHabit("h1", "Piano")
	habit, err := ApplyEdit(habit, models.LogEdit{Day: "2025-03-10", Completed: true})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	streakBefore := habit.Streak

	habit, err = ApplyEdit(habit, models.LogEdit{Day: "2025-03-10", Completed: true, Quality: models.QualityExcellent})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if habit.Streak != streakBefore {
		t.Errorf("streak = %d, want %d after same-day re-edit", habit.Streak, streakBefore)
	}
	if len(habit.Log) != 1 {
		t.Errorf("log length = %d, want 1", len(habit.Log))
	}
}

func TestApplyEditUncompleteActiveDay(t *testing.T) {
	habit := models.NewHabit("h1", "Walk")
	var err error
	for _, day := range []string{"2025-03-08", "2025-03-09", "2025-03-10"} {
		habit, err = ApplyEdit(habit, models.LogEdit{Day: day, Completed: true})
		if err != nil {
			t.Fatalf("ApplyEdit(%s) error = %v", day, err)
		}
	}
	if habit.Streak != 3 {
		t.Fatalf("setup streak = %d, want 3", habit.Streak)
	}

	habit, err = ApplyEdit(habit, models.LogEdit{Day: "2025-03-10", Completed: false})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if habit.Streak != 2 {
		t.Errorf("streak = %d, want 2", habit.Streak)
	}
	if habit.LastCompleted != "2025-03-09" {
		t.Errorf("lastCompleted = %q, want 2025-03-09", habit.LastCompleted)
	}
}

func TestApplyEditUncompleteNonActiveDay(t *testing.T) {
	habit := models.NewHabit("h1", "Walk")
	var err error
	for _, day := range []string{"2025-03-08", "2025-03-09", "2025-03-10"} {
		habit, err = ApplyEdit(habit, models.LogEdit{Day: day, Completed: true})
		if err != nil {
			t.Fatalf("ApplyEdit(%s) error = %v", day, err)
		}
	}

	habit, err = ApplyEdit(habit, models.LogEdit{Day: "2025-03-08", Completed: false})
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if habit.Streak != 3 {
		t.Errorf("streak = %d, want 3 (unchanged)", habit.Streak)
	}
	if habit.LastCompleted != "2025-03-10" {
		t.Errorf("lastCompleted = %q, want 2025-03-10 (unchanged)", habit.LastCompleted)
	}
}

func TestApplyEditReplayDeterminism(t *testing.T) {
	edits := []models.LogEdit{
		{Day: "2025-03-08", Completed: true, Quality: models.QualityGood},
		{Day: "2025-03-09", Completed: true},
		{Day: "2025-03-10", Completed: true, Quality: models.QualityExcellent},
		{Day: "2025-03-09", Completed: false},
		{Day: "2025-03-09", Completed: true},
	}

	run := func() models.Habit {
		h := models.NewHabit("h1", "Swim")
		var err error
		for _, e := range edits {
			h, err = ApplyEdit(h, e)
			if err != nil {
				t.Fatalf("ApplyEdit(%+v) error = %v", e, err)
			}
		}
		return h
	}

	a, b := run(), run()
	if a.Streak != b.Streak || a.XP != b.XP || a.Level != b.Level || a.LastCompleted != b.LastCompleted {
		t.Errorf("replay diverged: %+v vs %+v", a, b)
	}
}
