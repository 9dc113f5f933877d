package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func sampleHabit(id, title string) models.Habit {
	habit := models.NewHabit(id, title)
	habit.Description = "test habit"
	habit.Log = []models.LogEntry{
		{
			Day:       "2026-08-27",
			Completed: true,
			Quality:   models.QualityGood,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	habit.Streak = 1
	habit.XP = 12
	habit.LastCompleted = "2026-08-27"
	return habit
}

func TestSaveAndGetHabit(t *testing.T) {
	store := setupTestStore(t)

	habit := sampleHabit("habit-1", "Morning run")
	habit.FrequencyDetails = &models.FrequencyDetails{
		Weekdays: []time.Weekday{time.Monday, time.Wednesday},
	}
	habit.Frequency = models.FrequencyCustom

	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() error: %v", err)
	}

	got, err := store.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("GetHabit() error: %v", err)
	}

	if got.Title != "Morning run" {
		t.Errorf("Title = %q, want %q", got.Title, "Morning run")
	}
	if got.Frequency != models.FrequencyCustom {
		t.Errorf("Frequency = %q, want custom", got.Frequency)
	}
	if got.FrequencyDetails == nil || len(got.FrequencyDetails.Weekdays) != 2 {
		t.Errorf("FrequencyDetails not round-tripped: %+v", got.FrequencyDetails)
	}
	if got.Streak != 1 || got.XP != 12 || got.Level != 1 {
		t.Errorf("progression = streak %d, xp %d, lvl %d; want 1, 12, 1", got.Streak, got.XP, got.Level)
	}
	if got.LastCompleted != "2026-08-27" {
		t.Errorf("LastCompleted = %q, want 2026-08-27", got.LastCompleted)
	}
	if len(got.Log) != 1 {
		t.Fatalf("len(Log) = %d, want 1", len(got.Log))
	}
	if got.Log[0].Day != "2026-08-27" || !got.Log[0].Completed || got.Log[0].Quality != models.QualityGood {
		t.Errorf("log entry not round-tripped: %+v", got.Log[0])
	}
}

func TestSaveHabitReplacesLog(t *testing.T) {
	store := setupTestStore(t)

	habit := sampleHabit("habit-1", "Read")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() error: %v", err)
	}

	habit.Log = append(habit.Log, models.LogEntry{
		Day:       "2026-08-28",
		Completed: true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if err := store.SaveHabit(habit); err != nil {
		t.Fatalf("SaveHabit() error: %v", err)
	}

	got, err := store.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("GetHabit() error: %v", err)
	}
	if len(got.Log) != 2 {
		t.Fatalf("len(Log) = %d, want 2", len(got.Log))
	}
	// loadLog orders by day descending
	if got.Log[0].Day != "2026-08-28" {
		t.Errorf("Log[0].Day = %q, want 2026-08-28", got.Log[0].Day)
	}

	// Un-completing a day rewrites the entry rather than adding a duplicate
	got.Log[0].Completed = false
	if err := store.SaveHabit(got); err != nil {
		t.Fatalf("SaveHabit() error: %v", err)
	}
	again, err := store.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("GetHabit() error: %v", err)
	}
	if len(again.Log) != 2 {
		t.Errorf("len(Log) = %d after rewrite, want 2", len(again.Log))
	}
	if again.Log[0].Completed {
		t.Error("Log[0].Completed = true, want false after rewrite")
	}
}

func TestGetHabitByTitle(t *testing.T) {
	store := setupTestStore(t)

	if err := store.AddHabit(sampleHabit("habit-1", "Meditate")); err != nil {
		t.Fatalf("AddHabit() error: %v", err)
	}

	got, err := store.GetHabitByTitle("Meditate")
	if err != nil {
		t.Fatalf("GetHabitByTitle() error: %v", err)
	}
	if got.ID != "habit-1" {
		t.Errorf("ID = %q, want habit-1", got.ID)
	}

	if _, err := store.GetHabitByTitle("Unknown"); err == nil {
		t.Error("GetHabitByTitle() for missing habit returned nil error")
	}
}

func TestGetAllHabitsFiltering(t *testing.T) {
	store := setupTestStore(t)

	for _, h := range []models.Habit{
		sampleHabit("active", "Active"),
		sampleHabit("archived", "Archived"),
		sampleHabit("deleted", "Deleted"),
	} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("AddHabit(%s) error: %v", h.ID, err)
		}
	}

	if err := store.ArchiveHabit("archived"); err != nil {
		t.Fatalf("ArchiveHabit() error: %v", err)
	}
	if err := store.DeleteHabit("deleted"); err != nil {
		t.Fatalf("DeleteHabit() error: %v", err)
	}

	habits, err := store.GetAllHabits(false, false)
	if err != nil {
		t.Fatalf("GetAllHabits(false, false) error: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != "active" {
		t.Errorf("active-only query returned %d habits, want just 'active'", len(habits))
	}

	habits, err = store.GetAllHabits(true, false)
	if err != nil {
		t.Fatalf("GetAllHabits(true, false) error: %v", err)
	}
	if len(habits) != 2 {
		t.Errorf("archived-included query returned %d habits, want 2", len(habits))
	}

	habits, err = store.GetAllHabits(true, true)
	if err != nil {
		t.Fatalf("GetAllHabits(true, true) error: %v", err)
	}
	if len(habits) != 3 {
		t.Errorf("all-included query returned %d habits, want 3", len(habits))
	}
}

func TestSoftDeleteLifecycle(t *testing.T) {
	store := setupTestStore(t)

	if err := store.AddHabit(sampleHabit("habit-1", "Journal")); err != nil {
		t.Fatalf("AddHabit() error: %v", err)
	}

	if err := store.DeleteHabit("habit-1"); err != nil {
		t.Fatalf("DeleteHabit() error: %v", err)
	}

	// Deleted habits are invisible to direct lookup
	if _, err := store.GetHabit("habit-1"); err == nil {
		t.Error("GetHabit() for deleted habit returned nil error")
	}

	// Double delete reports not found
	if err := store.DeleteHabit("habit-1"); err == nil {
		t.Error("DeleteHabit() on already-deleted habit returned nil error")
	}

	if err := store.RestoreHabit("habit-1"); err != nil {
		t.Fatalf("RestoreHabit() error: %v", err)
	}

	got, err := store.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("GetHabit() after restore error: %v", err)
	}
	if got.DeletedAt != nil {
		t.Error("DeletedAt != nil after restore")
	}
	// Restored habits keep their log
	if len(got.Log) != 1 {
		t.Errorf("len(Log) = %d after restore, want 1", len(got.Log))
	}
}

func TestArchiveLifecycle(t *testing.T) {
	store := setupTestStore(t)

	if err := store.AddHabit(sampleHabit("habit-1", "Stretch")); err != nil {
		t.Fatalf("AddHabit() error: %v", err)
	}

	if err := store.ArchiveHabit("habit-1"); err != nil {
		t.Fatalf("ArchiveHabit() error: %v", err)
	}
	if err := store.ArchiveHabit("habit-1"); err == nil {
		t.Error("ArchiveHabit() on archived habit returned nil error")
	}

	// Archived habits are still reachable by ID
	got, err := store.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("GetHabit() for archived habit error: %v", err)
	}
	if got.ArchivedAt == nil {
		t.Error("ArchivedAt = nil after archive")
	}

	if err := store.UnarchiveHabit("habit-1"); err != nil {
		t.Fatalf("UnarchiveHabit() error: %v", err)
	}
	got, err = store.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("GetHabit() after unarchive error: %v", err)
	}
	if got.ArchivedAt != nil {
		t.Error("ArchivedAt != nil after unarchive")
	}
}

func TestLoadRequiresInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")
	store := NewStore(dbPath)

	if err := store.Load(); err == nil {
		t.Error("Load() on missing database returned nil error")
	}
}
