package engine

import (
	"errors"
	"testing"

	"github.com/julianstephens/habitkit/internal/models"
)

func TestUpsertEntryInsert(t *testing.T) {
	log, err := UpsertEntry(nil, models.LogEdit{Day: "2025-03-10", Completed: true})
	if err != nil {
		t.Fatalf("UpsertEntry() error = %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("UpsertEntry() len = %d, want 1", len(log))
	}
	if log[0].Day != "2025-03-10" || !log[0].Completed {
		t.Errorf("UpsertEntry() entry = %+v", log[0])
	}
}

func TestUpsertEntryReplaceWholesale(t *testing.T) {
	log, err := UpsertEntry(nil, models.LogEdit{
		Day:         "2025-03-10",
		Completed:   true,
		Quality:     models.QualityGood,
		DurationMin: 20,
		Notes:       "first pass",
	})
	if err != nil {
		t.Fatalf("UpsertEntry() error = %v", err)
	}

	// Re-edit the same day without the note: the entry is rebuilt from the
	// edit alone, not merged.
	log, err = UpsertEntry(log, models.LogEdit{
		Day:       "2025-03-10",
		Completed: true,
		Quality:   models.QualityExcellent,
	})
	if err != nil {
		t.Fatalf("UpsertEntry() error = %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("UpsertEntry() len = %d, want 1", len(log))
	}
	if log[0].Quality != models.QualityExcellent {
		t.Errorf("quality = %q, want excellent", log[0].Quality)
	}
	if log[0].Notes != "" {
		t.Errorf("notes = %q, want empty after wholesale replace", log[0].Notes)
	}
	if log[0].DurationMin != 0 {
		t.Errorf("duration = %d, want 0 after wholesale replace", log[0].DurationMin)
	}
}

func TestUpsertEntrySortedDescending(t *testing.T) {
	days := []string{"2025-03-10", "2025-03-12", "2025-03-11"}
	var log []models.LogEntry
	var err error
	for _, day := range days {
		log, err = UpsertEntry(log, models.LogEdit{Day: day, Completed: true})
		if err != nil {
			t.Fatalf("UpsertEntry(%s) error = %v", day, err)
		}
	}

	want := []string{"2025-03-12", "2025-03-11", "2025-03-10"}
	for i, entry := range log {
		if entry.Day != want[i] {
			t.Errorf("log[%d].Day = %s, want %s", i, entry.Day, want[i])
		}
	}
}

func TestUpsertEntryNegativeDuration(t *testing.T) {
	existing := []models.LogEntry{{Day: "2025-03-10", Completed: true}}
	_, err := UpsertEntry(existing, models.LogEdit{Day: "2025-03-11", Completed: true, DurationMin: -5})
	if !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("UpsertEntry() error = %v, want ErrNegativeDuration", err)
	}
}
