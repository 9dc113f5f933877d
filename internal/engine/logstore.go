// Package engine implements the deterministic habit progression core: the
// day-keyed log ledger, the streak calculator and the XP/level engine. All
// functions are pure with respect to habit state; they take habit values and
// return new ones, never mutating their inputs.
package engine

import (
	"errors"
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// ErrNegativeDuration is returned when an edit carries a negative duration.
var ErrNegativeDuration = errors.New("duration cannot be negative")

// UpsertEntry applies an edit to a habit's log and returns the new log.
// If an entry for the edit's day exists it is replaced wholesale by an entry
// built from the edit; otherwise the new entry is inserted. The result is
// sorted by day descending.
func UpsertEntry(log []models.LogEntry, edit models.LogEdit) ([]models.LogEntry, error) {
	if edit.DurationMin < 0 {
		return nil, ErrNegativeDuration
	}

	now := time.Now()
	entry := edit.Entry(now)

	out := make([]models.LogEntry, 0, len(log)+1)
	replaced := false
	for _, e := range log {
		if e.Day == edit.Day {
			// Keep the original creation timestamp across re-edits
			entry.CreatedAt = e.CreatedAt
			out = append(out, entry)
			replaced = true
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Day > out[j].Day
	})

	return out, nil
}
