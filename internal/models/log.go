package models

import "time"

type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
)

type Emotion string

const (
	EmotionEnergized Emotion = "energized"
	EmotionCalm      Emotion = "calm"
	EmotionNeutral   Emotion = "neutral"
	EmotionTired     Emotion = "tired"
	EmotionStressed  Emotion = "stressed"
)

// LogEntry represents a single day's record of a habit, unique per (habit, day).
type LogEntry struct {
	Day           string    `json:"day"` // YYYY-MM-DD format
	Completed     bool      `json:"completed"`
	Quality       Quality   `json:"quality,omitempty"`
	DurationMin   int       `json:"duration_min,omitempty"`
	Context       string    `json:"context,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	EmotionBefore Emotion   `json:"emotion_before,omitempty"`
	EmotionAfter  Emotion   `json:"emotion_after,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LogEdit is a single requested change to one day's LogEntry. An edit
// re-specifies the day wholesale: the resulting entry is built from the edit
// alone, with no field-level merge against a previous entry.
type LogEdit struct {
	Day           string  `json:"day"` // YYYY-MM-DD format
	Completed     bool    `json:"completed"`
	Quality       Quality `json:"quality,omitempty"`
	DurationMin   int     `json:"duration_min,omitempty"`
	Context       string  `json:"context,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	EmotionBefore Emotion `json:"emotion_before,omitempty"`
	EmotionAfter  Emotion `json:"emotion_after,omitempty"`
}

// Entry builds the LogEntry a successful edit produces.
func (e LogEdit) Entry(now time.Time) LogEntry {
	return LogEntry{
		Day:           e.Day,
		Completed:     e.Completed,
		Quality:       e.Quality,
		DurationMin:   e.DurationMin,
		Context:       e.Context,
		Notes:         e.Notes,
		EmotionBefore: e.EmotionBefore,
		EmotionAfter:  e.EmotionAfter,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
