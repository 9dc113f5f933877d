package models

import "time"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayAny       TimeOfDay = "any"
)

// FrequencyDetails narrows weekly/custom frequencies to specific weekdays
// and an optional times-per-week target.
type FrequencyDetails struct {
	Weekdays     []time.Weekday `json:"weekdays,omitempty"`
	TimesPerWeek int            `json:"times_per_week,omitempty"`
}

// ReminderSettings gates whether the reminder advisor is consulted for a habit.
type ReminderSettings struct {
	Enabled bool `json:"enabled"`
}

// Habit represents a recurring practice to track, together with the state the
// engine derives from its log: streak, XP and level.
type Habit struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Frequency        Frequency         `json:"frequency"`
	FrequencyDetails *FrequencyDetails `json:"frequency_details,omitempty"`
	TimeOfDay        TimeOfDay         `json:"time_of_day"`
	Log              []LogEntry        `json:"log"`
	Streak           int               `json:"streak"`
	Level            int               `json:"level"`
	XP               int               `json:"xp"`
	LastCompleted    string            `json:"last_completed,omitempty"` // YYYY-MM-DD format, empty when never completed
	AISuggested      bool              `json:"ai_suggested,omitempty"`
	AIRationale      string            `json:"ai_rationale,omitempty"`
	Reminders        ReminderSettings  `json:"reminder_settings"`
	CreatedAt        time.Time         `json:"created_at"`
	ArchivedAt       *time.Time        `json:"archived_at,omitempty"`
	DeletedAt        *time.Time        `json:"deleted_at,omitempty"`
}

// NewHabit creates a habit with fresh progression state.
func NewHabit(id, title string) Habit {
	return Habit{
		ID:        id,
		Title:     title,
		Frequency: FrequencyDaily,
		TimeOfDay: TimeOfDayAny,
		Streak:    0,
		Level:     1,
		XP:        0,
		CreatedAt: time.Now(),
	}
}
