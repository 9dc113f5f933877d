package inference

import (
	"context"
)

// Client interface defines the methods for AI inference operations
type Client interface {
	SuggestHabits(ctx context.Context, params SuggestHabitsRequest) (SuggestHabitsResponse, error)
	AdviseReminder(ctx context.Context, params AdviseReminderRequest) (AdviseReminderResponse, error)
}

// ExistingHabit summarizes one of the user's current habits for prompt context
type ExistingHabit struct {
	Title     string `json:"title"`
	Frequency string `json:"frequency"`
	TimeOfDay string `json:"time_of_day,omitempty"`
	Streak    int    `json:"streak"`
	Level     int    `json:"level"`
}

// SuggestHabitsRequest holds parameters for generating habit suggestions
type SuggestHabitsRequest struct {
	Goal     string          `json:"goal"`
	Existing []ExistingHabit `json:"existing_habits,omitempty"`
	Count    int             `json:"count"`
}

type SuggestHabitsResponse struct {
	Suggestions []HabitSuggestion
}

// HabitSuggestion represents a single suggested habit
type HabitSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`
	Frequency   string `json:"frequency"`
	TimeOfDay   string `json:"time_of_day,omitempty"`
}

// AdviseReminderRequest describes one habit and the moment the reminder
// decision is being made
type AdviseReminderRequest struct {
	HabitTitle      string `json:"habit_title"`
	TimeOfDay       string `json:"time_of_day,omitempty"`
	CurrentTime     string `json:"current_time"`
	CurrentActivity string `json:"current_activity,omitempty"`
}

// AdviseReminderResponse says whether to remind right now and with what text.
// ShouldRemind with empty text means no reminder is shown.
type AdviseReminderResponse struct {
	ShouldRemind bool   `json:"should_remind"`
	ReminderText string `json:"reminder_text,omitempty"`
}
