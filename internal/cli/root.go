package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/engine"
	"github.com/julianstephens/habitkit/internal/inference"
	"github.com/julianstephens/habitkit/internal/inference/openai"
	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

type Context struct {
	Store storage.Provider

	// Inference is resolved lazily; set directly in tests to inject a fake.
	Inference inference.Client
}

// InferenceClient returns the AI client, resolving the API key from the
// environment first and the OS keyring second.
func (c *Context) InferenceClient() (inference.Client, error) {
	if c.Inference != nil {
		return c.Inference, nil
	}

	apiKey := os.Getenv(constants.APIKeyEnvVar)
	if apiKey == "" {
		key, err := keyring.GetAPIKey()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no OpenAI API key found. Set %s or run 'habitkit config set-api-key'", constants.APIKeyEnvVar)
			}
			return nil, fmt.Errorf("failed to read API key from keyring: %w", err)
		}
		apiKey = key
	}

	c.Inference = openai.NewClient(apiKey, constants.DefaultInferenceModel, constants.DefaultInferenceRetries)
	return c.Inference, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit finds an active habit by title.
func ResolveHabit(store storage.Provider, title string) (models.Habit, error) {
	habit, err := store.GetHabitByTitle(title)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q not found", title)
	}
	return habit, nil
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// FormatFrequency formats a habit's cadence into a human-readable string
func FormatFrequency(habit models.Habit) string {
	switch habit.Frequency {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly, models.FrequencyCustom:
		details := habit.FrequencyDetails
		if details != nil && len(details.Weekdays) > 0 {
			var days []string
			for _, wd := range details.Weekdays {
				days = append(days, wd.String()[:3])
			}
			return fmt.Sprintf("%s on %s", habit.Frequency, strings.Join(days, ","))
		}
		if details != nil && details.TimesPerWeek > 0 {
			return fmt.Sprintf("%dx per week", details.TimesPerWeek)
		}
		return string(habit.Frequency)
	default:
		return "unknown"
	}
}

// FormatProgress renders streak, level and an XP bar toward the next level.
func FormatProgress(habit models.Habit) string {
	threshold := engine.LevelThreshold(habit.Level)
	const width = 10
	filled := 0
	if threshold > 0 {
		filled = habit.XP * width / threshold
		if filled > width {
			filled = width
		}
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("streak %d | lvl %d [%s] %d/%d xp", habit.Streak, habit.Level, bar, habit.XP, threshold)
}
