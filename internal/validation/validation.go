package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/utils"
)

// ProblemType classifies a validation problem
type ProblemType string

const (
	ProblemEmptyTitle       ProblemType = "empty_title"
	ProblemInvalidDate      ProblemType = "invalid_date"
	ProblemNegativeDuration ProblemType = "negative_duration"
	ProblemInvalidQuality   ProblemType = "invalid_quality"
	ProblemInvalidEmotion   ProblemType = "invalid_emotion"
	ProblemInvalidFrequency ProblemType = "invalid_frequency"
	ProblemMissingWeekdays  ProblemType = "missing_weekdays"
)

// Problem represents a single detected validation problem
type Problem struct {
	Type        ProblemType
	Description string
}

// Result contains all detected problems
type Result struct {
	Problems []Problem
}

// HasProblems returns true if there are any problems
func (r *Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// Err converts the result into an error, or nil if there are no problems.
func (r *Result) Err() error {
	if !r.HasProblems() {
		return nil
	}
	descriptions := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		descriptions[i] = p.Description
	}
	return fmt.Errorf("%s", strings.Join(descriptions, "; "))
}

// ValidateEdit checks a log edit before it reaches the engine.
func ValidateEdit(edit models.LogEdit) Result {
	var result Result

	if !utils.ValidDay(edit.Day) {
		result.Problems = append(result.Problems, Problem{
			Type:        ProblemInvalidDate,
			Description: fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", edit.Day),
		})
	}
	if edit.DurationMin < 0 {
		result.Problems = append(result.Problems, Problem{
			Type:        ProblemNegativeDuration,
			Description: fmt.Sprintf("duration %d cannot be negative", edit.DurationMin),
		})
	}
	if !validQuality(edit.Quality) {
		result.Problems = append(result.Problems, Problem{
			Type:        ProblemInvalidQuality,
			Description: fmt.Sprintf("invalid quality %q (expected excellent, good, fair or poor)", edit.Quality),
		})
	}
	for _, emotion := range []models.Emotion{edit.EmotionBefore, edit.EmotionAfter} {
		if !validEmotion(emotion) {
			result.Problems = append(result.Problems, Problem{
				Type:        ProblemInvalidEmotion,
				Description: fmt.Sprintf("invalid emotion %q", emotion),
			})
		}
	}

	return result
}

// ValidateHabit checks a habit definition at creation or edit time.
func ValidateHabit(habit models.Habit) Result {
	var result Result

	if strings.TrimSpace(habit.Title) == "" {
		result.Problems = append(result.Problems, Problem{
			Type:        ProblemEmptyTitle,
			Description: "habit title cannot be empty",
		})
	}

	switch habit.Frequency {
	case models.FrequencyDaily:
	case models.FrequencyWeekly, models.FrequencyCustom:
		details := habit.FrequencyDetails
		if details == nil || (len(details.Weekdays) == 0 && details.TimesPerWeek == 0) {
			result.Problems = append(result.Problems, Problem{
				Type:        ProblemMissingWeekdays,
				Description: fmt.Sprintf("%s habits need weekdays or a times-per-week target", habit.Frequency),
			})
		}
	default:
		result.Problems = append(result.Problems, Problem{
			Type:        ProblemInvalidFrequency,
			Description: fmt.Sprintf("invalid frequency %q (expected daily, weekly or custom)", habit.Frequency),
		})
	}

	return result
}

func validQuality(q models.Quality) bool {
	switch q {
	case "", models.QualityExcellent, models.QualityGood, models.QualityFair, models.QualityPoor:
		return true
	}
	return false
}

func validEmotion(e models.Emotion) bool {
	switch e {
	case "", models.EmotionEnergized, models.EmotionCalm, models.EmotionNeutral, models.EmotionTired, models.EmotionStressed:
		return true
	}
	return false
}
