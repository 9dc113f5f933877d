package suggest

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/inference"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/validation"
)

type SuggestCmd struct {
	Goal      string `arg:"" help:"What you want to work toward (e.g. 'sleep better')."`
	Count     int    `help:"Number of suggestions to request." default:"3"`
	AutoApply bool   `help:"Add all suggestions without confirmation."`
	DryRun    bool   `help:"Show suggestions without adding any."`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	client, err := ctx.InferenceClient()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	existing := make([]inference.ExistingHabit, 0, len(habits))
	for _, h := range habits {
		existing = append(existing, inference.ExistingHabit{
			Title:     h.Title,
			Frequency: string(h.Frequency),
			TimeOfDay: string(h.TimeOfDay),
			Streak:    h.Streak,
			Level:     h.Level,
		})
	}

	fmt.Printf("Asking for %d habit suggestions toward %q...\n", c.Count, c.Goal)

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.InferenceTimeout)
	defer cancel()

	resp, err := client.SuggestHabits(reqCtx, inference.SuggestHabitsRequest{
		Goal:     c.Goal,
		Existing: existing,
		Count:    c.Count,
	})
	if err != nil {
		return fmt.Errorf("suggestion request failed: %w", err)
	}

	if len(resp.Suggestions) == 0 {
		fmt.Println("No suggestions returned.")
		return nil
	}

	fmt.Printf("\nGot %d suggestion(s):\n\n", len(resp.Suggestions))
	for i, s := range resp.Suggestions {
		displaySuggestion(i+1, s)
	}

	if c.DryRun {
		fmt.Println("This was a dry run. Re-run without --dry-run to add suggestions.")
		return nil
	}

	if c.AutoApply {
		added := 0
		for _, s := range resp.Suggestions {
			if err := addSuggestion(ctx, s); err != nil {
				fmt.Printf("  Failed to add %q: %v\n", s.Title, err)
			} else {
				added++
				fmt.Printf("  Added: %s\n", s.Title)
			}
		}
		fmt.Printf("\nAdded %d/%d suggestions.\n", added, len(resp.Suggestions))
		return nil
	}

	return c.runInteractive(ctx, resp.Suggestions)
}

func (c *SuggestCmd) runInteractive(ctx *cli.Context, suggestions []inference.HabitSuggestion) error {
	added := 0
	skipped := 0

	for i, s := range suggestions {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(suggestions), s.Title)

		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Add this habit?").
					Options(
						huh.NewOption("Add", "add"),
						huh.NewOption("Skip", "skip"),
						huh.NewOption("Skip remaining", "skip_all"),
					).
					Value(&choice),
			),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}

		switch choice {
		case "add":
			if err := addSuggestion(ctx, s); err != nil {
				fmt.Printf("  Failed to add: %v\n", err)
			} else {
				fmt.Println("  Added")
				added++
			}
		case "skip":
			fmt.Println("  Skipped")
			skipped++
		case "skip_all":
			skipped += len(suggestions) - i
			fmt.Printf("\nDone: %d added, %d skipped\n", added, skipped)
			return nil
		}
	}

	fmt.Printf("\nDone: %d added, %d skipped\n", added, skipped)
	return nil
}

func displaySuggestion(num int, s inference.HabitSuggestion) {
	fmt.Printf("%d. %s\n", num, s.Title)
	fmt.Printf("   %s\n", s.Description)
	fmt.Printf("   Why: %s\n", s.Rationale)
	cadence := s.Frequency
	if s.TimeOfDay != "" {
		cadence += ", " + s.TimeOfDay
	}
	fmt.Printf("   Cadence: %s\n\n", cadence)
}

func addSuggestion(ctx *cli.Context, s inference.HabitSuggestion) error {
	if _, err := ctx.Store.GetHabitByTitle(s.Title); err == nil {
		return fmt.Errorf("habit %q already exists", s.Title)
	}

	habit := models.NewHabit(uuid.New().String(), s.Title)
	habit.Description = s.Description
	habit.AISuggested = true
	habit.AIRationale = s.Rationale
	if s.Frequency != "" {
		habit.Frequency = models.Frequency(s.Frequency)
	}
	if s.TimeOfDay != "" {
		habit.TimeOfDay = models.TimeOfDay(s.TimeOfDay)
	}
	// Weekly suggestions arrive without weekdays; let them float in the week
	if habit.Frequency != models.FrequencyDaily && habit.FrequencyDetails == nil {
		habit.FrequencyDetails = &models.FrequencyDetails{TimesPerWeek: 1}
	}

	result := validation.ValidateHabit(habit)
	if err := result.Err(); err != nil {
		return err
	}

	return ctx.Store.AddHabit(habit)
}
