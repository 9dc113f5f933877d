package suggest

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/inference"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/notifier"
	"github.com/julianstephens/habitkit/internal/utils"
)

type RemindCmd struct {
	Title    string `arg:"" optional:"" help:"Limit to a single habit."`
	Activity string `help:"What you are doing right now, for context."`
	DryRun   bool   `help:"Print reminders without sending desktop notifications."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	client, err := ctx.InferenceClient()
	if err != nil {
		return err
	}

	candidates, err := c.dueForReminder(ctx)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Println("No reminder-enabled habits are due and unfinished right now.")
		return nil
	}

	now := time.Now().Format(constants.TimeFormat)
	reminded := 0
	for _, habit := range candidates {
		reqCtx, cancel := context.WithTimeout(context.Background(), constants.InferenceTimeout)
		resp, err := client.AdviseReminder(reqCtx, inference.AdviseReminderRequest{
			HabitTitle:      habit.Title,
			TimeOfDay:       string(habit.TimeOfDay),
			CurrentTime:     now,
			CurrentActivity: c.Activity,
		})
		cancel()
		if err != nil {
			fmt.Printf("  %s: reminder advice unavailable (%v)\n", habit.Title, err)
			continue
		}

		// An empty text means no reminder is shown even when the advisor
		// said to remind.
		if !resp.ShouldRemind || resp.ReminderText == "" {
			continue
		}

		reminded++
		fmt.Printf("  %s: %s\n", habit.Title, resp.ReminderText)
		if !c.DryRun {
			if err := notifier.New().Notify(resp.ReminderText); err != nil {
				logger.Debug("reminder notification not delivered", "habit", habit.Title, "error", err)
			}
		}
	}

	if reminded == 0 {
		fmt.Println("Nothing worth reminding about right now.")
	}
	return nil
}

// dueForReminder selects the habits eligible for a reminder: reminders
// enabled, due today, not yet completed today.
func (c *RemindCmd) dueForReminder(ctx *cli.Context) ([]models.Habit, error) {
	if c.Title != "" {
		habit, err := cli.ResolveHabit(ctx.Store, c.Title)
		if err != nil {
			return nil, err
		}
		if !habit.Reminders.Enabled {
			return nil, fmt.Errorf("reminders are disabled for %q (enable with 'habitkit habit add --reminders' or the TUI)", c.Title)
		}
		return []models.Habit{habit}, nil
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return nil, err
	}

	today := utils.Today()
	var due []models.Habit
	for _, habit := range habits {
		if !habit.Reminders.Enabled || !utils.IsDueToday(habit) || utils.CompletedOn(habit, today) {
			continue
		}
		due = append(due, habit)
	}
	return due, nil
}
