package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/notifier"
	"github.com/julianstephens/habitkit/internal/utils"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	now := time.Now()
	today := utils.Today()

	n := notifier.New()
	sent := 0

	for _, habit := range habits {
		if !habit.Reminders.Enabled {
			continue
		}
		if !utils.IsDueOn(habit, now) {
			continue
		}
		if utils.CompletedOn(habit, today) {
			continue
		}
		if !inWindow(habit.TimeOfDay, now) {
			continue
		}

		msg := fmt.Sprintf("Reminder: %s is still open today", habit.Title)
		if habit.Streak > 0 {
			msg = fmt.Sprintf("Reminder: %s is still open today (streak: %d)", habit.Title, habit.Streak)
		}

		if c.DryRun {
			fmt.Println("[DryRun] " + msg)
		} else {
			if err := n.Notify(msg); err != nil {
				// Keep checking other habits even when the tray is unreachable
				fmt.Printf("Failed to send notification: %v\n", err)
				continue
			}
		}
		sent++
	}

	if c.DryRun && sent == 0 {
		fmt.Println("No reminders due right now.")
	}

	return nil
}

// inWindow reports whether the current time falls in the habit's preferred
// part of the day. Habits without a preference are always in window.
func inWindow(tod models.TimeOfDay, now time.Time) bool {
	hour := now.Hour()
	switch tod {
	case models.TimeOfDayMorning:
		return hour >= 5 && hour < 12
	case models.TimeOfDayAfternoon:
		return hour >= 12 && hour < 17
	case models.TimeOfDayEvening:
		return hour >= 17 && hour < 23
	default:
		return true
	}
}
