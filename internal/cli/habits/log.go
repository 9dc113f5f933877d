package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/engine"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/notifier"
	"github.com/julianstephens/habitkit/internal/utils"
	"github.com/julianstephens/habitkit/internal/validation"
)

type LogCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Date     string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Undo     bool   `help:"Record the day as not completed."`
	Quality  string `help:"How the session went: excellent, good, fair or poor." default:""`
	Duration int    `help:"Duration in minutes." default:"0"`
	Context  string `help:"Where or how the habit happened." default:""`
	Notes    string `help:"Optional note for this entry." default:""`
	Before   string `help:"Emotion before: energized, calm, neutral, tired or stressed." default:""`
	After    string `help:"Emotion after." default:""`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(ctx.Store, c.Title)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = utils.Today()
	}

	edit := models.LogEdit{
		Day:           day,
		Completed:     !c.Undo,
		Quality:       models.Quality(c.Quality),
		DurationMin:   c.Duration,
		Context:       c.Context,
		Notes:         c.Notes,
		EmotionBefore: models.Emotion(c.Before),
		EmotionAfter:  models.Emotion(c.After),
	}

	result := validation.ValidateEdit(edit)
	if err := result.Err(); err != nil {
		return err
	}

	updated, err := engine.ApplyEdit(habit, edit)
	if err != nil {
		return err
	}

	if err := ctx.Store.SaveHabit(updated); err != nil {
		return err
	}

	if c.Undo {
		fmt.Printf("Unmarked %q for %s\n", c.Title, day)
	} else {
		fmt.Printf("Marked %q for %s\n", c.Title, day)
	}
	fmt.Println(cli.FormatProgress(updated))

	if updated.Level > habit.Level {
		msg := fmt.Sprintf("Level up! %s reached level %d", updated.Title, updated.Level)
		fmt.Println(msg)
		// Best effort: the tray app may not be running
		if err := notifier.New().Notify(msg); err != nil {
			logger.Debug("level-up notification not delivered", "error", err)
		}
	}

	return nil
}

type TodayCmd struct {
	All bool `help:"Show all active habits, not just those due today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := utils.Today()
	fmt.Printf("Habits for %s:\n\n", today)

	done := 0
	shown := 0
	for _, habit := range habits {
		if !c.All && !utils.IsDueToday(habit) {
			continue
		}
		shown++
		status := "[ ]"
		if utils.CompletedOn(habit, today) {
			status = "[x]"
			done++
		}
		fmt.Printf("%s %-30s %s\n", status, habit.Title, cli.FormatProgress(habit))
	}

	if shown == 0 {
		fmt.Println("Nothing due today.")
		return nil
	}

	fmt.Printf("\nCompleted: %d/%d\n", done, shown)
	return nil
}

type HistoryCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show history for specific habit only."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	var selected []models.Habit
	if c.Habit != "" {
		for _, h := range habits {
			if h.Title == c.Habit {
				selected = []models.Habit{h}
				break
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
	} else {
		selected = habits
	}

	endDay := time.Now()
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("Habit history (last %d days):\n\n", c.Days)

	const maxNameLen = 20
	fmt.Printf("%-*s", maxNameLen, "Habit")
	for i := 0; i < c.Days; i++ {
		day := startDay.AddDate(0, 0, i)
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()

	fmt.Print(strings.Repeat("-", maxNameLen+c.Days*6))
	fmt.Println()

	for _, habit := range selected {
		name := habit.Title
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		fmt.Printf("%-*s", maxNameLen, name)

		completed := make(map[string]bool)
		for _, entry := range habit.Log {
			if entry.Completed {
				completed[entry.Day] = true
			}
		}

		for i := 0; i < c.Days; i++ {
			day := startDay.AddDate(0, 0, i).Format("2006-01-02")
			switch {
			case completed[day]:
				fmt.Print("  x   ")
			case utils.IsDueOn(habit, startDay.AddDate(0, 0, i)):
				fmt.Print("  .   ")
			default:
				fmt.Print("      ")
			}
		}
		fmt.Println()
	}

	return nil
}
