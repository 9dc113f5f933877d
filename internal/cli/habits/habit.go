package habits

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/validation"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Show    HabitShowCmd    `cmd:"" help:"Show one habit's details and progression."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Title        string `arg:"" help:"Habit title."`
	Description  string `help:"Optional description." default:""`
	Frequency    string `help:"Cadence: daily, weekly or custom." default:"daily" enum:"daily,weekly,custom"`
	Weekdays     string `help:"Comma-separated weekdays for weekly/custom habits (e.g. mon,wed,fri)." default:""`
	TimesPerWeek int    `help:"Times-per-week target for custom habits." default:"0"`
	TimeOfDay    string `help:"Preferred time of day: morning, afternoon, evening or any." default:"any" enum:"morning,afternoon,evening,any"`
	Reminders    bool   `help:"Enable reminder advice for this habit."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Check if habit with same title already exists
	_, err := ctx.Store.GetHabitByTitle(c.Title)
	if err == nil {
		return fmt.Errorf("habit with title %q already exists", c.Title)
	}

	habit := models.NewHabit(uuid.New().String(), c.Title)
	habit.Description = c.Description
	habit.Frequency = models.Frequency(c.Frequency)
	habit.TimeOfDay = models.TimeOfDay(c.TimeOfDay)
	habit.Reminders.Enabled = c.Reminders

	if c.Weekdays != "" || c.TimesPerWeek > 0 {
		details := &models.FrequencyDetails{TimesPerWeek: c.TimesPerWeek}
		if c.Weekdays != "" {
			weekdays, err := cli.ParseWeekdays(c.Weekdays)
			if err != nil {
				return err
			}
			details.Weekdays = weekdays
		}
		habit.FrequencyDetails = details
	}

	result := validation.ValidateHabit(habit)
	if err := result.Err(); err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", c.Title, cli.FormatFrequency(habit))
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%-30s %s%s\n", habit.Title, cli.FormatProgress(habit), status)
	}

	return nil
}

type HabitShowCmd struct {
	Title string `arg:"" help:"Habit title."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(ctx.Store, c.Title)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", habit.Title)
	fmt.Println(strings.Repeat("-", len(habit.Title)))
	if habit.Description != "" {
		fmt.Printf("%s\n\n", habit.Description)
	}
	fmt.Printf("Frequency:      %s\n", cli.FormatFrequency(habit))
	fmt.Printf("Time of day:    %s\n", habit.TimeOfDay)
	fmt.Printf("Progress:       %s\n", cli.FormatProgress(habit))
	if habit.LastCompleted != "" {
		fmt.Printf("Last completed: %s\n", habit.LastCompleted)
	} else {
		fmt.Println("Last completed: never")
	}
	if habit.AISuggested {
		fmt.Printf("Suggested:      yes (%s)\n", habit.AIRationale)
	}
	fmt.Printf("Reminders:      %v\n", habit.Reminders.Enabled)
	fmt.Printf("Entries logged: %d\n", len(habit.Log))

	return nil
}

type HabitArchiveCmd struct {
	Title     string `arg:"" help:"Habit title to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(ctx.Store, c.Title)
	if err != nil {
		return err
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived habit: %s\n", c.Title)
	} else {
		if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Archived habit: %s\n", c.Title)
	}

	return nil
}

type HabitDeleteCmd struct {
	Title string `arg:"" help:"Habit title to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := cli.ResolveHabit(ctx.Store, c.Title)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Title)
	fmt.Println("(This is a soft delete. Use 'habitkit habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Title string `arg:"" help:"Habit title to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Get habit including deleted ones
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	var habit *models.Habit
	for i, h := range habits {
		if h.Title == c.Title && h.DeletedAt != nil {
			habit = &habits[i]
			break
		}
	}

	if habit == nil {
		return fmt.Errorf("deleted habit %q not found", c.Title)
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", c.Title)
	return nil
}
