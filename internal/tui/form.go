package tui

import "github.com/charmbracelet/huh"

// NewHabitForm builds the add-habit form bound to the given form model.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Custom", "custom"),
				).
				Value(&fm.Frequency),
			huh.NewSelect[string]().
				Title("Time of day").
				Options(
					huh.NewOption("Any", "any"),
					huh.NewOption("Morning", "morning"),
					huh.NewOption("Afternoon", "afternoon"),
					huh.NewOption("Evening", "evening"),
				).
				Value(&fm.TimeOfDay),
			huh.NewConfirm().
				Title("Enable reminders?").
				Value(&fm.Reminders),
		),
	)
}
