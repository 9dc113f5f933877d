package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/engine"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tui/components/habitlist"
	"github.com/julianstephens/habitkit/internal/utils"
	"github.com/julianstephens/habitkit/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Add Habit State
	if m.state == constants.StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = constants.StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			habit := models.NewHabit(uuid.New().String(), m.habitForm.Title)
			habit.Description = m.habitForm.Description
			habit.Frequency = models.Frequency(m.habitForm.Frequency)
			habit.TimeOfDay = models.TimeOfDay(m.habitForm.TimeOfDay)
			habit.Reminders.Enabled = m.habitForm.Reminders
			if habit.Frequency != models.FrequencyDaily {
				habit.FrequencyDetails = &models.FrequencyDetails{TimesPerWeek: 1}
			}

			if result := validation.ValidateHabit(habit); result.HasProblems() {
				m.formError = fmt.Sprintf("Invalid habit: %v", result.Err())
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}

			if err := m.store.AddHabit(habit); err == nil {
				m.refreshHabits()
				m.formError = ""
				m.state = constants.StateHabits
			} else {
				// Stay in form state on error to allow retry
				m.formError = fmt.Sprintf("Failed to add habit: %v", err)
				m.form.State = huh.StateNormal
			}
		case huh.StateAborted:
			m.formError = ""
			m.state = constants.StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == constants.StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.store.DeleteHabit(m.habitToDeleteID); err == nil {
					m.refreshHabits()
				}
				m.state = constants.StateHabits
				m.habitToDeleteID = ""
			case "n", "N", "esc", "q":
				m.state = constants.StateHabits
				m.habitToDeleteID = ""
			}
		}
		return m, nil
	}

	// Handle Confirm Archive State
	if m.state == constants.StateConfirmArchive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.store.ArchiveHabit(m.habitToArchiveID); err == nil {
					m.refreshHabits()
				}
				m.state = constants.StateHabits
				m.habitToArchiveID = ""
			case "n", "N", "esc", "q":
				m.state = constants.StateHabits
				m.habitToArchiveID = ""
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 4 // Approximate height for header + help

		h, v := docStyle.GetFrameSize()
		m.habitList.SetSize(msg.Width-h, listHeight-v)

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{
			Frequency: "daily",
			TimeOfDay: "any",
		}
		m.form = NewHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habitlist.MarkHabitMsg:
		m.toggleHabit(msg.ID, true)
		return m, nil

	case habitlist.UnmarkHabitMsg:
		m.toggleHabit(msg.ID, false)
		return m, nil

	case habitlist.ArchiveHabitMsg:
		m.habitToArchiveID = msg.ID
		m.state = constants.StateConfirmArchive
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil

	case habitlist.RestoreHabitMsg:
		if err := m.store.RestoreHabit(msg.ID); err == nil {
			m.refreshHabits()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// toggleHabit records or clears today's completion for a habit, driving the
// streak and XP recomputation through the progression engine.
func (m *Model) toggleHabit(id string, completed bool) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		return
	}

	edit := models.LogEdit{
		Day:       utils.Today(),
		Completed: completed,
	}

	updated, err := engine.ApplyEdit(habit, edit)
	if err != nil {
		return
	}

	if err := m.store.SaveHabit(updated); err == nil {
		m.refreshHabits()
	}
}
