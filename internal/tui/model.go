package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/tui/components/habitlist"
)

// HabitFormModel holds the field values for the add-habit form.
type HabitFormModel struct {
	Title       string
	Description string
	Frequency   string
	TimeOfDay   string
	Reminders   bool
}

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

type Model struct {
	store            storage.Provider
	state            constants.SessionState
	keys             KeyMap
	help             help.Model
	habitList        habitlist.Model
	form             *huh.Form
	habitForm        *HabitFormModel
	habitToDeleteID  string
	habitToArchiveID string
	formError        string
	quitting         bool
	width            int
	height           int
}

func NewModel(store storage.Provider) Model {
	habits, err := store.GetAllHabits(false, true)
	if err != nil {
		habits = nil
	}

	return Model{
		store:     store,
		state:     constants.StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: habitlist.New(habits, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Quit, m.keys.Help}}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshHabits reloads the list from storage after any mutation.
func (m *Model) refreshHabits() {
	habits, err := m.store.GetAllHabits(false, true)
	if err != nil {
		return
	}
	m.habitList.SetHabits(habits)
}
