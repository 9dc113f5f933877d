package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// collection is the on-disk shape of the JSON store: the entire habit
// collection serialized as one document, keyed by habit id.
type collection struct {
	Version int                     `json:"version"`
	Habits  map[string]models.Habit `json:"habits"`
}

// JSONStore persists the habit collection as a single JSON file. It is loaded
// once and written back whole after every confirmed mutation.
type JSONStore struct {
	path string
	data *collection
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = &collection{
		Version: 1,
		Habits:  make(map[string]models.Habit),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.data != nil {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitkit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.data = &collection{}
	if err := json.Unmarshal(raw, s.data); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.data.Habits == nil {
		s.data.Habits = make(map[string]models.Habit)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	return s.SaveHabit(habit)
}

func (s *JSONStore) SaveHabit(habit models.Habit) error {
	s.data.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	habit, ok := s.data.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return models.Habit{}, fmt.Errorf("habit %s not found", id)
	}
	return habit, nil
}

func (s *JSONStore) GetHabitByTitle(title string) (models.Habit, error) {
	for _, habit := range s.data.Habits {
		if habit.Title == title && habit.DeletedAt == nil {
			return habit, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", title)
}

func (s *JSONStore) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	var habits []models.Habit
	for _, habit := range s.data.Habits {
		if habit.DeletedAt != nil && !includeDeleted {
			continue
		}
		if habit.ArchivedAt != nil && !includeArchived {
			continue
		}
		habits = append(habits, habit)
	}

	// Stable order for display
	sortHabitsByCreation(habits)
	return habits, nil
}

func (s *JSONStore) ArchiveHabit(id string) error {
	habit, ok := s.data.Habits[id]
	if !ok || habit.DeletedAt != nil || habit.ArchivedAt != nil {
		return fmt.Errorf("habit not found or already archived/deleted")
	}
	now := time.Now()
	habit.ArchivedAt = &now
	return s.SaveHabit(habit)
}

func (s *JSONStore) UnarchiveHabit(id string) error {
	habit, ok := s.data.Habits[id]
	if !ok || habit.DeletedAt != nil || habit.ArchivedAt == nil {
		return fmt.Errorf("habit not found or not archived")
	}
	habit.ArchivedAt = nil
	return s.SaveHabit(habit)
}

func (s *JSONStore) DeleteHabit(id string) error {
	habit, ok := s.data.Habits[id]
	if !ok || habit.DeletedAt != nil {
		return fmt.Errorf("habit not found or already deleted")
	}
	now := time.Now()
	habit.DeletedAt = &now
	return s.SaveHabit(habit)
}

func (s *JSONStore) RestoreHabit(id string) error {
	habit, ok := s.data.Habits[id]
	if !ok || habit.DeletedAt == nil {
		return fmt.Errorf("habit not found or not deleted")
	}
	habit.DeletedAt = nil
	return s.SaveHabit(habit)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func sortHabitsByCreation(habits []models.Habit) {
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
}
