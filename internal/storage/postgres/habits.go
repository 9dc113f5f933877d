package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

const habitColumns = `id, title, description, frequency, frequency_details, time_of_day,
	streak, level, xp, last_completed, ai_suggested, ai_rationale, reminders_enabled,
	created_at, archived_at, deleted_at`

func (s *Store) AddHabit(habit models.Habit) error {
	return s.SaveHabit(habit)
}

// SaveHabit upserts the habit row and replaces its log in one transaction.
func (s *Store) SaveHabit(habit models.Habit) error {
	var details sql.NullString
	if habit.FrequencyDetails != nil {
		data, err := json.Marshal(habit.FrequencyDetails)
		if err != nil {
			return fmt.Errorf("failed to serialize frequency details: %w", err)
		}
		details = sql.NullString{String: string(data), Valid: true}
	}

	var lastCompleted sql.NullString
	if habit.LastCompleted != "" {
		lastCompleted = sql.NullString{String: habit.LastCompleted, Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			frequency = excluded.frequency,
			frequency_details = excluded.frequency_details,
			time_of_day = excluded.time_of_day,
			streak = excluded.streak,
			level = excluded.level,
			xp = excluded.xp,
			last_completed = excluded.last_completed,
			ai_suggested = excluded.ai_suggested,
			ai_rationale = excluded.ai_rationale,
			reminders_enabled = excluded.reminders_enabled,
			archived_at = excluded.archived_at,
			deleted_at = excluded.deleted_at`,
		habit.ID, habit.Title, habit.Description, string(habit.Frequency), details,
		string(habit.TimeOfDay), habit.Streak, habit.Level, habit.XP, lastCompleted,
		habit.AISuggested, habit.AIRationale, habit.Reminders.Enabled,
		habit.CreatedAt, habit.ArchivedAt, habit.DeletedAt)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`DELETE FROM habit_log WHERE habit_id = $1`, habit.ID); err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, entry := range habit.Log {
		_, err := tx.Exec(`
			INSERT INTO habit_log (habit_id, day, completed, quality, duration_min,
				context, notes, emotion_before, emotion_after, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			habit.ID, entry.Day, entry.Completed, string(entry.Quality), entry.DurationMin,
			entry.Context, entry.Notes, string(entry.EmotionBefore), string(entry.EmotionAfter),
			entry.CreatedAt, entry.UpdatedAt)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)

	habit, err := s.scanHabit(row)
	if err != nil {
		return models.Habit{}, err
	}

	habit.Log, err = s.loadLog(habit.ID)
	if err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *Store) GetHabitByTitle(title string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE title = $1 AND deleted_at IS NULL`, title)

	habit, err := s.scanHabit(row)
	if err != nil {
		return models.Habit{}, err
	}

	habit.Log, err = s.loadLog(habit.ID)
	if err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *Store) GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE 1=1`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := s.scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		habits[i].Log, err = s.loadLog(habits[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return habits, nil
}

func (s *Store) ArchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = $1 WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NULL`,
		time.Now(), id)
	if err != nil {
		return err
	}
	return checkAffected(result, "habit not found or already archived/deleted")
}

func (s *Store) UnarchiveHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = NULL WHERE id = $1 AND deleted_at IS NULL AND archived_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return checkAffected(result, "habit not found or not archived")
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now(), id)
	if err != nil {
		return err
	}
	return checkAffected(result, "habit not found or already deleted")
}

func (s *Store) RestoreHabit(id string) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	return checkAffected(result, "habit not found or not deleted")
}

func checkAffected(result sql.Result, notFoundMsg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s", notFoundMsg)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var frequency, timeOfDay string
	var details, lastCompleted sql.NullString
	var archivedAt, deletedAt sql.NullTime

	err := row.Scan(&h.ID, &h.Title, &h.Description, &frequency, &details, &timeOfDay,
		&h.Streak, &h.Level, &h.XP, &lastCompleted, &h.AISuggested, &h.AIRationale,
		&h.Reminders.Enabled, &h.CreatedAt, &archivedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Frequency = models.Frequency(frequency)
	h.TimeOfDay = models.TimeOfDay(timeOfDay)
	if details.Valid {
		var fd models.FrequencyDetails
		if err := json.Unmarshal([]byte(details.String), &fd); err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse frequency details for habit %s: %w", h.ID, err)
		}
		h.FrequencyDetails = &fd
	}
	if lastCompleted.Valid {
		h.LastCompleted = lastCompleted.String
	}
	if archivedAt.Valid {
		t := archivedAt.Time
		h.ArchivedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		h.DeletedAt = &t
	}

	return h, nil
}

func (s *Store) loadLog(habitID string) ([]models.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT day, completed, quality, duration_min, context, notes,
			emotion_before, emotion_after, created_at, updated_at
		FROM habit_log WHERE habit_id = $1
		ORDER BY day DESC`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var log []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		var quality, emotionBefore, emotionAfter string

		err := rows.Scan(&e.Day, &e.Completed, &quality, &e.DurationMin, &e.Context,
			&e.Notes, &emotionBefore, &emotionAfter, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}

		e.Quality = models.Quality(quality)
		e.EmotionBefore = models.Emotion(emotionBefore)
		e.EmotionAfter = models.Emotion(emotionAfter)

		log = append(log, e)
	}
	return log, rows.Err()
}
