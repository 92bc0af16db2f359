package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/tally/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sqlx.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return s.open()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tally init' first")
	}

	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s.db = db

	if err := s.runMigrations(); err != nil {
		db.Close()
		s.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("failed to check schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to apply migration v%d: %w", m.version, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// habitRow is the sqlx scan target for the habits table. Reminder days
// are stored as a JSON array of weekday numbers.
type habitRow struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Icon            string `db:"icon"`
	Color           string `db:"color"`
	TargetCount     int    `db:"target_count"`
	Unit            string `db:"unit"`
	CreatedAt       string `db:"created_at"`
	IsArchived      bool   `db:"is_archived"`
	SortOrder       int    `db:"sort_order"`
	ReminderEnabled bool   `db:"reminder_enabled"`
	ReminderTime    string `db:"reminder_time"`
	ReminderDays    string `db:"reminder_days"`
}

func (r habitRow) toModel() (models.Habit, error) {
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", r.ID, err)
	}

	var days []time.Weekday
	if r.ReminderDays != "" {
		if err := json.Unmarshal([]byte(r.ReminderDays), &days); err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse reminder_days for habit %s: %w", r.ID, err)
		}
	}

	return models.Habit{
		ID:              r.ID,
		Name:            r.Name,
		Icon:            r.Icon,
		Color:           r.Color,
		TargetCount:     r.TargetCount,
		Unit:            r.Unit,
		CreatedAt:       createdAt,
		IsArchived:      r.IsArchived,
		SortOrder:       r.SortOrder,
		ReminderEnabled: r.ReminderEnabled,
		ReminderTime:    r.ReminderTime,
		ReminderDays:    days,
	}, nil
}

func (s *SQLiteStore) SaveHabit(habit models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	days, err := json.Marshal(habit.ReminderDays)
	if err != nil {
		return fmt.Errorf("failed to serialize reminder days: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO habits (
			id, name, icon, color, target_count, unit,
			created_at, is_archived, sort_order,
			reminder_enabled, reminder_time, reminder_days
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			color = excluded.color,
			target_count = excluded.target_count,
			unit = excluded.unit,
			is_archived = excluded.is_archived,
			sort_order = excluded.sort_order,
			reminder_enabled = excluded.reminder_enabled,
			reminder_time = excluded.reminder_time,
			reminder_days = excluded.reminder_days`,
		habit.ID, habit.Name, habit.Icon, habit.Color, habit.TargetCount, habit.Unit,
		habit.CreatedAt.Format(time.RFC3339), habit.IsArchived, habit.SortOrder,
		habit.ReminderEnabled, habit.ReminderTime, string(days),
	)
	if err != nil {
		return fmt.Errorf("failed to save habit %s: %w", habit.ID, err)
	}

	return nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	if s.db == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	var row habitRow
	err := s.db.Get(&row, "SELECT * FROM habits WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to get habit %s: %w", id, err)
	}

	habit, err := row.toModel()
	if err != nil {
		return models.Habit{}, err
	}

	habit.Entries, err = s.entriesFor(id)
	if err != nil {
		return models.Habit{}, err
	}

	return habit, nil
}

func (s *SQLiteStore) GetActiveHabits() ([]models.Habit, error) {
	return s.habits("WHERE is_archived = 0")
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	return s.habits("")
}

func (s *SQLiteStore) habits(where string) ([]models.Habit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var rows []habitRow
	query := "SELECT * FROM habits " + where + " ORDER BY sort_order, created_at"
	if err := s.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	habits := make([]models.Habit, 0, len(rows))
	for _, row := range rows {
		habit, err := row.toModel()
		if err != nil {
			return nil, err
		}
		habit.Entries, err = s.entriesFor(habit.ID)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, nil
}

type entryRow struct {
	ID        string `db:"id"`
	HabitID   string `db:"habit_id"`
	Day       string `db:"day"`
	Count     int    `db:"count"`
	CreatedAt string `db:"created_at"`
}

func (s *SQLiteStore) entriesFor(habitID string) ([]models.HabitEntry, error) {
	var rows []entryRow
	err := s.db.Select(&rows,
		"SELECT * FROM habit_entries WHERE habit_id = ? ORDER BY day", habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for habit %s: %w", habitID, err)
	}

	entries := make([]models.HabitEntry, 0, len(rows))
	for _, row := range rows {
		createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for entry %s: %w", row.ID, err)
		}
		entries = append(entries, models.HabitEntry{
			ID:        row.ID,
			HabitID:   row.HabitID,
			Day:       row.Day,
			Count:     row.Count,
			CreatedAt: createdAt,
		})
	}

	return entries, nil
}

func (s *SQLiteStore) SaveEntry(entry models.HabitEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	// The (habit_id, day) unique index makes this an upsert on the day,
	// so a racing duplicate insert collapses instead of violating the
	// one-entry-per-day rule.
	_, err := s.db.Exec(`
		INSERT INTO habit_entries (id, habit_id, day, count, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET count = excluded.count`,
		entry.ID, entry.HabitID, entry.Day, entry.Count,
		entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save entry for habit %s on %s: %w", entry.HabitID, entry.Day, err)
	}

	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
