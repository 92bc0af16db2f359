package storage

import "github.com/julianstephens/tally/internal/models"

// Provider is the persistence boundary of the engine. Saves are
// idempotent upserts; the engine reloads after each mutation
// (read-after-write).
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	SaveHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetActiveHabits() ([]models.Habit, error)
	GetAllHabits() ([]models.Habit, error)

	// Entries
	SaveEntry(models.HabitEntry) error

	// Utils
	GetConfigPath() string
}
