package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/tally/internal/models"
)

// Store is the single-document shape persisted by JSONStore. Entries
// live in their own map keyed by "habitID/day" so upserts stay cheap.
type Store struct {
	Version int                          `json:"version"`
	Habits  map[string]models.Habit      `json:"habits"`
	Entries map[string]models.HabitEntry `json:"entries"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func entryKey(habitID, day string) string {
	return habitID + "/" + day
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Habits:  make(map[string]models.Habit),
		Entries: make(map[string]models.HabitEntry),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tally init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Entries == nil {
		s.store.Entries = make(map[string]models.HabitEntry)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) SaveHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	// Entries are persisted individually via SaveEntry.
	habit.Entries = nil
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	habit.Entries = s.entriesFor(id)
	return habit, nil
}

func (s *JSONStore) GetActiveHabits() ([]models.Habit, error) {
	return s.habits(false)
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	return s.habits(true)
}

func (s *JSONStore) habits(includeArchived bool) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if habit.IsArchived && !includeArchived {
			continue
		}
		habit.Entries = s.entriesFor(habit.ID)
		habits = append(habits, habit)
	}

	sortHabits(habits)
	return habits, nil
}

func (s *JSONStore) entriesFor(habitID string) []models.HabitEntry {
	var entries []models.HabitEntry
	for _, entry := range s.store.Entries {
		if entry.HabitID == habitID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Day < entries[j].Day
	})
	return entries
}

func (s *JSONStore) SaveEntry(entry models.HabitEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[entry.HabitID]; !ok {
		return fmt.Errorf("habit not found: %s", entry.HabitID)
	}

	// One entry per habit per day: the map key makes the upsert
	// collapse duplicates regardless of entry ID.
	s.store.Entries[entryKey(entry.HabitID, entry.Day)] = entry
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// sortHabits orders by sort order with creation time as tiebreak, the
// ordering contract every view relies on.
func sortHabits(habits []models.Habit) {
	sort.SliceStable(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
}
