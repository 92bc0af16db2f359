// Package engine owns the canonical in-memory list of active habits and
// every mutation applied to it. It is designed for a single writer; the
// embedding application serializes mutating calls. Reads hand out
// snapshot copies, never live references.
package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/calendar"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
)

// HabitFields are the caller-editable fields of a habit.
type HabitFields struct {
	Name            string
	Icon            string
	Color           string
	TargetCount     int
	Unit            string
	ReminderEnabled bool
	ReminderTime    string // HH:MM format
	ReminderDays    []time.Weekday
}

// Observer receives a snapshot of the active habit list after every
// mutation.
type Observer func(habits []models.Habit)

// Engine is the habit progress engine. It mutates habits through the
// injected store and reloads its list after each write (read-after-write).
//
// Persistence failure policy: the in-memory mutation stays applied and
// the habit is flagged Unsynced; the error is still returned so callers
// never see a silent success.
type Engine struct {
	store     storage.Provider
	habits    []models.Habit
	observers []Observer
}

// New creates an engine over the given store. Call Load before use.
func New(store storage.Provider) *Engine {
	return &Engine{store: store}
}

// Load populates the in-memory habit list from the store.
func (e *Engine) Load() error {
	habits, err := e.store.GetActiveHabits()
	if err != nil {
		return err
	}
	e.habits = habits
	return nil
}

// Subscribe registers an observer notified after every mutation.
func (e *Engine) Subscribe(obs Observer) {
	e.observers = append(e.observers, obs)
}

func (e *Engine) publish() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.snapshot()
	for _, obs := range e.observers {
		obs(snap)
	}
}

// snapshot deep-copies the active list so consumers can never reach
// into engine state.
func (e *Engine) snapshot() []models.Habit {
	habits := make([]models.Habit, len(e.habits))
	copy(habits, e.habits)
	for i := range habits {
		entries := make([]models.HabitEntry, len(habits[i].Entries))
		copy(entries, habits[i].Entries)
		habits[i].Entries = entries
	}
	return habits
}

// ListActive returns a snapshot of the active habits, sorted by
// sort order with creation time as tiebreak.
func (e *Engine) ListActive() []models.Habit {
	return e.snapshot()
}

// Get returns a copy of the active habit with the given id.
func (e *Engine) Get(id string) (models.Habit, error) {
	i := e.indexOf(id)
	if i < 0 {
		return models.Habit{}, apperrors.NotFoundf("habit %q", id)
	}
	snap := e.snapshot()
	return snap[i], nil
}

// GetByName returns a copy of the active habit with the given name.
func (e *Engine) GetByName(name string) (models.Habit, error) {
	for i := range e.habits {
		if e.habits[i].Name == name {
			return e.snapshot()[i], nil
		}
	}
	return models.Habit{}, apperrors.NotFoundf("habit %q", name)
}

func (e *Engine) indexOf(id string) int {
	for i := range e.habits {
		if e.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func validateFields(fields HabitFields) error {
	if strings.TrimSpace(fields.Name) == "" {
		return apperrors.Validationf("habit name must not be empty")
	}
	if fields.TargetCount < 1 {
		return apperrors.Validationf("target count must be at least 1, got %d", fields.TargetCount)
	}
	return nil
}

// CreateHabit validates fields and adds a new habit at the end of the
// active ordering.
func (e *Engine) CreateHabit(fields HabitFields, now time.Time) (models.Habit, error) {
	if err := validateFields(fields); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:              uuid.New().String(),
		Name:            fields.Name,
		Icon:            fields.Icon,
		Color:           fields.Color,
		TargetCount:     fields.TargetCount,
		Unit:            fields.Unit,
		CreatedAt:       now,
		SortOrder:       len(e.habits),
		ReminderEnabled: fields.ReminderEnabled,
		ReminderTime:    fields.ReminderTime,
		ReminderDays:    fields.ReminderDays,
	}

	if err := e.store.SaveHabit(habit); err != nil {
		habit.Unsynced = true
		e.habits = append(e.habits, habit)
		e.publish()
		return habit, err
	}

	err := e.reload()
	e.publish()
	created, getErr := e.Get(habit.ID)
	if getErr == nil {
		return created, err
	}
	return habit, err
}

// EditHabit updates the editable fields of an active habit in place.
func (e *Engine) EditHabit(id string, fields HabitFields) (models.Habit, error) {
	if err := validateFields(fields); err != nil {
		return models.Habit{}, err
	}

	i := e.indexOf(id)
	if i < 0 {
		return models.Habit{}, apperrors.NotFoundf("habit %q", id)
	}

	habit := &e.habits[i]
	habit.Name = fields.Name
	habit.Icon = fields.Icon
	habit.Color = fields.Color
	habit.TargetCount = fields.TargetCount
	habit.Unit = fields.Unit
	habit.ReminderEnabled = fields.ReminderEnabled
	habit.ReminderTime = fields.ReminderTime
	habit.ReminderDays = fields.ReminderDays

	return e.persistHabit(i)
}

// ArchiveHabit soft-deletes a habit. Archival is terminal and the call
// is idempotent: archiving an already archived habit is a no-op.
func (e *Engine) ArchiveHabit(id string) error {
	i := e.indexOf(id)
	if i < 0 {
		// Not active. Already archived is fine; unknown is an error.
		habit, err := e.store.GetHabit(id)
		if err != nil || !habit.IsArchived {
			return apperrors.NotFoundf("habit %q", id)
		}
		return nil
	}

	e.habits[i].IsArchived = true
	_, err := e.persistHabit(i)
	return err
}

// Reorder reassigns sort order to match the supplied id list (0-based).
// The list must contain exactly the active habits. The in-memory list
// is swapped atomically so readers never observe a partial order.
func (e *Engine) Reorder(ids []string) error {
	if len(ids) != len(e.habits) {
		return apperrors.Validationf("reorder list has %d habits, expected %d", len(ids), len(e.habits))
	}

	reordered := make([]models.Habit, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for pos, id := range ids {
		if seen[id] {
			return apperrors.Validationf("duplicate habit %q in reorder list", id)
		}
		seen[id] = true
		i := e.indexOf(id)
		if i < 0 {
			return apperrors.NotFoundf("habit %q", id)
		}
		habit := e.habits[i]
		habit.SortOrder = pos
		reordered = append(reordered, habit)
	}

	var saveErr error
	for i := range reordered {
		if err := e.store.SaveHabit(reordered[i]); err != nil {
			reordered[i].Unsynced = true
			saveErr = err
		}
	}

	if saveErr != nil {
		e.habits = reordered
		e.publish()
		return saveErr
	}

	err := e.reload()
	e.publish()
	return err
}

// SetCount records the completion count for a habit on a day, clamped
// to zero. The first mutation for a day lazily creates its entry;
// setting zero afterwards keeps a zero-count entry rather than deleting
// it. Idempotent: repeating the same value changes nothing observable.
func (e *Engine) SetCount(id string, day calendar.Day, count int, now time.Time) error {
	if count < 0 {
		count = 0
	}

	i := e.indexOf(id)
	if i < 0 {
		return apperrors.NotFoundf("habit %q", id)
	}
	habit := &e.habits[i]

	entry := habit.EntryOn(day)
	if entry == nil {
		habit.Entries = append(habit.Entries, models.HabitEntry{
			ID:        uuid.New().String(),
			HabitID:   habit.ID,
			Day:       day.Key(),
			Count:     count,
			CreatedAt: now,
		})
		entry = &habit.Entries[len(habit.Entries)-1]
	} else {
		entry.Count = count
	}

	if err := e.store.SaveEntry(*entry); err != nil {
		habit.Unsynced = true
		logger.Warn("entry not persisted, keeping in-memory state", "habit", habit.Name, "day", day.Key(), "error", err)
		e.publish()
		return err
	}

	err := e.reload()
	e.publish()
	return err
}

// Increment adds one to the habit's count for the day.
func (e *Engine) Increment(id string, day calendar.Day, now time.Time) error {
	current, err := e.CurrentCount(id, day)
	if err != nil {
		return err
	}
	return e.SetCount(id, day, current+1, now)
}

// Decrement subtracts one from the habit's count for the day, clamped
// at zero.
func (e *Engine) Decrement(id string, day calendar.Day, now time.Time) error {
	current, err := e.CurrentCount(id, day)
	if err != nil {
		return err
	}
	return e.SetCount(id, day, current-1, now)
}

// CurrentCount returns the count logged for the day, 0 without an entry.
func (e *Engine) CurrentCount(id string, day calendar.Day) (int, error) {
	i := e.indexOf(id)
	if i < 0 {
		return 0, apperrors.NotFoundf("habit %q", id)
	}
	return e.habits[i].CountOn(day), nil
}

// IsCompleted reports whether the day's count reached the target.
func (e *Engine) IsCompleted(id string, day calendar.Day) (bool, error) {
	i := e.indexOf(id)
	if i < 0 {
		return false, apperrors.NotFoundf("habit %q", id)
	}
	return e.habits[i].CompletedOn(day), nil
}

// ProgressRatio returns the day's completion ratio in [0, 1].
func (e *Engine) ProgressRatio(id string, day calendar.Day) (float64, error) {
	i := e.indexOf(id)
	if i < 0 {
		return 0, apperrors.NotFoundf("habit %q", id)
	}
	return e.habits[i].ProgressOn(day), nil
}

// persistHabit saves the habit at index i, reloads the list, and
// publishes. On save failure the in-memory mutation stays with the
// habit flagged Unsynced.
func (e *Engine) persistHabit(i int) (models.Habit, error) {
	habit := e.habits[i]
	if err := e.store.SaveHabit(habit); err != nil {
		e.habits[i].Unsynced = true
		logger.Warn("habit not persisted, keeping in-memory state", "habit", habit.Name, "error", err)
		e.publish()
		return e.habits[i], err
	}

	err := e.reload()
	e.publish()
	if j := e.indexOf(habit.ID); j >= 0 {
		return e.habits[j], err
	}
	return habit, err
}

// reload re-reads the active list from the store. Failure here is
// logged but keeps the current in-memory list usable.
func (e *Engine) reload() error {
	habits, err := e.store.GetActiveHabits()
	if err != nil {
		logger.Error("failed to reload habits after write", "error", err)
		return err
	}
	e.habits = habits
	return nil
}
