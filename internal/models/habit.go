package models

import (
	"time"

	"github.com/julianstephens/tally/internal/calendar"
)

// Habit represents a tracked daily practice with a numeric target.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"` // hex color, not interpreted by the core
	TargetCount int       `json:"target_count"`
	Unit        string    `json:"unit"` // "times", "glasses", "minutes", etc.
	CreatedAt   time.Time `json:"created_at"`
	IsArchived  bool      `json:"is_archived"`
	SortOrder   int       `json:"sort_order"`

	// Reminder settings, consumed by the notifier only.
	ReminderEnabled bool           `json:"reminder_enabled"`
	ReminderTime    string         `json:"reminder_time,omitempty"` // HH:MM format
	ReminderDays    []time.Weekday `json:"reminder_days,omitempty"`

	// Entries are owned exclusively by this habit, at most one per day.
	Entries []HabitEntry `json:"entries,omitempty"`

	// Unsynced marks an in-memory mutation whose persistent write failed.
	// Runtime state only, never stored.
	Unsynced bool `json:"-"`
}

// HabitEntry records how much of a habit's target was completed on one
// calendar day.
type HabitEntry struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// EntryOn returns the entry for the given day, or nil if none exists.
func (h *Habit) EntryOn(day calendar.Day) *HabitEntry {
	key := day.Key()
	for i := range h.Entries {
		if h.Entries[i].Day == key {
			return &h.Entries[i]
		}
	}
	return nil
}

// CountOn returns the count logged for the given day, 0 if no entry exists.
func (h *Habit) CountOn(day calendar.Day) int {
	if e := h.EntryOn(day); e != nil {
		return e.Count
	}
	return 0
}

// CompletedOn reports whether the day's count reached the target.
func (h *Habit) CompletedOn(day calendar.Day) bool {
	return h.CountOn(day) >= h.TargetCount
}

// ProgressOn returns the day's completion ratio clamped to [0, 1].
// A zero target cannot occur for a validated habit; it yields 0 rather
// than dividing.
func (h *Habit) ProgressOn(day calendar.Day) float64 {
	if h.TargetCount <= 0 {
		return 0
	}
	ratio := float64(h.CountOn(day)) / float64(h.TargetCount)
	if ratio > 1 {
		return 1
	}
	return ratio
}
