package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/tally/internal/calendar"
	"github.com/julianstephens/tally/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName  ConflictType = "duplicate_habit_name"
	ConflictDuplicateSortOrder  ConflictType = "duplicate_sort_order"
	ConflictInvalidTarget       ConflictType = "invalid_target"
	ConflictInvalidReminderTime ConflictType = "invalid_reminder_time"
	ConflictInvalidEntryDay     ConflictType = "invalid_entry_day"
	ConflictDuplicateEntryDay   ConflictType = "duplicate_entry_day"
	ConflictNegativeCount       ConflictType = "negative_count"
	ConflictOrphanedEntry       ConflictType = "orphaned_entry"
)

// Conflict represents a detected inconsistency in the habit data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Habit names involved
	HabitIDs    []string // IDs of habits involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks habits and their entries for data consistency
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks a full habit set for conflicts.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Duplicate names among active habits only; archived habits keep
	// their name without blocking reuse.
	nameIDs := make(map[string][]string)
	for _, habit := range habits {
		if habit.IsArchived || habit.Name == "" {
			continue
		}
		nameIDs[habit.Name] = append(nameIDs[habit.Name], habit.ID)
	}

	names := make([]string, 0, len(nameIDs))
	for name := range nameIDs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ids := nameIDs[name]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", name, ids),
				Items:       []string{name},
				HabitIDs:    ids,
			})
		}
	}

	// Duplicate sort orders among active habits break stable display ordering.
	orderHabits := make(map[int][]string)
	for _, habit := range habits {
		if habit.IsArchived {
			continue
		}
		orderHabits[habit.SortOrder] = append(orderHabits[habit.SortOrder], habit.Name)
	}
	orders := make([]int, 0, len(orderHabits))
	for order := range orderHabits {
		orders = append(orders, order)
	}
	sort.Ints(orders)
	for _, order := range orders {
		hs := orderHabits[order]
		if len(hs) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSortOrder,
				Description: fmt.Sprintf("Habits share sort order %d: %v", order, hs),
				Items:       hs,
			})
		}
	}

	for _, habit := range habits {
		result.Conflicts = append(result.Conflicts, v.validateHabit(habit)...)
	}

	return result
}

// validateHabit checks a single habit and its entries.
func (v *Validator) validateHabit(habit models.Habit) []Conflict {
	var conflicts []Conflict

	if habit.TargetCount < 1 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidTarget,
			Description: fmt.Sprintf("Habit \"%s\" has invalid target count: %d", habit.Name, habit.TargetCount),
			Items:       []string{habit.Name},
			HabitIDs:    []string{habit.ID},
		})
	}

	if habit.ReminderEnabled && !isValidTimeFormat(habit.ReminderTime) {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidReminderTime,
			Description: fmt.Sprintf("Habit \"%s\" has invalid reminder time: %q", habit.Name, habit.ReminderTime),
			Items:       []string{habit.Name},
			HabitIDs:    []string{habit.ID},
		})
	}

	dayCount := make(map[string]int)
	for _, entry := range habit.Entries {
		if _, err := calendar.ParseDay(entry.Day); err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidEntryDay,
				Description: fmt.Sprintf("Habit \"%s\" has entry with invalid day: %q", habit.Name, entry.Day),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
			continue
		}
		dayCount[entry.Day]++

		if entry.Count < 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictNegativeCount,
				Description: fmt.Sprintf("Habit \"%s\" has negative count %d on %s", habit.Name, entry.Count, entry.Day),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}

		if entry.HabitID != "" && entry.HabitID != habit.ID {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictOrphanedEntry,
				Description: fmt.Sprintf("Habit \"%s\" has entry on %s referencing habit ID %s", habit.Name, entry.Day, entry.HabitID),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}
	}

	days := make([]string, 0, len(dayCount))
	for day := range dayCount {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		if dayCount[day] > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateEntryDay,
				Description: fmt.Sprintf("Habit \"%s\" has %d entries on %s (expected at most one)", habit.Name, dayCount[day], day),
				Items:       []string{habit.Name},
				HabitIDs:    []string{habit.ID},
			})
		}
	}

	return conflicts
}

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse("15:04", timeStr)
	return err == nil
}
