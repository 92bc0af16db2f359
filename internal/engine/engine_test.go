package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/calendar"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/models"
)

// memStore is an in-memory Provider for engine tests. failSaves makes
// every write fail to exercise the unsynced policy.
type memStore struct {
	habits    map[string]models.Habit
	entries   map[string]models.HabitEntry // keyed habitID/day
	failSaves bool
}

func newMemStore() *memStore {
	return &memStore{
		habits:  make(map[string]models.Habit),
		entries: make(map[string]models.HabitEntry),
	}
}

func (s *memStore) Init() error  { return nil }
func (s *memStore) Load() error  { return nil }
func (s *memStore) Close() error { return nil }

func (s *memStore) SaveHabit(habit models.Habit) error {
	if s.failSaves {
		return fmt.Errorf("disk full")
	}
	habit.Entries = nil
	s.habits[habit.ID] = habit
	return nil
}

func (s *memStore) GetHabit(id string) (models.Habit, error) {
	habit, ok := s.habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	for _, e := range s.entries {
		if e.HabitID == id {
			habit.Entries = append(habit.Entries, e)
		}
	}
	return habit, nil
}

func (s *memStore) GetActiveHabits() ([]models.Habit, error) {
	var habits []models.Habit
	for id, h := range s.habits {
		if h.IsArchived {
			continue
		}
		full, _ := s.GetHabit(id)
		habits = append(habits, full)
	}
	// sort by (sort order, created at)
	for i := 0; i < len(habits); i++ {
		for j := i + 1; j < len(habits); j++ {
			a, b := habits[i], habits[j]
			if b.SortOrder < a.SortOrder ||
				(b.SortOrder == a.SortOrder && b.CreatedAt.Before(a.CreatedAt)) {
				habits[i], habits[j] = b, a
			}
		}
	}
	return habits, nil
}

func (s *memStore) GetAllHabits() ([]models.Habit, error) {
	var habits []models.Habit
	for id := range s.habits {
		full, _ := s.GetHabit(id)
		habits = append(habits, full)
	}
	return habits, nil
}

func (s *memStore) SaveEntry(entry models.HabitEntry) error {
	if s.failSaves {
		return fmt.Errorf("disk full")
	}
	s.entries[entry.HabitID+"/"+entry.Day] = entry
	return nil
}

func (s *memStore) GetConfigPath() string { return "" }

func newTestEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	e := New(store)
	if err := e.Load(); err != nil {
		t.Fatalf("failed to load engine: %v", err)
	}
	return e, store
}

func mustCreate(t *testing.T, e *Engine, fields HabitFields) models.Habit {
	t.Helper()
	habit, err := e.CreateHabit(fields, time.Now())
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	return habit
}

func waterFields() HabitFields {
	return HabitFields{Name: "Drink Water", TargetCount: 8, Unit: "glasses"}
}

var testDay = calendar.Day{Year: 2025, Month: time.August, Date: 19}

func TestCreateHabit_Validation(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.CreateHabit(HabitFields{Name: "", TargetCount: 5}, time.Now())
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
	_, err = e.CreateHabit(HabitFields{Name: "   ", TargetCount: 5}, time.Now())
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for blank name, got %v", err)
	}
	_, err = e.CreateHabit(HabitFields{Name: "Read", TargetCount: 0}, time.Now())
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for zero target, got %v", err)
	}

	if len(e.ListActive()) != 0 {
		t.Error("expected no habits after failed creations")
	}
}

func TestCreateHabit_SortOrderAssignment(t *testing.T) {
	e, _ := newTestEngine(t)

	a := mustCreate(t, e, HabitFields{Name: "A", TargetCount: 1})
	b := mustCreate(t, e, HabitFields{Name: "B", TargetCount: 1})
	c := mustCreate(t, e, HabitFields{Name: "C", TargetCount: 1})

	for i, h := range []models.Habit{a, b, c} {
		if h.SortOrder != i {
			t.Errorf("habit %q: expected sort order %d, got %d", h.Name, i, h.SortOrder)
		}
	}
}

func TestIncrement_ScenarioA(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	for i := 0; i < 3; i++ {
		if err := e.Increment(habit.ID, testDay, time.Now()); err != nil {
			t.Fatalf("increment %d failed: %v", i, err)
		}
	}

	count, err := e.CurrentCount(habit.ID, testDay)
	if err != nil {
		t.Fatalf("failed to get count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}

	ratio, _ := e.ProgressRatio(habit.ID, testDay)
	if ratio != 0.375 {
		t.Errorf("expected ratio 0.375, got %v", ratio)
	}

	done, _ := e.IsCompleted(habit.ID, testDay)
	if done {
		t.Error("expected habit not completed at 3/8")
	}
}

func TestSetCount_ScenarioB(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	if err := e.SetCount(habit.ID, testDay, 8, time.Now()); err != nil {
		t.Fatalf("set count failed: %v", err)
	}
	if err := e.SetCount(habit.ID, testDay, 10, time.Now()); err != nil {
		t.Fatalf("set count failed: %v", err)
	}

	count, _ := e.CurrentCount(habit.ID, testDay)
	if count != 10 {
		t.Errorf("expected count 10, got %d", count)
	}
	ratio, _ := e.ProgressRatio(habit.ID, testDay)
	if ratio != 1.0 {
		t.Errorf("expected ratio clamped to 1.0, got %v", ratio)
	}
	done, _ := e.IsCompleted(habit.ID, testDay)
	if !done {
		t.Error("expected habit completed at 10/8")
	}
}

func TestNoEntry_ScenarioF(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	count, _ := e.CurrentCount(habit.ID, testDay)
	if count != 0 {
		t.Errorf("expected count 0 without entry, got %d", count)
	}
	done, _ := e.IsCompleted(habit.ID, testDay)
	if done {
		t.Error("expected not completed without entry")
	}
	ratio, _ := e.ProgressRatio(habit.ID, testDay)
	if ratio != 0.0 {
		t.Errorf("expected ratio 0.0 without entry, got %v", ratio)
	}
}

func TestEntryUniqueness(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	// A burst of mixed mutations must never yield more than one entry
	// per day.
	now := time.Now()
	e.SetCount(habit.ID, testDay, 4, now)
	e.Increment(habit.ID, testDay, now)
	e.Decrement(habit.ID, testDay, now)
	e.SetCount(habit.ID, testDay, 2, now)
	e.Increment(habit.ID, testDay, now)

	got, err := e.Get(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	entries := 0
	for _, entry := range got.Entries {
		if entry.Day == testDay.Key() {
			entries++
		}
	}
	if entries != 1 {
		t.Errorf("expected exactly 1 entry for the day, got %d", entries)
	}
	count, _ := e.CurrentCount(habit.ID, testDay)
	if count != 3 {
		t.Errorf("expected final count 3, got %d", count)
	}
}

func TestDecrement_ClampsAtZero(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	if err := e.Decrement(habit.ID, testDay, time.Now()); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	count, _ := e.CurrentCount(habit.ID, testDay)
	if count != 0 {
		t.Errorf("expected count clamped to 0, got %d", count)
	}

	if err := e.SetCount(habit.ID, testDay, -5, time.Now()); err != nil {
		t.Fatalf("set count failed: %v", err)
	}
	count, _ = e.CurrentCount(habit.ID, testDay)
	if count != 0 {
		t.Errorf("expected negative set clamped to 0, got %d", count)
	}
}

func TestSetCount_ZeroRetainsEntry(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	e.SetCount(habit.ID, testDay, 5, time.Now())
	e.SetCount(habit.ID, testDay, 0, time.Now())

	got, _ := e.Get(habit.ID)
	found := false
	for _, entry := range got.Entries {
		if entry.Day == testDay.Key() {
			found = true
			if entry.Count != 0 {
				t.Errorf("expected zero-count entry, got %d", entry.Count)
			}
		}
	}
	if !found {
		t.Error("expected zero-count entry to be retained")
	}
}

func TestSetCount_Idempotent(t *testing.T) {
	e, store := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	e.SetCount(habit.ID, testDay, 5, time.Now())
	entriesAfterFirst := len(store.entries)
	e.SetCount(habit.ID, testDay, 5, time.Now())

	if len(store.entries) != entriesAfterFirst {
		t.Errorf("expected no new entries, got %d vs %d", len(store.entries), entriesAfterFirst)
	}
	count, _ := e.CurrentCount(habit.ID, testDay)
	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}
}

func TestReorder_ScenarioD(t *testing.T) {
	e, _ := newTestEngine(t)
	h1 := mustCreate(t, e, HabitFields{Name: "h1", TargetCount: 1})
	h2 := mustCreate(t, e, HabitFields{Name: "h2", TargetCount: 1})
	h3 := mustCreate(t, e, HabitFields{Name: "h3", TargetCount: 1})

	if err := e.Reorder([]string{h3.ID, h1.ID, h2.ID}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	habits := e.ListActive()
	want := []string{"h3", "h1", "h2"}
	for i, name := range want {
		if habits[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, habits[i].Name)
		}
		if habits[i].SortOrder != i {
			t.Errorf("habit %q: expected sort order %d, got %d", name, i, habits[i].SortOrder)
		}
	}
}

func TestReorder_RejectsPartialList(t *testing.T) {
	e, _ := newTestEngine(t)
	h1 := mustCreate(t, e, HabitFields{Name: "h1", TargetCount: 1})
	mustCreate(t, e, HabitFields{Name: "h2", TargetCount: 1})

	if err := e.Reorder([]string{h1.ID}); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for partial list, got %v", err)
	}
	if err := e.Reorder([]string{h1.ID, h1.ID}); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for duplicate ids, got %v", err)
	}
}

func TestArchiveHabit(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	if err := e.ArchiveHabit(habit.ID); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if len(e.ListActive()) != 0 {
		t.Error("expected archived habit out of active list")
	}

	// Idempotent.
	if err := e.ArchiveHabit(habit.ID); err != nil {
		t.Errorf("expected repeated archive to be a no-op, got %v", err)
	}

	// Mutations against archived habits are not found.
	if err := e.SetCount(habit.ID, testDay, 1, time.Now()); !apperrors.IsNotFound(err) {
		t.Errorf("expected not-found error for archived habit, got %v", err)
	}
}

func TestArchiveHabit_Unknown(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.ArchiveHabit("nope"); !apperrors.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestProgressRatio_Bounds(t *testing.T) {
	e, _ := newTestEngine(t)
	habit := mustCreate(t, e, HabitFields{Name: "Read", TargetCount: 3, Unit: "chapters"})

	for _, count := range []int{0, 1, 2, 3, 7, 100} {
		if err := e.SetCount(habit.ID, testDay, count, time.Now()); err != nil {
			t.Fatalf("set count failed: %v", err)
		}
		ratio, err := e.ProgressRatio(habit.ID, testDay)
		if err != nil {
			t.Fatalf("failed to get ratio: %v", err)
		}
		if ratio < 0 || ratio > 1 {
			t.Errorf("count %d: ratio %v out of [0,1]", count, ratio)
		}
	}
}

func TestObservers_ReceiveSnapshots(t *testing.T) {
	e, _ := newTestEngine(t)

	var lastSnapshot []models.Habit
	notified := 0
	e.Subscribe(func(habits []models.Habit) {
		notified++
		lastSnapshot = habits
	})

	habit := mustCreate(t, e, waterFields())
	if notified != 1 {
		t.Fatalf("expected 1 notification after create, got %d", notified)
	}

	// Mutating the snapshot must not affect engine state.
	lastSnapshot[0].Name = "tampered"
	got, _ := e.Get(habit.ID)
	if got.Name != "Drink Water" {
		t.Error("observer snapshot leaked a live reference into the engine")
	}

	e.SetCount(habit.ID, testDay, 2, time.Now())
	if notified != 2 {
		t.Errorf("expected 2 notifications after set, got %d", notified)
	}
}

func TestStorageFailure_KeepsInMemoryState(t *testing.T) {
	e, store := newTestEngine(t)
	habit := mustCreate(t, e, waterFields())

	store.failSaves = true
	err := e.SetCount(habit.ID, testDay, 5, time.Now())
	if err == nil {
		t.Fatal("expected persistence error to surface")
	}

	// In-memory state stays applied and is flagged unsynced.
	count, _ := e.CurrentCount(habit.ID, testDay)
	if count != 5 {
		t.Errorf("expected in-memory count 5 after failed save, got %d", count)
	}
	got, _ := e.Get(habit.ID)
	if !got.Unsynced {
		t.Error("expected habit flagged unsynced after failed save")
	}

	// Store never saw the entry.
	if len(store.entries) != 0 {
		t.Errorf("expected no persisted entries, got %d", len(store.entries))
	}
}
