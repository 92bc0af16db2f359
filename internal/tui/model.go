package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tally/internal/calendar"
	"github.com/julianstephens/tally/internal/engine"
	"github.com/julianstephens/tally/internal/models"
)

// Model is the interactive today view: one row per active habit with
// its progress bar, increment/decrement bound to keys.
type Model struct {
	engine   *engine.Engine
	loc      *time.Location
	habits   []models.Habit
	today    calendar.Day
	cursor   int
	keys     KeyMap
	help     help.Model
	bars     map[string]progress.Model
	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(eng *engine.Engine, loc *time.Location) Model {
	m := Model{
		engine: eng,
		loc:    loc,
		today:  calendar.Today(loc),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		bars:   make(map[string]progress.Model),
	}
	m.refresh(eng.ListActive())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh swaps in a new habit snapshot and keeps per-habit bars in
// sync with it.
func (m *Model) refresh(habits []models.Habit) {
	m.habits = habits
	for _, h := range habits {
		if _, ok := m.bars[h.ID]; !ok {
			m.bars[h.ID] = progress.New(progress.WithSolidFill(h.Color), progress.WithoutPercentage())
		}
	}
	if m.cursor >= len(m.habits) {
		m.cursor = len(m.habits) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
