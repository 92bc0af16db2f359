package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Increment):
			if len(m.habits) > 0 {
				m.err = m.engine.Increment(m.habits[m.cursor].ID, m.today, time.Now().In(m.loc))
				m.refresh(m.engine.ListActive())
			}

		case key.Matches(msg, m.keys.Decrement):
			if len(m.habits) > 0 {
				m.err = m.engine.Decrement(m.habits[m.cursor].ID, m.today, time.Now().In(m.loc))
				m.refresh(m.engine.ListActive())
			}
		}
	}

	return m, nil
}
