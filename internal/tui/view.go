package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/aggregate"
	apperrors "github.com/julianstephens/tally/internal/errors"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	summary := aggregate.DailySummary(m.habits, m.today)
	b.WriteString(titleStyle.Render(fmt.Sprintf("Today %s — %d of %d completed", m.today, summary.Completed, summary.Total)))
	b.WriteString("\n\n")

	if len(m.habits) == 0 {
		b.WriteString(emptyStyle.Render("No habits yet. Add one with 'tally habit add'."))
		b.WriteString("\n")
	}

	for i, h := range m.habits {
		cursor := "  "
		nameStyle := rowStyle
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			nameStyle = selectedRowStyle
		}

		mark := "  "
		if h.CompletedOn(m.today) {
			mark = doneStyle.Render("✓ ")
		}

		bar := m.bars[h.ID].ViewAs(h.ProgressOn(m.today))
		b.WriteString(fmt.Sprintf("%s%s%s %s  %d/%d %s\n",
			cursor, mark, nameStyle.Width(18).Render(h.Name), bar,
			h.CountOn(m.today), h.TargetCount, h.Unit))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(apperrors.Format(m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
