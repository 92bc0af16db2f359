package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/aggregate"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	futureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236"))

	todayMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// cellGlyph renders a day cell as a single colored glyph. The four
// categorical states (future, untouched, partial, complete) map to
// distinct glyphs so the distinction survives colorless terminals.
func cellGlyph(c aggregate.DayCell, color string) string {
	switch {
	case c.Future:
		return futureStyle.Render("·")
	case c.Completed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render("■")
	case c.Ratio > 0:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▪")
	default:
		return mutedStyle.Render("·")
	}
}

// progressBar renders an N-wide ratio bar for list output.
func progressBar(ratio float64, width int, color string) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	bar := ""
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	for i := 0; i < width; i++ {
		if i < filled {
			bar += fill.Render("█")
		} else {
			bar += mutedStyle.Render("░")
		}
	}
	return bar
}
