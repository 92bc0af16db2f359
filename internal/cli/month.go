package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/calendar"
)

type MonthCmd struct {
	Habit string `arg:"" help:"Habit name."`
	Month string `help:"Month in YYYY-MM format (default: current)."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habit, err := ctx.Engine.GetByName(c.Habit)
	if err != nil {
		return err
	}

	today := ctx.today()
	month := today
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM): %w", c.Month, err)
		}
		month = calendar.DayOf(t)
	}

	grid := aggregate.MonthlyGrid(habit, month, today)
	completed := aggregate.MonthCompletionCount(habit, month, today)

	start, dayCount := calendar.MonthInterval(month)
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s %d — %s: %d/%d days completed",
		start.Month, start.Year, habit.Name, completed, dayCount)))
	fmt.Println(mutedStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))

	fmt.Print(strings.Repeat("    ", grid.LeadingBlanks))
	col := grid.LeadingBlanks
	for _, cell := range grid.Cells {
		fmt.Print(renderMonthDay(cell, habit.Color, today))
		col++
		if col == 7 {
			fmt.Println()
			col = 0
		}
	}
	if col != 0 {
		fmt.Println()
	}

	return nil
}

func renderMonthDay(cell aggregate.DayCell, color string, today calendar.Day) string {
	label := fmt.Sprintf("%3d ", cell.Day.Date)
	switch {
	case cell.Future:
		return futureStyle.Render(label)
	case cell.Completed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(label)
	case cell.Ratio > 0:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(label)
	case calendar.IsToday(cell.Day, today):
		return todayMarkStyle.Render(label)
	default:
		return mutedStyle.Render(label)
	}
}
