package cli

import (
	"fmt"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/calendar"
	"github.com/julianstephens/tally/internal/models"
)

type WeekCmd struct {
	Habit  string `help:"Show a single habit only."`
	Offset int    `help:"Weeks back from the current week." default:"0"`
}

func (c *WeekCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	today := ctx.today()
	week := calendar.WeekDays(today.AddWeeks(-c.Offset))

	habits := ctx.Engine.ListActive()
	if c.Habit != "" {
		habit, err := ctx.Engine.GetByName(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add'.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Week of %s", week[0])))
	fmt.Printf("%-20s", "")
	for _, day := range week {
		label := day.Weekday().String()[:2]
		if calendar.IsToday(day, today) {
			label = todayMarkStyle.Render(label)
		}
		fmt.Printf(" %s", label)
	}
	fmt.Println()

	for _, h := range habits {
		cells := aggregate.WeeklyGrid(h, week, today)
		fmt.Printf("%-20s", h.Name)
		for _, cell := range cells {
			fmt.Printf(" %s ", cellGlyph(cell, h.Color))
		}
		fmt.Printf(" %d/7\n", aggregate.WeekCompletionCount(h, week))
	}

	return nil
}
