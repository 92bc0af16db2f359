package cli

import (
	"fmt"

	"github.com/julianstephens/tally/internal/aggregate"
)

type TodayCmd struct {
	Date string `help:"Day in YYYY-MM-DD format (default: today)."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	day, err := ctx.resolveDay(c.Date)
	if err != nil {
		return err
	}

	habits := ctx.Engine.ListActive()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add'.")
		return nil
	}

	summary := aggregate.DailySummary(habits, day)
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s — %d of %d completed", day, summary.Completed, summary.Total)))
	fmt.Println()

	for _, h := range habits {
		ratio := h.ProgressOn(day)
		mark := " "
		if h.CompletedOn(day) {
			mark = todayMarkStyle.Render("✓")
		}
		fmt.Printf("%s %-20s %s %s\n",
			mark, h.Name, progressBar(ratio, 16, h.Color), formatProgress(h, day))
	}

	return nil
}
