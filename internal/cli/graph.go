package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/aggregate"
)

type GraphCmd struct {
	Habit string `arg:"" help:"Habit name."`
}

// Run prints the 52-week contribution graph, one row per weekday,
// oldest week on the left and the in-progress week on the right.
func (c *GraphCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habit, err := ctx.Engine.GetByName(c.Habit)
	if err != nil {
		return err
	}

	today := ctx.today()
	matrix := aggregate.ContributionMatrix(habit, today)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s — last 52 weeks", habit.Name)))

	dayLabels := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for d := 0; d < 7; d++ {
		var row strings.Builder
		row.WriteString(mutedStyle.Render(fmt.Sprintf("%-4s", dayLabels[d])))
		for w := 0; w < aggregate.ContributionWeeks; w++ {
			if matrix[w][d] == nil {
				row.WriteString(" ")
				continue
			}
			row.WriteString(cellGlyph(*matrix[w][d], habit.Color))
		}
		fmt.Println(row.String())
	}

	return nil
}
