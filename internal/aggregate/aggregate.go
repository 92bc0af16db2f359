// Package aggregate derives render-ready day/week/month/year views from
// habit snapshots. Everything here is pure: callers pass an immutable
// snapshot plus an explicit reference day, and nothing is mutated.
package aggregate

import (
	"github.com/julianstephens/tally/internal/calendar"
	"github.com/julianstephens/tally/internal/models"
)

// DayCell is one day of a habit grid. Consumers distinguish three
// rendering states from it: untouched (Ratio == 0), partial (Ratio > 0)
// and done (Completed); Future days render neutral regardless of count.
type DayCell struct {
	Day       calendar.Day
	Count     int
	Ratio     float64
	Completed bool
	Future    bool
}

// Summary is the today-ring numerator and denominator.
type Summary struct {
	Completed int
	Total     int
}

// MonthGrid is a month of cells plus the weekday offset of the 1st
// (0 = Sunday), which callers render as leading blanks.
type MonthGrid struct {
	LeadingBlanks int
	Cells         []DayCell
}

// ContributionWeeks is the number of week columns in the contribution
// matrix.
const ContributionWeeks = 52

func cell(h models.Habit, day, today calendar.Day) DayCell {
	return DayCell{
		Day:       day,
		Count:     h.CountOn(day),
		Ratio:     h.ProgressOn(day),
		Completed: h.CompletedOn(day),
		Future:    calendar.IsFuture(day, today),
	}
}

// DailySummary counts how many of the active habits are completed on
// the given day.
func DailySummary(habits []models.Habit, day calendar.Day) Summary {
	s := Summary{}
	for i := range habits {
		if habits[i].IsArchived {
			continue
		}
		s.Total++
		if habits[i].CompletedOn(day) {
			s.Completed++
		}
	}
	return s
}

// WeeklyGrid builds the seven cells for the supplied week days.
func WeeklyGrid(h models.Habit, week [7]calendar.Day, today calendar.Day) [7]DayCell {
	var cells [7]DayCell
	for i, day := range week {
		cells[i] = cell(h, day, today)
	}
	return cells
}

// MonthlyGrid builds one cell per day of the reference day's month.
// Days after today are flagged Future and must render neutral.
func MonthlyGrid(h models.Habit, month, today calendar.Day) MonthGrid {
	start, dayCount := calendar.MonthInterval(month)
	grid := MonthGrid{
		LeadingBlanks: int(start.Weekday()),
		Cells:         make([]DayCell, 0, dayCount),
	}
	for i := 0; i < dayCount; i++ {
		grid.Cells = append(grid.Cells, cell(h, start.AddDays(i), today))
	}
	return grid
}

// ContributionMatrix builds the 52-week heatmap ending at the week
// containing today. Past weeks carry all seven real days. The current
// (last) week is shown in full as well, with days after today flagged
// Future; a nil slot only appears for a future day outside the current
// week, which the window shape makes unreachable.
func ContributionMatrix(h models.Habit, today calendar.Day) [ContributionWeeks][7]*DayCell {
	var weeks [ContributionWeeks][7]*DayCell

	currentWeekStart := calendar.WeekDays(today)[0]
	firstWeekStart := currentWeekStart.AddWeeks(-(ContributionWeeks - 1))

	for w := 0; w < ContributionWeeks; w++ {
		weekStart := firstWeekStart.AddWeeks(w)
		currentWeek := weekStart == currentWeekStart
		for d := 0; d < 7; d++ {
			day := weekStart.AddDays(d)
			if calendar.IsFuture(day, today) && !currentWeek {
				continue
			}
			c := cell(h, day, today)
			weeks[w][d] = &c
		}
	}

	return weeks
}

// MonthCompletionCount counts the completed days of the month, up to
// and including today.
func MonthCompletionCount(h models.Habit, month, today calendar.Day) int {
	start, dayCount := calendar.MonthInterval(month)
	completed := 0
	for i := 0; i < dayCount; i++ {
		day := start.AddDays(i)
		if calendar.IsFuture(day, today) {
			break
		}
		if h.CompletedOn(day) {
			completed++
		}
	}
	return completed
}

// WeekCompletionCount counts the completed days among the supplied week.
func WeekCompletionCount(h models.Habit, week [7]calendar.Day) int {
	completed := 0
	for _, day := range week {
		if h.CompletedOn(day) {
			completed++
		}
	}
	return completed
}
