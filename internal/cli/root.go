package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tally/internal/calendar"
	"github.com/julianstephens/tally/internal/config"
	"github.com/julianstephens/tally/internal/engine"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Engine   *engine.Engine
	Config   config.Config
	Location *time.Location
}

// loadEngine opens the store and populates the engine. Every command
// except init starts here.
func (ctx *Context) loadEngine() error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	return ctx.Engine.Load()
}

// today returns the current day in the configured timezone.
func (ctx *Context) today() calendar.Day {
	return calendar.Today(ctx.Location)
}

// resolveDay parses an explicit --date flag or falls back to today.
func (ctx *Context) resolveDay(dateStr string) (calendar.Day, error) {
	if dateStr == "" {
		return ctx.today(), nil
	}
	return calendar.ParseDay(dateStr)
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

func formatReminder(h models.Habit) string {
	if !h.ReminderEnabled || h.ReminderTime == "" {
		return "off"
	}
	if len(h.ReminderDays) == 0 {
		return h.ReminderTime
	}
	var days []string
	for _, wd := range h.ReminderDays {
		days = append(days, wd.String()[:3])
	}
	return fmt.Sprintf("%s on %s", h.ReminderTime, strings.Join(days, ","))
}

func formatProgress(h models.Habit, day calendar.Day) string {
	return fmt.Sprintf("%d/%d %s", h.CountOn(day), h.TargetCount, h.Unit)
}
