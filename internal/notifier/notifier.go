// Package notifier schedules habit reminders. It only reads the
// reminder fields the engine exposes; the engine itself never
// schedules anything.
package notifier

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
)

// SendFunc delivers a single reminder.
type SendFunc func(habit models.Habit)

// Notifier wraps cron-based reminder jobs.
type Notifier struct {
	cron *cron.Cron
	send SendFunc
	jobs []cron.EntryID
}

func New(loc *time.Location, send SendFunc) *Notifier {
	return &Notifier{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		send: send,
	}
}

// Reschedule replaces all reminder jobs with those derived from the
// supplied habit snapshot. Habits with invalid reminder times are
// skipped with a warning rather than failing the batch.
func (n *Notifier) Reschedule(habits []models.Habit) {
	for _, id := range n.jobs {
		n.cron.Remove(id)
	}
	n.jobs = n.jobs[:0]

	for _, habit := range habits {
		if !habit.ReminderEnabled || habit.ReminderTime == "" {
			continue
		}
		for _, day := range habit.ReminderDays {
			spec, err := buildWeeklySpec(habit.ReminderTime, day)
			if err != nil {
				logger.Warn("skipping reminder with invalid time", "habit", habit.Name, "time", habit.ReminderTime, "error", err)
				continue
			}
			habit := habit
			id, err := n.cron.AddFunc(spec, func() { n.send(habit) })
			if err != nil {
				logger.Warn("failed to schedule reminder", "habit", habit.Name, "error", err)
				continue
			}
			n.jobs = append(n.jobs, id)
		}
	}
}

func (n *Notifier) Start() {
	n.cron.Start()
}

func (n *Notifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
}

// buildWeeklySpec converts an HH:MM time and weekday into a cron spec
// (second minute hour dom month dow).
func buildWeeklySpec(timeStr string, day time.Weekday) (string, error) {
	hour, minute, err := parseClock(timeStr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0 %d %d * * %d", minute, hour, int(day)), nil
}

func parseClock(timeStr string) (hour, minute int, err error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", timeStr)
	}
	return hour, minute, nil
}

// Reminder is one scheduled reminder slot, for display.
type Reminder struct {
	HabitID string
	Habit   string
	Day     time.Weekday
	Time    string
}

// Schedule lists the reminder slots configured across the supplied
// habits, ordered by weekday then time.
func Schedule(habits []models.Habit) []Reminder {
	var reminders []Reminder
	for _, habit := range habits {
		if !habit.ReminderEnabled || habit.ReminderTime == "" {
			continue
		}
		for _, day := range habit.ReminderDays {
			reminders = append(reminders, Reminder{
				HabitID: habit.ID,
				Habit:   habit.Name,
				Day:     day,
				Time:    habit.ReminderTime,
			})
		}
	}
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].Day != reminders[j].Day {
			return reminders[i].Day < reminders[j].Day
		}
		if reminders[i].Time != reminders[j].Time {
			return reminders[i].Time < reminders[j].Time
		}
		return reminders[i].Habit < reminders[j].Habit
	})
	return reminders
}
