// Package calendar is the single source of date truth for tally. Every
// other package compares dates through the Day type; ad hoc time.Time
// comparisons elsewhere are a bug.
package calendar

import (
	"fmt"
	"time"
)

// DayFormat is the canonical day key layout (YYYY-MM-DD).
const DayFormat = "2006-01-02"

// Day is a calendar day in the user's local calendar. Two instants that
// fall on the same local day normalize to equal Days. The zero value is
// not a valid day.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf normalizes an instant to the calendar day it falls on, read in
// the instant's own location. Convert the instant to the user's timezone
// before calling.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Date: d}
}

// DayIn normalizes an instant to the calendar day it falls on in loc.
func DayIn(t time.Time, loc *time.Location) Day {
	return DayOf(t.In(loc))
}

// Today returns the current calendar day in loc.
func Today(loc *time.Location) Day {
	return DayIn(time.Now(), loc)
}

// ParseDay parses a YYYY-MM-DD day key.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DayOf(t), nil
}

// LoadLocation loads an IANA timezone name. "Local" or empty selects the
// system timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Key returns the YYYY-MM-DD form of d, suitable for storage and for
// lexicographic ordering.
func (d Day) Key() string {
	return d.time().Format(DayFormat)
}

func (d Day) String() string { return d.Key() }

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool {
	return d == Day{}
}

// time materializes d at midnight UTC. Only used internally for
// arithmetic; the UTC anchor keeps AddDays immune to DST transitions.
func (d Day) time() time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Date < other.Date
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return other.Before(d)
}

// Weekday returns the day of week (Sunday = 0).
func (d Day) Weekday() time.Weekday {
	return d.time().Weekday()
}

// AddDays returns the day n days after d (negative n goes back).
func (d Day) AddDays(n int) Day {
	return DayOf(d.time().AddDate(0, 0, n))
}

// AddWeeks returns the day n weeks after d.
func (d Day) AddWeeks(n int) Day {
	return d.AddDays(n * 7)
}

// AddMonths returns the day n months after d, clamped to the last day of
// the target month so that Jan 31 + 1 month is Feb 28 (or 29), never a
// rolled-over March date.
func (d Day) AddMonths(n int) Day {
	first := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	date := d.Date
	if max := DaysInMonth(first.Year(), first.Month()); date > max {
		date = max
	}
	return Day{Year: first.Year(), Month: first.Month(), Date: date}
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthInterval returns the first day of ref's month and the number of
// days in it.
func MonthInterval(ref Day) (start Day, dayCount int) {
	start = Day{Year: ref.Year, Month: ref.Month, Date: 1}
	return start, DaysInMonth(ref.Year, ref.Month)
}

// WeekDays returns the 7 consecutive days of the week containing ref,
// starting Sunday.
func WeekDays(ref Day) [7]Day {
	start := ref.AddDays(-int(ref.Weekday()))
	var week [7]Day
	for i := range week {
		week[i] = start.AddDays(i)
	}
	return week
}

// IsToday reports whether d is the supplied reference day.
func IsToday(d, today Day) bool {
	return d == today
}

// IsFuture reports whether d is strictly after the reference day.
func IsFuture(d, today Day) bool {
	return d.After(today)
}
