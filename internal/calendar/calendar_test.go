package calendar

import (
	"testing"
	"time"
)

func TestDayOf_SameLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	morning := time.Date(2025, 8, 19, 0, 0, 1, 0, loc)
	night := time.Date(2025, 8, 19, 23, 59, 59, 0, loc)

	if DayOf(morning) != DayOf(night) {
		t.Errorf("expected %v and %v to normalize to the same day", morning, night)
	}
}

func TestDayIn_TimezoneBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 01:30 UTC on the 20th is still the evening of the 19th in New York.
	instant := time.Date(2025, 8, 20, 1, 30, 0, 0, time.UTC)
	got := DayIn(instant, loc)
	want := Day{Year: 2025, Month: time.August, Date: 19}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseDay_RoundTrip(t *testing.T) {
	d, err := ParseDay("2025-02-07")
	if err != nil {
		t.Fatalf("failed to parse day: %v", err)
	}
	if d.Key() != "2025-02-07" {
		t.Errorf("expected key 2025-02-07, got %s", d.Key())
	}

	if _, err := ParseDay("02/07/2025"); err == nil {
		t.Error("expected error for non-canonical format")
	}
}

func TestBefore_Ordering(t *testing.T) {
	a := Day{Year: 2025, Month: time.January, Date: 31}
	b := Day{Year: 2025, Month: time.February, Date: 1}

	if !a.Before(b) {
		t.Error("expected Jan 31 before Feb 1")
	}
	if b.Before(a) {
		t.Error("expected Feb 1 not before Jan 31")
	}
	if a.Before(a) {
		t.Error("expected a day not to be before itself")
	}
}

func TestAddDays_MonthRollover(t *testing.T) {
	d := Day{Year: 2025, Month: time.January, Date: 31}
	got := d.AddDays(1)
	want := Day{Year: 2025, Month: time.February, Date: 1}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	back := got.AddDays(-1)
	if back != d {
		t.Errorf("expected %v, got %v", d, back)
	}
}

func TestAddMonths_Clamping(t *testing.T) {
	tests := []struct {
		name string
		from Day
		n    int
		want Day
	}{
		{"jan 31 to feb", Day{2025, time.January, 31}, 1, Day{2025, time.February, 28}},
		{"jan 31 to leap feb", Day{2024, time.January, 31}, 1, Day{2024, time.February, 29}},
		{"mar 31 back to feb", Day{2025, time.March, 31}, -1, Day{2025, time.February, 28}},
		{"mid month unchanged", Day{2025, time.June, 15}, 2, Day{2025, time.August, 15}},
		{"year rollover", Day{2025, time.December, 10}, 1, Day{2026, time.January, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.AddMonths(tt.n); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMonthInterval(t *testing.T) {
	start, count := MonthInterval(Day{Year: 2025, Month: time.February, Date: 14})
	if start != (Day{Year: 2025, Month: time.February, Date: 1}) {
		t.Errorf("expected month start Feb 1, got %v", start)
	}
	if count != 28 {
		t.Errorf("expected 28 days, got %d", count)
	}

	_, count = MonthInterval(Day{Year: 2024, Month: time.February, Date: 1})
	if count != 29 {
		t.Errorf("expected 29 days in leap February, got %d", count)
	}
}

func TestWeekDays_StartsSunday(t *testing.T) {
	// 2025-08-20 is a Wednesday.
	week := WeekDays(Day{Year: 2025, Month: time.August, Date: 20})

	if week[0] != (Day{Year: 2025, Month: time.August, Date: 17}) {
		t.Errorf("expected week to start Sunday Aug 17, got %v", week[0])
	}
	if week[6] != (Day{Year: 2025, Month: time.August, Date: 23}) {
		t.Errorf("expected week to end Saturday Aug 23, got %v", week[6])
	}
	for i, d := range week {
		if d.Weekday() != time.Weekday(i) {
			t.Errorf("expected weekday %d at index %d, got %v", i, i, d.Weekday())
		}
	}
}

func TestWeekDays_SundayReference(t *testing.T) {
	sunday := Day{Year: 2025, Month: time.August, Date: 17}
	week := WeekDays(sunday)
	if week[0] != sunday {
		t.Errorf("expected a Sunday reference to be its own week start, got %v", week[0])
	}
}

func TestIsFuture(t *testing.T) {
	today := Day{Year: 2025, Month: time.August, Date: 20}

	if IsFuture(today, today) {
		t.Error("today must not be future")
	}
	if IsFuture(today.AddDays(-1), today) {
		t.Error("yesterday must not be future")
	}
	if !IsFuture(today.AddDays(1), today) {
		t.Error("tomorrow must be future")
	}
}
