package cli

import (
	"testing"
	"time"
)

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays("mon,wed,fri")
	if err != nil {
		t.Fatalf("failed to parse weekdays: %v", err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(days) != len(want) {
		t.Fatalf("expected %d weekdays, got %d", len(want), len(days))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], days[i])
		}
	}
}

func TestParseWeekdays_NumericAndMixedCase(t *testing.T) {
	days, err := parseWeekdays("0, Saturday, 3")
	if err != nil {
		t.Fatalf("failed to parse weekdays: %v", err)
	}
	want := []time.Weekday{time.Sunday, time.Saturday, time.Wednesday}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], days[i])
		}
	}
}

func TestParseWeekdays_Invalid(t *testing.T) {
	for _, bad := range []string{"noday", "7", "-1", "mon,bogus"} {
		if _, err := parseWeekdays(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
