// Package catalog holds the built-in habit templates used to pre-fill
// creation.
package catalog

import (
	"time"

	"github.com/julianstephens/tally/internal/engine"
	apperrors "github.com/julianstephens/tally/internal/errors"
)

// Template is a predefined habit archetype.
type Template struct {
	Name        string
	Icon        string
	Color       string
	TargetCount int
	Unit        string
}

var templates = []Template{
	{Name: "Drink Water", Icon: "drop.fill", Color: "#007AFF", TargetCount: 80, Unit: "oz"},
	{Name: "Exercise", Icon: "figure.run", Color: "#FF3B30", TargetCount: 1, Unit: "session"},
	{Name: "Read", Icon: "book.fill", Color: "#FF9500", TargetCount: 30, Unit: "minutes"},
	{Name: "Meditate", Icon: "brain.head.profile", Color: "#AF52DE", TargetCount: 10, Unit: "minutes"},
	{Name: "Walk", Icon: "figure.walk", Color: "#34C759", TargetCount: 10000, Unit: "steps"},
	{Name: "Sleep Early", Icon: "bed.double.fill", Color: "#5856D6", TargetCount: 1, Unit: "night"},
	{Name: "Journal", Icon: "pencil", Color: "#FF2D92", TargetCount: 1, Unit: "entry"},
	{Name: "Stretch", Icon: "figure.flexibility", Color: "#32D74B", TargetCount: 1, Unit: "session"},
}

// Templates returns the ordered template list.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// ByName looks up a template by its display name.
func ByName(name string) (Template, error) {
	for _, t := range templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, apperrors.NotFoundf("template %q", name)
}

// Overrides are the optional customizations applied on top of a
// template before creation.
type Overrides struct {
	TargetCount     int // 0 keeps the template target
	ReminderEnabled bool
	ReminderTime    string // HH:MM format
	ReminderDays    []time.Weekday
}

// Instantiate turns a template plus overrides into creation fields.
func Instantiate(t Template, o Overrides) engine.HabitFields {
	target := t.TargetCount
	if o.TargetCount > 0 {
		target = o.TargetCount
	}
	return engine.HabitFields{
		Name:            t.Name,
		Icon:            t.Icon,
		Color:           t.Color,
		TargetCount:     target,
		Unit:            t.Unit,
		ReminderEnabled: o.ReminderEnabled,
		ReminderTime:    o.ReminderTime,
		ReminderDays:    o.ReminderDays,
	}
}
