package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/catalog"
	"github.com/julianstephens/tally/internal/engine"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List active habits."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit (terminal, keeps history)."`
	Reorder   HabitReorderCmd   `cmd:"" help:"Reorder habits by name."`
	Templates HabitTemplatesCmd `cmd:"" help:"List the built-in habit templates."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Template    string `help:"Create from a built-in template (see 'habit templates')."`
	Target      int    `help:"Daily target count." default:"1"`
	Unit        string `help:"Unit label (glasses, minutes, ...)." default:"times"`
	Icon        string `help:"Icon identifier."`
	Color       string `help:"Hex color." default:"#007AFF"`
	Remind      string `help:"Reminder time (HH:MM)."`
	RemindDays  string `help:"Reminder weekdays, comma separated (mon,wed,fri)."`
	Interactive bool   `short:"i" help:"Pick a template interactively."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	fields, err := c.fields(ctx)
	if err != nil {
		return err
	}

	habit, err := ctx.Engine.CreateHabit(fields, time.Now().In(ctx.Location))
	if err != nil {
		return err
	}

	fmt.Printf("Added habit %q (target %d %s/day)\n", habit.Name, habit.TargetCount, habit.Unit)
	return nil
}

func (c *HabitAddCmd) fields(ctx *Context) (engine.HabitFields, error) {
	overrides := catalog.Overrides{}
	if c.Remind != "" {
		overrides.ReminderEnabled = true
		overrides.ReminderTime = c.Remind
		if c.RemindDays != "" {
			days, err := parseWeekdays(c.RemindDays)
			if err != nil {
				return engine.HabitFields{}, err
			}
			overrides.ReminderDays = days
		}
	}

	if c.Interactive {
		return c.interactiveFields(overrides)
	}

	if c.Template != "" {
		tmpl, err := catalog.ByName(c.Template)
		if err != nil {
			return engine.HabitFields{}, err
		}
		if c.Target > 1 {
			overrides.TargetCount = c.Target
		}
		return catalog.Instantiate(tmpl, overrides), nil
	}

	return engine.HabitFields{
		Name:            c.Name,
		Icon:            c.Icon,
		Color:           c.Color,
		TargetCount:     c.Target,
		Unit:            c.Unit,
		ReminderEnabled: overrides.ReminderEnabled,
		ReminderTime:    overrides.ReminderTime,
		ReminderDays:    overrides.ReminderDays,
	}, nil
}

func (c *HabitAddCmd) interactiveFields(overrides catalog.Overrides) (engine.HabitFields, error) {
	templates := catalog.Templates()
	options := make([]huh.Option[int], len(templates))
	for i, t := range templates {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%d %s/day)", t.Name, t.TargetCount, t.Unit), i)
	}

	var selected int
	var target string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Pick a habit").
				Options(options...).
				Value(&selected),
			huh.NewInput().
				Title("Daily target (empty keeps the default)").
				Value(&target).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("target must be a positive number")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return engine.HabitFields{}, err
	}

	if target != "" {
		n, err := strconv.Atoi(target)
		if err != nil {
			return engine.HabitFields{}, fmt.Errorf("invalid target %q: %w", target, err)
		}
		overrides.TargetCount = n
	}

	return catalog.Instantiate(templates[selected], overrides), nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habits := ctx.Engine.ListActive()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add'.")
		return nil
	}

	today := ctx.today()
	for _, h := range habits {
		sync := ""
		if h.Unsynced {
			sync = " [unsynced]"
		}
		fmt.Printf("%-20s %-16s reminders: %s%s\n",
			h.Name, formatProgress(h, today), formatReminder(h), sync)
	}
	return nil
}

type HabitEditCmd struct {
	Name       string `arg:"" help:"Habit name."`
	Rename     string `help:"New name."`
	Target     int    `help:"New daily target count."`
	Unit       string `help:"New unit label."`
	Icon       string `help:"New icon identifier."`
	Color      string `help:"New hex color."`
	Remind     string `help:"Reminder time (HH:MM), 'off' disables."`
	RemindDays string `help:"Reminder weekdays, comma separated."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habit, err := ctx.Engine.GetByName(c.Name)
	if err != nil {
		return err
	}

	fields := engine.HabitFields{
		Name:            habit.Name,
		Icon:            habit.Icon,
		Color:           habit.Color,
		TargetCount:     habit.TargetCount,
		Unit:            habit.Unit,
		ReminderEnabled: habit.ReminderEnabled,
		ReminderTime:    habit.ReminderTime,
		ReminderDays:    habit.ReminderDays,
	}

	if c.Rename != "" {
		fields.Name = c.Rename
	}
	if c.Target != 0 {
		fields.TargetCount = c.Target
	}
	if c.Unit != "" {
		fields.Unit = c.Unit
	}
	if c.Icon != "" {
		fields.Icon = c.Icon
	}
	if c.Color != "" {
		fields.Color = c.Color
	}
	switch c.Remind {
	case "":
	case "off":
		fields.ReminderEnabled = false
		fields.ReminderTime = ""
		fields.ReminderDays = nil
	default:
		fields.ReminderEnabled = true
		fields.ReminderTime = c.Remind
	}
	if c.RemindDays != "" {
		days, err := parseWeekdays(c.RemindDays)
		if err != nil {
			return err
		}
		fields.ReminderDays = days
	}

	updated, err := ctx.Engine.EditHabit(habit.ID, fields)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit %q\n", updated.Name)
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habit, err := ctx.Engine.GetByName(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Engine.ArchiveHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Archived habit %q (entries are kept)\n", habit.Name)
	return nil
}

type HabitReorderCmd struct {
	Names []string `arg:"" help:"All active habit names in the desired order."`
}

func (c *HabitReorderCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	ids := make([]string, 0, len(c.Names))
	for _, name := range c.Names {
		habit, err := ctx.Engine.GetByName(name)
		if err != nil {
			return err
		}
		ids = append(ids, habit.ID)
	}

	if err := ctx.Engine.Reorder(ids); err != nil {
		return err
	}

	fmt.Println("Reordered habits.")
	return nil
}

type HabitTemplatesCmd struct{}

func (c *HabitTemplatesCmd) Run(ctx *Context) error {
	for _, t := range catalog.Templates() {
		fmt.Printf("%-14s %d %s/day\n", t.Name, t.TargetCount, t.Unit)
	}
	return nil
}
