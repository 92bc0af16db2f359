package cli

import (
	"fmt"
	"time"
)

type IncCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Day in YYYY-MM-DD format (default: today)."`
}

func (c *IncCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habit, err := ctx.Engine.GetByName(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.resolveDay(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Engine.Increment(habit.ID, day, time.Now().In(ctx.Location)); err != nil {
		return err
	}

	habit, _ = ctx.Engine.Get(habit.ID)
	fmt.Printf("%s on %s: %s\n", habit.Name, day, formatProgress(habit, day))
	return nil
}

type DecCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Day in YYYY-MM-DD format (default: today)."`
}

func (c *DecCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habit, err := ctx.Engine.GetByName(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.resolveDay(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Engine.Decrement(habit.ID, day, time.Now().In(ctx.Location)); err != nil {
		return err
	}

	habit, _ = ctx.Engine.Get(habit.ID)
	fmt.Printf("%s on %s: %s\n", habit.Name, day, formatProgress(habit, day))
	return nil
}

type SetCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Count int    `arg:"" help:"Completion count for the day."`
	Date  string `help:"Day in YYYY-MM-DD format (default: today)."`
}

func (c *SetCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	habit, err := ctx.Engine.GetByName(c.Name)
	if err != nil {
		return err
	}
	day, err := ctx.resolveDay(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Engine.SetCount(habit.ID, day, c.Count, time.Now().In(ctx.Location)); err != nil {
		return err
	}

	habit, _ = ctx.Engine.Get(habit.ID)
	fmt.Printf("%s on %s: %s\n", habit.Name, day, formatProgress(habit, day))
	return nil
}
