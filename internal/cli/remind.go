package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/notifier"
)

type RemindCmd struct {
	List  RemindListCmd  `cmd:"" help:"Show the configured reminder schedule."`
	Serve RemindServeCmd `cmd:"" help:"Run the reminder scheduler in the foreground." default:"1"`
}

type RemindListCmd struct{}

func (c *RemindListCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	reminders := notifier.Schedule(ctx.Engine.ListActive())
	if len(reminders) == 0 {
		fmt.Println("No reminders configured.")
		return nil
	}

	for _, r := range reminders {
		fmt.Printf("%-10s %s  %s\n", r.Day, r.Time, r.Habit)
	}
	return nil
}

type RemindServeCmd struct{}

func (c *RemindServeCmd) Run(ctx *Context) error {
	if err := ctx.loadEngine(); err != nil {
		return err
	}

	n := notifier.New(ctx.Location, func(habit models.Habit) {
		fmt.Printf("[%s] Reminder: %s (%d %s today)\n",
			time.Now().In(ctx.Location).Format("15:04"), habit.Name, habit.TargetCount, habit.Unit)
	})

	// Reschedule whenever the habit set changes.
	ctx.Engine.Subscribe(func(habits []models.Habit) {
		n.Reschedule(habits)
	})
	n.Reschedule(ctx.Engine.ListActive())
	n.Start()
	defer n.Stop()

	logger.Info("reminder scheduler started")
	fmt.Println("Reminder scheduler running, press Ctrl+C to stop.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopping.")
	return nil
}
