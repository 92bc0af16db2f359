package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tally/internal/calendar"
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/config"
	"github.com/julianstephens/tally/internal/engine"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Store   string `help:"Storage file path (overrides config)." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize tally storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive today view." default:"1"`
	Today  cli.TodayCmd  `cmd:"" help:"Show today's habit summary."`
	Week   cli.WeekCmd   `cmd:"" help:"Show the weekly grid."`
	Month  cli.MonthCmd  `cmd:"" help:"Show a monthly calendar for a habit."`
	Graph  cli.GraphCmd  `cmd:"" help:"Show a habit's 52-week contribution graph."`
	Inc    cli.IncCmd    `cmd:"" help:"Log one completion for a habit."`
	Dec    cli.DecCmd    `cmd:"" help:"Remove one completion for a habit."`
	Set    cli.SetCmd    `cmd:"" help:"Set a habit's completion count for a day."`
	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits."`
	Remind cli.RemindCmd `cmd:"" help:"Reminder schedule and scheduler."`
	Backup cli.BackupCmd `cmd:"" help:"Create, list, and restore store backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks on the habit store."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tally"),
		kong.Description("Daily habit tracker with weekly, monthly and yearly views"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.StoragePath = CLI.Store
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.DefaultConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	loc, err := calendar.LoadLocation(cfg.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(cfg.StoragePath, ".json") {
		store = storage.NewJSONStore(cfg.StoragePath)
	} else {
		store = storage.NewSQLiteStore(cfg.StoragePath)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:    store,
		Engine:   engine.New(store),
		Config:   cfg,
		Location: loc,
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
