package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/cli/backups"
	"github.com/julianstephens/tally/internal/cli/habits"
	"github.com/julianstephens/tally/internal/cli/summary"
	"github.com/julianstephens/tally/internal/cli/system"
	"github.com/julianstephens/tally/internal/cli/tasks"
	"github.com/julianstephens/tally/internal/cli/tracking"
	"github.com/julianstephens/tally/internal/config"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to config.yaml." type:"path" default:"${config_file}"`
	Store   string `help:"Storage override: SQLite path, .json file, PostgreSQL URL, or 'postgres' to use the keyring. Credentials must NOT be embedded in the connection string."`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize tally storage and seed core habits."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Routine system.RoutineCmd `cmd:"" help:"Run a guided mobility routine."`
	Notify  system.NotifyCmd  `cmd:"" help:"Send a reminder of what's left today."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`

	Task    tasks.TaskCmd       `cmd:"" help:"Manage recurring cleaning tasks."`
	Habit   habits.HabitCmd     `cmd:"" help:"Manage habits and habit tracking."`
	Water   tracking.WaterCmd   `cmd:"" help:"Track water intake."`
	Book    tracking.BookCmd    `cmd:"" help:"Manage books."`
	Read    tracking.ReadCmd    `cmd:"" help:"Log reading."`
	Workout tracking.WorkoutCmd `cmd:"" help:"Track workouts."`
	Goal    tracking.GoalCmd    `cmd:"" help:"Track goals."`

	Summary summary.SummaryCmd `cmd:"" help:"Daily summary and reflection."`
	History summary.HistoryCmd `cmd:"" help:"Browse past days."`
	Report  summary.ReportCmd  `cmd:"" help:"Weekly review."`
	Widget  summary.WidgetCmd  `cmd:"" help:"Widget snapshot export."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

// commands that manage the store themselves and must not Load it first.
var selfLoading = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily habits, cleaning rotation and life tracking"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": config.ExpandPath(constants.DefaultConfigFile),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Storage = CLI.Store
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: filepath.Dir(config.ExpandPath(CLI.Config)),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := cli.OpenStore(cfg.Storage)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	firstWeekday, _ := cfg.FirstWeekday()
	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
		Tracker: tracker.New(store, tracker.Options{
			WaterTargetOz: cfg.WaterTargetOz,
			FirstWeekday:  firstWeekday,
			WidgetPath:    config.ExpandPath(cfg.WidgetPath),
		}),
	}

	command := kctx.Command()
	if root := firstWord(command); !selfLoading[root] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		if _, err := appCtx.Tracker.EnsureCoreHabits(appCtx.Now()); err != nil {
			errors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", command, "store", store.GetConfigPath())
	if err := kctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
