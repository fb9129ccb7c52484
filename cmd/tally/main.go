package main

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/cli/habits"
	"github.com/julianstephens/tally/internal/cli/settings"
	"github.com/julianstephens/tally/internal/cli/system"
	"github.com/julianstephens/tally/internal/cli/tasks"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/kv"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/state"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.json for a flat file, anything else for SQLite), 'postgres' to use a stored connection string, or a PostgreSQL URL without a password." env:"TALLY_CONFIG" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr." env:"TALLY_DEBUG"`

	Init   system.InitCmd   `cmd:"" help:"Initialize tally storage."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Stats  system.StatsCmd  `cmd:"" help:"Show task and habit statistics."`
	Export system.ExportCmd `cmd:"" help:"Export all data as JSON or YAML."`
	Backup system.BackupCmd `cmd:"" help:"Manage backups of local storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Check storage, backups and data integrity."`
	Task   struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
		Show   tasks.TaskShowCmd   `cmd:"" help:"Show a task in detail."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Toggle tasks.TaskToggleCmd `cmd:"" help:"Mark a task done or pending."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits and daily completion."`
	Theme   settings.ThemeCmd `cmd:"" help:"Show or toggle dark mode."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	// A missing .env file is normal
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Task and habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	configDir, err := kv.ConfigDir(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("Starting", "command", kctx.Command(), "config", CLI.Config)

	appCtx := &cli.Context{ConfigDir: configDir}
	command := strings.Fields(kctx.Command())[0]

	// Keyring commands configure how storage is reached and must work before it is
	if command != "keyring" {
		provider, err := kv.Open(CLI.Config)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.KV = provider
		appCtx.Store = state.New(provider)

		if command != "init" {
			if err := appCtx.Load(context.Background()); err != nil {
				_ = provider.Close()
				errors.Fatal(err)
			}
		}
	}

	err = kctx.Run(appCtx)
	if appCtx.KV != nil {
		if cerr := appCtx.KV.Close(); cerr != nil {
			logger.Warn("Failed to close storage", "error", cerr)
		}
	}
	errors.Fatal(err)
	_ = logger.Close()
}
