package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tinywins/internal/cli"
	"github.com/julianstephens/tinywins/internal/cli/backups"
	"github.com/julianstephens/tinywins/internal/cli/days"
	"github.com/julianstephens/tinywins/internal/cli/reports"
	"github.com/julianstephens/tinywins/internal/cli/system"
	"github.com/julianstephens/tinywins/internal/config"
	apperrors "github.com/julianstephens/tinywins/internal/errors"
	"github.com/julianstephens/tinywins/internal/keyring"
	"github.com/julianstephens/tinywins/internal/logger"
	"github.com/julianstephens/tinywins/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path. Defaults to $TINYWINS_CONFIG or ~/.config/tinywins/config.yaml." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd      `cmd:"" help:"Initialize tinywins storage."`
	Tui      system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Day      days.DayCmd         `cmd:"" help:"Plan, complete and check in on a day."`
	Week     reports.WeekCmd     `cmd:"" help:"Summarize a week or custom range."`
	Calendar reports.CalendarCmd `cmd:"" help:"Show a month calendar colored by mood."`
	Export   reports.ExportCmd   `cmd:"" help:"Export history as JSON or YAML."`
	Serve    system.ServeCmd     `cmd:"" help:"Serve the read-only HTTP API."`
	Doctor   system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage state backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Env     system.EnvCmd     `cmd:"" help:"Show the resolved configuration and environment variables."`
}

// Commands that run without loading the stored state.
var noOpen = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
	"env":     true,
}

// Commands that never touch the configured store.
var noStore = map[string]bool{
	"keyring": true,
	"env":     true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tinywins"),
		kong.Description("Three anchors a day, a mood check-in at night"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := run(ctx); err != nil {
		logger.Error("Command execution failed", "command", ctx.Command(), "error", err)
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}
}

func run(kctx *kong.Context) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	command := strings.Fields(kctx.Command())[0]
	if err := logger.Init(logger.Config{
		Debug: cfg.Log.Debug,
		Dir:   cfg.Log.Dir,
		Quiet: command == "tui",
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var store storage.Provider
	if noStore[command] {
		store = storage.NewMemoryStore()
	} else {
		store, err = cli.NewStore(cfg, keyring.Default())
		if err != nil {
			return err
		}
	}

	appCtx, err := cli.NewContext(cfg, store, nil)
	if err != nil {
		return err
	}

	if !noOpen[command] {
		if err := appCtx.Open(); err != nil {
			return err
		}
	}

	runErr := kctx.Run(appCtx)
	return errors.Join(runErr, appCtx.Close())
}
