package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/cli/backups"
	"github.com/julianstephens/smokelog/internal/cli/insights"
	"github.com/julianstephens/smokelog/internal/cli/logs"
	"github.com/julianstephens/smokelog/internal/cli/profiles"
	"github.com/julianstephens/smokelog/internal/cli/system"
	"github.com/julianstephens/smokelog/internal/config"
	"github.com/julianstephens/smokelog/internal/constants"
	apperrors "github.com/julianstephens/smokelog/internal/errors"
	"github.com/julianstephens/smokelog/internal/keyring"
	"github.com/julianstephens/smokelog/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Database file (.db or .json) or PostgreSQL connection string. Falls back to $SMOKELOG_DB_CONNECTION, the OS keyring, then ~/.config/smokelog/smokelog.db. Credentials must NOT be embedded in a connection string given here."`
	Settings string `help:"Application settings file." type:"path"`
	Debug    bool   `help:"Write debug logs to stderr as well as the log file."`

	Init       system.InitCmd         `cmd:"" help:"Initialize smokelog storage."`
	Migrate    system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor     system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Tui        system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Profile    profiles.ProfileCmd    `cmd:"" help:"Show or update the baseline profile."`
	Log        logs.LogCmd            `cmd:"" help:"Record and browse smoking entries."`
	Today      insights.TodayCmd      `cmd:"" help:"Show today's totals against the baseline."`
	Cumulative insights.CumulativeCmd `cmd:"" help:"Show lifetime estimates from the profile."`
	History    insights.HistoryCmd    `cmd:"" help:"Show the trailing daily chart."`
	Backup     backups.BackupCmd      `cmd:"" help:"Manage database backups."`
	Keyring    system.KeyringCmd      `cmd:"" help:"Manage the connection string stored in the OS keyring."`
}

// stdout receives command output.
var stdout io.Writer = os.Stdout

func newParser() (*kong.Kong, error) {
	return kong.New(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal smoking tracker: log cigarettes, compare against your baseline, watch the trend."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
}

func main() {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	parser, err := newParser()
	if err != nil {
		apperrors.Fatal(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(ctx); err != nil {
		apperrors.Fatal(err)
	}
}

func run(ctx *kong.Context) error {
	command := strings.Fields(ctx.Command())[0]

	settingsPath := CLI.Settings
	if settingsPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		settingsPath = p
	}
	cfg, err := config.LoadOrCreateAt(settingsPath)
	if err != nil {
		return err
	}
	configDir := filepath.Dir(settingsPath)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Logging.Debug,
		ConfigDir: configDir,
		Quiet:     command == "tui",
	}); err != nil {
		return err
	}
	defer logger.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	appCtx := &cli.Context{
		Config:    cfg,
		Location:  loc,
		ConfigDir: configDir,
		Out:       stdout,
	}

	// Keyring commands manage the connection string and never open a store.
	if command == "keyring" {
		return ctx.Run(appCtx)
	}

	target, trusted := resolveTarget(CLI.Config)
	store, err := cli.NewStore(target, trusted)
	if err != nil {
		return err
	}
	defer store.Close()
	appCtx.Store = store
	logger.Debug("Storage selected", "path", store.GetConfigPath(), "command", command)

	// init and doctor load the store themselves.
	if command != "init" && command != "doctor" {
		if err := store.Load(); err != nil {
			return err
		}
	}

	return ctx.Run(appCtx)
}

// resolveTarget picks the storage target: the --config flag, then the
// environment, then the OS keyring, then the default database file. Values
// from the environment or keyring may carry credentials.
func resolveTarget(flag string) (string, bool) {
	if flag != "" {
		return flag, false
	}
	if env := os.Getenv(constants.ConnectionEnvVar); env != "" {
		return env, true
	}
	connStr, err := keyring.GetConnectionString()
	if err == nil {
		return connStr, true
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return constants.DefaultConfigPath, false
}
