package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/smokelog/internal/backup"
	"github.com/julianstephens/smokelog/internal/config"
	"github.com/julianstephens/smokelog/internal/cooldown"
	"github.com/julianstephens/smokelog/internal/logger"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/session"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/storage/sqlite"
)

type Context struct {
	Store     storage.Provider
	Config    *config.Config
	Location  *time.Location
	ConfigDir string

	// Overridable in tests.
	Now func() time.Time
	Out io.Writer
	In  io.Reader
}

// Loc returns the zone used for calendar-day boundaries.
func (c *Context) Loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Clock returns the current instant in the configured zone.
func (c *Context) Clock() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.Loc())
}

func (c *Context) Settings() *config.Config {
	if c.Config == nil {
		return config.DefaultConfig()
	}
	return c.Config
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Profile returns the saved profile, or nil when none has been set.
func (c *Context) Profile() (*models.Profile, error) {
	p, err := c.Store.GetProfile()
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotSet) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// Backups returns a backup manager when the store is a local SQLite file.
func (c *Context) Backups() (*backup.Manager, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, false
	}
	return backup.NewManager(c.Store.GetConfigPath()), true
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, ok := c.Backups()
	if !ok {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Cooldown returns a save gate armed from the newest entry in logs, which
// must be ordered newest first.
func (c *Context) Cooldown(logs []models.LogEntry) *cooldown.Gate {
	gate := cooldown.New(c.Settings().Cooldown())
	if len(logs) > 0 {
		gate.Arm(logs[0].Timestamp)
	}
	return gate
}

// WarnIfSessionActive prints a notice when an interactive session holds the
// lock in the config directory.
func (c *Context) WarnIfSessionActive() {
	if c.ConfigDir == "" {
		return
	}
	info, running, err := session.Running(c.ConfigDir)
	if err != nil {
		logger.Debug("Could not read session lock", "error", err)
		return
	}
	if running {
		c.Printf("⚠️  A smokelog session is open (pid %d); the most recent write wins.\n", info.PID)
	}
}
