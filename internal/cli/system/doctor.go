package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/session"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/storage/sqlite"
)

// errSkipped marks a check that does not apply to the current backend.
var errSkipped = errors.New("not applicable")

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Profile", run: checkProfile, needsDB: true},
	{name: "Log entries", run: checkLogs, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Interactive session", run: checkSession, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("%w: no schema for this backend", errSkipped)
	}
	st, err := m.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("%w: no schema for this backend", errSkipped)
	}
	st, err := m.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if n := st.Pending(); n > 0 {
		return fmt.Errorf("%d migration(s) pending: current version %d, latest version %d (run 'smokelog migrate')", n, st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, ok := ctx.Backups()
	if !ok {
		return fmt.Errorf("%w: backups cover local SQLite databases only", errSkipped)
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'smokelog backup create'")
	}
	return nil
}

func checkProfile(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile()
	if errors.Is(err, storage.ErrProfileNotSet) {
		return fmt.Errorf("%w: no profile set", errSkipped)
	}
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	return p.Validate(ctx.Clock())
}

func checkLogs(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to read entries: %w", err)
	}
	seen := make(map[string]bool, len(entries))
	now := ctx.Clock()
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry ID found: %s", e.ID)
		}
		seen[e.ID] = true
		if err := e.Validate(); err != nil {
			return err
		}
		if e.Timestamp.After(now.Add(time.Hour)) {
			return fmt.Errorf("entry %s is dated in the future (%s)", e.ID, e.Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := ctx.Settings().Location(); err != nil {
		return err
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	if ctx.ConfigDir == "" {
		return fmt.Errorf("%w: no config directory", errSkipped)
	}
	info, running, err := session.Running(ctx.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to read session lock: %w", err)
	}
	if running {
		return fmt.Errorf("a smokelog session is running (pid %d, since %s)", info.PID, info.Started.In(ctx.Loc()).Format("15:04"))
	}
	return nil
}
