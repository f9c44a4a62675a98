package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/cooldown"
	"github.com/julianstephens/smokelog/internal/storage"
)

// execute runs one command against an isolated database and settings file.
func execute(t *testing.T, dir, db string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	stdout = out
	t.Cleanup(func() { stdout = os.Stdout })

	parser, err := newParser()
	require.NoError(t, err)
	full := append([]string{
		"--config", filepath.Join(dir, db),
		"--settings", filepath.Join(dir, "config.yaml"),
	}, args...)
	ctx, err := parser.Parse(full)
	require.NoError(t, err)

	err = run(ctx)
	return out.String(), err
}

func TestWorkflow_SQLite(t *testing.T) {
	dir := t.TempDir()
	must := func(args ...string) string {
		t.Helper()
		out, err := execute(t, dir, "smokelog.db", args...)
		require.NoError(t, err, "smokelog %v\n%s", args, out)
		return out
	}

	assert.Contains(t, must("init"), "Initialized smokelog storage at:")
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	assert.Contains(t, must("profile", "set",
		"--start-month", "Jan", "--start-year", "2015", "--avg-per-day", "12",
		"--per-pack", "20", "--nicotine", "0.8", "--tar", "8"), "✓ Profile created.")
	assert.Contains(t, must("profile"), "Smoking since:   Jan 2015")

	assert.Contains(t, must("log", "add", "-n", "2", "-l", "home", "-t", "Boredom"), "✓ Logged 2 cigarettes")

	_, err := execute(t, dir, "smokelog.db", "log", "add")
	assert.True(t, errors.Is(err, cooldown.ErrCoolingDown), "expected cooldown error, got %v", err)

	assert.Contains(t, must("log", "add", "--force"), "✓ Logged 1 cigarette")
	assert.Contains(t, must("today"), "Smoked:     3 cigarettes")
	assert.Contains(t, must("log", "list"), "Entries (2 of 2):")
	assert.Contains(t, must("log", "export", "--stdout"), "2 cigarette(s) | Home | Boredom | -")
	assert.Contains(t, must("history"), "Last 7 days: 3 cigs")
	assert.Contains(t, must("cumulative"), "Lifetime estimate since Jan 2015")

	assert.Contains(t, must("backup", "create"), "✓ Backup created: "+constants.BackupFilePrefix)
	assert.Contains(t, must("backup", "list"), "Available backups (1 total")

	assert.Contains(t, must("doctor"), "All diagnostics passed!")
	assert.Contains(t, must("migrate"), "No migrations to apply.")
}

func TestWorkflow_JSON(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "smokelog.json", "init")
	require.NoError(t, err, out)
	assert.FileExists(t, filepath.Join(dir, "smokelog.json"))

	out, err = execute(t, dir, "smokelog.json", "log", "add", "-n", "3")
	require.NoError(t, err, out)

	out, err = execute(t, dir, "smokelog.json", "backup", "create")
	assert.Error(t, err, out)
}

func TestRequiresInit(t *testing.T) {
	_, err := execute(t, t.TempDir(), "missing.db", "today")
	assert.True(t, errors.Is(err, storage.ErrNotLoaded), "expected not-loaded error, got %v", err)
}

func TestResolveTarget(t *testing.T) {
	target, trusted := resolveTarget("/tmp/explicit.db")
	assert.Equal(t, "/tmp/explicit.db", target)
	assert.False(t, trusted)

	t.Setenv(constants.ConnectionEnvVar, "postgres://user:pw@db.internal/smokelog")
	target, trusted = resolveTarget("")
	assert.Equal(t, "postgres://user:pw@db.internal/smokelog", target)
	assert.True(t, trusted)
}
