package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/storage/storagetest"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "smokelog.db"))
	s.SetMigrationReporter(nil)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider { return setupTestStore(t) })
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Load() error = %v, want ErrNotLoaded", err)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smokelog.db")

	s := NewStore(path)
	s.SetMigrationReporter(nil)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	at := time.Date(2024, time.January, 10, 21, 5, 0, 0, time.UTC)
	if err := s.AddLog(models.LogEntry{ID: "a", Timestamp: at, Count: 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()

	logs, err := reopened.GetAllLogs()
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Count != 3 || !logs[0].Timestamp.Equal(at) {
		t.Errorf("GetAllLogs() = %+v", logs)
	}

	status, err := reopened.SchemaStatus()
	if err != nil {
		t.Fatal(err)
	}
	if status.Pending() != 0 || status.Current == 0 {
		t.Errorf("SchemaStatus() = %+v", status)
	}
}

func TestStore_InitIsRepeatable(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Init(); err != nil {
		t.Errorf("second Init() error = %v", err)
	}
	n, err := s.Migrate(nil)
	if err != nil || n != 0 {
		t.Errorf("Migrate() = %d, %v; want 0, nil", n, err)
	}
}

func TestStore_SubSecondOrdering(t *testing.T) {
	s := setupTestStore(t)
	base := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	// A whole-second timestamp must still sort before a later fractional one.
	if err := s.AddLog(models.LogEntry{ID: "whole", Timestamp: base, Count: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLog(models.LogEntry{ID: "fraction", Timestamp: base.Add(500 * time.Millisecond), Count: 1}); err != nil {
		t.Fatal(err)
	}

	logs, err := s.GetAllLogs()
	if err != nil {
		t.Fatal(err)
	}
	if logs[0].ID != "fraction" || logs[1].ID != "whole" {
		t.Errorf("order = %s, %s", logs[0].ID, logs[1].ID)
	}
}

func TestStore_TimestampStoredInUTC(t *testing.T) {
	s := setupTestStore(t)
	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2024, time.January, 2, 1, 30, 0, 0, ist)

	if err := s.AddLog(models.LogEntry{ID: "ist", Timestamp: at, Count: 1}); err != nil {
		t.Fatal(err)
	}

	var raw string
	if err := s.GetDB().QueryRow("SELECT logged_at FROM smoke_logs WHERE id = 'ist'").Scan(&raw); err != nil {
		t.Fatal(err)
	}
	if raw != "2024-01-01T20:00:00.000000000Z" {
		t.Errorf("logged_at = %q", raw)
	}
}

func TestStore_NotLoaded(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "x.db"))
	if _, err := s.GetProfile(); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("GetProfile() error = %v", err)
	}
	if err := s.DeleteLog("a"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("DeleteLog() error = %v", err)
	}
}
