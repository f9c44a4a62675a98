// Package storagetest runs the same behavioural checks against every
// storage.Provider implementation.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/storage"
)

// Factory returns a fresh, initialised provider.
type Factory func(t *testing.T) storage.Provider

func sampleProfile() models.Profile {
	return models.Profile{
		StartMonth: 0,
		StartYear:  2020,
		AvgPerDay:  10,
		Brand:      "Gold Flake",
		PerPack:    20,
		NicotineMg: 0.8,
		TarMg:      8,
	}
}

func entry(id string, at time.Time, count int) models.LogEntry {
	return models.LogEntry{
		ID:         id,
		Timestamp:  at,
		Count:      count,
		Location:   "Workplace",
		Triggers:   []string{"Work stress", "Deadline"},
		MoodBefore: "low",
		Notes:      "release day",
	}
}

// Run exercises the full Provider contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("profile unset", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetProfile()
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetProfile() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("profile upsert", func(t *testing.T) {
		s := newStore(t)
		p := sampleProfile()
		if err := s.SaveProfile(p); err != nil {
			t.Fatalf("SaveProfile() error = %v", err)
		}
		p.AvgPerDay = 6.5
		p.Brand = ""
		if err := s.SaveProfile(p); err != nil {
			t.Fatalf("SaveProfile() second call error = %v", err)
		}
		got, err := s.GetProfile()
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if got != p {
			t.Errorf("GetProfile() = %+v, want %+v", got, p)
		}
	})

	t.Run("invalid profile rejected", func(t *testing.T) {
		s := newStore(t)
		p := sampleProfile()
		p.PerPack = 0
		if err := s.SaveProfile(p); err == nil {
			t.Error("SaveProfile() accepted a zero pack size")
		}
	})

	t.Run("log round trip", func(t *testing.T) {
		s := newStore(t)
		at := time.Date(2024, time.January, 10, 15, 35, 12, 345000000, time.UTC)
		want := entry("a", at, 2)
		if err := s.AddLog(want); err != nil {
			t.Fatalf("AddLog() error = %v", err)
		}

		got, err := s.GetLog("a")
		if err != nil {
			t.Fatalf("GetLog() error = %v", err)
		}
		if !got.Timestamp.Equal(at) {
			t.Errorf("Timestamp = %v, want %v", got.Timestamp, at)
		}
		if got.Count != 2 || got.Location != want.Location || got.MoodBefore != want.MoodBefore || got.Notes != want.Notes {
			t.Errorf("GetLog() = %+v, want %+v", got, want)
		}
		if len(got.Triggers) != 2 || got.Triggers[0] != "Work stress" || got.Triggers[1] != "Deadline" {
			t.Errorf("Triggers = %v, want order preserved", got.Triggers)
		}
	})

	t.Run("untagged log", func(t *testing.T) {
		s := newStore(t)
		bare := models.LogEntry{ID: "bare", Timestamp: time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC), Count: 1}
		if err := s.AddLog(bare); err != nil {
			t.Fatalf("AddLog() error = %v", err)
		}
		got, err := s.GetLog("bare")
		if err != nil {
			t.Fatalf("GetLog() error = %v", err)
		}
		if len(got.Triggers) != 0 || got.Location != "" {
			t.Errorf("GetLog() = %+v, want no tags", got)
		}
	})

	t.Run("invalid log rejected", func(t *testing.T) {
		s := newStore(t)
		if err := s.AddLog(entry("zero", time.Now(), 0)); err == nil {
			t.Error("AddLog() accepted a zero count")
		}
		bad := entry("bad", time.Now(), 1)
		bad.Location = "Moon"
		if err := s.AddLog(bad); err == nil {
			t.Error("AddLog() accepted an unknown location")
		}
	})

	t.Run("logs newest first", func(t *testing.T) {
		s := newStore(t)
		base := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
		for _, e := range []models.LogEntry{
			entry("middle", base, 1),
			entry("oldest", base.Add(-48*time.Hour), 1),
			entry("newest", base.Add(3*time.Hour), 1),
		} {
			if err := s.AddLog(e); err != nil {
				t.Fatalf("AddLog(%s) error = %v", e.ID, err)
			}
		}

		logs, err := s.GetAllLogs()
		if err != nil {
			t.Fatalf("GetAllLogs() error = %v", err)
		}
		var ids []string
		for _, l := range logs {
			ids = append(ids, l.ID)
		}
		if len(ids) != 3 || ids[0] != "newest" || ids[1] != "middle" || ids[2] != "oldest" {
			t.Errorf("GetAllLogs() order = %v", ids)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		if err := s.AddLog(entry("gone", time.Now(), 1)); err != nil {
			t.Fatal(err)
		}
		if err := s.DeleteLog("gone"); err != nil {
			t.Fatalf("DeleteLog() error = %v", err)
		}
		if _, err := s.GetLog("gone"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetLog() after delete error = %v, want ErrNotFound", err)
		}
		if err := s.DeleteLog("gone"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteLog() unknown id error = %v, want ErrNotFound", err)
		}
	})

	t.Run("copy between stores", func(t *testing.T) {
		src, dst := newStore(t), newStore(t)
		if err := src.SaveProfile(sampleProfile()); err != nil {
			t.Fatal(err)
		}
		base := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
		for i, id := range []string{"x", "y", "z"} {
			if err := src.AddLog(entry(id, base.Add(time.Duration(i)*time.Hour), i+1)); err != nil {
				t.Fatal(err)
			}
		}
		if err := dst.AddLog(entry("y", base.Add(time.Hour), 2)); err != nil {
			t.Fatal(err)
		}

		res, err := storage.CopyAll(src, dst)
		if err != nil {
			t.Fatalf("CopyAll() error = %v", err)
		}
		if !res.Profile || res.Logs != 2 || res.Skipped != 1 {
			t.Errorf("CopyAll() = %+v", res)
		}
		logs, err := dst.GetAllLogs()
		if err != nil {
			t.Fatal(err)
		}
		if len(logs) != 3 || logs[0].ID != "z" {
			t.Errorf("destination logs = %+v", logs)
		}
	})
}
