package insights

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/config"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/storage/sqlite"
)

var testNow = time.Date(2024, time.January, 10, 21, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:    store,
		Config:   config.DefaultConfig(),
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
		Out:      out,
	}
	return ctx, out
}

func saveProfile(t *testing.T, ctx *cli.Context, startYear int) {
	t.Helper()
	p := models.Profile{StartMonth: 0, StartYear: startYear, AvgPerDay: 10, PerPack: 20, NicotineMg: 0.8, TarMg: 8}
	if err := ctx.Store.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
}

func addLog(t *testing.T, ctx *cli.Context, id string, at time.Time, count int, notes string) {
	t.Helper()
	e := models.LogEntry{ID: id, Timestamp: at, Count: count, Notes: notes}
	if err := ctx.Store.AddLog(e); err != nil {
		t.Fatalf("AddLog failed: %v", err)
	}
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTodayCmd_WithProfile(t *testing.T) {
	ctx, out := setupTestDB(t)
	saveProfile(t, ctx, 2020)
	addLog(t, ctx, "a", testNow.Add(-time.Hour), 3, "")
	addLog(t, ctx, "b", testNow.Add(-3*time.Hour), 2, "")
	addLog(t, ctx, "c", testNow.AddDate(0, 0, -1), 7, "")

	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}
	assertContains(t, out.String(),
		"Today (Wed 10/01/2024)",
		"Smoked:     5 cigarettes",
		"Nicotine:   4.0 mg",
		"Tar:        40.0 mg",
		"Packs:      0.3",
		"Baseline:   10 / day",
		"██████████░░░░░░░░░░ 50%",
		"well below baseline (5 fewer than your daily average)",
		"Recent:",
	)
}

func TestTodayCmd_NoProfileUsesConfiguredBaseline(t *testing.T) {
	ctx, out := setupTestDB(t)
	ctx.Config.DefaultBaseline = 4
	addLog(t, ctx, "a", testNow.Add(-time.Hour), 6, "")

	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}
	got := out.String()
	assertContains(t, got, "Baseline:   4 / day", "2 above your daily average", "profile set")
	if strings.Contains(got, "Nicotine") {
		t.Errorf("intake figures shown without a profile:\n%s", got)
	}
}

func TestCumulativeCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	saveProfile(t, ctx, 2020)

	if err := (&CumulativeCmd{}).Run(ctx); err != nil {
		t.Fatalf("cumulative failed: %v", err)
	}
	assertContains(t, out.String(),
		"since Jan 2020",
		"4 years, 0 months",
		"Cigarettes:        14,611",
		"Packs:             731",
		"Nicotine:          11.7 g",
		"Tar:               116.9 g",
		models.HealthFacts[10%len(models.HealthFacts)],
	)
}

func TestCumulativeCmd_NoProfile(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&CumulativeCmd{}).Run(ctx); !errors.Is(err, storage.ErrProfileNotSet) {
		t.Errorf("expected ErrProfileNotSet, got %v", err)
	}
}

func TestCumulativeCmd_FutureStart(t *testing.T) {
	ctx, out := setupTestDB(t)
	p := models.Profile{StartMonth: 11, StartYear: 2024, AvgPerDay: 10, PerPack: 20, NicotineMg: 0.8, TarMg: 8}
	if err := ctx.Store.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	if err := (&CumulativeCmd{}).Run(ctx); err != nil {
		t.Fatalf("cumulative failed: %v", err)
	}
	got := out.String()
	assertContains(t, got, "Smoking for:       unknown", "totals are unknown")
	if strings.Contains(got, "Cigarettes:") {
		t.Errorf("totals shown for an unknown duration:\n%s", got)
	}
}

func TestHistoryCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	addLog(t, ctx, "a", testNow.Add(-time.Hour), 2, "")
	addLog(t, ctx, "b", testNow.AddDate(0, 0, -6), 5, "after lunch")
	addLog(t, ctx, "c", testNow.AddDate(0, 0, -20), 4, "old lunch")

	if err := (&HistoryCmd{}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	got := out.String()
	assertContains(t, got,
		"Last 7 days: 7 cigs, avg 1.0/day, min 0, max 5",
		"Thu 04/01",
		"Wed 10/01",
		"← today",
		"Trend: █▁▁▁▁▁▃",
		"10/01/2024  (2 cigs)",
		"04/01/2024  (5 cigs)",
	)
	if strings.Contains(got, "old lunch") {
		t.Errorf("entry outside the window listed without a search:\n%s", got)
	}

	out.Reset()
	if err := (&HistoryCmd{Days: 3, Search: "lunch"}).Run(ctx); err != nil {
		t.Fatalf("history --search failed: %v", err)
	}
	got = out.String()
	assertContains(t, got, "Last 3 days: 2 cigs", "after lunch", "old lunch", "21/12/2023  (4 cigs)")
}

func TestHistoryCmd_InvalidDays(t *testing.T) {
	ctx, _ := setupTestDB(t)
	for _, days := range []int{-1, config.MaxWindowDays + 1} {
		if err := (&HistoryCmd{Days: days}).Run(ctx); err == nil {
			t.Errorf("expected an error for %d days", days)
		}
	}
}
