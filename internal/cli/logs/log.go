package logs

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/logger"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/utils"
)

type LogCmd struct {
	Add    LogAddCmd    `cmd:"" help:"Record cigarettes smoked just now."`
	List   LogListCmd   `cmd:"" help:"List recent entries." default:"1"`
	Delete LogDeleteCmd `cmd:"" help:"Delete an entry by ID."`
	Search LogSearchCmd `cmd:"" help:"Search entries by location, trigger or notes."`
	Export LogExportCmd `cmd:"" help:"Export a plain-text summary of every entry."`
}

type LogAddCmd struct {
	Count    int      `help:"Number of cigarettes." default:"1" short:"n"`
	Location string   `help:"Where you smoked (Home, Workplace, Commute, Social setting, Outdoors, Other)." short:"l"`
	Trigger  []string `help:"What prompted it; repeat for several." short:"t"`
	Mood     string   `help:"Mood beforehand (very-low, low, neutral, good, high)." short:"m"`
	Notes    string   `help:"Free-form notes."`
	Force    bool     `help:"Log even while the save cooldown is active."`
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	if c.Count < constants.MinLogCount || c.Count > constants.MaxLogCount {
		return fmt.Errorf("count must be between %d and %d, got %d", constants.MinLogCount, constants.MaxLogCount, c.Count)
	}
	location, err := models.ResolveLocation(c.Location)
	if err != nil {
		return err
	}
	var triggers []string
	for _, raw := range c.Trigger {
		t, err := models.ResolveTrigger(raw)
		if err != nil {
			return err
		}
		if t != "" && !slices.Contains(triggers, t) {
			triggers = append(triggers, t)
		}
	}
	mood, err := models.ResolveMood(c.Mood)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	now := ctx.Clock()
	gate := ctx.Cooldown(existing)
	if !c.Force {
		if err := gate.Check(now); err != nil {
			return fmt.Errorf("%w (%ds remaining)", err, gate.RemainingSeconds(now))
		}
	}

	entry := models.NewLogEntry(now, c.Count, location, triggers, mood, c.Notes)
	ctx.WarnIfSessionActive()
	if err := ctx.Store.AddLog(entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	logger.Info("Entry logged", "id", entry.ID, "count", entry.Count)

	ctx.Printf("✓ Logged %s at %s\n", format.Plural(entry.Count, "cigarette"), format.Clock(entry.Timestamp, ctx.Loc()))
	return nil
}

type LogListCmd struct {
	Limit   int    `help:"Number of entries to show (defaults to recent_limit)." short:"n"`
	All     bool   `help:"Show every entry."`
	ShowIDs bool   `help:"Show entry IDs." name:"show-ids"`
	Date    string `help:"Only show entries from this day (YYYY-MM-DD)."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	if len(entries) == 0 {
		ctx.Println("No entries yet. Use 'smokelog log add' to record one.")
		return nil
	}
	if c.Date != "" {
		day, err := utils.ParseDateInLocation(c.Date, ctx.Loc())
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", c.Date, err)
		}
		entries = onDay(entries, day)
		if len(entries) == 0 {
			ctx.Printf("No entries on %s.\n", format.DayKey(day, ctx.Loc()))
			return nil
		}
	}

	limit := c.Limit
	if limit <= 0 {
		limit = ctx.Settings().RecentLimit
	}
	if c.All {
		limit = len(entries)
	}
	shown := entries[:min(limit, len(entries))]

	ctx.Printf("Entries (%d of %d):\n", len(shown), len(entries))
	for _, e := range shown {
		ctx.Println("  " + entryLine(ctx, e, c.ShowIDs))
	}
	return nil
}

// onDay keeps the entries whose timestamp falls on day's calendar date.
func onDay(entries []models.LogEntry, day time.Time) []models.LogEntry {
	start := utils.StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	var kept []models.LogEntry
	for _, e := range entries {
		ts := e.Timestamp.In(start.Location())
		if !ts.Before(start) && ts.Before(end) {
			kept = append(kept, e)
		}
	}
	return kept
}

type LogDeleteCmd struct {
	ID string `arg:"" help:"Entry ID or a unique prefix of it."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	entry, err := resolveID(entries, c.ID)
	if err != nil {
		return err
	}

	ctx.WarnIfSessionActive()
	if err := ctx.Store.DeleteLog(entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	logger.Info("Entry deleted", "id", entry.ID)
	ctx.Printf("✓ Deleted %s\n", entryLine(ctx, entry, false))
	return nil
}

// resolveID finds the single entry whose ID equals or starts with id.
func resolveID(entries []models.LogEntry, id string) (models.LogEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.LogEntry{}, fmt.Errorf("entry id cannot be empty")
	}
	var matches []models.LogEntry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return models.LogEntry{}, fmt.Errorf("log entry %s: %w", id, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.LogEntry{}, fmt.Errorf("id prefix %q matches %d entries; use more characters", id, len(matches))
	}
}

func entryLine(ctx *cli.Context, e models.LogEntry, showID bool) string {
	loc := ctx.Loc()
	parts := []string{
		format.DayKey(e.Timestamp, loc),
		fmt.Sprintf("%8s", format.Clock(e.Timestamp, loc)),
		fmt.Sprintf("%-8s", format.Plural(e.Count, "cig")),
	}
	if e.Location != "" {
		parts = append(parts, e.Location)
	}
	if len(e.Triggers) > 0 {
		parts = append(parts, "["+strings.Join(e.Triggers, ", ")+"]")
	}
	if m, ok := models.MoodByValue(e.MoodBefore); ok {
		parts = append(parts, m.Emoji)
	}
	if e.Notes != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Notes))
	}
	line := strings.Join(parts, "  ")
	if showID {
		line += fmt.Sprintf(" (ID: %s)", e.ID)
	}
	return line
}
