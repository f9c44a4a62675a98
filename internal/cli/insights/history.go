package insights

import (
	"fmt"

	"github.com/julianstephens/smokelog/internal/chart"
	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/config"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/stats"
)

const barWidth = 20

type HistoryCmd struct {
	Days   int    `help:"Number of days to chart (defaults to window_days)." short:"d"`
	Search string `help:"Only list entries whose location, triggers or notes match." short:"s"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if days == 0 {
		days = ctx.Settings().WindowDays
	}
	if days < 1 || days > config.MaxWindowDays {
		return fmt.Errorf("days must be between 1 and %d, got %d", config.MaxWindowDays, days)
	}

	entries, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	now := ctx.Clock()
	w, err := stats.TrailingWindow(entries, now, days)
	if err != nil {
		return err
	}

	ctx.Printf("Last %d days: %s, avg %s/day, min %d, max %d\n",
		days, format.Plural(w.Total, "cig"), format.Fixed1(w.Average), w.Min, w.Max)
	counts := make([]int, 0, len(w.Days))
	for _, d := range w.Days {
		counts = append(counts, d.Count)
		marker := ""
		if d.IsToday {
			marker = "  ← today"
		}
		ctx.Printf("  %s %s  %-*s %2d%s\n", d.Label, d.Date.Format("02/01"), barWidth, chart.Bar(d.Count, w.Peak, barWidth), d.Count, marker)
	}
	ctx.Printf("  Trend: %s\n", chart.Sparkline(counts, w.Peak))

	listed := c.entriesToList(ctx, entries, w)
	if len(listed) == 0 {
		if c.Search != "" {
			ctx.Printf("\nNo entries match %q.\n", c.Search)
		}
		return nil
	}
	for _, g := range stats.GroupByDay(listed, ctx.Loc()) {
		ctx.Printf("\n%s  (%s)\n", g.Key, format.Plural(g.Total(), "cig"))
		for _, e := range g.Entries {
			ctx.Printf("  %8s  %s\n", format.Clock(e.Timestamp, ctx.Loc()), describe(e))
		}
	}
	return nil
}

// entriesToList picks the grouped entries: every match for a search,
// otherwise the entries inside the charted window.
func (c *HistoryCmd) entriesToList(ctx *cli.Context, entries []models.LogEntry, w stats.Window) []models.LogEntry {
	if c.Search != "" {
		return stats.FilterLogs(entries, c.Search)
	}
	inWindow := make(map[string]bool, len(w.Days))
	for _, d := range w.Days {
		inWindow[d.Key] = true
	}
	var out []models.LogEntry
	for _, e := range entries {
		if inWindow[format.DayKey(e.Timestamp, ctx.Loc())] {
			out = append(out, e)
		}
	}
	return out
}

func describe(e models.LogEntry) string {
	s := format.Plural(e.Count, "cig")
	if e.Location != "" {
		s += " @ " + e.Location
	}
	for _, t := range e.Triggers {
		s += " #" + t
	}
	if e.Notes != "" {
		s += fmt.Sprintf(" %q", e.Notes)
	}
	return s
}
