package logs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/logger"
	"github.com/julianstephens/smokelog/internal/report"
	"github.com/julianstephens/smokelog/internal/stats"
)

type LogSearchCmd struct {
	Query   string `arg:"" help:"Text to look for."`
	ShowIDs bool   `help:"Show entry IDs." name:"show-ids"`
}

func (c *LogSearchCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	entries, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	matches := stats.FilterLogs(entries, c.Query)
	if len(matches) == 0 {
		ctx.Printf("No entries match %q.\n", c.Query)
		return nil
	}

	groups := stats.GroupByDay(matches, ctx.Loc())
	ctx.Printf("%d matching entries on %d days:\n", len(matches), len(groups))
	for _, g := range groups {
		ctx.Printf("\n%s  (%s)\n", g.Key, format.Plural(g.Total(), "cig"))
		for _, e := range g.Entries {
			ctx.Println("  " + entryLine(ctx, e, c.ShowIDs))
		}
	}
	return nil
}

type LogExportCmd struct {
	Out    string `help:"Destination file (defaults to smokelog-summary-<timestamp>.txt)." short:"o" type:"path"`
	Stdout bool   `help:"Print the summary instead of writing a file."`
}

func (c *LogExportCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	if c.Stdout {
		return report.Write(ctx.Stdout(), entries, ctx.Loc())
	}

	path := c.Out
	if path == "" {
		path = report.DefaultFileName(ctx.Clock())
	}
	if err := report.WriteFile(path, entries, ctx.Loc()); err != nil {
		return err
	}
	logger.Info("Summary exported", "path", path, "entries", len(entries))
	ctx.Printf("✓ Exported %d entries to %s\n", len(entries), filepath.Clean(path))
	return nil
}
