package insights

import (
	"fmt"

	"github.com/julianstephens/smokelog/internal/chart"
	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/stats"
)

const progressWidth = 20

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	p, err := ctx.Profile()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	s, err := stats.TodaySnapshotWithBaseline(entries, p, now, ctx.Settings().DefaultBaseline)
	if err != nil {
		return err
	}

	ctx.Printf("Today (%s %s)\n", stats.WeekdayLabel(now), format.DayKey(now, ctx.Loc()))
	ctx.Printf("  Smoked:     %s\n", format.Plural(s.Total, "cigarette"))
	if s.HasProfile {
		ctx.Printf("  Nicotine:   %s mg\n", format.Fixed1(s.NicotineMg))
		ctx.Printf("  Tar:        %s mg\n", format.Fixed1(s.TarMg))
		ctx.Printf("  Packs:      %s\n", format.Fixed1(s.PackEquivalent))
	}
	ctx.Printf("  Baseline:   %s / day\n", format.Number(s.Baseline))
	ctx.Printf("  Progress:   %s %.0f%%\n", chart.Progress(s.ProgressPercent, progressWidth), s.ProgressPercent)
	ctx.Printf("  Status:     %s (%s)\n", s.Status, s.DeltaMessage())
	if !s.HasProfile {
		ctx.Println("\nSet a profile with 'smokelog profile set' to see nicotine and tar figures.")
	}

	recent := stats.Recent(entries, ctx.Settings().RecentLimit)
	if len(recent) > 0 {
		ctx.Println("\nRecent:")
		for _, e := range recent {
			ctx.Printf("  %s %8s  %s\n", format.DayKey(e.Timestamp, ctx.Loc()), format.Clock(e.Timestamp, ctx.Loc()), format.Plural(e.Count, "cig"))
		}
	}
	return nil
}
