package insights

import (
	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/stats"
	"github.com/julianstephens/smokelog/internal/storage"
)

type CumulativeCmd struct{}

func (c *CumulativeCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}
	if p == nil {
		return storage.ErrProfileNotSet
	}

	now := ctx.Clock()
	d := stats.DurationSinceStart(*p, now)
	totals, err := stats.Cumulative(*p, now)
	if err != nil {
		return err
	}

	ctx.Printf("Lifetime estimate since %s\n", p.StartLabel())
	ctx.Printf("  Smoking for:       %s\n", d)
	if !totals.Known {
		ctx.Println("  The start date is in the future, so lifetime totals are unknown.")
	} else {
		ctx.Printf("  Days:              %s\n", format.Indian(totals.TotalDays))
		ctx.Printf("  Cigarettes:        %s\n", format.Indian(float64(totals.TotalCigarettes)))
		ctx.Printf("  Packs:             %s\n", format.Indian(float64(totals.PackEquivalents)))
		ctx.Printf("  Nicotine:          %s g\n", format.Fixed1(totals.NicotineGrams))
		ctx.Printf("  Tar:               %s g\n", format.Fixed1(totals.TarGrams))
	}

	ctx.Printf("\n💡 %s\n", factOfTheDay(now.YearDay()))
	return nil
}

func factOfTheDay(yearDay int) string {
	if len(models.HealthFacts) == 0 {
		return ""
	}
	return models.HealthFacts[yearDay%len(models.HealthFacts)]
}
