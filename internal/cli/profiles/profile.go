package profiles

import (
	"fmt"
	"strings"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/logger"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/stats"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" help:"Show the smoking profile." default:"1"`
	Set  ProfileSetCmd  `cmd:"" help:"Create or update the smoking profile."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profile()
	if err != nil {
		return err
	}
	if p == nil {
		ctx.Println("No profile set. Run 'smokelog profile set' to create one.")
		return nil
	}

	brand := p.Brand
	if brand == "" {
		brand = "-"
	}
	d := stats.DurationSinceStart(*p, ctx.Clock())

	ctx.Println("Profile:")
	ctx.Printf("  Smoking since:   %s (%s)\n", p.StartLabel(), d)
	ctx.Printf("  Daily average:   %s\n", format.Number(p.AvgPerDay))
	ctx.Printf("  Brand:           %s\n", brand)
	ctx.Printf("  Per pack:        %d\n", p.PerPack)
	ctx.Printf("  Nicotine / cig:  %s mg\n", format.Fixed1(p.NicotineMg))
	ctx.Printf("  Tar / cig:       %s mg\n", format.Fixed1(p.TarMg))
	return nil
}

type ProfileSetCmd struct {
	StartMonth *string  `help:"Month you started (1-12 or a name such as Jan)."`
	StartYear  *int     `help:"Year you started."`
	AvgPerDay  *float64 `help:"Average cigarettes per day." name:"avg-per-day"`
	Brand      *string  `help:"Brand smoked (optional)."`
	PerPack    *int     `help:"Cigarettes per pack (10 or 20)."`
	Nicotine   *float64 `help:"Nicotine per cigarette in mg."`
	Tar        *float64 `help:"Tar per cigarette in mg."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	existing, err := ctx.Profile()
	if err != nil {
		return err
	}
	p := models.DraftProfile()
	if existing != nil {
		p = *existing
	}

	if c.StartMonth != nil {
		m, err := models.ParseMonth(*c.StartMonth)
		if err != nil {
			return err
		}
		p.StartMonth = m
	}
	if c.StartYear != nil {
		p.StartYear = *c.StartYear
	}
	if c.AvgPerDay != nil {
		p.AvgPerDay = *c.AvgPerDay
	}
	if c.Brand != nil {
		p.Brand = strings.TrimSpace(*c.Brand)
	}
	if c.PerPack != nil {
		p.PerPack = *c.PerPack
	}
	if c.Nicotine != nil {
		p.NicotineMg = *c.Nicotine
	}
	if c.Tar != nil {
		p.TarMg = *c.Tar
	}

	if err := p.ValidateInput(ctx.Clock()); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	ctx.WarnIfSessionActive()
	if err := ctx.Store.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	logger.Info("Profile saved", "start", p.StartLabel(), "avg_per_day", p.AvgPerDay)

	if existing == nil {
		ctx.Println("✓ Profile created.")
	} else {
		ctx.Println("✓ Profile updated.")
	}
	return nil
}
