package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
)

// Duration is the elapsed time since the profile's start month. Known is
// false when the start month lies in the future.
type Duration struct {
	Years       int
	Months      int
	TotalMonths int
	Known       bool
}

func (d Duration) String() string {
	if !d.Known {
		return "unknown"
	}
	return format.Duration(d.Years, d.Months)
}

// Totals are the lifetime estimates derived from the baseline profile.
type Totals struct {
	TotalDays       float64
	TotalCigarettes int
	PackEquivalents int
	NicotineGrams   float64
	TarGrams        float64
	Known           bool
}

// DurationSinceStart counts whole calendar months from the profile's start
// month to now's month.
func DurationSinceStart(p models.Profile, now time.Time) Duration {
	total := (now.Year()-p.StartYear)*12 + (int(now.Month()) - 1 - p.StartMonth)
	if total < 0 {
		return Duration{}
	}
	return Duration{
		Years:       total / 12,
		Months:      total % 12,
		TotalMonths: total,
		Known:       true,
	}
}

// CumulativeTotals estimates lifetime consumption over totalMonths using an
// average month of 30.44 days.
func CumulativeTotals(p models.Profile, totalMonths int) (Totals, error) {
	if totalMonths < 0 {
		return Totals{}, fmt.Errorf("%w: %d months", ErrUnknownDuration, totalMonths)
	}
	if err := checkProfile(p); err != nil {
		return Totals{}, err
	}

	totalDays := float64(totalMonths) * constants.AvgDaysPerMonth
	cigs := int(math.Round(totalDays * p.AvgPerDay))

	return Totals{
		TotalDays:       totalDays,
		TotalCigarettes: cigs,
		PackEquivalents: int(math.Round(float64(cigs) / float64(p.PerPack))),
		NicotineGrams:   format.Round1(float64(cigs) * p.NicotineMg / 1000),
		TarGrams:        format.Round1(float64(cigs) * p.TarMg / 1000),
		Known:           true,
	}, nil
}

// Cumulative combines DurationSinceStart and CumulativeTotals. An unknown
// duration yields zero Totals with Known unset rather than an error.
func Cumulative(p models.Profile, now time.Time) (Totals, error) {
	d := DurationSinceStart(p, now)
	if !d.Known {
		if err := checkProfile(p); err != nil {
			return Totals{}, err
		}
		return Totals{}, nil
	}
	return CumulativeTotals(p, d.TotalMonths)
}
