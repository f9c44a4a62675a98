package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/smokelog/internal/constants"
)

// Profile is the user's declared smoking baseline.
type Profile struct {
	StartMonth int     `json:"start_month"` // 0-11
	StartYear  int     `json:"start_year"`
	AvgPerDay  float64 `json:"avg_per_day"`
	Brand      string  `json:"brand,omitempty"`
	PerPack    int     `json:"per_pack"`
	NicotineMg float64 `json:"nicotine_mg"`
	TarMg      float64 `json:"tar_mg"`
}

// DraftProfile returns the profile pre-filled in the input form before anything is saved.
func DraftProfile() Profile {
	return Profile{
		StartMonth: constants.DraftStartMonth,
		StartYear:  constants.DraftStartYear,
		AvgPerDay:  constants.DraftAvgPerDay,
		PerPack:    constants.DraftPerPack,
		NicotineMg: constants.DraftNicotineMg,
		TarMg:      constants.DraftTarMg,
	}
}

// Validate checks the profile fields. A start date in the future is accepted;
// it only makes the smoking duration unknown.
func (p *Profile) Validate(now time.Time) error {
	if p.StartMonth < 0 || p.StartMonth > 11 {
		return fmt.Errorf("start month must be between 0 and 11, got %d", p.StartMonth)
	}
	if p.StartYear < constants.MinStartYear || p.StartYear > now.Year() {
		return fmt.Errorf("start year must be between %d and %d, got %d", constants.MinStartYear, now.Year(), p.StartYear)
	}
	if p.AvgPerDay <= 0 {
		return fmt.Errorf("average per day must be positive, got %v", p.AvgPerDay)
	}
	if !slices.Contains(constants.PackSizes, p.PerPack) {
		return fmt.Errorf("per pack must be one of %v, got %d", constants.PackSizes, p.PerPack)
	}
	if p.NicotineMg <= 0 {
		return fmt.Errorf("nicotine per unit must be positive, got %v", p.NicotineMg)
	}
	if p.TarMg <= 0 {
		return fmt.Errorf("tar per unit must be positive, got %v", p.TarMg)
	}
	return nil
}

// StartLabel renders the start date as "Jan 2015".
func (p *Profile) StartLabel() string {
	if p.StartMonth < 0 || p.StartMonth > 11 {
		return fmt.Sprintf("%d", p.StartYear)
	}
	return fmt.Sprintf("%s %d", Months[p.StartMonth], p.StartYear)
}

// ValidateInput applies the entry-form bounds on top of Validate.
func (p *Profile) ValidateInput(now time.Time) error {
	if err := p.Validate(now); err != nil {
		return err
	}
	if p.AvgPerDay < constants.MinAvgPerDay || p.AvgPerDay > constants.MaxAvgPerDay {
		return fmt.Errorf("average per day must be between %d and %d, got %v", constants.MinAvgPerDay, constants.MaxAvgPerDay, p.AvgPerDay)
	}
	if p.NicotineMg < constants.MinNicotineMg || p.NicotineMg > constants.MaxNicotineMg {
		return fmt.Errorf("nicotine per unit must be between %.1f and %.1f mg, got %v", constants.MinNicotineMg, constants.MaxNicotineMg, p.NicotineMg)
	}
	if p.TarMg < constants.MinTarMg || p.TarMg > constants.MaxTarMg {
		return fmt.Errorf("tar per unit must be between %d and %d mg, got %v", constants.MinTarMg, constants.MaxTarMg, p.TarMg)
	}
	return nil
}

// ParseMonth accepts a month number (1-12) or an English month name or
// abbreviation and returns the 0-based month index.
func ParseMonth(s string) (int, error) {
	in := strings.TrimSpace(s)
	if n, err := strconv.Atoi(in); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month must be between 1 and 12, got %d", n)
		}
		return n - 1, nil
	}
	if len(in) >= 3 {
		for i, m := range Months {
			if strings.EqualFold(in[:3], m) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}
