package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
)

type LogFormModel struct {
	Count    string
	Location string
	Triggers []string
	Mood     string
	Notes    string
}

func newLogFormModel() *LogFormModel {
	return &LogFormModel{Count: strconv.Itoa(constants.MinLogCount)}
}

// Entry stamps the form values at the given instant.
func (fm *LogFormModel) Entry(at time.Time) (models.LogEntry, error) {
	count, err := parseCount(fm.Count)
	if err != nil {
		return models.LogEntry{}, err
	}
	e := models.NewLogEntry(at, count, fm.Location, fm.Triggers, fm.Mood, fm.Notes)
	if err := e.Validate(); err != nil {
		return models.LogEntry{}, err
	}
	return e, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("count must be a whole number")
	}
	if n < constants.MinLogCount || n > constants.MaxLogCount {
		return 0, fmt.Errorf("count must be between %d and %d", constants.MinLogCount, constants.MaxLogCount)
	}
	return n, nil
}

func newLogForm(fm *LogFormModel) *huh.Form {
	locations := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, l := range models.Locations {
		locations = append(locations, huh.NewOption(l, l))
	}
	moods := []huh.Option[string]{huh.NewOption("(skip)", "")}
	for _, m := range models.Moods {
		moods = append(moods, huh.NewOption(m.Emoji+" "+m.Label, m.Value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("How many?").
				Description(fmt.Sprintf("%d-%d", constants.MinLogCount, constants.MaxLogCount)).
				Value(&fm.Count).
				Validate(func(s string) error {
					_, err := parseCount(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Location").
				Options(locations...).
				Value(&fm.Location),
			huh.NewMultiSelect[string]().
				Title("Triggers").
				Options(huh.NewOptions(models.Triggers...)...).
				Value(&fm.Triggers),
			huh.NewSelect[string]().
				Title("Mood before").
				Options(moods...).
				Value(&fm.Mood),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

type ProfileFormModel struct {
	StartMonth int
	StartYear  string
	AvgPerDay  string
	Brand      string
	PerPack    int
	NicotineMg string
	TarMg      string
}

func profileFormFrom(p models.Profile) *ProfileFormModel {
	return &ProfileFormModel{
		StartMonth: p.StartMonth,
		StartYear:  strconv.Itoa(p.StartYear),
		AvgPerDay:  format.Number(p.AvgPerDay),
		Brand:      p.Brand,
		PerPack:    p.PerPack,
		NicotineMg: format.Fixed1(p.NicotineMg),
		TarMg:      format.Number(p.TarMg),
	}
}

// Profile converts the form values and applies the input bounds.
func (fm *ProfileFormModel) Profile(now time.Time) (models.Profile, error) {
	year, err := strconv.Atoi(strings.TrimSpace(fm.StartYear))
	if err != nil {
		return models.Profile{}, fmt.Errorf("start year must be a whole number")
	}
	avg, err := parseFloat("average per day", fm.AvgPerDay)
	if err != nil {
		return models.Profile{}, err
	}
	nicotine, err := parseFloat("nicotine", fm.NicotineMg)
	if err != nil {
		return models.Profile{}, err
	}
	tar, err := parseFloat("tar", fm.TarMg)
	if err != nil {
		return models.Profile{}, err
	}

	p := models.Profile{
		StartMonth: fm.StartMonth,
		StartYear:  year,
		AvgPerDay:  avg,
		Brand:      strings.TrimSpace(fm.Brand),
		PerPack:    fm.PerPack,
		NicotineMg: format.Round1(nicotine),
		TarMg:      tar,
	}
	if err := p.ValidateInput(now); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return v, nil
}

func newProfileForm(fm *ProfileFormModel, now time.Time) *huh.Form {
	months := make([]huh.Option[int], len(models.Months))
	for i, m := range models.Months {
		months[i] = huh.NewOption(m, i)
	}
	packs := make([]huh.Option[int], len(constants.PackSizes))
	for i, n := range constants.PackSizes {
		packs[i] = huh.NewOption(strconv.Itoa(n), n)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Started smoking (month)").
				Options(months...).
				Value(&fm.StartMonth),
			huh.NewInput().
				Title("Started smoking (year)").
				Value(&fm.StartYear).
				Validate(func(s string) error {
					y, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("year must be a whole number")
					}
					if y < constants.MinStartYear || y > now.Year() {
						return fmt.Errorf("year must be between %d and %d", constants.MinStartYear, now.Year())
					}
					return nil
				}),
			huh.NewInput().
				Title("Average per day").
				Value(&fm.AvgPerDay).
				Validate(rangeCheck("average", constants.MinAvgPerDay, constants.MaxAvgPerDay)),
			huh.NewInput().
				Title("Brand").
				Description("Optional").
				Value(&fm.Brand),
			huh.NewSelect[int]().
				Title("Per pack").
				Options(packs...).
				Value(&fm.PerPack),
			huh.NewInput().
				Title("Nicotine per cigarette (mg)").
				Value(&fm.NicotineMg).
				Validate(rangeCheck("nicotine", constants.MinNicotineMg, constants.MaxNicotineMg)),
			huh.NewInput().
				Title("Tar per cigarette (mg)").
				Value(&fm.TarMg).
				Validate(rangeCheck("tar", constants.MinTarMg, constants.MaxTarMg)),
		),
	).WithTheme(huh.ThemeDracula())
}

func rangeCheck(field string, lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := parseFloat(field, s)
		if err != nil {
			return err
		}
		if v < lo || v > hi {
			return fmt.Errorf("%s must be between %s and %s", field, format.Number(lo), format.Number(hi))
		}
		return nil
	}
}
