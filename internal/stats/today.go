package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/smokelog/internal/constants"
	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
)

// Status classifies today's total against the baseline.
type Status int

const (
	AtOrAbove Status = iota
	MarginallyBelow
	WellBelow
)

func (s Status) String() string {
	switch s {
	case AtOrAbove:
		return "at or above baseline"
	case MarginallyBelow:
		return "marginally below baseline"
	case WellBelow:
		return "well below baseline"
	default:
		return "unknown"
	}
}

// Snapshot is everything the Today view shows.
type Snapshot struct {
	Total           int
	NicotineMg      float64
	TarMg           float64
	PackEquivalent  float64
	Baseline        float64
	Delta           float64
	Status          Status
	ProgressPercent float64
	HasProfile      bool
}

// TodaySnapshot summarises now's calendar date. A nil profile falls back to
// the default baseline and reports zero intake figures.
func TodaySnapshot(logs []models.LogEntry, p *models.Profile, now time.Time) (Snapshot, error) {
	return TodaySnapshotWithBaseline(logs, p, now, constants.DefaultBaseline)
}

// TodaySnapshotWithBaseline is TodaySnapshot with the baseline used when p
// is nil. A non-positive fallback is replaced by the default.
func TodaySnapshotWithBaseline(logs []models.LogEntry, p *models.Profile, now time.Time, fallback float64) (Snapshot, error) {
	total, err := DailyAggregate(logs, now)
	if err != nil {
		return Snapshot{}, err
	}
	if fallback <= 0 {
		fallback = constants.DefaultBaseline
	}

	s := Snapshot{Total: total, Baseline: fallback}
	if p != nil {
		if err := checkProfile(*p); err != nil {
			return Snapshot{}, err
		}
		s.HasProfile = true
		s.Baseline = p.AvgPerDay
		s.NicotineMg = format.Round1(float64(total) * p.NicotineMg)
		s.TarMg = format.Round1(float64(total) * p.TarMg)
		s.PackEquivalent = format.Round1(float64(total) / float64(p.PerPack))
	}

	s.Delta = float64(total) - s.Baseline
	s.Status = classify(s.Delta)
	s.ProgressPercent = math.Min(100, float64(total)/math.Max(s.Baseline, 1)*100)
	return s, nil
}

func classify(delta float64) Status {
	switch {
	case delta >= 0:
		return AtOrAbove
	case delta >= -1:
		return MarginallyBelow
	default:
		return WellBelow
	}
}

// DeltaMessage phrases the difference from the baseline.
func (s Snapshot) DeltaMessage() string {
	if s.Delta <= 0 {
		return fmt.Sprintf("%s fewer than your daily average", format.Number(-s.Delta))
	}
	return fmt.Sprintf("%s above your daily average", format.Number(s.Delta))
}
