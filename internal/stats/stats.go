// Package stats derives the displayed figures from a profile and a log
// snapshot. Every function is pure: the current instant is always an
// argument, and the calendar day of a timestamp is taken in the location of
// that argument, so callers must pass "now" already converted to the
// configured zone.
package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/smokelog/internal/models"
)

var (
	// ErrInvalidProfile is returned when a profile would produce a meaningless figure.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrInvalidLog is returned for log entries with a non-positive count.
	ErrInvalidLog = errors.New("invalid log entry")
	// ErrUnknownDuration is returned when totals are requested for a negative duration.
	ErrUnknownDuration = errors.New("smoking duration is unknown")
)

func checkProfile(p models.Profile) error {
	if p.PerPack <= 0 {
		return fmt.Errorf("%w: per pack must be positive, got %d", ErrInvalidProfile, p.PerPack)
	}
	if p.AvgPerDay <= 0 {
		return fmt.Errorf("%w: average per day must be positive, got %v", ErrInvalidProfile, p.AvgPerDay)
	}
	if p.NicotineMg < 0 || p.TarMg < 0 {
		return fmt.Errorf("%w: nicotine and tar must not be negative", ErrInvalidProfile)
	}
	return nil
}

func checkLogs(logs []models.LogEntry) error {
	for _, l := range logs {
		if l.Count <= 0 {
			return fmt.Errorf("%w: entry %s has count %d", ErrInvalidLog, l.ID, l.Count)
		}
	}
	return nil
}

// sameDay reports whether ts falls on the calendar date of day, evaluated in day's location.
func sameDay(ts, day time.Time) bool {
	ty, tm, td := ts.In(day.Location()).Date()
	dy, dm, dd := day.Date()
	return ty == dy && tm == dm && td == dd
}
