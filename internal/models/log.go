package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LogEntry is one recorded consumption event. Entries are immutable once
// created and are only ever removed by ID.
type LogEntry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Count      int       `json:"count"`
	Location   string    `json:"location"`
	Triggers   []string  `json:"triggers"`
	MoodBefore string    `json:"mood_before"`
	Notes      string    `json:"notes"`
}

// NewLogEntry stamps a fresh entry with a random ID and the given instant.
func NewLogEntry(at time.Time, count int, location string, triggers []string, mood, notes string) LogEntry {
	return LogEntry{
		ID:         uuid.NewString(),
		Timestamp:  at,
		Count:      count,
		Location:   location,
		Triggers:   slices.Clone(triggers),
		MoodBefore: mood,
		Notes:      strings.TrimSpace(notes),
	}
}

func (l *LogEntry) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("log entry id cannot be empty")
	}
	if l.Timestamp.IsZero() {
		return fmt.Errorf("log entry %s has no timestamp", l.ID)
	}
	if l.Count < 1 {
		return fmt.Errorf("log entry %s: count must be at least 1, got %d", l.ID, l.Count)
	}
	if l.Location != "" && !slices.Contains(Locations, l.Location) {
		return fmt.Errorf("log entry %s: unknown location %q", l.ID, l.Location)
	}
	seen := make(map[string]bool, len(l.Triggers))
	for _, t := range l.Triggers {
		if !slices.Contains(Triggers, t) {
			return fmt.Errorf("log entry %s: unknown trigger %q", l.ID, t)
		}
		if seen[t] {
			return fmt.Errorf("log entry %s: duplicate trigger %q", l.ID, t)
		}
		seen[t] = true
	}
	if l.MoodBefore != "" {
		if _, ok := MoodByValue(l.MoodBefore); !ok {
			return fmt.Errorf("log entry %s: unknown mood %q", l.ID, l.MoodBefore)
		}
	}
	return nil
}
