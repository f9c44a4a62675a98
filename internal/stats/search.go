package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
)

// FilterLogs keeps entries whose location, triggers or notes contain query,
// ignoring case. An empty query returns logs as is.
func FilterLogs(logs []models.LogEntry, query string) []models.LogEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return logs
	}

	var out []models.LogEntry
	for _, l := range logs {
		if matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l models.LogEntry, q string) bool {
	if strings.Contains(strings.ToLower(l.Location), q) ||
		strings.Contains(strings.ToLower(l.Notes), q) {
		return true
	}
	for _, t := range l.Triggers {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// DayGroup is the entries sharing one calendar day.
type DayGroup struct {
	Key     string
	Entries []models.LogEntry
}

// Total sums the group's counts.
func (g DayGroup) Total() int {
	n := 0
	for _, e := range g.Entries {
		n += e.Count
	}
	return n
}

// GroupByDay buckets logs by their DD/MM/YYYY key in loc. Groups keep the
// order in which each key first appears.
func GroupByDay(logs []models.LogEntry, loc *time.Location) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)
	for _, l := range logs {
		key := format.DayKey(l.Timestamp, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Key: key})
		}
		groups[i].Entries = append(groups[i].Entries, l)
	}
	return groups
}

// Recent returns at most n leading entries of a newest-first ledger.
func Recent(logs []models.LogEntry, n int) []models.LogEntry {
	if n <= 0 {
		return nil
	}
	if len(logs) <= n {
		return logs
	}
	return logs[:n]
}

// SortNewestFirst returns a copy of logs ordered by descending timestamp.
func SortNewestFirst(logs []models.LogEntry) []models.LogEntry {
	out := slices.Clone(logs)
	slices.SortStableFunc(out, func(a, b models.LogEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}
