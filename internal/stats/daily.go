package stats

import (
	"fmt"
	"time"

	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayLabel returns the short Monday-first label for t's weekday.
func WeekdayLabel(t time.Time) string {
	return weekdayLabels[(int(t.Weekday())+6)%7]
}

// DailyAggregate sums the counts of all entries falling on day's calendar date.
func DailyAggregate(logs []models.LogEntry, day time.Time) (int, error) {
	if err := checkLogs(logs); err != nil {
		return 0, err
	}
	total := 0
	for _, l := range logs {
		if sameDay(l.Timestamp, day) {
			total += l.Count
		}
	}
	return total, nil
}

// WindowDay is one calendar day of a trailing window.
type WindowDay struct {
	Date    time.Time
	Key     string
	Label   string
	Count   int
	IsToday bool
}

// Window holds consecutive days ending today, oldest first.
type Window struct {
	Days    []WindowDay
	Total   int
	Average float64
	Min     int
	Max     int
	// Peak is Max with a floor of 1, for scaling bars.
	Peak int
}

// TrailingWindow returns the days calendar days ending on now's date.
func TrailingWindow(logs []models.LogEntry, now time.Time, days int) (Window, error) {
	if days < 1 {
		return Window{}, fmt.Errorf("window must span at least one day, got %d", days)
	}
	if err := checkLogs(logs); err != nil {
		return Window{}, err
	}

	loc := now.Location()
	counts := make(map[string]int, len(logs))
	for _, l := range logs {
		counts[format.DayKey(l.Timestamp, loc)] += l.Count
	}

	y, m, d := now.Date()
	w := Window{Days: make([]WindowDay, 0, days)}
	for i := days - 1; i >= 0; i-- {
		date := time.Date(y, m, d-i, 0, 0, 0, 0, loc)
		key := format.DayKey(date, loc)
		c := counts[key]
		w.Days = append(w.Days, WindowDay{
			Date:    date,
			Key:     key,
			Label:   WeekdayLabel(date),
			Count:   c,
			IsToday: i == 0,
		})

		w.Total += c
		if i == days-1 || c < w.Min {
			w.Min = c
		}
		if c > w.Max {
			w.Max = c
		}
	}

	w.Average = format.Round1(float64(w.Total) / float64(days))
	w.Peak = max(w.Max, 1)
	return w, nil
}
