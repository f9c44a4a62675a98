package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/smokelog/internal/models"
)

func sampleLedger() []models.LogEntry {
	base := time.Date(2024, time.January, 10, 21, 0, 0, 0, time.UTC)
	return []models.LogEntry{
		{ID: "1", Timestamp: base, Count: 2, Location: "Home", Triggers: []string{"Boredom"}},
		{ID: "2", Timestamp: base.Add(-3 * time.Hour), Count: 1, Location: "Workplace", Triggers: []string{"Work stress", "Deadline"}},
		{ID: "3", Timestamp: base.Add(-26 * time.Hour), Count: 1, Location: "Commute", Notes: "stuck in traffic"},
		{ID: "4", Timestamp: base.Add(-28 * time.Hour), Count: 3, Location: "Social setting", Triggers: []string{"Social", "With tea/coffee"}},
	}
}

func ids(logs []models.LogEntry) []string {
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterLogs(t *testing.T) {
	logs := sampleLedger()

	tests := []struct {
		query string
		want  []string
	}{
		{query: "home", want: []string{"1"}},
		{query: "STRESS", want: []string{"2"}},
		{query: "traffic", want: []string{"3"}},
		{query: "social", want: []string{"4"}},
		{query: "e", want: []string{"1", "2", "3", "4"}},
		{query: "nothing matches", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterLogs(logs, tt.query)))
		})
	}
}

func TestFilterLogs_EmptyQuery(t *testing.T) {
	logs := sampleLedger()
	assert.Equal(t, logs, FilterLogs(logs, ""))
	assert.Equal(t, logs, FilterLogs(logs, "   "))
}

func TestGroupByDay(t *testing.T) {
	groups := GroupByDay(sampleLedger(), time.UTC)
	require.Len(t, groups, 2)

	assert.Equal(t, "10/01/2024", groups[0].Key)
	assert.Equal(t, []string{"1", "2"}, ids(groups[0].Entries))
	assert.Equal(t, 3, groups[0].Total())

	assert.Equal(t, "09/01/2024", groups[1].Key)
	assert.Equal(t, []string{"3", "4"}, ids(groups[1].Entries))
	assert.Equal(t, 4, groups[1].Total())
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil, time.UTC))
}

func TestRecent(t *testing.T) {
	logs := sampleLedger()
	assert.Equal(t, []string{"1", "2"}, ids(Recent(logs, 2)))
	assert.Len(t, Recent(logs, 10), 4)
	assert.Empty(t, Recent(logs, 0))
}

func TestSortNewestFirst(t *testing.T) {
	logs := sampleLedger()
	shuffled := []models.LogEntry{logs[2], logs[0], logs[3], logs[1]}

	sorted := SortNewestFirst(shuffled)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(sorted))
	assert.Equal(t, []string{"3", "1", "4", "2"}, ids(shuffled))
}
