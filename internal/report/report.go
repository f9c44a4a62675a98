// Package report renders the ledger as plain-text summary lines.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/smokelog/internal/format"
	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/stats"
)

const placeholder = "-"

// Line renders a single entry as
// "DD/MM/YYYY h:mm PM | N cigarette(s) | location | triggers | notes".
func Line(l models.LogEntry, loc *time.Location) string {
	location := l.Location
	if location == "" {
		location = placeholder
	}
	notes := strings.TrimSpace(l.Notes)
	if notes == "" {
		notes = placeholder
	}
	return fmt.Sprintf("%s %s | %d cigarette(s) | %s | %s | %s",
		format.DayKey(l.Timestamp, loc),
		format.Clock(l.Timestamp, loc),
		l.Count,
		location,
		strings.Join(l.Triggers, ", "),
		notes,
	)
}

// Lines renders every entry, newest first.
func Lines(logs []models.LogEntry, loc *time.Location) []string {
	sorted := stats.SortNewestFirst(logs)
	out := make([]string, 0, len(sorted))
	for _, l := range sorted {
		out = append(out, Line(l, loc))
	}
	return out
}

// Write prints the summary to w, one entry per line.
func Write(w io.Writer, logs []models.LogEntry, loc *time.Location) error {
	for _, line := range Lines(logs, loc) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

// WriteFile writes the summary to path, creating parent directories.
func WriteFile(path string, logs []models.LogEntry, loc *time.Location) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(f, logs, loc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// DefaultFileName is the export name used when none is given.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("smokelog-summary-%s.txt", now.Format("20060102-1504"))
}
