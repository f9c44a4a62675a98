package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/smokelog/internal/models"
	"github.com/julianstephens/smokelog/internal/storage"
)

const logColumns = `id, logged_at, count, location, triggers, mood_before, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (models.LogEntry, error) {
	var (
		l        models.LogEntry
		loggedAt string
		triggers string
	)
	if err := row.Scan(&l.ID, &loggedAt, &l.Count, &l.Location, &triggers, &l.MoodBefore, &l.Notes); err != nil {
		return models.LogEntry{}, err
	}

	ts, err := parseTime(loggedAt)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid timestamp for log %s: %w", l.ID, err)
	}
	l.Timestamp = ts

	if err := json.Unmarshal([]byte(triggers), &l.Triggers); err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid triggers for log %s: %w", l.ID, err)
	}
	if len(l.Triggers) == 0 {
		l.Triggers = nil
	}
	return l, nil
}

func (s *Store) AddLog(l models.LogEntry) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("invalid log entry: %w", err)
	}

	triggers := l.Triggers
	if triggers == nil {
		triggers = []string{}
	}
	triggersJSON, err := json.Marshal(triggers)
	if err != nil {
		return fmt.Errorf("failed to encode triggers: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO smoke_logs (`+logColumns+`, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, formatTime(l.Timestamp), l.Count, l.Location, string(triggersJSON), l.MoodBefore, l.Notes,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to add log: %w", err)
	}
	return nil
}

func (s *Store) GetLog(id string) (models.LogEntry, error) {
	if s.db == nil {
		return models.LogEntry{}, storage.ErrNotLoaded
	}

	l, err := scanLog(s.db.QueryRow(`SELECT `+logColumns+` FROM smoke_logs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LogEntry{}, fmt.Errorf("log entry %s: %w", id, storage.ErrNotFound)
		}
		return models.LogEntry{}, fmt.Errorf("failed to get log: %w", err)
	}
	return l, nil
}

func (s *Store) GetAllLogs() ([]models.LogEntry, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query(`SELECT ` + logColumns + ` FROM smoke_logs ORDER BY logged_at DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var logs []models.LogEntry
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logs: %w", err)
	}
	return logs, nil
}

func (s *Store) DeleteLog(id string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	res, err := s.db.Exec(`DELETE FROM smoke_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("log entry %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
