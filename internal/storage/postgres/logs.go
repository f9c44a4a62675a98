package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

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
		triggers pq.StringArray
	)
	if err := row.Scan(&l.ID, &l.Timestamp, &l.Count, &l.Location, &triggers, &l.MoodBefore, &l.Notes); err != nil {
		return models.LogEntry{}, err
	}
	l.Timestamp = l.Timestamp.UTC()
	if len(triggers) > 0 {
		l.Triggers = []string(triggers)
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
	_, err := s.db.Exec(`
		INSERT INTO smoke_logs (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.Timestamp.UTC(), l.Count, l.Location, pq.Array(triggers), l.MoodBefore, l.Notes,
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

	l, err := scanLog(s.db.QueryRow(`SELECT `+logColumns+` FROM smoke_logs WHERE id = $1`, id))
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

	res, err := s.db.Exec(`DELETE FROM smoke_logs WHERE id = $1`, id)
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
