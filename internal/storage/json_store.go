package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/julianstephens/smokelog/internal/models"
)

const jsonStoreVersion = 1

// document is the on-disk layout of a JSONStore.
type document struct {
	Version int               `json:"version"`
	Profile *models.Profile   `json:"profile"`
	Logs    []models.LogEntry `json:"logs"`
}

// JSONStore keeps the whole ledger in a single JSON file on the device.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	s.doc = &document{Version: jsonStoreVersion, Logs: []models.LogEntry{}}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: run 'smokelog init' first", ErrNotLoaded)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d)", doc.Version, jsonStoreVersion)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save replaces the file through a temp file and rename.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetProfile() (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.Profile{}, ErrNotLoaded
	}
	if s.doc.Profile == nil {
		return models.Profile{}, ErrProfileNotSet
	}
	return *s.doc.Profile, nil
}

func (s *JSONStore) SaveProfile(p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	if err := p.Validate(time.Now()); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	s.doc.Profile = &p
	return s.save()
}

func (s *JSONStore) AddLog(l models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("invalid log entry: %w", err)
	}
	if slices.ContainsFunc(s.doc.Logs, func(e models.LogEntry) bool { return e.ID == l.ID }) {
		return fmt.Errorf("log entry %s already exists", l.ID)
	}
	l.Timestamp = l.Timestamp.UTC()
	l.Triggers = slices.Clone(l.Triggers)
	s.doc.Logs = append(s.doc.Logs, l)
	return s.save()
}

func (s *JSONStore) GetLog(id string) (models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.LogEntry{}, ErrNotLoaded
	}
	for _, l := range s.doc.Logs {
		if l.ID == id {
			return l, nil
		}
	}
	return models.LogEntry{}, fmt.Errorf("log entry %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetAllLogs() ([]models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	out := slices.Clone(s.doc.Logs)
	slices.SortStableFunc(out, func(a, b models.LogEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out, nil
}

func (s *JSONStore) DeleteLog(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	i := slices.IndexFunc(s.doc.Logs, func(e models.LogEntry) bool { return e.ID == id })
	if i < 0 {
		return fmt.Errorf("log entry %s: %w", id, ErrNotFound)
	}
	s.doc.Logs = slices.Delete(s.doc.Logs, i, i+1)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
