package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/smokelog/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrProfileNotSet is returned by GetProfile before the first save.
	ErrProfileNotSet = fmt.Errorf("profile not set: %w", ErrNotFound)
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrAlreadyInitialized is returned by Init on an existing store.
	ErrAlreadyInitialized = errors.New("storage already initialized")
)

// Provider is the persistence gateway. Every implementation validates
// records before writing, so readers only ever see valid data.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Logs
	AddLog(models.LogEntry) error
	GetLog(id string) (models.LogEntry, error)
	// GetAllLogs returns every entry, newest first.
	GetAllLogs() ([]models.LogEntry, error)
	DeleteLog(id string) error

	GetConfigPath() string
}
