package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/smokelog/internal/config"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/storage/postgres"
	"github.com/julianstephens/smokelog/internal/storage/sqlite"
)

// IsPostgres reports whether target is a PostgreSQL URI or key=value DSN.
func IsPostgres(target string) bool {
	return postgres.IsConnString(target) || strings.Contains(target, "host=")
}

// NewStore picks the backend for target: PostgreSQL for connection strings,
// the JSON file store for *.json paths and SQLite otherwise. Embedded
// passwords are refused unless the string came from the OS keyring.
func NewStore(target string, trusted bool) (storage.Provider, error) {
	if IsPostgres(target) {
		if _, err := postgres.ValidateConnString(target); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) || !trusted {
				return nil, err
			}
		}
		return postgres.New(target), nil
	}

	path, err := config.ExpandPath(target)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
