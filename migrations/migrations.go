// Package migrations embeds the schema files for each supported database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// SQLite returns the SQLite migration files rooted at their directory.
func SQLite() (fs.FS, error) {
	return fs.Sub(FS, "sqlite")
}

// Postgres returns the PostgreSQL migration files rooted at their directory.
func Postgres() (fs.FS, error) {
	return fs.Sub(FS, "postgres")
}
