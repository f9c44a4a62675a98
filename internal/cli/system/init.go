package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/smokelog/internal/cli"
	"github.com/julianstephens/smokelog/internal/storage"
	"github.com/julianstephens/smokelog/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing local database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		if !errors.Is(err, storage.ErrAlreadyInitialized) {
			return err
		}
		if err := ctx.Store.Load(); err != nil {
			return err
		}
		ctx.Printf("Storage already initialized at: %s\n", ctx.Store.GetConfigPath())
	} else {
		ctx.Printf("Initialized smokelog storage at: %s\n", ctx.Store.GetConfigPath())
	}

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
	}
	return nil
}

// reset removes a local database file. Hosted databases are left alone.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return fmt.Errorf("--force only resets local databases; drop the PostgreSQL schema manually")
	}
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	source, err := cli.NewStore(c.Source, false)
	if err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("PostgreSQL source connection string contains embedded credentials; use environment variables or .pgpass instead")
		}
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	res, err := storage.CopyAll(source, ctx.Store)
	if err != nil {
		return err
	}
	if res.Profile {
		ctx.Println("  Copied profile")
	}
	ctx.Printf("  Copied %d entries (%d already present)\n", res.Logs, res.Skipped)
	ctx.Println("Copy completed successfully!")
	return nil
}
