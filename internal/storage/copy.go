package storage

import (
	"errors"
	"fmt"
	"slices"
)

// CopyResult counts what CopyAll transferred.
type CopyResult struct {
	Profile bool
	Logs    int
	Skipped int
}

// CopyAll transfers the profile and every log from src into dst. Entries
// whose ID already exists in dst are skipped, so the copy can be re-run.
func CopyAll(src, dst Provider) (CopyResult, error) {
	var res CopyResult

	profile, err := src.GetProfile()
	switch {
	case err == nil:
		if err := dst.SaveProfile(profile); err != nil {
			return res, fmt.Errorf("failed to copy profile: %w", err)
		}
		res.Profile = true
	case errors.Is(err, ErrNotFound):
	default:
		return res, fmt.Errorf("failed to read source profile: %w", err)
	}

	logs, err := src.GetAllLogs()
	if err != nil {
		return res, fmt.Errorf("failed to read source logs: %w", err)
	}

	// Oldest first keeps insertion order chronological in the destination.
	slices.Reverse(logs)
	for _, l := range logs {
		if _, err := dst.GetLog(l.ID); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return res, fmt.Errorf("failed to check log %s: %w", l.ID, err)
		}
		if err := dst.AddLog(l); err != nil {
			return res, fmt.Errorf("failed to copy log %s: %w", l.ID, err)
		}
		res.Logs++
	}
	return res, nil
}
