package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/smokelog/internal/cooldown"
	"github.com/julianstephens/smokelog/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{
			name:     "cooling down",
			err:      fmt.Errorf("failed to add log: %w", cooldown.ErrCoolingDown),
			expected: "Error: failed to add log: please wait before logging again\nHint: pass --force to log anyway.",
		},
		{
			name:     "profile missing",
			err:      storage.ErrProfileNotSet,
			expected: "Error: profile not set: record not found\nHint: run 'smokelog profile set' first.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("entry %s not found", "abc")
	if got != "Error: entry abc not found" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestHint(t *testing.T) {
	if got := Hint(errors.New("plain")); got != "" {
		t.Errorf("Hint(plain) = %q, want empty", got)
	}
	if got := Hint(storage.ErrNotLoaded); got == "" {
		t.Error("Hint(ErrNotLoaded) should suggest init")
	}
}
