// Package session tracks the interactive session through a PID lockfile so
// that one-shot commands can warn before writing alongside a running TUI.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/smokelog/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

var (
	// ErrActive is returned by Acquire when another live session holds the lock.
	ErrActive = errors.New("another smokelog session is running")
	// ErrMalformed is returned for a lockfile that cannot be parsed.
	ErrMalformed = errors.New("lockfile is malformed")
)

// Info describes the session recorded in a lockfile.
type Info struct {
	PID     int
	Started time.Time
}

// Lock is a held session lock.
type Lock struct {
	path string
	Info Info
}

// Path returns the lockfile location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.LockfileName)
}

// Running reports the live session recorded in dir, if any. A lockfile whose
// process is gone or is not smokelog counts as stale and yields false.
func Running(dir string) (Info, bool, error) {
	content, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, false, nil
		}
		return Info{}, false, fmt.Errorf("failed to read lockfile: %w", err)
	}

	info, err := parse(string(content))
	if err != nil {
		return Info{}, false, err
	}

	process, err := findProcessFunc(info.PID)
	if err != nil || process == nil {
		return info, false, nil
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return info, false, nil
	}
	return info, true, nil
}

func parse(content string) (Info, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 2 {
		return Info{}, ErrMalformed
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Info{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}
	started, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Info{}, fmt.Errorf("%w: invalid start time", ErrMalformed)
	}
	return Info{PID: pid, Started: time.Unix(started, 0)}, nil
}

// Acquire writes the lockfile for the current process. It fails with
// ErrActive when a different live session already holds it.
func Acquire(dir string, now time.Time) (*Lock, error) {
	info, running, err := Running(dir)
	if err != nil && !errors.Is(err, ErrMalformed) {
		return nil, err
	}
	self := getpidFunc()
	if running && info.PID != self {
		return nil, fmt.Errorf("%w (pid %d)", ErrActive, info.PID)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	l := &Lock{path: Path(dir), Info: Info{PID: self, Started: time.Unix(now.Unix(), 0)}}
	content := fmt.Sprintf("%d|%d", l.Info.PID, l.Info.Started.Unix())
	if err := os.WriteFile(l.path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return l, nil
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	info, err := parse(string(content))
	if err == nil && info.PID != l.Info.PID {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
