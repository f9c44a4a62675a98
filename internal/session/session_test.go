package session

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubProcesses(t *testing.T, self int, live map[int]string) {
	t.Helper()
	oldFind, oldPid := findProcessFunc, getpidFunc
	t.Cleanup(func() {
		findProcessFunc = oldFind
		getpidFunc = oldPid
	})

	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := live[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestRunning_NoLockfile(t *testing.T) {
	_, running, err := Running(t.TempDir())
	if err != nil {
		t.Fatalf("Running() error = %v", err)
	}
	if running {
		t.Error("Running() = true without a lockfile")
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{100: "smokelog"})
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	lock, err := Acquire(dir, now)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	info, running, err := Running(dir)
	if err != nil {
		t.Fatalf("Running() error = %v", err)
	}
	if !running || info.PID != 100 || !info.Started.Equal(now) {
		t.Errorf("Running() = %+v, %v", info, running)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("lockfile still present after Release()")
	}
}

func TestAcquire_OtherLiveSession(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 200, map[int]string{100: "smokelog", 200: "smokelog"})

	if err := os.WriteFile(Path(dir), []byte("100|1704110400"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Acquire(dir, time.Now()); !errors.Is(err, ErrActive) {
		t.Errorf("Acquire() error = %v, want ErrActive", err)
	}
}

func TestAcquire_StaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		live    map[int]string
	}{
		{name: "dead process", content: "100|1704110400", live: map[int]string{}},
		{name: "pid reused by other program", content: "100|1704110400", live: map[int]string{100: "bash"}},
		{name: "malformed", content: "garbage", live: map[int]string{}},
		{name: "bad pid", content: "abc|1704110400", live: map[int]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			stubProcesses(t, 300, tt.live)
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			lock, err := Acquire(dir, time.Now())
			if err != nil {
				t.Fatalf("Acquire() over stale lock error = %v", err)
			}
			if lock.Info.PID != 300 {
				t.Errorf("lock PID = %d, want 300", lock.Info.PID)
			}
		})
	}
}

func TestRelease_LeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{100: "smokelog"})

	lock, err := Acquire(dir, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(dir), []byte("555|1704110400"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Error("Release() removed a lockfile owned by another session")
	}
}
