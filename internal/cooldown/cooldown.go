// Package cooldown holds the short lockout that follows each saved entry.
package cooldown

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrCoolingDown is returned when a write is attempted inside the window.
var ErrCoolingDown = errors.New("please wait before logging again")

// Gate is disabled until Window has passed since the last Arm.
type Gate struct {
	Window time.Duration

	mu    sync.Mutex
	until time.Time
}

func New(window time.Duration) *Gate {
	return &Gate{Window: window}
}

// Arm starts the window at the given instant. Arming with an older instant
// never shortens a window already in force.
func (g *Gate) Arm(at time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if end := at.Add(g.Window); end.After(g.until) {
		g.until = end
	}
}

// Ready reports whether a write is allowed at now.
func (g *Gate) Ready(now time.Time) bool {
	return g.Remaining(now) == 0
}

// Remaining is the time left before the gate opens.
func (g *Gate) Remaining(now time.Time) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !now.Before(g.until) {
		return 0
	}
	return g.until.Sub(now)
}

// RemainingSeconds rounds Remaining up to whole seconds for display.
func (g *Gate) RemainingSeconds(now time.Time) int {
	return int(math.Ceil(g.Remaining(now).Seconds()))
}

// Check returns ErrCoolingDown while the gate is closed.
func (g *Gate) Check(now time.Time) error {
	if !g.Ready(now) {
		return ErrCoolingDown
	}
	return nil
}
