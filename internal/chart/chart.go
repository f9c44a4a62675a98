// Package chart draws small text charts shared by the CLI and the TUI.
package chart

import (
	"math"
	"strings"
)

var levels = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Sparkline renders one glyph per value scaled against peak. Non-zero
// values never render at the lowest level, so they stay distinguishable
// from empty days.
func Sparkline(values []int, peak int) string {
	if peak < 1 {
		peak = 1
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(float64(max(v, 0)) / float64(peak) * float64(len(levels)-1))
		if v > 0 && idx == 0 {
			idx = 1
		}
		b.WriteString(levels[min(idx, len(levels)-1)])
	}
	return b.String()
}

// Bar renders value as a horizontal bar of at most width cells. A non-zero
// value always gets at least one cell.
func Bar(value, peak, width int) string {
	if value <= 0 || width <= 0 {
		return ""
	}
	if peak < 1 {
		peak = 1
	}
	n := int(math.Round(float64(value) / float64(peak) * float64(width)))
	return strings.Repeat("█", max(1, min(n, width)))
}

// Progress renders a fixed-width gauge filled to percent (0-100).
func Progress(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	p := math.Max(0, math.Min(100, percent))
	filled := int(math.Round(p / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
