// Package format renders numbers, calendar days and clock times for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/smokelog/internal/constants"
)

// Indian renders n rounded to the nearest integer with Indian digit grouping:
// the last three digits form one group and the rest are grouped in pairs.
func Indian(n float64) string {
	r := math.Round(n)
	sign := ""
	if r < 0 {
		sign = "-"
		r = -r
	}
	s := strconv.FormatFloat(r, 'f', 0, 64)
	if len(s) <= 3 {
		return sign + s
	}

	result := s[len(s)-3:]
	remaining := s[:len(s)-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if remaining != "" {
		result = remaining + "," + result
	}
	return sign + result
}

// DayKey returns the DD/MM/YYYY calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DayKeyFormat)
}

// Clock returns the 12-hour time of day of t in loc, e.g. "9:05 PM".
// Display only: day boundaries always go through DayKey.
func Clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.ClockFormat)
}

// Round1 rounds x half away from zero to one decimal place.
func Round1(x float64) float64 {
	return decimal.NewFromFloat(x).Round(1).InexactFloat64()
}

// Fixed1 renders x with exactly one decimal place.
func Fixed1(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(1)
}

// Plural renders "1 cig" / "3 cigs".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Duration renders an elapsed span as "4 years, 2 months".
func Duration(years, months int) string {
	return fmt.Sprintf("%d years, %d months", years, months)
}

// Number renders a baseline-like value without a trailing ".0".
func Number(x float64) string {
	return strings.TrimSuffix(Fixed1(x), ".0")
}
