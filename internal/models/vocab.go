package models

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Mood is one point on the five-step mood scale.
type Mood struct {
	Emoji string
	Label string
	Value string
}

var (
	Locations = []string{"Home", "Workplace", "Commute", "Social setting", "Outdoors", "Other"}

	Triggers = []string{"Work stress", "Deadline", "Boredom", "After meal", "With tea/coffee", "Habit", "Social", "Conflict", "Other"}

	Moods = []Mood{
		{Emoji: "😣", Label: "Very Low", Value: "very-low"},
		{Emoji: "😟", Label: "Low", Value: "low"},
		{Emoji: "😐", Label: "Neutral", Value: "neutral"},
		{Emoji: "🙂", Label: "Good", Value: "good"},
		{Emoji: "😄", Label: "High", Value: "high"},
	}

	Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	HealthFacts = []string{
		"Tobacco use accounts for approximately 1.35 million deaths annually in India. (WHO, 2023)",
		"Tar from smoke accumulates in lung tissue and contributes to chronic obstruction. (ICMR)",
		"Nicotine reaches the brain within 10 seconds of inhalation. (NHS)",
		"Tobacco is the leading preventable cause of cancer in India. (ICMR, 2022)",
		"Lung function begins recovering within weeks of cessation. (NHS Stop Smoking)",
	}
)

// MoodByValue looks up a mood by its stored value.
func MoodByValue(value string) (Mood, bool) {
	for _, m := range Moods {
		if m.Value == value {
			return m, true
		}
	}
	return Mood{}, false
}

// NextFact returns the index of the health fact shown after i.
func NextFact(i int) int {
	if len(HealthFacts) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	return (i + 1) % len(HealthFacts)
}

// ResolveLocation maps free-form input onto the location vocabulary.
func ResolveLocation(input string) (string, error) {
	return resolve("location", input, Locations)
}

// ResolveTrigger maps free-form input onto the trigger vocabulary.
func ResolveTrigger(input string) (string, error) {
	return resolve("trigger", input, Triggers)
}

// ResolveMood accepts a mood value or label, case-insensitively.
func ResolveMood(input string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return "", nil
	}
	for _, m := range Moods {
		if strings.EqualFold(m.Value, in) || strings.EqualFold(m.Label, in) {
			return m.Value, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q (expected one of very-low, low, neutral, good, high)", input)
}

func resolve(kind, input string, vocab []string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return "", nil
	}
	for _, v := range vocab {
		if strings.EqualFold(v, in) {
			return v, nil
		}
	}
	matches := fuzzy.Find(in, vocab)
	if len(matches) == 0 {
		return "", fmt.Errorf("unknown %s %q (expected one of: %s)", kind, input, strings.Join(vocab, ", "))
	}
	return matches[0].Str, nil
}
