// Package duration parses human-entered mute durations ("10m", "2sa") into
// milliseconds and renders milliseconds back into localized text.
//
// Two unit vocabularies are recognized: English (s, m, h, d, w, y) and Turkish
// (sn, dk, sa, g, hf, y). Each token binds to exactly one magnitude; "h" is
// always hours, the Turkish week token is "hf".
package duration

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid signals input that does not match the duration grammar.
var ErrInvalid = errors.New("invalid duration")

const (
	msPerSecond int64 = 1000
	msPerMinute       = 60 * msPerSecond
	msPerHour         = 60 * msPerMinute
	msPerDay          = 24 * msPerHour
	msPerWeek         = 7 * msPerDay
	msPerYear         = 365 * msPerDay // approximate
)

// Multi-letter tokens come first so the alternation prefers them.
var pattern = regexp.MustCompile(`^(\d+)(sn|dk|sa|hf|yl|[smhdwgy])$`)

var multipliers = map[string]int64{
	"s": msPerSecond, "sn": msPerSecond,
	"m": msPerMinute, "dk": msPerMinute,
	"h": msPerHour, "sa": msPerHour,
	"d": msPerDay, "g": msPerDay,
	"w": msPerWeek, "hf": msPerWeek,
	"y": msPerYear, "yl": msPerYear,
}

// Parse converts a duration token into milliseconds.
// Returns ErrInvalid for empty input, unknown units, or non-integer magnitudes.
func Parse(text string) (int64, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return 0, ErrInvalid
	}

	match := pattern.FindStringSubmatch(normalized)
	if match == nil {
		return 0, ErrInvalid
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}

	mult := multipliers[match[2]]
	if value > math.MaxInt64/mult {
		return 0, ErrInvalid
	}
	return value * mult, nil
}

var unitNames = map[string][6]string{
	// years, weeks, days, hours, minutes, seconds
	"en": {"year", "week", "day", "hour", "minute", "second"},
	"tr": {"yıl", "hafta", "gün", "saat", "dakika", "saniye"},
}

var permanentNames = map[string]string{
	"en": "Permanent",
	"tr": "Kalıcı",
}

// Format renders milliseconds as "<count> <unit>" using the largest non-zero
// unit. Non-positive durations render as the localized "Permanent".
// Unknown locales fall back to English.
func Format(ms int64, locale string) string {
	names, ok := unitNames[locale]
	if !ok {
		locale = "en"
		names = unitNames["en"]
	}

	if ms <= 0 {
		return permanentNames[locale]
	}

	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7
	years := days / 365

	var count int64
	var unit string
	switch {
	case years > 0:
		count, unit = years, names[0]
	case weeks > 0:
		count, unit = weeks, names[1]
	case days > 0:
		count, unit = days, names[2]
	case hours > 0:
		count, unit = hours, names[3]
	case minutes > 0:
		count, unit = minutes, names[4]
	default:
		count, unit = seconds, names[5]
	}

	text := strconv.FormatInt(count, 10) + " " + unit
	if count > 1 && locale == "en" {
		text += "s"
	}
	return text
}
