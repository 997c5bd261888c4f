// Package worktime converts wall-clock strings used by shift records into
// durations and calendar dates.
package worktime

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Midnight is the clock value stored for off-duty shifts.
	Midnight = "00:00"

	minutesPerDay = 24 * 60
)

// ParseClock parses "HH:MM" into minutes after midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || hh == "" || mm == "" || len(mm) != 2 || len(hh) > 2 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidTimeFormat)
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes after midnight as "HH:MM".
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsValidClock reports whether s is a well-formed "HH:MM" value.
func IsValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// ElapsedHours returns the hours between start and end on a common date.
// An end before start is read as an overnight shift ending the next day.
// Equal values yield zero, never 24.
func ElapsedHours(start, end string) (float64, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	diff := endMin - startMin
	if diff < 0 {
		diff += minutesPerDay
	}

	return float64(diff) / 60, nil
}
