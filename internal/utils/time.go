package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/vibequest/internal/constants"
)

// ParseDate parses a date string (YYYY-MM-DD) as midnight UTC, so that
// day arithmetic is free of DST effects.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the local calendar date as midnight UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf strips the clock from t, keeping its wall-clock calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b, rounding to
// absorb any sub-day drift.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHour renders an hour as an HH:00 time string.
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// FormatMinutes renders minutes from midnight as HH:MM.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// WeekdayName returns the full English weekday name for a date.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// ParseWeekday accepts full or three-letter weekday names (any case) and
// numbers 0-6 (0=Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || s == name[:3] {
			return wd, nil
		}
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return time.Weekday(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// ParseWeekdayNames parses a comma-separated list of weekdays into full
// English names, the form stored on entries.
func ParseWeekdayNames(s string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		names = append(names, wd.String())
	}
	return names, nil
}
