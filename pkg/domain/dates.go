package domain

import (
	"fmt"
	"regexp"
	"time"
)

// ISODateLayout is the wire format for all date fields. ISO-8601 date
// strings sort lexicographically in chronological order, so inclusive
// range filters compare strings directly.
const ISODateLayout = "2006-01-02"

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidISODate reports whether s is a YYYY-MM-DD date string.
func ValidISODate(s string) bool {
	return isoDateRe.MatchString(s)
}

// ValidClockTime reports whether s is a 24-hour HH:MM clock string.
func ValidClockTime(s string) bool {
	return clockTimeRe.MatchString(s)
}

// FormatDate renders t as an ISO date string.
func FormatDate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// ClockMinutes converts an HH:MM clock string into minutes since midnight.
func ClockMinutes(s string) (int, error) {
	if !ValidClockTime(s) {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return h*60 + m, nil
}

// Period selects a reporting window anchored at a reference day.
type Period string

// Reporting periods supported by analysis queries.
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "ytd"
)

// PeriodRange returns the inclusive [start, end] ISO date bounds for the
// period containing ref: week starts on Sunday, month on the first, ytd on
// January 1. The end bound is always ref itself.
func PeriodRange(period Period, ref time.Time) (string, string, error) {
	end := FormatDate(ref)
	switch period {
	case PeriodWeek:
		start := ref.AddDate(0, 0, -int(ref.Weekday()))
		return FormatDate(start), end, nil
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return FormatDate(start), end, nil
	case PeriodYear:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		return FormatDate(start), end, nil
	default:
		return "", "", fmt.Errorf("unknown period %q", period)
	}
}
