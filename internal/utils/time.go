package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/julianstephens/tinywins/internal/errors"
)

var localDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ParseLocalDate parses a YYYY-MM-DD string as a calendar date in the local timezone.
func ParseLocalDate(s string) (time.Time, error) {
	return ParseLocalDateIn(s, time.Local)
}

// ParseLocalDateIn parses a YYYY-MM-DD string into midnight of that calendar
// date in loc. The date is built from its components so no timezone shift can
// move it to a neighbouring day. Out-of-range months and days are rejected
// rather than normalized.
func ParseLocalDateIn(s string, loc *time.Location) (time.Time, error) {
	if !localDatePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, s)
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > DaysInMonth(year, month-1) {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, s)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// FormatLocalDate renders the calendar fields of t as YYYY-MM-DD.
func FormatLocalDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// IsLocalDate reports whether s is a valid YYYY-MM-DD calendar date.
func IsLocalDate(s string) bool {
	_, err := ParseLocalDate(s)
	return err == nil
}

// Today returns the current calendar date in loc as YYYY-MM-DD.
func Today(now time.Time, loc *time.Location) string {
	return FormatLocalDate(now.In(loc))
}

// DayStart returns 00:00:00.000 of t's calendar day in t's location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns 23:59:59.999 of t's calendar day in t's location.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Midday returns 12:00 of t's calendar day.
func Midday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

// WeekRange returns the Sunday-through-Saturday week containing now, shifted
// by offsetWeeks whole weeks. start is Sunday 00:00:00.000 and end is the
// following Saturday 23:59:59.999.
func WeekRange(now time.Time, offsetWeeks int) (time.Time, time.Time) {
	sunday := now.AddDate(0, 0, -int(now.Weekday())+offsetWeeks*7)
	start := DayStart(sunday)
	end := DayEnd(start.AddDate(0, 0, 6))
	return start, end
}

// DaysInMonth returns the number of days in the month with zero-based index monthIndex.
func DaysInMonth(year, monthIndex int) int {
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth returns the weekday (0 = Sunday) of the first day of the month.
func FirstWeekdayOfMonth(year, monthIndex int) int {
	return int(time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}
