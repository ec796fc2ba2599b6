// Package dateutils provides the date handling used to cut a snapshot down to one business day.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // business timezones must resolve on hosts without a zoneinfo database
)

// Date layouts
const (
	DateLayoutISO  = "2006-01-02"
	DateLayoutFull = "2006-01-02 15:04:05"
)

// DefaultTimezone is the business timezone used when none is configured
const DefaultTimezone = "America/Lima"

// TimestampFormats are tried in order when parsing a transaction timestamp.
// Layouts without a zone are interpreted in the business location.
var TimestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayoutFull,
	"2006-01-02T15:04:05",
	DateLayoutISO,
}

var spaces = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a date string
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseTimestamp parses a timestamp using TimestampFormats
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = CleanDateString(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range TimestampFormats {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", value)
}

// DayToday selects the current business day wherever a day is expected
const DayToday = "today"

// ParseDay parses a YYYY-MM-DD business day in loc. DayToday resolves to the current day.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if strings.EqualFold(strings.TrimSpace(day), DayToday) {
		day = Today(loc)
	}
	t, err := time.ParseInLocation(DateLayoutISO, CleanDateString(day), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day '%s' (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// DayRange returns the first and last instant of day in loc, both inclusive.
func DayRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// InDay reports whether t falls within the business day of day in loc
func InDay(t, day time.Time, loc *time.Location) bool {
	start, end := DayRange(day, loc)
	return !t.Before(start) && !t.After(end)
}

// LoadLocation resolves a timezone name, falling back to DefaultTimezone when empty
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone '%s': %w", name, err)
	}
	return loc, nil
}

// ToISODate formats t as YYYY-MM-DD
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// Today returns the current business day in loc
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return ToISODate(time.Now().In(loc))
}
