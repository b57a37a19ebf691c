// Package timeutil handles the wall-clock time convention used across the
// booking engine. The database stores naive local timestamps; Go code
// represents them as time.Time values in UTC that carry the wall-clock
// reading of the salon's business timezone. Converting "now" into that
// representation is the only place a real timezone is consulted.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for times of day.
	ClockLayout = "15:04"
	// DateTimeLayout is the offset-less ISO-8601 wire format for datetimes.
	DateTimeLayout = "2006-01-02T15:04:05"

	dateTimeShortLayout = "2006-01-02T15:04"
)

// WallClockNow returns the current wall-clock time in loc, re-expressed in
// UTC so it compares directly against stored naive timestamps.
func WallClockNow(loc *time.Location) time.Time {
	return StripZone(time.Now().In(loc))
}

// StripZone rebuilds t's wall-clock reading in UTC, discarding the offset.
func StripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD wire date.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

// ParseClock parses an HH:MM time of day and reports minutes since midnight.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse(ClockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CombineDateClock places a time of day (minutes since midnight) on a date.
func CombineDateClock(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, time.UTC)
}

// MinutesOfDay reports t's time of day in minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SameDate reports whether two timestamps fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayBounds returns the half-open [start of day, start of next day) interval
// around date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// ISOWeekday reports the ISO day of week for t: 1=Monday .. 7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// RoundUpToGrid rounds t up to the next multiple of step minutes within the
// day. A time already on the grid is returned unchanged.
func RoundUpToGrid(t time.Time, step int) time.Time {
	t = t.Truncate(time.Minute)
	rem := t.Minute() % step
	if rem == 0 {
		return t
	}
	return t.Add(time.Duration(step-rem) * time.Minute)
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return maxTime(aStart, bStart).Before(minTime(aEnd, bEnd))
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// DaysInMonth reports the number of days in (year, month), or 0 when the
// month is outside 1..12.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
