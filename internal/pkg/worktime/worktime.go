package worktime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrInvalidDate      = errors.New("invalid date")
)

// TimeOfDay is a wall-clock time expressed in seconds since midnight.
type TimeOfDay int

// Clock builds a TimeOfDay from hours and minutes.
func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

var timeOfDayLayouts = []string{"15:04:05", "15:04"}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidTimeOfDay)
	}
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

// Minutes returns whole minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t) / 60
}

func (t TimeOfDay) String() string {
	h, m, s := int(t)/3600, (int(t)%3600)/60, int(t)%60
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// MinutesBetween returns whole minutes from start to end, 0 when end is not after start.
func MinutesBetween(start, end TimeOfDay) int {
	if end <= start {
		return 0
	}
	return int(end-start) / 60
}

var durationRegex = regexp.MustCompile(`^(\d+)h\s*(\d+)m$`)

// ParseDuration parses the canonical "<hours>h <minutes>m" form into minutes.
func ParseDuration(s string) (int, error) {
	match := durationRegex.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	hours, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	minutes, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return hours*60 + minutes, nil
}

// FormatMinutes renders minutes as "<hours>h <minutes>m". Negative input renders as "0h 0m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// ParseDate parses YYYY-MM-DD into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DateOf drops the time component, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats a calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInRange counts calendar days in the inclusive range, 0 when end is before start.
func DaysInRange(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Days lists every calendar day in the inclusive range.
func Days(start, end time.Time) []time.Time {
	n := DaysInRange(start, end)
	days := make([]time.Time, 0, n)
	current := DateOf(start)
	for i := 0; i < n; i++ {
		days = append(days, current)
		current = current.AddDate(0, 0, 1)
	}
	return days
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
