package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// DayKey formats a timestamp as a UTC calendar-day key.
func DayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// StartOfDay truncates a timestamp to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// LookbackWindow returns [now-hours, now] in UTC, truncated to the
// minute. Hours at or below zero fall back to def. The truncation keeps
// the window identical across requests within the same minute, so cache
// keys derived from it can actually repeat.
func LookbackWindow(now time.Time, hours, def int) (time.Time, time.Time) {
	if hours <= 0 {
		hours = def
	}
	to := now.UTC().Truncate(time.Minute)
	return to.Add(-time.Duration(hours) * time.Hour), to
}
