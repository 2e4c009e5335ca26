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

// DateOnly formats a time as a calendar date (YYYY-MM-DD), UTC.
func DateOnly(t time.Time) string {
    return t.UTC().Format("2006-01-02")
}

// NextDailyRefresh returns the next occurrence of hour (0-23, UTC) strictly
// after now. Used to schedule once-a-day slate pulls.
func NextDailyRefresh(now time.Time, hour int) time.Time {
    now = now.UTC()
    next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
    if !next.After(now) {
        next = next.AddDate(0, 0, 1)
    }
    return next
}
