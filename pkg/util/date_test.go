package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestDateOnly(t *testing.T) {
    got := DateOnly(time.Date(2025, 3, 20, 23, 59, 0, 0, time.UTC))
    if got != "2025-03-20" {
        t.Fatalf("unexpected date %q", got)
    }
}

func TestNextDailyRefresh(t *testing.T) {
    now := time.Date(2025, 3, 20, 11, 0, 0, 0, time.UTC)

    next := NextDailyRefresh(now, 12)
    if next.Day() != 20 || next.Hour() != 12 {
        t.Fatalf("expected same day at 12, got %v", next)
    }

    next = NextDailyRefresh(now, 10)
    if next.Day() != 21 || next.Hour() != 10 {
        t.Fatalf("expected next day at 10, got %v", next)
    }
}
