package util

import (
	"testing"
	"time"
)

func TestParseTimeFormats(t *testing.T) {
	if _, ok := ParseTime(""); ok {
		t.Fatal("empty string should not parse")
	}
	if ts, ok := ParseTime("2025-06-01T12:00:00Z"); !ok || ts.Hour() != 12 {
		t.Fatalf("RFC3339 parse failed: %v %v", ts, ok)
	}
	if ts, ok := ParseTime("2025-06-01T12:00:00.123456789Z"); !ok || ts.Nanosecond() == 0 {
		t.Fatalf("RFC3339Nano parse failed: %v %v", ts, ok)
	}
	if ts, ok := ParseTime("1748779200"); !ok || ts.Unix() != 1748779200 {
		t.Fatalf("unix seconds parse failed: %v %v", ts, ok)
	}
	if _, ok := ParseTime("not-a-time"); ok {
		t.Fatal("garbage should not parse")
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ParseTimeDefault("", def); !got.Equal(def) {
		t.Fatalf("expected default, got %v", got)
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := ParseTimeDefault("2025-06-01T12:00:00Z", def); !got.Equal(want) {
		t.Fatalf("expected parsed time, got %v", got)
	}
}

func TestDayKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2025, 6, 1, 22, 0, 0, 0, loc) // 03:00 next day UTC
	if got := DayKey(local); got != "2025-06-02" {
		t.Fatalf("expected 2025-06-02, got %s", got)
	}
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 6, 1, 17, 42, 9, 12345, time.UTC)
	got := StartOfDay(ts)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLookbackWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	from, to := LookbackWindow(now, 24, 168)
	if !to.Equal(now) || !from.Equal(now.Add(-24*time.Hour)) {
		t.Fatalf("unexpected window: %v %v", from, to)
	}

	from, _ = LookbackWindow(now, 0, 168)
	if !from.Equal(now.Add(-168 * time.Hour)) {
		t.Fatalf("expected default lookback, got %v", from)
	}
}

func TestLookbackWindowStableWithinMinute(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 30, 5, 123456, time.UTC)

	from1, to1 := LookbackWindow(base, 24, 168)
	from2, to2 := LookbackWindow(base.Add(40*time.Second), 24, 168)

	if !from1.Equal(from2) || !to1.Equal(to2) {
		t.Fatalf("windows differ within one minute: [%v,%v] vs [%v,%v]", from1, to1, from2, to2)
	}
	if to1.Second() != 0 || to1.Nanosecond() != 0 {
		t.Fatalf("window end not minute-aligned: %v", to1)
	}
}
