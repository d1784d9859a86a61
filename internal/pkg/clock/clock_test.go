package clock

import (
	"testing"
	"time"
)

func TestTodayUsesLocation(t *testing.T) {
	// 2026-03-01 02:00 UTC is still Feb 28 in New York.
	c := Fixed(time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC))
	ny := LoadLocation("America/New_York", time.UTC)

	got := Today(c, ny)
	want := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if utc := Today(c, nil); !utc.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected utc date %s", utc)
	}
}

func TestLoadLocationFallback(t *testing.T) {
	if loc := LoadLocation("Not/AZone", time.UTC); loc != time.UTC {
		t.Fatalf("expected fallback, got %s", loc)
	}
	if loc := LoadLocation("", time.UTC); loc != time.UTC {
		t.Fatalf("expected fallback for empty name, got %s", loc)
	}
}
