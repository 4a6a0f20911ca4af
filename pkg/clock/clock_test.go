package clock

import (
	"fmt"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func TestResolveVisitDate_BareDateKeepsCalendarDayInEveryOffset(t *testing.T) {
	// A bare date anchored by the clinic must still read as the same
	// calendar day for clients anywhere from UTC-12 to UTC+14.
	for offset := -12; offset <= 14; offset++ {
		zone := time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)
		resolved, err := ResolveVisitDate("2024-03-15", zone, fixedNow)
		if err != nil {
			t.Fatalf("offset %+d: unexpected error: %v", offset, err)
		}
		if got := resolved.In(zone).Format("2006-01-02"); got != "2024-03-15" {
			t.Errorf("offset %+d: day rolled over to %s", offset, got)
		}
	}
}

func TestResolveVisitDate_BareDateAnchorsAtNoon(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*3600)
	resolved, err := ResolveVisitDate("2024-06-01", loc, fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Hour() != 12 || resolved.Minute() != 0 {
		t.Errorf("expected noon anchor, got %s", resolved.Format("15:04"))
	}
	if resolved.Location() != loc {
		t.Errorf("expected clinic zone, got %s", resolved.Location())
	}
}

func TestResolveVisitDate_TimestampTrustedAsGiven(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-06-08T09:00:00", time.Date(2024, 6, 8, 9, 0, 0, 0, loc)},
		{"2024-06-08T09:00", time.Date(2024, 6, 8, 9, 0, 0, 0, loc)},
		{"2024-06-08T09:00:00Z", time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		resolved, err := ResolveVisitDate(tt.raw, loc, fixedNow)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.raw, err)
		}
		if !resolved.Equal(tt.want) {
			t.Errorf("%s: got %s, want %s", tt.raw, resolved, tt.want)
		}
	}
}

func TestResolveVisitDate_EmptyMeansNow(t *testing.T) {
	resolved, err := ResolveVisitDate("", time.UTC, fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.Equal(fixedNow()) {
		t.Errorf("got %s, want now (%s)", resolved, fixedNow())
	}
}

func TestResolveVisitDate_Malformed(t *testing.T) {
	for _, raw := range []string{"15/03/2024", "not-a-date", "2024-13-99", "2024-06-08Tnoon"} {
		if _, err := ResolveVisitDate(raw, time.UTC, fixedNow); err == nil {
			t.Errorf("%q: expected error, got none", raw)
		}
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*3600)
	// 01:30 UTC on June 2 is still June 1 in UTC-4.
	instant := time.Date(2024, 6, 2, 1, 30, 0, 0, time.UTC)

	start, end := DayBounds(instant, loc)
	if got := start.Format("2006-01-02 15:04"); got != "2024-06-01 00:00" {
		t.Errorf("start = %s", got)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("end = %s, want start + 24h calendar day", end)
	}
	if !instant.After(start) || !instant.Before(end) {
		t.Error("instant should fall inside its own day bounds")
	}
}
