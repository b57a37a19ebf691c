package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{" 10:00 ", 600, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"ten", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q): expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.minutes {
			t.Fatalf("ParseClock(%q) = %d, want %d", tt.input, got, tt.minutes)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 15, 570, 1439} {
		parsed, err := ParseClock(FormatClock(minutes))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", minutes, err)
		}
		if parsed != minutes {
			t.Fatalf("round trip of %d produced %d", minutes, parsed)
		}
	}
}

func TestStripZoneKeepsWallClockReading(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	local := time.Date(2026, 3, 14, 18, 30, 0, 0, loc)
	stripped := StripZone(local)

	if stripped.Location() != time.UTC {
		t.Fatalf("expected UTC representation, got %v", stripped.Location())
	}
	if stripped.Hour() != 18 || stripped.Minute() != 30 {
		t.Fatalf("wall clock changed: got %02d:%02d", stripped.Hour(), stripped.Minute())
	}
}

func TestRoundUpToGrid(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		minute int
		step   int
		want   int
	}{
		{0, 15, 0},
		{1, 15, 15},
		{14, 15, 15},
		{15, 15, 15},
		{16, 15, 30},
		{59, 15, 60},
		{7, 30, 30},
	}

	for _, tt := range tests {
		in := base.Add(time.Duration(tt.minute) * time.Minute)
		got := RoundUpToGrid(in, tt.step)
		want := base.Add(time.Duration(tt.want) * time.Minute)
		if !got.Equal(want) {
			t.Fatalf("RoundUpToGrid(10:%02d, %d) = %v, want %v", tt.minute, tt.step, got, want)
		}
	}
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 14, h, m, 0, 0, time.UTC)
	}

	// Touching intervals are bookable back to back.
	if Overlaps(at(10, 0), at(11, 0), at(11, 0), at(12, 0)) {
		t.Fatal("[10:00,11:00) and [11:00,12:00) must not overlap")
	}
	if !Overlaps(at(10, 0), at(11, 0), at(10, 59), at(12, 0)) {
		t.Fatal("[10:00,11:00) and [10:59,12:00) must overlap")
	}
	if !Overlaps(at(10, 0), at(12, 0), at(10, 30), at(11, 0)) {
		t.Fatal("containment must count as overlap")
	}
	if Overlaps(at(10, 0), at(11, 0), at(12, 0), at(13, 0)) {
		t.Fatal("disjoint intervals must not overlap")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2026, 1, 31},
		{2026, 2, 28},
		{2028, 2, 29},
		{2026, 4, 30},
		{2026, 0, 0},
		{2026, 13, 0},
		{2026, -5, 0},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestISOWeekday(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := ISOWeekday(monday.AddDate(0, 0, i)); got != i+1 {
			t.Fatalf("ISOWeekday(monday+%d) = %d, want %d", i, got, i+1)
		}
	}
}

func TestDateTimeJSON(t *testing.T) {
	var d DateTime
	for _, input := range []string{
		`"2026-08-26T14:30:00"`,
		`"2026-08-26T14:30"`,
		`"2026-08-26T14:30:00+05:00"`,
	} {
		if err := json.Unmarshal([]byte(input), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		if d.Hour() != 14 || d.Minute() != 30 {
			t.Fatalf("unmarshal %s: wall clock lost, got %v", input, d.Time)
		}
	}

	out, err := json.Marshal(NewDateTime(time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2026-08-26T14:30:00"` {
		t.Fatalf("marshal produced %s", out)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Fatal("expected error for malformed datetime")
	}
}
