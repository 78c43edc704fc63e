package export

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-05-20T10:00:00Z", time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)},
		{"2025-05-20T10:00:00.250Z", time.Date(2025, 5, 20, 10, 0, 0, 250e6, time.UTC)},
		{"2025-05-20T12:00:00+02:00", time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)},
		{"2025-05-20T12:00:00", time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)},
		{"2025-05-20 12:00:00", time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)},
		{"2025-05-20", time.Date(2025, 5, 19, 22, 0, 0, 0, time.UTC)},
		{"1747645200", time.Date(2025, 5, 19, 9, 0, 0, 0, time.UTC)},
		{"1747645200.000100", time.Date(2025, 5, 19, 9, 0, 0, 100000, time.UTC)},
		{" 2025-05-20T10:00:00Z ", time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in, loc)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2025-13-01", "12.", ".5", "2025/05/20"} {
		if _, err := ParseTimestamp(in, time.UTC); err == nil {
			t.Errorf("ParseTimestamp(%q): expected error", in)
		}
	}
}

func TestDisplayDate_SameAndDifferentDays(t *testing.T) {
	a := time.Date(2025, 5, 19, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 5, 19, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	d := time.Date(2024, 5, 19, 12, 0, 0, 0, time.UTC)

	if DisplayDate(a, time.UTC) != DisplayDate(b, time.UTC) {
		t.Error("expected same label for same day")
	}
	if DisplayDate(b, time.UTC) == DisplayDate(c, time.UTC) {
		t.Error("expected different label for different days")
	}
	if DisplayDate(a, time.UTC) == DisplayDate(d, time.UTC) {
		t.Error("expected different label for different years")
	}
}
