package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/spotsecure/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 8*time.Hour + 30*time.Minute, false},
		{"23:59:30", 23*time.Hour + 59*time.Minute + 30*time.Second, false},
		{"24:00", 0, true},
		{"8.30", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseClock(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCombine(t *testing.T) {
	got, err := timecalc.Combine("2026-02-27", "09:15")
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	want := time.Date(2026, 2, 27, 9, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}

	if _, err := timecalc.Combine("2026-02-30", "09:15"); err == nil {
		t.Error("Combine with invalid date: expected error")
	}
}

func TestSpan(t *testing.T) {
	d, err := timecalc.Span("2026-03-29", "01:00", "04:00")
	if err != nil {
		t.Fatalf("Span: %v", err)
	}
	if d != 3*time.Hour {
		t.Errorf("Span = %v, want 3h", d)
	}

	d, err = timecalc.Span("2026-03-29", "10:00", "09:00")
	if err != nil {
		t.Fatalf("Span: %v", err)
	}
	if d != -time.Hour {
		t.Errorf("Span = %v, want -1h", d)
	}
}

func TestCeilHours(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{time.Minute, 1},
		{time.Hour, 1},
		{time.Hour + time.Second, 2},
		{2*time.Hour + 30*time.Minute, 3},
		{-90 * time.Minute, -1},
	}
	for _, tt := range tests {
		if got := timecalc.CeilHours(tt.d); got != tt.want {
			t.Errorf("CeilHours(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := timecalc.FormatHours(3); got != "3h" {
		t.Errorf("FormatHours(3) = %q, want %q", got, "3h")
	}
}

func TestToday(t *testing.T) {
	ts := time.Date(2026, 2, 27, 23, 59, 0, 0, time.UTC)
	if got := timecalc.Today(ts); got != "2026-02-27" {
		t.Errorf("Today = %q, want %q", got, "2026-02-27")
	}
}
