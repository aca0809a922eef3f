package timemath

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:01", 541, false},
		{"17:00", 1020, false},
		{"23:59", 1439, false},
		{" 08:30 ", 510, false},
		{"", 0, true},
		{"-", 0, true},
		{"9", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"ab:cd", 0, true},
	}
	for _, c := range cases {
		got, err := Parse(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %d", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{541, "09:01"},
		{1125, "18:45"},
		{1439, "23:59"},
	}
	for _, c := range cases {
		if got := Format(c.minutes); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestClock(t *testing.T) {
	at := time.Date(2025, 3, 10, 18, 45, 12, 0, time.UTC)
	if got := Clock(at); got != "18:45" {
		t.Errorf("Clock = %q, want 18:45", got)
	}
	if got := MinuteOfDay(at); got != 18*60+45 {
		t.Errorf("MinuteOfDay = %d, want %d", got, 18*60+45)
	}
}

func TestWindowPositionOf(t *testing.T) {
	w, err := NewWindow("08:00", "20:00")
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	cases := []struct {
		clock string
		want  float64
	}{
		{"08:00", 0},
		{"14:00", 50},
		{"20:00", 100},
		{"09:00", 100.0 / 12.0},
		{"07:00", 0},   // before window, clamped
		{"21:00", 100}, // after window, clamped
		{"", 0},
		{"-", 0},
		{"garbage", 0},
	}
	for _, c := range cases {
		got := w.PositionOf(c.clock)
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("PositionOf(%q) = %v, want %v", c.clock, got, c.want)
		}
	}
}

func TestWindowWidthOf(t *testing.T) {
	w, err := NewWindow("08:00", "20:00")
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	cases := []struct {
		start, end string
		want       float64
	}{
		{"08:00", "20:00", 100},
		{"09:00", "17:00", 100.0 * 8 / 12},
		{"17:00", "09:00", 0}, // inverted interval never renders negative
		{"", "17:00", 0},
		{"09:00", "-", 0},
		{"06:00", "07:00", 0}, // entirely left of the window
	}
	for _, c := range cases {
		got := w.WidthOf(c.start, c.end)
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("WidthOf(%q, %q) = %v, want %v", c.start, c.end, got, c.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("WidthOf(%q, %q) = %v outside [0,100]", c.start, c.end, got)
		}
	}
}

func TestNewWindowRejectsInvertedWindow(t *testing.T) {
	if _, err := NewWindow("20:00", "08:00"); err == nil {
		t.Error("expected error for inverted window")
	}
	if _, err := NewWindow("bad", "08:00"); err == nil {
		t.Error("expected error for malformed start")
	}
}
