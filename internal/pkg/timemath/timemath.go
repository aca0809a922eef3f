package timemath

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in one calendar day.
const MinutesPerDay = 24 * 60

// Parse converts a wall-clock string in "HH:MM" form to minutes since
// midnight. Placeholder values ("", "-") and malformed input are errors.
func Parse(clock string) (int, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" || clock == "-" {
		return 0, fmt.Errorf("empty clock value %q", clock)
	}

	hourStr, minuteStr, found := strings.Cut(clock, ":")
	if !found {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", clock, err)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", clock, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}

	return hour*60 + minute, nil
}

// Format renders minutes since midnight as "HH:MM".
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Clock renders the wall-clock portion of t as "HH:MM".
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// MinuteOfDay returns t's wall-clock time as minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Window is a fixed display window over one day, expressed in minutes since
// midnight. Positions inside it map linearly to 0-100 percent.
type Window struct {
	Start int
	End   int
}

// NewWindow builds a Window from "HH:MM" boundaries.
func NewWindow(start, end string) (Window, error) {
	s, err := Parse(start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window start: %w", err)
	}
	e, err := Parse(end)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window end: %w", err)
	}
	if e <= s {
		return Window{}, fmt.Errorf("window end %s must be after start %s", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// PositionOf maps a "HH:MM" value onto the window as a percentage, clamped
// to [0, 100]. Invalid input maps to 0 so corrupt data renders at the left
// edge instead of breaking the bar.
func (w Window) PositionOf(clock string) float64 {
	minutes, err := Parse(clock)
	if err != nil {
		return 0
	}
	pos := float64(minutes-w.Start) / float64(w.End-w.Start) * 100
	return clamp(pos)
}

// WidthOf returns the percentage width between two "HH:MM" values, clamped
// to [0, 100]. Invalid or inverted input yields 0, never a negative width.
func (w Window) WidthOf(start, end string) float64 {
	if _, err := Parse(start); err != nil {
		return 0
	}
	if _, err := Parse(end); err != nil {
		return 0
	}
	width := w.PositionOf(end) - w.PositionOf(start)
	return clamp(width)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
