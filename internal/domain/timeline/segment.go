package timeline

import (
	"fmt"

	"github.com/attendly/attendance-engine-go/internal/pkg/timemath"
)

// Kind classifies one segment of a day's timeline. It is a closed
// enumeration; rendering consumers switch over it exhaustively so a new
// kind cannot be added without updating them.
type Kind int

const (
	KindHoliday Kind = iota
	KindDayOff
	KindDayOffPending
	KindAbsent
	KindPending
	KindEarlyArrival
	KindLate
	KindWorking
	KindEarly
	KindOvertime
	KindActiveOvertime
	KindError
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHoliday:
		return "holiday"
	case KindDayOff:
		return "dayoff"
	case KindDayOffPending:
		return "dayoff_pending"
	case KindAbsent:
		return "absent"
	case KindPending:
		return "pending"
	case KindEarlyArrival:
		return "early_arrival"
	case KindLate:
		return "late"
	case KindWorking:
		return "working"
	case KindEarly:
		return "early"
	case KindOvertime:
		return "overtime"
	case KindActiveOvertime:
		return "active_overtime"
	case KindError:
		return "error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalJSON renders the kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Segment is one labeled interval within a day's timeline. Start and End
// are "HH:MM" wall-clock values; Left and Width are percentage geometry
// within the display window.
type Segment struct {
	Kind      Kind    `json:"type"`
	Start     string  `json:"start_time"`
	End       string  `json:"end_time"`
	Label     string  `json:"label"`
	FullLabel string  `json:"full_label"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
}

// Workday carries the configured cutoffs the engine measures against: the
// nominal work window and the wider display window.
type Workday struct {
	Start   int // nominal start / late cutoff, minutes since midnight
	End     int // nominal end, minutes since midnight
	Display timemath.Window
}

// StartClock returns the nominal start as "HH:MM".
func (w Workday) StartClock() string {
	return timemath.Format(w.Start)
}

// EndClock returns the nominal end as "HH:MM".
func (w Workday) EndClock() string {
	return timemath.Format(w.End)
}

// DefaultWorkday is the standard 09:00-17:00 workday over the 08:00-20:00
// display window.
func DefaultWorkday() Workday {
	return Workday{
		Start:   9 * 60,
		End:     17 * 60,
		Display: timemath.Window{Start: 8 * 60, End: 20 * 60},
	}
}
