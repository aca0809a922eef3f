package attendance

import "time"

// Status is the explicit day classification stored on a record.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// DayRecord is one employee's attendance facts for one calendar date.
// ClockIn/ClockOut are "HH:MM" wall-clock strings exactly as delivered by
// the backend; unparseable values are kept verbatim so segmentation can
// degrade to its error fallback instead of dropping data silently.
type DayRecord struct {
	Date     string
	ClockIn  *string
	ClockOut *string
	Status   Status

	// Flags computed by the backend, authoritative here.
	IsLate      bool
	IsEarly     bool
	HasOvertime bool

	// Explicit holiday override carried on the record itself.
	IsHoliday   bool
	HolidayName *string

	// Day-off workflow state. Approved follows the backend convention:
	// nil = not requested, false = pending, true = approved.
	DayOffRequested bool
	Approved        *bool
	Reason          *string

	Notes *string
}

// SessionState is the clock-in/out state machine position for one record.
type SessionState int

const (
	StateNotClockedIn SessionState = iota
	StateClockedIn
	StateCompleted
)

func (s SessionState) String() string {
	switch s {
	case StateNotClockedIn:
		return "not_clocked_in"
	case StateClockedIn:
		return "clocked_in"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// State derives the session state from the record's clock facts.
func (r *DayRecord) State() SessionState {
	if r == nil || r.ClockIn == nil {
		return StateNotClockedIn
	}
	if r.ClockOut == nil {
		return StateClockedIn
	}
	return StateCompleted
}

// DateKey renders t's calendar date as the "YYYY-MM-DD" record key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
