package attendance

import "context"

// ClockInResult is the backend's confirmation of a clock-in. IsLate is
// computed by the backend and authoritative.
type ClockInResult struct {
	ID      string
	ClockIn string // "HH:MM"
	IsLate  bool
}

// ClockOutResult is the backend's confirmation of a clock-out.
type ClockOutResult struct {
	ClockOut        string // "HH:MM"
	IsEarly         bool
	HasOvertime     bool
	DurationMinutes int
}

// Repository is the gateway to the backend that persists attendance
// records. The engine never advances local state without a confirmed
// result from it.
type Repository interface {
	// Range retrieves records for an inclusive "YYYY-MM-DD" date range,
	// keyed by date. Dates without a record are absent from the map.
	Range(ctx context.Context, employeeID, startDate, endDate string) (map[string]DayRecord, error)

	// ClockIn records a clock-in for the current instant.
	ClockIn(ctx context.Context, employeeID string) (ClockInResult, error)

	// ClockOut closes the open session. isAutoLogout tags forced
	// end-of-day logouts.
	ClockOut(ctx context.Context, employeeID string, isAutoLogout bool) (ClockOutResult, error)
}
