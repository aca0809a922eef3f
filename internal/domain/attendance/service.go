package attendance

import "context"

// Service defines business logic for clock-in/out sessions and timeline
// reads.
type Service interface {
	// ClockIn opens today's session for the employee.
	ClockIn(ctx context.Context, req ClockInRequest) (DayResponse, error)

	// ClockOut closes the open session. IsAutoLogout tags end-of-day
	// forced logouts.
	ClockOut(ctx context.Context, req ClockOutRequest) (DayResponse, error)

	// Timeline retrieves records for a date range with built segments.
	Timeline(ctx context.Context, req TimelineRequest) (TimelineResponse, error)

	// Stop releases every running auto-logout watcher. Called on server
	// shutdown.
	Stop()
}
