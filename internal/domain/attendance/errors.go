package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in/out precondition errors
	ErrMissingEmployeeID = errors.New("employee id is required")
	ErrAlreadyClockedIn  = errors.New("you are already clocked in today")
	ErrAlreadyCompleted  = errors.New("today's attendance is already completed")
	ErrNotClockedIn      = errors.New("you have not clocked in yet")

	// A mutating call for the same employee and date is still in flight
	ErrOperationInFlight = errors.New("another attendance operation is in progress")
)
