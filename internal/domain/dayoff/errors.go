package dayoff

import "errors"

// Day-off workflow errors
var (
	// Request precondition errors
	ErrMissingEmployeeID    = errors.New("employee id is required")
	ErrPastDate             = errors.New("cannot request a day off for a past date")
	ErrAlreadyNonWorkingDay = errors.New("the date is already a holiday or weekend")
	ErrConflictingRecord    = errors.New("the day already has attendance recorded")
	ErrDuplicateRequest     = errors.New("a day-off request already exists for this date")

	// Approval errors
	ErrAdminRequired = errors.New("admin privilege required")
	ErrNoSuchRequest = errors.New("no pending day-off request for this employee and date")

	// A process call for the same employee and date is still in flight
	ErrOperationInFlight = errors.New("another day-off operation is in progress")
)
