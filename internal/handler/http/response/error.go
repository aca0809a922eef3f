package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/dayoff"
	"github.com/attendly/attendance-engine-go/internal/pkg/validator"
	"github.com/attendly/attendance-engine-go/internal/repository/hrisapi"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrMissingEmployeeID):
		BadRequest(w, "Employee id is required", nil)
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "You are already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyCompleted):
		Conflict(w, "Today's attendance is already completed")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "You have not clocked in yet", nil)
	case errors.Is(err, attendance.ErrOperationInFlight):
		Conflict(w, "Another attendance operation is in progress")

	// Day-off domain errors
	case errors.Is(err, dayoff.ErrMissingEmployeeID):
		BadRequest(w, "Employee id is required", nil)
	case errors.Is(err, dayoff.ErrPastDate):
		BadRequest(w, "Cannot request a day off for a past date", nil)
	case errors.Is(err, dayoff.ErrAlreadyNonWorkingDay):
		BadRequest(w, "The date is already a holiday or weekend", nil)
	case errors.Is(err, dayoff.ErrConflictingRecord):
		Conflict(w, "The day already has attendance recorded")
	case errors.Is(err, dayoff.ErrDuplicateRequest):
		Conflict(w, "A day-off request already exists for this date")
	case errors.Is(err, dayoff.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, dayoff.ErrNoSuchRequest):
		NotFound(w, "No pending day-off request for this employee and date")
	case errors.Is(err, dayoff.ErrOperationInFlight):
		Conflict(w, "Another day-off operation is in progress")

	// Backend gateway errors
	case errors.Is(err, hrisapi.ErrBackend):
		BadGateway(w, "The attendance backend is unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
