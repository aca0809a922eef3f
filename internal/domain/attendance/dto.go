package attendance

import (
	"github.com/attendly/attendance-engine-go/internal/domain/timeline"
	"github.com/attendly/attendance-engine-go/internal/pkg/validator"
)

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
}

type ClockOutRequest struct {
	EmployeeID   string `json:"employee_id"`
	IsAutoLogout bool   `json:"is_auto_logout"`
}

type TimelineRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *TimelineRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DayResponse is one date's record plus its freshly built segments. The
// segment list is regenerated on every response, never cached, so live
// segments keep growing.
type DayResponse struct {
	Date            string             `json:"date"`
	State           string             `json:"state"`
	ClockIn         *string            `json:"clock_in,omitempty"`
	ClockOut        *string            `json:"clock_out,omitempty"`
	Status          *string            `json:"status,omitempty"`
	IsLate          bool               `json:"is_late"`
	IsEarly         bool               `json:"is_early"`
	HasOvertime     bool               `json:"has_overtime"`
	DayOffRequested bool               `json:"day_off_requested"`
	Approved        *bool              `json:"approved,omitempty"`
	Reason          *string            `json:"reason,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	ElapsedMinutes  *int               `json:"elapsed_minutes,omitempty"`
	Segments        []timeline.Segment `json:"segments"`
}

type TimelineResponse struct {
	EmployeeID string        `json:"employee_id"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Days       []DayResponse `json:"days"`
}
