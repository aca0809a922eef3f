package dayoff

import (
	"github.com/attendly/attendance-engine-go/internal/pkg/validator"
)

type CreateRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessRequest struct {
	AdminID    string `json:"admin_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Approved   bool   `json:"approved"`
}

func (r *ProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
	State      string `json:"state"`
}

type PendingResponse struct {
	Requests []PendingRequestResponse `json:"requests"`
}

type PendingRequestResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
}

type ProcessResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	State      string `json:"state"`
}
