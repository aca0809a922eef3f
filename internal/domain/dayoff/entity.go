package dayoff

// RequestState is the day-off workflow position for one employee/date key.
type RequestState int

const (
	StateNone RequestState = iota
	StatePending
	StateApproved
	StateRejected
)

func (s RequestState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StatePending:
		return "pending"
	case StateApproved:
		return "approved"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// PendingRequest is one unprocessed day-off request as shown to admins.
type PendingRequest struct {
	EmployeeID   string
	EmployeeName string
	Date         string
	Reason       string
}
