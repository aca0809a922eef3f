package dayoff

import "context"

// Repository is the gateway to the backend that persists day-off requests.
type Repository interface {
	// Request stores a new pending request and returns its id.
	Request(ctx context.Context, employeeID, date, reason string) (string, error)

	// Process approves or rejects the pending request at the key. A
	// rejected request is cleared back to none by the backend.
	Process(ctx context.Context, adminID, employeeID, date string, approved bool) error

	// Pending lists unprocessed requests visible to the admin.
	Pending(ctx context.Context, adminID string) ([]PendingRequest, error)
}
