package dayoff

import "context"

// Service defines business logic for the day-off request/approval
// workflow.
type Service interface {
	// Request submits a new day-off request for a future working day.
	Request(ctx context.Context, req CreateRequest) (RequestResponse, error)

	// Process approves or rejects a pending request. Admin only.
	Process(ctx context.Context, req ProcessRequest) (ProcessResponse, error)

	// Pending lists unprocessed requests. Admin only.
	Pending(ctx context.Context, adminID string) (PendingResponse, error)
}
