package holiday

import "context"

// Repository fetches the holiday calendar from the backend.
type Repository interface {
	// Between retrieves holidays for an inclusive "YYYY-MM-DD" date range.
	Between(ctx context.Context, startDate, endDate string) (Calendar, error)
}
