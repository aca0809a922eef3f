package stats

import "context"

// Service rolls a month of attendance records up into counters.
type Service interface {
	Month(ctx context.Context, employeeID string, year, month int) (MonthResponse, error)
}
