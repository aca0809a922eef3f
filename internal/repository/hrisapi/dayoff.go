package hrisapi

import (
	"context"
	"net/url"

	"github.com/attendly/attendance-engine-go/internal/domain/dayoff"
)

// DayOffRepository implements dayoff.Repository over the backend's REST
// endpoints.
type DayOffRepository struct {
	client *Client
}

func NewDayOffRepository(client *Client) *DayOffRepository {
	return &DayOffRepository{client: client}
}

func (r *DayOffRepository) Request(ctx context.Context, employeeID, date, reason string) (string, error) {
	req := map[string]string{
		"employee_id": employeeID,
		"date":        date,
		"reason":      reason,
	}
	var body struct {
		ID string `json:"id"`
	}
	if err := r.client.post(ctx, "/day-off", req, &body); err != nil {
		return "", err
	}
	return body.ID, nil
}

func (r *DayOffRepository) Process(ctx context.Context, adminID, employeeID, date string, approved bool) error {
	req := map[string]interface{}{
		"admin_id":    adminID,
		"employee_id": employeeID,
		"date":        date,
		"approved":    approved,
	}
	return r.client.post(ctx, "/day-off/approve", req, nil)
}

func (r *DayOffRepository) Pending(ctx context.Context, adminID string) ([]dayoff.PendingRequest, error) {
	query := url.Values{}
	query.Set("admin_id", adminID)

	var body struct {
		Requests []struct {
			EmployeeID   string `json:"employee_id"`
			EmployeeName string `json:"employee_name"`
			Date         string `json:"date"`
			Reason       string `json:"reason"`
		} `json:"requests"`
	}
	if err := r.client.get(ctx, "/pending-requests", query, &body); err != nil {
		return nil, err
	}

	pending := make([]dayoff.PendingRequest, 0, len(body.Requests))
	for _, raw := range body.Requests {
		pending = append(pending, dayoff.PendingRequest{
			EmployeeID:   raw.EmployeeID,
			EmployeeName: raw.EmployeeName,
			Date:         raw.Date,
			Reason:       raw.Reason,
		})
	}
	return pending, nil
}
