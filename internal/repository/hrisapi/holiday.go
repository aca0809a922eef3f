package hrisapi

import (
	"context"
	"net/url"

	"github.com/attendly/attendance-engine-go/internal/domain/holiday"
)

// HolidayRepository implements holiday.Repository over the backend's REST
// endpoints.
type HolidayRepository struct {
	client *Client
}

func NewHolidayRepository(client *Client) *HolidayRepository {
	return &HolidayRepository{client: client}
}

func (r *HolidayRepository) Between(ctx context.Context, startDate, endDate string) (holiday.Calendar, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var body map[string]struct {
		Description string `json:"description"`
	}
	if err := r.client.get(ctx, "/holidays", query, &body); err != nil {
		return nil, err
	}

	cal := make(holiday.Calendar, len(body))
	for date, raw := range body {
		cal[date] = holiday.Holiday{Description: raw.Description}
	}
	return cal, nil
}
