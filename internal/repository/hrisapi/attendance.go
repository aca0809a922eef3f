package hrisapi

import (
	"context"
	"net/url"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
)

// AttendanceRepository implements attendance.Repository over the backend's
// REST endpoints.
type AttendanceRepository struct {
	client *Client
}

func NewAttendanceRepository(client *Client) *AttendanceRepository {
	return &AttendanceRepository{client: client}
}

type dayRecordJSON struct {
	Date            string  `json:"date"`
	ClockIn         *string `json:"clock_in"`
	ClockOut        *string `json:"clock_out"`
	Status          string  `json:"status"`
	IsLate          bool    `json:"is_late"`
	IsEarly         bool    `json:"is_early"`
	HasOvertime     bool    `json:"has_overtime"`
	IsHoliday       bool    `json:"is_holiday"`
	HolidayName     *string `json:"holiday_name"`
	DayOffRequested bool    `json:"day_off_requested"`
	Approved        *bool   `json:"approved"`
	Reason          *string `json:"reason"`
	Notes           *string `json:"notes"`
}

func (j dayRecordJSON) toDomain(date string) attendance.DayRecord {
	rec := attendance.DayRecord{
		Date:            date,
		Status:          attendance.Status(j.Status),
		IsLate:          j.IsLate,
		IsEarly:         j.IsEarly,
		HasOvertime:     j.HasOvertime,
		IsHoliday:       j.IsHoliday,
		HolidayName:     j.HolidayName,
		DayOffRequested: j.DayOffRequested,
		Approved:        j.Approved,
		Reason:          j.Reason,
		Notes:           j.Notes,
	}
	if j.Date != "" {
		rec.Date = j.Date
	}
	if j.ClockIn != nil {
		v := normalizeClock(*j.ClockIn)
		rec.ClockIn = &v
	}
	if j.ClockOut != nil {
		v := normalizeClock(*j.ClockOut)
		rec.ClockOut = &v
	}
	return rec
}

func (r *AttendanceRepository) Range(ctx context.Context, employeeID, startDate, endDate string) (map[string]attendance.DayRecord, error) {
	query := url.Values{}
	query.Set("employee_id", employeeID)
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var body struct {
		AttendanceData map[string]dayRecordJSON `json:"attendance_data"`
	}
	if err := r.client.get(ctx, "/attendance", query, &body); err != nil {
		return nil, err
	}

	records := make(map[string]attendance.DayRecord, len(body.AttendanceData))
	for date, raw := range body.AttendanceData {
		records[date] = raw.toDomain(date)
	}
	return records, nil
}

func (r *AttendanceRepository) ClockIn(ctx context.Context, employeeID string) (attendance.ClockInResult, error) {
	req := map[string]string{"employee_id": employeeID}
	var body struct {
		ID      string `json:"id"`
		ClockIn string `json:"clock_in"`
		IsLate  bool   `json:"is_late"`
	}
	if err := r.client.post(ctx, "/clock-in", req, &body); err != nil {
		return attendance.ClockInResult{}, err
	}
	return attendance.ClockInResult{
		ID:      body.ID,
		ClockIn: normalizeClock(body.ClockIn),
		IsLate:  body.IsLate,
	}, nil
}

func (r *AttendanceRepository) ClockOut(ctx context.Context, employeeID string, isAutoLogout bool) (attendance.ClockOutResult, error) {
	req := map[string]interface{}{
		"employee_id":    employeeID,
		"is_auto_logout": isAutoLogout,
	}
	var body struct {
		ClockOut    string `json:"clock_out"`
		IsEarly     bool   `json:"is_early"`
		HasOvertime bool   `json:"has_overtime"`
		Duration    int    `json:"duration"`
	}
	if err := r.client.post(ctx, "/clock-out", req, &body); err != nil {
		return attendance.ClockOutResult{}, err
	}
	return attendance.ClockOutResult{
		ClockOut:        normalizeClock(body.ClockOut),
		IsEarly:         body.IsEarly,
		HasOvertime:     body.HasOvertime,
		DurationMinutes: body.Duration,
	}, nil
}
