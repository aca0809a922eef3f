package stats

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// Fixed month: March 2025. The 10th is a Monday; "now" is the 14th.
func nowMid() time.Time {
	t, _ := time.Parse("2006-01-02 15:04", "2025-03-14 12:00")
	return t
}

func TestTally(t *testing.T) {
	t.Parallel()

	records := map[string]attendance.DayRecord{
		// Present, on time.
		"2025-03-03": {Date: "2025-03-03", ClockIn: strPtr("08:55"), ClockOut: strPtr("17:05")},
		// Present, late with overtime.
		"2025-03-04": {Date: "2025-03-04", ClockIn: strPtr("09:20"), ClockOut: strPtr("18:10"), IsLate: true, HasOvertime: true},
		// Present, left early.
		"2025-03-05": {Date: "2025-03-05", ClockIn: strPtr("09:00"), ClockOut: strPtr("15:30"), IsEarly: true},
		// Explicit absence.
		"2025-03-06": {Date: "2025-03-06", Status: attendance.StatusAbsent},
		// Approved day off.
		"2025-03-10": {Date: "2025-03-10", DayOffRequested: true, Approved: boolPtr(true)},
		// Pending day off: counts nowhere until processed.
		"2025-03-12": {Date: "2025-03-12", DayOffRequested: true, Approved: boolPtr(false)},
		// Holiday with clock data still out of scope.
		"2025-03-17": {Date: "2025-03-17", ClockIn: strPtr("09:00")},
	}
	cal := holiday.Calendar{"2025-03-17": {Description: "Founders Day"}}

	got := Tally("2025-03-01", "2025-03-31", records, cal, nowMid())

	assert.Equal(t, 3, got.Present)
	assert.Equal(t, 1, got.Late)
	assert.Equal(t, 1, got.Early)
	assert.Equal(t, 1, got.Overtime)
	assert.Equal(t, 1, got.DayOff)
	// Explicit absence plus implicit ones: Mar 7, 11, 13 are past
	// weekdays without a record or day-off.
	assert.Equal(t, 4, got.Absent)
}

func TestTallySkipsWeekendsAndFuture(t *testing.T) {
	t.Parallel()

	got := Tally("2025-03-01", "2025-03-31", nil, nil, nowMid())

	// Mar 3-7, 10-13 are the past weekdays before "now" (the 14th);
	// weekends and future days contribute nothing.
	assert.Equal(t, 9, got.Absent)
	assert.Equal(t, 0, got.Present)
}

type fakeRepo struct {
	records map[string]attendance.DayRecord
}

func (r *fakeRepo) Range(_ context.Context, _, startDate, endDate string) (map[string]attendance.DayRecord, error) {
	out := make(map[string]attendance.DayRecord)
	for date, rec := range r.records {
		if date >= startDate && date <= endDate {
			out[date] = rec
		}
	}
	return out, nil
}

func (r *fakeRepo) ClockIn(context.Context, string) (attendance.ClockInResult, error) {
	panic("not used")
}

func (r *fakeRepo) ClockOut(context.Context, string, bool) (attendance.ClockOutResult, error) {
	panic("not used")
}

type fakeHolidays struct{}

func (fakeHolidays) Between(context.Context, string, string) (holiday.Calendar, error) {
	return holiday.Calendar{}, nil
}

func TestMonth(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{records: map[string]attendance.DayRecord{
		"2025-03-03": {Date: "2025-03-03", ClockIn: strPtr("09:20"), ClockOut: strPtr("17:00"), IsLate: true},
	}}
	svc := NewStatsService(repo, fakeHolidays{}, nowMid)

	resp, err := svc.Month(context.Background(), "emp-1", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, 1, resp.Stats.Present)
	assert.Equal(t, 1, resp.Stats.Late)
}

func TestMonthValidation(t *testing.T) {
	t.Parallel()
	svc := NewStatsService(&fakeRepo{}, fakeHolidays{}, nowMid)

	_, err := svc.Month(context.Background(), "", 2025, 3)
	assert.ErrorIs(t, err, attendance.ErrMissingEmployeeID)

	_, err = svc.Month(context.Background(), "emp-1", 2025, 13)
	assert.Error(t, err)
}