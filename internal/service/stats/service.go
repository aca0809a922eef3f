package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/holiday"
	"github.com/attendly/attendance-engine-go/internal/domain/stats"
	"github.com/attendly/attendance-engine-go/internal/pkg/validator"
	"github.com/attendly/attendance-engine-go/internal/pkg/watchdog"
)

type StatsServiceImpl struct {
	repo        attendance.Repository
	holidayRepo holiday.Repository
	clock       watchdog.Clock
}

func NewStatsService(repo attendance.Repository, holidayRepo holiday.Repository, clock watchdog.Clock) *StatsServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	return &StatsServiceImpl{
		repo:        repo,
		holidayRepo: holidayRepo,
		clock:       clock,
	}
}

var _ stats.Service = (*StatsServiceImpl)(nil)

// Month implements stats.Service.
func (s *StatsServiceImpl) Month(ctx context.Context, employeeID string, year, month int) (stats.MonthResponse, error) {
	if validator.IsEmpty(employeeID) {
		return stats.MonthResponse{}, attendance.ErrMissingEmployeeID
	}
	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return stats.MonthResponse{}, validator.ValidationErrors{
			{Field: "month", Message: "month must be 1-12 and year within range"},
		}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	startDate := attendance.DateKey(first)
	endDate := attendance.DateKey(last)

	records, err := s.repo.Range(ctx, employeeID, startDate, endDate)
	if err != nil {
		return stats.MonthResponse{}, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	cal, err := s.holidayRepo.Between(ctx, startDate, endDate)
	if err != nil {
		return stats.MonthResponse{}, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	return stats.MonthResponse{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Stats:      Tally(startDate, endDate, records, cal, s.clock()),
	}, nil
}

// Tally folds a date range of records into monthly counters using the same
// classification precedence the segment builder applies: holidays and
// weekends are out of scope, approved day-offs count once, absences cover
// both explicit markers and past days with no clock-in, and flag counters
// ride on top of presence.
func Tally(startDate, endDate string, records map[string]attendance.DayRecord, cal holiday.Calendar, now time.Time) stats.MonthlyStats {
	var out stats.MonthlyStats

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return out
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return out
	}

	today := attendance.DateKey(now)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := attendance.DateKey(d)

		var rec *attendance.DayRecord
		if r, ok := records[date]; ok {
			r := r
			rec = &r
		}

		if _, isHoliday := cal.Lookup(date); isHoliday {
			continue
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday || (rec != nil && rec.IsHoliday) {
			continue
		}

		if rec != nil && rec.DayOffRequested {
			if rec.Approved != nil && *rec.Approved {
				out.DayOff++
			}
			continue
		}

		if rec != nil && rec.Status == attendance.StatusAbsent {
			out.Absent++
			continue
		}

		if rec == nil || rec.ClockIn == nil {
			if date < today {
				out.Absent++
			}
			continue
		}

		out.Present++
		if rec.IsLate {
			out.Late++
		}
		if rec.IsEarly {
			out.Early++
		}
		if rec.HasOvertime {
			out.Overtime++
		}
	}

	return out
}
