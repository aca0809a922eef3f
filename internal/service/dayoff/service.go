package dayoff

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/dayoff"
	"github.com/attendly/attendance-engine-go/internal/domain/holiday"
	"github.com/attendly/attendance-engine-go/internal/pkg/events"
	"github.com/attendly/attendance-engine-go/internal/pkg/inflight"
	"github.com/attendly/attendance-engine-go/internal/pkg/validator"
	"github.com/attendly/attendance-engine-go/internal/pkg/watchdog"
)

type DayOffServiceImpl struct {
	repo           dayoff.Repository
	attendanceRepo attendance.Repository
	holidayRepo    holiday.Repository
	registry       *inflight.Registry
	hub            *events.Hub
	clock          watchdog.Clock
}

func NewDayOffService(
	repo dayoff.Repository,
	attendanceRepo attendance.Repository,
	holidayRepo holiday.Repository,
	registry *inflight.Registry,
	hub *events.Hub,
	clock watchdog.Clock,
) *DayOffServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	return &DayOffServiceImpl{
		repo:           repo,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		registry:       registry,
		hub:            hub,
		clock:          clock,
	}
}

var _ dayoff.Service = (*DayOffServiceImpl)(nil)

// Request implements dayoff.Service. All preconditions are checked before
// the remote call; the backend is only reached for a valid request.
func (s *DayOffServiceImpl) Request(ctx context.Context, req dayoff.CreateRequest) (dayoff.RequestResponse, error) {
	if validator.IsEmpty(req.EmployeeID) {
		return dayoff.RequestResponse{}, dayoff.ErrMissingEmployeeID
	}
	if err := req.Validate(); err != nil {
		return dayoff.RequestResponse{}, err
	}

	day, _ := validator.IsValidDate(req.Date)
	today := attendance.DateKey(s.clock())

	if req.Date < today {
		return dayoff.RequestResponse{}, dayoff.ErrPastDate
	}

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return dayoff.RequestResponse{}, dayoff.ErrAlreadyNonWorkingDay
	}

	cal, err := s.holidayRepo.Between(ctx, req.Date, req.Date)
	if err != nil {
		return dayoff.RequestResponse{}, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	if _, isHoliday := cal.Lookup(req.Date); isHoliday {
		return dayoff.RequestResponse{}, dayoff.ErrAlreadyNonWorkingDay
	}

	records, err := s.attendanceRepo.Range(ctx, req.EmployeeID, req.Date, req.Date)
	if err != nil {
		return dayoff.RequestResponse{}, fmt.Errorf("failed to fetch attendance record: %w", err)
	}
	if rec, exists := records[req.Date]; exists {
		if rec.ClockIn != nil || rec.Status == attendance.StatusAbsent {
			return dayoff.RequestResponse{}, dayoff.ErrConflictingRecord
		}
		if rec.DayOffRequested {
			return dayoff.RequestResponse{}, dayoff.ErrDuplicateRequest
		}
	}

	id, err := s.repo.Request(ctx, req.EmployeeID, req.Date, req.Reason)
	if err != nil {
		return dayoff.RequestResponse{}, fmt.Errorf("failed to submit day-off request: %w", err)
	}

	return dayoff.RequestResponse{
		ID:         id,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Reason:     req.Reason,
		State:      dayoff.StatePending.String(),
	}, nil
}

// Process implements dayoff.Service. The per-key exclusivity token blocks
// a double-click from processing the same request twice.
func (s *DayOffServiceImpl) Process(ctx context.Context, req dayoff.ProcessRequest) (dayoff.ProcessResponse, error) {
	if validator.IsEmpty(req.AdminID) {
		return dayoff.ProcessResponse{}, dayoff.ErrAdminRequired
	}
	if err := req.Validate(); err != nil {
		return dayoff.ProcessResponse{}, err
	}

	key := inflight.Key(req.EmployeeID, req.Date)
	if !s.registry.Acquire(key) {
		return dayoff.ProcessResponse{}, dayoff.ErrOperationInFlight
	}
	defer s.registry.Release(key)

	pending, err := s.repo.Pending(ctx, req.AdminID)
	if err != nil {
		return dayoff.ProcessResponse{}, fmt.Errorf("failed to fetch pending requests: %w", err)
	}

	found := false
	for _, p := range pending {
		if p.EmployeeID == req.EmployeeID && p.Date == req.Date {
			found = true
			break
		}
	}
	if !found {
		return dayoff.ProcessResponse{}, dayoff.ErrNoSuchRequest
	}

	if err := s.repo.Process(ctx, req.AdminID, req.EmployeeID, req.Date, req.Approved); err != nil {
		return dayoff.ProcessResponse{}, fmt.Errorf("failed to process day-off request: %w", err)
	}

	state := dayoff.StateApproved
	if !req.Approved {
		state = dayoff.StateRejected
	}

	s.hub.Publish(events.NewEvent(req.EmployeeID, events.TypeDayOffProcessed, s.clock(), map[string]interface{}{
		"date":     req.Date,
		"approved": req.Approved,
	}))

	return dayoff.ProcessResponse{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		State:      state.String(),
	}, nil
}

// Pending implements dayoff.Service.
func (s *DayOffServiceImpl) Pending(ctx context.Context, adminID string) (dayoff.PendingResponse, error) {
	if validator.IsEmpty(adminID) {
		return dayoff.PendingResponse{}, dayoff.ErrAdminRequired
	}

	pending, err := s.repo.Pending(ctx, adminID)
	if err != nil {
		return dayoff.PendingResponse{}, fmt.Errorf("failed to fetch pending requests: %w", err)
	}

	requests := make([]dayoff.PendingRequestResponse, 0, len(pending))
	for _, p := range pending {
		requests = append(requests, dayoff.PendingRequestResponse{
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.EmployeeName,
			Date:         p.Date,
			Reason:       p.Reason,
		})
	}

	return dayoff.PendingResponse{Requests: requests}, nil
}
