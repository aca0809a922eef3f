package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/holiday"
	"github.com/attendly/attendance-engine-go/internal/pkg/events"
	"github.com/attendly/attendance-engine-go/internal/pkg/inflight"
	"github.com/attendly/attendance-engine-go/internal/pkg/timemath"
	"github.com/attendly/attendance-engine-go/internal/pkg/validator"
	"github.com/attendly/attendance-engine-go/internal/pkg/watchdog"
	timelineService "github.com/attendly/attendance-engine-go/internal/service/timeline"
)

type AttendanceServiceImpl struct {
	repo        attendance.Repository
	holidayRepo holiday.Repository
	builder     *timelineService.Builder
	registry    *inflight.Registry
	hub         *events.Hub
	watchdogCfg watchdog.Config
	clock       watchdog.Clock

	// One watcher per employee's open session, released on every exit
	// path.
	mu       sync.Mutex
	watchers map[string]*watchdog.Watcher

	rootCtx    context.Context
	rootCancel context.CancelFunc
}

func NewAttendanceService(
	repo attendance.Repository,
	holidayRepo holiday.Repository,
	builder *timelineService.Builder,
	registry *inflight.Registry,
	hub *events.Hub,
	watchdogCfg watchdog.Config,
	clock watchdog.Clock,
) *AttendanceServiceImpl {
	if clock == nil {
		clock = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AttendanceServiceImpl{
		repo:        repo,
		holidayRepo: holidayRepo,
		builder:     builder,
		registry:    registry,
		hub:         hub,
		watchdogCfg: watchdogCfg,
		clock:       clock,
		watchers:    make(map[string]*watchdog.Watcher),
		rootCtx:     ctx,
		rootCancel:  cancel,
	}
}

var _ attendance.Service = (*AttendanceServiceImpl)(nil)

// ClockIn implements attendance.Service.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.DayResponse, error) {
	if validator.IsEmpty(req.EmployeeID) {
		return attendance.DayResponse{}, attendance.ErrMissingEmployeeID
	}

	now := s.clock()
	date := attendance.DateKey(now)

	key := inflight.Key(req.EmployeeID, date)
	if !s.registry.Acquire(key) {
		return attendance.DayResponse{}, attendance.ErrOperationInFlight
	}
	defer s.registry.Release(key)

	// Transitions are evaluated against the latest known record, not a
	// cached one.
	rec, err := s.dayRecord(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	switch rec.State() {
	case attendance.StateClockedIn:
		return attendance.DayResponse{}, attendance.ErrAlreadyClockedIn
	case attendance.StateCompleted:
		return attendance.DayResponse{}, attendance.ErrAlreadyCompleted
	}

	result, err := s.repo.ClockIn(ctx, req.EmployeeID)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to clock in: %w", err)
	}

	updated := attendance.DayRecord{Date: date}
	if rec != nil {
		updated = *rec
	}
	updated.ClockIn = &result.ClockIn
	updated.Status = attendance.StatusPresent
	updated.IsLate = result.IsLate

	s.startWatcher(req.EmployeeID)

	return s.dayResponse(ctx, &updated, now), nil
}

// ClockOut implements attendance.Service.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.DayResponse, error) {
	if validator.IsEmpty(req.EmployeeID) {
		return attendance.DayResponse{}, attendance.ErrMissingEmployeeID
	}

	now := s.clock()
	date := attendance.DateKey(now)

	key := inflight.Key(req.EmployeeID, date)
	if !s.registry.Acquire(key) {
		return attendance.DayResponse{}, attendance.ErrOperationInFlight
	}
	defer s.registry.Release(key)

	rec, err := s.dayRecord(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	if rec.State() != attendance.StateClockedIn {
		return attendance.DayResponse{}, attendance.ErrNotClockedIn
	}

	result, err := s.repo.ClockOut(ctx, req.EmployeeID, req.IsAutoLogout)
	if err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to clock out: %w", err)
	}

	s.stopWatcher(req.EmployeeID)

	updated := *rec
	updated.ClockOut = &result.ClockOut
	updated.IsEarly = result.IsEarly
	updated.HasOvertime = result.HasOvertime

	return s.dayResponse(ctx, &updated, now), nil
}

// Timeline implements attendance.Service.
func (s *AttendanceServiceImpl) Timeline(ctx context.Context, req attendance.TimelineRequest) (attendance.TimelineResponse, error) {
	if validator.IsEmpty(req.EmployeeID) {
		return attendance.TimelineResponse{}, attendance.ErrMissingEmployeeID
	}
	if err := req.Validate(); err != nil {
		return attendance.TimelineResponse{}, err
	}

	records, err := s.repo.Range(ctx, req.EmployeeID, req.StartDate, req.EndDate)
	if err != nil {
		return attendance.TimelineResponse{}, fmt.Errorf("failed to fetch attendance records: %w", err)
	}

	cal, err := s.holidayRepo.Between(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return attendance.TimelineResponse{}, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	now := s.clock()

	var days []attendance.DayResponse
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := attendance.DateKey(d)

		var rec *attendance.DayRecord
		if r, ok := records[date]; ok {
			r := r
			rec = &r
		}

		day := s.toDayResponse(date, rec, cal, now)
		days = append(days, day)
	}

	return attendance.TimelineResponse{
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Days:       days,
	}, nil
}

// Stop implements attendance.Service.
func (s *AttendanceServiceImpl) Stop() {
	s.rootCancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.watchers {
		w.Stop()
		delete(s.watchers, id)
	}
}

// dayRecord fetches the single record for date, nil when none exists yet.
func (s *AttendanceServiceImpl) dayRecord(ctx context.Context, employeeID, date string) (*attendance.DayRecord, error) {
	records, err := s.repo.Range(ctx, employeeID, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance record: %w", err)
	}
	if rec, ok := records[date]; ok {
		return &rec, nil
	}
	return nil, nil
}

// dayResponse rebuilds segments for a freshly mutated record. The holiday
// calendar is refetched for the single date so classification stays
// consistent with the timeline view.
func (s *AttendanceServiceImpl) dayResponse(ctx context.Context, rec *attendance.DayRecord, now time.Time) attendance.DayResponse {
	cal, err := s.holidayRepo.Between(ctx, rec.Date, rec.Date)
	if err != nil {
		// Segmentation still works without the calendar; the record's
		// own flags cover the explicit holiday case.
		cal = holiday.Calendar{}
	}
	return s.toDayResponse(rec.Date, rec, cal, now)
}

func (s *AttendanceServiceImpl) toDayResponse(date string, rec *attendance.DayRecord, cal holiday.Calendar, now time.Time) attendance.DayResponse {
	day := attendance.DayResponse{
		Date:     date,
		State:    attendance.StateNotClockedIn.String(),
		Segments: s.builder.Build(date, rec, cal, now),
	}
	if rec == nil {
		return day
	}

	day.State = rec.State().String()
	day.ClockIn = rec.ClockIn
	day.ClockOut = rec.ClockOut
	day.IsLate = rec.IsLate
	day.IsEarly = rec.IsEarly
	day.HasOvertime = rec.HasOvertime
	day.DayOffRequested = rec.DayOffRequested
	day.Approved = rec.Approved
	day.Reason = rec.Reason
	day.Notes = rec.Notes
	if rec.Status != "" {
		status := string(rec.Status)
		day.Status = &status
	}

	// The elapsed baseline is the clock-in itself: a reload recomputes
	// now-clockIn instead of trusting any client-held counter.
	if rec.State() == attendance.StateClockedIn && date == attendance.DateKey(now) {
		if inMinutes, err := timemath.Parse(*rec.ClockIn); err == nil {
			elapsed := timemath.MinuteOfDay(now) - inMinutes
			if elapsed < 0 {
				elapsed = 0
			}
			day.ElapsedMinutes = &elapsed
		}
	}

	return day
}

// startWatcher arms the auto-logout watchdog for an open session.
func (s *AttendanceServiceImpl) startWatcher(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, running := s.watchers[employeeID]; running {
		return
	}

	w := watchdog.New(s.watchdogCfg, s.clock,
		func(now time.Time) {
			s.hub.Publish(events.NewEvent(employeeID, events.TypeStillClockedInWarning, now, map[string]interface{}{
				"force_logout_at": timemath.Format(s.watchdogCfg.ForceAt),
			}))
		},
		func(ctx context.Context, now time.Time) error {
			_, err := s.ClockOut(ctx, attendance.ClockOutRequest{
				EmployeeID:   employeeID,
				IsAutoLogout: true,
			})
			if err != nil {
				return err
			}
			s.hub.Publish(events.NewEvent(employeeID, events.TypeAutoLogoutFired, now, nil))
			return nil
		},
	)
	s.watchers[employeeID] = w
	w.Start(s.rootCtx)
}

// stopWatcher releases the watchdog on session completion by any path.
func (s *AttendanceServiceImpl) stopWatcher(employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, running := s.watchers[employeeID]; running {
		w.Stop()
		delete(s.watchers, employeeID)
	}
}
