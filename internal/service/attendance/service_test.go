package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/holiday"
	"github.com/attendly/attendance-engine-go/internal/domain/timeline"
	"github.com/attendly/attendance-engine-go/internal/pkg/events"
	"github.com/attendly/attendance-engine-go/internal/pkg/inflight"
	"github.com/attendly/attendance-engine-go/internal/pkg/timemath"
	"github.com/attendly/attendance-engine-go/internal/pkg/watchdog"
	timelineService "github.com/attendly/attendance-engine-go/internal/service/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 is a Monday.
func at(clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2025-03-10 "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeRepo struct {
	mu            sync.Mutex
	records       map[string]attendance.DayRecord // date -> record, single employee
	clock         *fakeClock
	clockInErr    error
	clockOutErr   error
	clockOutCalls int
	lastAuto      bool
}

func newFakeRepo(clock *fakeClock) *fakeRepo {
	return &fakeRepo{
		records: make(map[string]attendance.DayRecord),
		clock:   clock,
	}
}

func (r *fakeRepo) Range(_ context.Context, _, startDate, endDate string) (map[string]attendance.DayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]attendance.DayRecord)
	for date, rec := range r.records {
		if date >= startDate && date <= endDate {
			out[date] = rec
		}
	}
	return out, nil
}

func (r *fakeRepo) ClockIn(_ context.Context, _ string) (attendance.ClockInResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clockInErr != nil {
		return attendance.ClockInResult{}, r.clockInErr
	}
	now := r.clock.Now()
	in := timemath.Clock(now)
	date := attendance.DateKey(now)
	rec := r.records[date]
	rec.Date = date
	rec.ClockIn = &in
	rec.Status = attendance.StatusPresent
	rec.IsLate = timemath.MinuteOfDay(now) > 9*60
	r.records[date] = rec
	return attendance.ClockInResult{ID: "att-1", ClockIn: in, IsLate: rec.IsLate}, nil
}

func (r *fakeRepo) ClockOut(_ context.Context, _ string, isAutoLogout bool) (attendance.ClockOutResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clockOutErr != nil {
		return attendance.ClockOutResult{}, r.clockOutErr
	}
	r.clockOutCalls++
	r.lastAuto = isAutoLogout
	now := r.clock.Now()
	out := timemath.Clock(now)
	date := attendance.DateKey(now)
	rec := r.records[date]
	rec.ClockOut = &out
	rec.HasOvertime = timemath.MinuteOfDay(now) > 17*60
	rec.IsEarly = timemath.MinuteOfDay(now) < 17*60
	r.records[date] = rec
	return attendance.ClockOutResult{ClockOut: out, IsEarly: rec.IsEarly, HasOvertime: rec.HasOvertime}, nil
}

type fakeHolidays struct {
	cal holiday.Calendar
}

func (f *fakeHolidays) Between(_ context.Context, _, _ string) (holiday.Calendar, error) {
	if f.cal == nil {
		return holiday.Calendar{}, nil
	}
	return f.cal, nil
}

type fixture struct {
	svc   *AttendanceServiceImpl
	repo  *fakeRepo
	clock *fakeClock
	hub   *events.Hub
}

func newFixture(t *testing.T, start string) *fixture {
	t.Helper()
	clock := &fakeClock{now: at(start)}
	repo := newFakeRepo(clock)
	hub := events.NewHub()

	cfg := watchdog.DefaultConfig()
	cfg.Tick = 2 * time.Millisecond

	svc := NewAttendanceService(
		repo,
		&fakeHolidays{},
		timelineService.NewBuilder(timeline.DefaultWorkday()),
		inflight.NewRegistry(),
		hub,
		cfg,
		clock.Now,
	)
	t.Cleanup(svc.Stop)

	return &fixture{svc: svc, repo: repo, clock: clock, hub: hub}
}

func TestClockInSuccess(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "08:50")

	resp, err := f.svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, "clocked_in", resp.State)
	require.NotNil(t, resp.ClockIn)
	assert.Equal(t, "08:50", *resp.ClockIn)
	assert.False(t, resp.IsLate)

	require.NotEmpty(t, resp.Segments)
	assert.Equal(t, timeline.KindEarlyArrival, resp.Segments[0].Kind)
}

func TestClockInRequiresEmployeeID(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "09:00")

	_, err := f.svc.ClockIn(context.Background(), attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrMissingEmployeeID)
	assert.Empty(t, f.repo.records)
}

func TestClockInTwiceFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "09:05")
	ctx := context.Background()

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	// The stored record is untouched by the failed attempt.
	rec := f.repo.records["2025-03-10"]
	require.NotNil(t, rec.ClockIn)
	assert.Equal(t, "09:05", *rec.ClockIn)
}

func TestClockInAfterCompletedDayFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "09:00")
	ctx := context.Background()

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	f.clock.Set(at("17:30"))
	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCompleted)
}

func TestClockOutWithoutClockInFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "10:00")

	_, err := f.svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestConcurrentMutationIsRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "09:00")

	// Simulate an in-flight call holding the exclusivity key.
	key := inflight.Key("emp-1", "2025-03-10")
	require.True(t, f.svc.registry.Acquire(key))
	defer f.svc.registry.Release(key)

	_, err := f.svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrOperationInFlight)
}

func TestRemoteFailureDoesNotAdvanceState(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "09:00")
	ctx := context.Background()

	f.repo.clockInErr = errors.New("backend down")
	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.Error(t, err)

	// Retry after recovery succeeds; the failed call left no session.
	f.repo.clockInErr = nil
	resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, "clocked_in", resp.State)
}

func TestClockOutStampsBackendFlags(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "09:20")
	ctx := context.Background()

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	f.clock.Set(at("18:10"))
	resp, err := f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.State)
	assert.True(t, resp.HasOvertime)
	require.NotNil(t, resp.ClockOut)
	assert.Equal(t, "18:10", *resp.ClockOut)

	last := resp.Segments[len(resp.Segments)-1]
	assert.Equal(t, timeline.KindOvertime, last.Kind)
	assert.Equal(t, "18:10", last.End)
}

func TestElapsedMinutesRecomputedFromClockIn(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "08:50")
	ctx := context.Background()

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	// A later timeline read recomputes elapsed time from now-clockIn.
	f.clock.Set(at("10:00"))
	resp, err := f.svc.Timeline(ctx, attendance.TimelineRequest{
		EmployeeID: "emp-1",
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-10",
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	require.NotNil(t, resp.Days[0].ElapsedMinutes)
	assert.Equal(t, 70, *resp.Days[0].ElapsedMinutes)
}

func TestTimelineCoversEveryDateInRange(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "10:00")

	resp, err := f.svc.Timeline(context.Background(), attendance.TimelineRequest{
		EmployeeID: "emp-1",
		StartDate:  "2025-03-07", // Friday
		EndDate:    "2025-03-10", // Monday (today)
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 4)

	// Friday: past, no record -> absent. Weekend days -> holiday.
	// Today, not clocked in -> pending.
	assert.Equal(t, timeline.KindAbsent, resp.Days[0].Segments[0].Kind)
	assert.Equal(t, timeline.KindHoliday, resp.Days[1].Segments[0].Kind)
	assert.Equal(t, timeline.KindHoliday, resp.Days[2].Segments[0].Kind)
	assert.Equal(t, timeline.KindPending, resp.Days[3].Segments[0].Kind)
}

func TestTimelineValidatesDates(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "10:00")

	_, err := f.svc.Timeline(context.Background(), attendance.TimelineRequest{
		EmployeeID: "emp-1",
		StartDate:  "07-03-2025",
		EndDate:    "2025-03-10",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, attendance.ErrMissingEmployeeID)
}

func TestAutoLogoutFiresWarningThenForcedClockOut(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "08:55")
	ctx := context.Background()

	ch, cleanup := f.hub.Subscribe("emp-1")
	defer cleanup()

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	// Jump the wall clock past the warning threshold.
	f.clock.Set(at("18:45"))
	waitForEvent(t, ch, events.TypeStillClockedInWarning)

	// Then past the forced-logout threshold.
	f.clock.Set(at("19:00"))
	waitForEvent(t, ch, events.TypeAutoLogoutFired)

	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()
	assert.Equal(t, 1, f.repo.clockOutCalls)
	assert.True(t, f.repo.lastAuto)
	rec := f.repo.records["2025-03-10"]
	require.NotNil(t, rec.ClockOut)
	assert.Equal(t, "19:00", *rec.ClockOut)
}

func TestManualClockOutCancelsWatcher(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "09:00")
	ctx := context.Background()

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	f.clock.Set(at("16:00"))
	_, err = f.svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	f.svc.mu.Lock()
	_, running := f.svc.watchers["emp-1"]
	f.svc.mu.Unlock()
	assert.False(t, running, "watcher must be released on manual clock-out")

	// Advancing past the thresholds must not fire anything.
	f.clock.Set(at("19:05"))
	time.Sleep(30 * time.Millisecond)
	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()
	assert.Equal(t, 1, f.repo.clockOutCalls)
}

func waitForEvent(t *testing.T, ch chan events.Event, eventType string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Type == eventType {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", eventType)
		}
	}
}
