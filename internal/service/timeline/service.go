package timeline

import (
	"fmt"
	"time"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/holiday"
	"github.com/attendly/attendance-engine-go/internal/domain/timeline"
	"github.com/attendly/attendance-engine-go/internal/pkg/timemath"
)

// Builder converts one day's raw attendance facts into an ordered list of
// non-overlapping segments. It is a pure function of its inputs: callers
// must re-run it after every record mutation and on every render while an
// active overtime segment is growing.
type Builder struct {
	day timeline.Workday
}

func NewBuilder(day timeline.Workday) *Builder {
	return &Builder{day: day}
}

// Build classifies the date and decomposes it into segments. The first
// matching classification wins: holiday calendar, weekend/explicit holiday
// flag, day off, explicit absence, missing clock-in, then clock-in
// decomposition. It never panics; unreadable data degrades to a single
// error segment over the nominal work window.
func (b *Builder) Build(date string, rec *attendance.DayRecord, cal holiday.Calendar, now time.Time) []timeline.Segment {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return b.errorDay()
	}

	if h, ok := cal.Lookup(date); ok {
		name := h.Description
		if name == "" {
			name = "Public Holiday"
		}
		return b.fullDay(timeline.KindHoliday, name, name)
	}

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday || (rec != nil && rec.IsHoliday) {
		name := "Weekend"
		if rec != nil && rec.HolidayName != nil && *rec.HolidayName != "" {
			name = *rec.HolidayName
		}
		return b.fullDay(timeline.KindHoliday, name, name)
	}

	if rec != nil && rec.DayOffRequested {
		reason := "Employee Requested A Day Off"
		if rec.Reason != nil && *rec.Reason != "" {
			reason = *rec.Reason
		}
		if rec.Approved != nil && !*rec.Approved {
			return b.fullDay(timeline.KindDayOffPending, "Day Off", reason+" (Pending Approval)")
		}
		return b.fullDay(timeline.KindDayOff, "Day Off", reason)
	}

	if rec != nil && rec.Status == attendance.StatusAbsent {
		full := "Absent for the day"
		if rec.Notes != nil && *rec.Notes != "" {
			full = *rec.Notes
		}
		return b.fullDay(timeline.KindAbsent, "Absent", full)
	}

	today := attendance.DateKey(now)
	if rec == nil || rec.ClockIn == nil {
		switch {
		case date < today:
			return b.fullDay(timeline.KindAbsent, "Absent", "Absent for the day")
		case date == today:
			return b.fullDay(timeline.KindPending, "Pending", "Not Clocked In Yet")
		default:
			return []timeline.Segment{}
		}
	}

	return b.workedDay(date, rec, today, now)
}

// workedDay decomposes a day that has a clock-in into arrival, working and
// departure segments.
func (b *Builder) workedDay(date string, rec *attendance.DayRecord, today string, now time.Time) []timeline.Segment {
	clockIn := *rec.ClockIn
	inMinutes, err := timemath.Parse(clockIn)
	if err != nil {
		return b.errorDay()
	}

	var clockOut string
	hasClockOut := rec.ClockOut != nil
	if hasClockOut {
		clockOut = *rec.ClockOut
		if _, err := timemath.Parse(clockOut); err != nil {
			return b.errorDay()
		}
	}

	start := b.day.StartClock()
	end := b.day.EndClock()

	effectiveEnd := end
	if rec.IsEarly && hasClockOut {
		effectiveEnd = clockOut
	}

	var segs []timeline.Segment

	// Arrival at or before the cutoff is never late, even when the
	// clock-in is exactly on it.
	if inMinutes <= b.day.Start {
		segs = append(segs, b.segment(timeline.KindEarlyArrival, clockIn, start,
			"Early",
			fmt.Sprintf("Early arrival at %s (Before %s)", clockIn, start)))
		segs = append(segs, b.segment(timeline.KindWorking, start, effectiveEnd,
			"Working",
			fmt.Sprintf("Working hours %s - %s", start, effectiveEnd)))
	} else {
		if rec.IsLate {
			segs = append(segs, b.segment(timeline.KindLate, start, clockIn,
				"Late",
				fmt.Sprintf("Late arrival at %s (After %s)", clockIn, start)))
		}
		segs = append(segs, b.segment(timeline.KindWorking, clockIn, effectiveEnd,
			"Working",
			fmt.Sprintf("Working hours %s - %s", clockIn, effectiveEnd)))
	}

	if rec.IsEarly && hasClockOut {
		segs = append(segs, b.segment(timeline.KindEarly, clockOut, end,
			"Left Early",
			fmt.Sprintf("Left early at %s (Before %s)", clockOut, end)))
	}

	if rec.HasOvertime && hasClockOut {
		segs = append(segs, b.segment(timeline.KindOvertime, end, clockOut,
			"Overtime",
			fmt.Sprintf("Overtime %s - %s", end, clockOut)))
	}

	// Live tail for an open session past the nominal end: grows with
	// every rebuild, so the result must never be cached across "now".
	if !hasClockOut && date == today && timemath.MinuteOfDay(now) >= b.day.End {
		current := timemath.Clock(now)
		segs = append(segs, b.segment(timeline.KindActiveOvertime, end, current,
			"Overtime",
			fmt.Sprintf("Ongoing overtime since %s", end)))
	}

	return segs
}

// fullDay emits a single segment spanning the nominal work window.
func (b *Builder) fullDay(kind timeline.Kind, label, fullLabel string) []timeline.Segment {
	return []timeline.Segment{
		b.segment(kind, b.day.StartClock(), b.day.EndClock(), label, fullLabel),
	}
}

// errorDay is the fallback for unreadable attendance data.
func (b *Builder) errorDay() []timeline.Segment {
	return b.fullDay(timeline.KindError, "Error", "Attendance data could not be read")
}

func (b *Builder) segment(kind timeline.Kind, start, end, label, fullLabel string) timeline.Segment {
	return timeline.Segment{
		Kind:      kind,
		Start:     start,
		End:       end,
		Label:     label,
		FullLabel: fullLabel,
		Left:      b.day.Display.PositionOf(start),
		Width:     b.day.Display.WidthOf(start, end),
	}
}
