package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/attendly/attendance-engine-go/internal/domain/attendance"
	"github.com/attendly/attendance-engine-go/internal/domain/stats"
	"github.com/attendly/attendance-engine-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Timeline(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	statsService      stats.Service
}

func NewAttendanceHandler(attendanceService attendance.Service, statsService stats.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		statsService:      statsService,
	}
}

// getEmployeeIDFromContext extracts employee_id from JWT context
func getEmployeeIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employeeID, ok := claims["employee_id"].(string); ok {
		return employeeID
	}
	return ""
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	req := attendance.ClockInRequest{
		EmployeeID: getEmployeeIDFromContext(r),
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	req := attendance.ClockOutRequest{
		EmployeeID: getEmployeeIDFromContext(r),
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// Timeline implements AttendanceHandler. Defaults to the current week
// (Monday through Sunday) when no range is given.
func (h *attendanceHandlerImpl) Timeline(w http.ResponseWriter, r *http.Request) {
	req := attendance.TimelineRequest{
		EmployeeID: getEmployeeIDFromContext(r),
		StartDate:  r.URL.Query().Get("start"),
		EndDate:    r.URL.Query().Get("end"),
	}
	if req.StartDate == "" && req.EndDate == "" {
		monday := startOfWeek(time.Now())
		req.StartDate = attendance.DateKey(monday)
		req.EndDate = attendance.DateKey(monday.AddDate(0, 0, 6))
	}

	result, err := h.attendanceService.Timeline(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements AttendanceHandler. Defaults to the current month.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := getIntQueryParam(r, "year", now.Year())
	month := getIntQueryParam(r, "month", int(now.Month()))

	result, err := h.statsService.Month(r.Context(), getEmployeeIDFromContext(r), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
