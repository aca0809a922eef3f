package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-engine-go/internal/domain/dayoff"
	"github.com/attendly/attendance-engine-go/internal/handler/http/response"
)

type DayOffHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
}

type dayOffHandlerImpl struct {
	dayOffService dayoff.Service
}

func NewDayOffHandler(dayOffService dayoff.Service) DayOffHandler {
	return &dayOffHandlerImpl{
		dayOffService: dayOffService,
	}
}

// Request implements DayOffHandler.
func (h *dayOffHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req dayoff.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode day-off request body", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = getEmployeeIDFromContext(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dayOffService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day-off request submitted", result)
}

// Pending implements DayOffHandler. Admin only.
func (h *dayOffHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	result, err := h.dayOffService.Pending(r.Context(), getEmployeeIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Process implements DayOffHandler. Admin only.
func (h *dayOffHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req dayoff.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode day-off process body", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AdminID = getEmployeeIDFromContext(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dayOffService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day-off request processed", result)
}
