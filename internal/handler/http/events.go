package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/attendly/attendance-engine-go/internal/handler/http/response"
	"github.com/attendly/attendance-engine-go/internal/pkg/events"
	"github.com/attendly/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type EventsHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub        *events.Hub
	jwtService jwt.Service
}

func NewEventsHandler(hub *events.Hub, jwtService jwt.Service) EventsHandler {
	return &eventsHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
	}
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken mints the short-lived token the browser passes as a query
// parameter when opening the stream.
func (h *eventsHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	isAdmin := false
	if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
		isAdmin, _ = claims["is_admin"].(bool)
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(employeeID, isAdmin)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream handles the SSE connection for auto-logout and day-off events.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Token arrives as a query parameter; SSE does not support custom headers
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	employeeID, _, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	stream, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-stream:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
