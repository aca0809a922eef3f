package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published by the attendance engine.
const (
	TypeStillClockedInWarning = "still_clocked_in_warning"
	TypeAutoLogoutFired       = "auto_logout_fired"
	TypeDayOffProcessed       = "day_off_processed"
)

// Event is one notification delivered to an employee's subscribers.
type Event struct {
	ID         string                 `json:"id"`
	EmployeeID string                 `json:"employee_id"`
	Type       string                 `json:"type"`
	At         time.Time              `json:"at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// NewEvent builds an event with a fresh ID and timestamp.
func NewEvent(employeeID, eventType string, at time.Time, data map[string]interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Type:       eventType,
		At:         at,
		Data:       data,
	}
}

// Hub fans events out to per-employee subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for an employee and returns the event
// channel and a cleanup function.
func (h *Hub) Subscribe(employeeID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Event]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[employeeID], ch)
		close(ch)
		if len(h.subscribers[employeeID]) == 0 {
			delete(h.subscribers, employeeID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific employee.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[event.EmployeeID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for an employee.
func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[employeeID]; ok {
		return len(subs)
	}
	return 0
}
