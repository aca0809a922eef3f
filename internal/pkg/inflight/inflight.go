package inflight

import (
	"sync"
)

// Registry tracks keys with a mutating remote call in flight. A key is
// acquired before the call and must be released in a defer on every path,
// so a second mutation for the same employee/date is rejected instead of
// racing the first.
type Registry struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		keys: make(map[string]struct{}),
	}
}

// Key builds the registry key for one employee on one calendar date.
func Key(employeeID, date string) string {
	return employeeID + "|" + date
}

// Acquire marks key as in flight. It returns false when the key is already
// held.
func (r *Registry) Acquire(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, held := r.keys[key]; held {
		return false
	}
	r.keys[key] = struct{}{}
	return true
}

// Release frees key. Releasing a key that is not held is a no-op.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, key)
}

// Held reports whether key currently has a call in flight.
func (r *Registry) Held(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, held := r.keys[key]
	return held
}
