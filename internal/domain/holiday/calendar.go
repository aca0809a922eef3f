package holiday

// Holiday is one public holiday as delivered by the backend.
type Holiday struct {
	Description string
}

// Calendar maps "YYYY-MM-DD" dates to holidays. It is supplied by the
// backend and read-only inside the engine.
type Calendar map[string]Holiday

// Lookup returns the holiday on date, if any.
func (c Calendar) Lookup(date string) (Holiday, bool) {
	h, ok := c[date]
	return h, ok
}
