package watchdog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/attendly/attendance-engine-go/internal/pkg/timemath"
)

// Clock supplies the current instant. Injectable for tests.
type Clock func() time.Time

// Config carries the end-of-day thresholds in minutes since midnight.
type Config struct {
	WarnAt  int           // emit the still-clocked-in warning, default 18:45
	ForceAt int           // force the clock-out, default 19:00
	Tick    time.Duration // check interval, default one minute
}

// DefaultConfig returns the standard 18:45 warning / 19:00 force schedule.
func DefaultConfig() Config {
	return Config{
		WarnAt:  18*60 + 45,
		ForceAt: 19 * 60,
		Tick:    time.Minute,
	}
}

// Watcher guards one open attendance session. While the session is open it
// checks the wall clock once per tick: at the warning threshold it calls
// warn once per day, at the force threshold it calls force once per day.
// A failed force call is retried on the next tick rather than abandoned,
// since leaving a session open past day-end is worse than a late logout.
type Watcher struct {
	cfg   Config
	clock Clock
	warn  func(now time.Time)
	force func(ctx context.Context, now time.Time) error

	mu       sync.Mutex
	armedDay string
	warned   bool
	forced   bool

	stopOnce sync.Once
	stopped  chan struct{}
	done     chan struct{}
}

// New builds a watcher. warn must be non-blocking; force performs the
// remote auto clock-out and reports failure so the watcher can retry.
func New(cfg Config, clock Clock, warn func(now time.Time), force func(ctx context.Context, now time.Time) error) *Watcher {
	if cfg.Tick <= 0 {
		cfg.Tick = time.Minute
	}
	if clock == nil {
		clock = time.Now
	}
	return &Watcher{
		cfg:     cfg,
		clock:   clock,
		warn:    warn,
		force:   force,
		stopped: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start runs the periodic check until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.cfg.Tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stopped:
				return
			case <-ticker.C:
				w.Check(ctx, w.clock())
			}
		}
	}()
}

// Stop cancels the watcher. Idempotent; safe to call from any exit path.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopped)
	})
}

// Done is closed once the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Check evaluates the thresholds for one instant. Exported so tests can
// drive the tick sequence directly.
func (w *Watcher) Check(ctx context.Context, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Re-arm across midnight so a watcher that survives into the next
	// day fires again for it.
	day := now.Format("2006-01-02")
	if day != w.armedDay {
		w.armedDay = day
		w.warned = false
		w.forced = false
	}

	minute := timemath.MinuteOfDay(now)

	if !w.warned && minute >= w.cfg.WarnAt {
		w.warned = true
		w.warn(now)
	}

	if !w.forced && minute >= w.cfg.ForceAt {
		if err := w.force(ctx, now); err != nil {
			// Latch stays clear so the next tick retries.
			slog.Error("Watchdog: forced clock-out failed, will retry", "error", err)
			return
		}
		w.forced = true
	}
}
