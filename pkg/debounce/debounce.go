// Package debounce provides the search-input controller for jobdeck list
// screens. It tracks a live query string for controlled-input echo and a
// settled query that lags keystrokes by a quiet period, so callers re-fetch
// once per pause instead of once per keypress.
//
// This is the only kernel component with asynchronous behavior: a single
// cancellable timer. Close cancels any pending timer so the settle callback
// can never fire against a disposed owner.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when the caller does not configure
// one, matching the portal's observed 300ms.
const DefaultDelay = 300 * time.Millisecond

// Timer is a cancellable pending settle.
type Timer interface {
	// Stop cancels the timer; it reports false when the timer already fired
	// or was stopped.
	Stop() bool
}

// Scheduler arms timers for the engine. The default wraps time.AfterFunc;
// tests substitute a manual scheduler to drive firing deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type stdScheduler struct{}

func (stdScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotify registers a callback invoked with each settled value. The
// callback runs outside the engine's lock and never after Close.
func WithNotify(fn func(settled string)) Option {
	return func(e *Engine) { e.notify = fn }
}

// WithScheduler replaces the timer source. Intended for tests.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// Engine debounces a query string.
//
// Set updates the live query immediately and re-arms the quiet-period timer;
// only the value from the last call before a quiet period ever reaches the
// settled query. A generation counter makes settle updates monotonic: a
// superseded timer that fires late is discarded, it can never overwrite a
// newer value.
type Engine struct {
	mu      sync.Mutex
	delay   time.Duration
	sched   Scheduler
	notify  func(string)
	query   string
	settled string
	pending Timer
	gen     uint64
	closed  bool
}

// New creates an engine with the given quiet period. Non-positive delays fall
// back to DefaultDelay.
func New(delay time.Duration, opts ...Option) *Engine {
	if delay <= 0 {
		delay = DefaultDelay
	}
	e := &Engine{delay: delay, sched: stdScheduler{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Set records q as the live query and restarts the quiet-period countdown,
// cancelling any pending settle. Calling Set on a closed engine is a no-op.
func (e *Engine) Set(q string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	e.query = q
	if e.pending != nil {
		e.pending.Stop()
	}
	e.gen++
	gen := e.gen
	e.pending = e.sched.AfterFunc(e.delay, func() {
		e.settle(gen, q)
	})
	e.mu.Unlock()
}

// Query returns the live query string.
func (e *Engine) Query() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.query
}

// Settled returns the debounced query string.
func (e *Engine) Settled() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settled
}

// Flush settles the live query immediately, cancelling any pending timer.
// Used when the caller wants an explicit submit (Enter) to skip the quiet
// period.
func (e *Engine) Flush() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.gen++
	changed := e.settled != e.query
	e.settled = e.query
	cb := e.notify
	q := e.settled
	e.mu.Unlock()

	if changed && cb != nil {
		cb(q)
	}
}

// Close cancels any pending timer and prevents further settles. The engine's
// owner must call Close on disposal; afterwards the notify callback is
// guaranteed not to run.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) settle(gen uint64, q string) {
	e.mu.Lock()
	if e.closed || gen != e.gen {
		// Superseded by a newer keystroke or the owner is gone.
		e.mu.Unlock()
		return
	}
	e.pending = nil
	e.settled = q
	cb := e.notify
	e.mu.Unlock()

	if cb != nil {
		cb(q)
	}
}
