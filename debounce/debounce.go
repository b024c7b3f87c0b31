// Package debounce coalesces bursts of triggers into a single call after a quiet period.
package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultDelay is the quiet period used by the search box.
const DefaultDelay = 500 * time.Millisecond

// Debouncer is idle until Trigger arms a timer, pending until that timer fires or is replaced.
// A call already running is never interrupted.
type Debouncer struct {
	clock clock.Clock
	delay time.Duration
	fn    func(string)

	mu    sync.Mutex
	timer *clock.Timer
	gen   uint64
}

type Option func(*Debouncer)

// WithClock swaps the wall clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(d *Debouncer) { d.clock = c }
}

func New(delay time.Duration, fn func(string), opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{clock: clock.New(), delay: delay, fn: fn}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger cancels any pending call and schedules fn(text) after the delay.
func (d *Debouncer) Trigger(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen, text) })
}

func (d *Debouncer) fire(gen uint64, text string) {
	d.mu.Lock()
	if gen != d.gen {
		// superseded after the timer had already fired
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(text)
}

// Stop drops the pending call, if any. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	return true
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
