package search

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer relies on.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer coalesces bursts of Schedule calls into a single delayed call.
// Only the function passed to the most recent Schedule runs, and only once
// no further Schedule happened for the configured delay.
type Debouncer struct {
	mu        sync.Mutex
	delay     time.Duration
	afterFunc AfterFunc
	timer     Timer
	gen       uint64
	stopped   bool
}

// NewDebouncer creates a debouncer backed by the runtime timers.
func NewDebouncer(delay time.Duration) *Debouncer {
	return newDebouncer(delay, systemAfterFunc)
}

func newDebouncer(delay time.Duration, af AfterFunc) *Debouncer {
	if af == nil {
		af = systemAfterFunc
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{
		delay:     delay,
		afterFunc: af,
	}
}

// Schedule cancels any pending call and schedules fn after the delay.
// It returns false once the debouncer has been stopped.
func (d *Debouncer) Schedule(fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}

	d.cancelLocked()
	gen := d.gen
	d.timer = d.afterFunc(d.delay, func() {
		d.fire(gen, fn)
	})
	return true
}

// fire runs fn unless a newer Schedule, Cancel or Stop happened after the
// timer was armed. Stop on a timer that already started cannot prevent the
// callback, so the generation check is what keeps stale emissions out.
func (d *Debouncer) fire(gen uint64, fn func()) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Stop cancels the pending call and refuses every later Schedule.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether a call is scheduled and has not fired yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the current quiet period.
func (d *Debouncer) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// SetDelay changes the quiet period used by later Schedule calls.
func (d *Debouncer) SetDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}
