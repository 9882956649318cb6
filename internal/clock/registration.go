package clock

import "sync/atomic"

// Registration is a periodic callback owned by a Scheduler.
type Registration struct {
	interval uint32
	fn       func()

	// last is the reading at which the callback last became due.
	// Only Manual uses it.
	last Tick

	// pending counts ticks that fired but have not been handled yet.
	// Pump increments it from its ticker goroutine.
	pending atomic.Uint32
}

func newRegistration(interval uint32, fn func(), now Tick) *Registration {
	if interval == 0 {
		interval = 1
	}
	return &Registration{interval: interval, fn: fn, last: now}
}

// Interval returns the callback period in milliseconds.
func (r *Registration) Interval() uint32 {
	return r.interval
}

// Pending returns how many ticks are waiting to be handled.
func (r *Registration) Pending() uint32 {
	return r.pending.Load()
}

// ClearPending discards ticks that fired but were not handled yet, so a
// backlog built up while paused does not run all at once.
func (r *Registration) ClearPending() {
	r.pending.Store(0)
}

// drain runs the callback once for every pending tick and returns the count.
func (r *Registration) drain() int {
	n := r.pending.Swap(0)
	for i := uint32(0); i < n; i++ {
		r.fn()
	}
	return int(n)
}
