package clock

import (
	"context"
	"sync"
	"time"
)

// Pump is a wall-clock Source and Scheduler.
//
// Ticker goroutines only count ticks. The callbacks themselves run on the
// goroutine that calls Poll, normally the main loop, so handlers never race
// with the state they mutate.
type Pump struct {
	start time.Time

	mu   sync.Mutex
	regs []*Registration
}

// NewPump creates a pump whose readings start at zero.
func NewPump() *Pump {
	return &Pump{start: time.Now()}
}

// Now returns milliseconds since the pump was created, truncated to 32 bits.
func (p *Pump) Now() Tick {
	return Tick(uint32(time.Since(p.start).Milliseconds()))
}

// Register adds a periodic callback. Registrations made after Run has
// started are not ticked.
func (p *Pump) Register(interval uint32, fn func()) *Registration {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := newRegistration(interval, fn, p.Now())
	p.regs = append(p.regs, r)
	return r
}

// Run starts one ticker per registration and blocks until ctx is done.
func (p *Pump) Run(ctx context.Context) error {
	p.mu.Lock()
	regs := append([]*Registration(nil), p.regs...)
	p.mu.Unlock()

	var wg sync.WaitGroup
	for _, r := range regs {
		wg.Add(1)
		go func(r *Registration) {
			defer wg.Done()
			t := time.NewTicker(time.Duration(r.interval) * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					r.pending.Add(1)
				}
			}
		}(r)
	}

	<-ctx.Done()
	wg.Wait()
	return ctx.Err()
}

// Poll runs every pending callback on the calling goroutine and returns
// how many ran.
func (p *Pump) Poll() int {
	p.mu.Lock()
	regs := p.regs
	p.mu.Unlock()

	n := 0
	for _, r := range regs {
		n += r.drain()
	}
	return n
}
