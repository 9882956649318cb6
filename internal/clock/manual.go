package clock

// Manual is a deterministic clock that only moves when told to.
// Callbacks registered on it fire synchronously inside Advance, in
// registration order, exactly once per elapsed interval.
type Manual struct {
	now  Tick
	regs []*Registration
}

// NewManual creates a manual clock reading start.
func NewManual(start Tick) *Manual {
	return &Manual{now: start}
}

// Now returns the current reading.
func (m *Manual) Now() Tick {
	return m.now
}

// Register adds a periodic callback. Its first tick is due one interval
// after the current reading.
func (m *Manual) Register(interval uint32, fn func()) *Registration {
	r := newRegistration(interval, fn, m.now)
	m.regs = append(m.regs, r)
	return r
}

// Advance moves the clock forward d milliseconds, one millisecond at a time,
// firing every callback that becomes due along the way.
func (m *Manual) Advance(d uint32) {
	for i := uint32(0); i < d; i++ {
		m.now++
		for _, r := range m.regs {
			if Reached(r.last, r.interval, m.now) {
				r.last += Tick(r.interval)
				r.fn()
			}
		}
	}
}

// Step advances the clock by one millisecond.
func (m *Manual) Step() {
	m.Advance(1)
}
