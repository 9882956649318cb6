// Package clock provides the monotonic millisecond time source and the
// periodic tick registration shared by the joystick, audio and countdown
// components.
//
// Readings are 32-bit and wrap. Never compare two readings directly; use
// Since or Reached, which rely on unsigned subtraction and stay correct
// across the wrap.
package clock

// Tick is a monotonic clock reading in milliseconds.
type Tick uint32

// Source supplies the current clock reading.
type Source interface {
	Now() Tick
}

// Scheduler registers callbacks that fire at a fixed interval.
type Scheduler interface {
	// Register arranges for fn to run every interval milliseconds.
	Register(interval uint32, fn func()) *Registration
}

// Stepper is a clock that only moves when stepped by hand, one millisecond
// per call.
type Stepper interface {
	Step()
}

// Since returns the milliseconds elapsed from start to now.
func Since(start, now Tick) uint32 {
	return uint32(now - start)
}

// Reached reports whether at least d milliseconds have passed since start.
func Reached(start Tick, d uint32, now Tick) bool {
	return Since(start, now) >= d
}
