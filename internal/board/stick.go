package board

import (
	"sync"

	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/joystick"
)

// Stick defaults for a 10-bit converter centred on mid-scale.
const (
	StickRest = 512
	StickMax  = 1023
)

// Stick is an analog joystick whose position can be pushed from the
// keyboard. A push holds for a fixed time and then springs back to rest,
// like a real stick released by the player.
type Stick struct {
	mu    sync.Mutex
	clock clock.Source
	hold  uint32

	restX, restY uint16
	x, y         uint16
	pushedAt     clock.Tick
	pushed       bool
}

// NewStick creates a stick at rest. Pushes last hold milliseconds.
func NewStick(src clock.Source, hold uint32) *Stick {
	return &Stick{
		clock: src,
		hold:  hold,
		restX: StickRest,
		restY: StickRest,
		x:     StickRest,
		y:     StickRest,
	}
}

// ReadAxis implements joystick.AnalogInput.
func (s *Stick) ReadAxis(axis joystick.Axis) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pushed && clock.Reached(s.pushedAt, s.hold, s.clock.Now()) {
		s.x, s.y = s.restX, s.restY
		s.pushed = false
	}
	if axis == joystick.AxisX {
		return s.x
	}
	return s.y
}

// Set places the stick at a raw position until the hold time runs out.
func (s *Stick) Set(x, y uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.x, s.y = x, y
	s.pushedAt = s.clock.Now()
	s.pushed = true
}

// Push deflects the stick fully in the direction of m.
// Increasing Y is up and increasing X is left, matching the classifier.
func (s *Stick) Push(m joystick.Move) {
	x, y := s.restX, s.restY
	switch m {
	case joystick.MoveUp:
		y = StickMax
	case joystick.MoveDown:
		y = 0
	case joystick.MoveLeft:
		x = StickMax
	case joystick.MoveRight:
		x = 0
	case joystick.MoveUpLeft:
		x, y = StickMax, StickMax
	case joystick.MoveUpRight:
		x, y = 0, StickMax
	case joystick.MoveDownLeft:
		x, y = StickMax, 0
	case joystick.MoveDownRight:
		x, y = 0, 0
	default:
		return
	}
	s.Set(x, y)
}

// Release returns the stick to rest immediately.
func (s *Stick) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = s.restX, s.restY
	s.pushed = false
}

// Position returns the current raw readings without consuming the hold.
func (s *Stick) Position() (x, y uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y
}
