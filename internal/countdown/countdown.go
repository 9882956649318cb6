// Package countdown is the periodic tick handler. Every tick it counts the
// round timer down, triggers a joystick sample and refreshes one digit of
// the multiplexed seven-segment display.
package countdown

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/joystick"
	"github.com/vovakirdan/frogcore/internal/logging"
)

// Defaults: a 20 second round at one tick per 10 ms.
const (
	DefaultTimeLimit    = 2000
	DefaultTickInterval = 10
)

// Display is a two-digit seven-segment display refreshed one digit at a time.
type Display interface {
	Show(segments uint8, left bool)
}

// Sampler is triggered on every unpaused tick.
type Sampler interface {
	Sample() joystick.Move
}

// Config tunes the service.
type Config struct {
	TimeLimit    uint16 // ticks per round
	TickInterval uint32 // ms
}

// DefaultConfig returns the stock countdown configuration.
func DefaultConfig() Config {
	return Config{
		TimeLimit:    DefaultTimeLimit,
		TickInterval: DefaultTickInterval,
	}
}

// Service owns the round timer.
type Service struct {
	display Display
	sampler Sampler
	cfg     Config
	logger  *log.Logger

	reg       *clock.Registration
	remaining uint16
	paused    bool
	left      bool
	ticks     uint64
}

// NewService creates a countdown. display and sampler may be nil.
func NewService(display Display, sampler Sampler, cfg Config, logger *log.Logger) *Service {
	if cfg.TickInterval == 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return &Service{
		display: display,
		sampler: sampler,
		cfg:     cfg,
		logger:  logging.OrDiscard(logger),
	}
}

// Init resets the timer, blanks the display and registers Tick on sched.
// Calling Init again resets without registering a second callback.
func (s *Service) Init(sched clock.Scheduler) {
	s.remaining = s.cfg.TimeLimit
	s.paused = false
	s.left = false
	if s.display != nil {
		s.display.Show(0, true)
		s.display.Show(0, false)
	}
	if s.reg == nil && sched != nil {
		s.reg = sched.Register(s.cfg.TickInterval, s.Tick)
	}
}

// Tick handles one periodic tick.
func (s *Service) Tick() {
	s.ticks++
	if !s.paused {
		if s.remaining > 0 {
			s.remaining--
			if s.remaining == 0 {
				s.logger.Debug("countdown expired")
			}
		}
		if s.sampler != nil {
			s.sampler.Sample()
		}
	}

	s.left = !s.left
	if s.display != nil {
		s.display.Show(Segments(s.remaining, s.left), s.left)
	}
}

// Reset restores the full time limit and clears pause. Ticks that queued
// up while paused are dropped.
func (s *Service) Reset() {
	s.remaining = s.cfg.TimeLimit
	s.Pause(false)
}

// Pause stops or restarts the countdown and joystick sampling. The display
// keeps refreshing. Unpausing discards ticks that queued up while paused.
func (s *Service) Pause(on bool) {
	if s.paused && !on && s.reg != nil {
		s.reg.ClearPending()
	}
	s.paused = on
}

// Paused reports whether the countdown is paused.
func (s *Service) Paused() bool {
	return s.paused
}

// Expired reports whether the timer has run out.
func (s *Service) Expired() bool {
	return s.remaining == 0
}

// Remaining returns the ticks left in the round.
func (s *Service) Remaining() uint16 {
	return s.remaining
}

// SetTimeLimit changes the ticks per round from the next Reset.
func (s *Service) SetTimeLimit(limit uint16) {
	s.cfg.TimeLimit = limit
}

// TimeLimit returns the configured ticks per round.
func (s *Service) TimeLimit() uint16 {
	return s.cfg.TimeLimit
}

// Ticks returns how many ticks the service has handled since creation.
func (s *Service) Ticks() uint64 {
	return s.ticks
}
