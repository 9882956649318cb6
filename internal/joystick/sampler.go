package joystick

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/logging"
)

// DefaultRepeatInterval is the minimum time between accepted moves, in ms.
const DefaultRepeatInterval = 250

// Axis selects one of the two analog channels.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// AnalogInput performs a synchronous conversion on one axis.
// Conversion latency is bounded by the hardware and well under a millisecond.
type AnalogInput interface {
	ReadAxis(axis Axis) uint16
}

// Config tunes the sampler.
type Config struct {
	RepeatInterval uint32 // ms between accepted moves
	Thresholds     Thresholds
}

// DefaultConfig returns the stock sampler configuration.
func DefaultConfig() Config {
	return Config{
		RepeatInterval: DefaultRepeatInterval,
		Thresholds:     DefaultThresholds(),
	}
}

// Sampler reads the joystick from the periodic tick and queues classified
// moves for the main loop.
type Sampler struct {
	input  AnalogInput
	clock  clock.Source
	cfg    Config
	logger *log.Logger

	cal        Calibration
	calibrated bool
	queue      Queue
	lastMove   clock.Tick
	dropped    int
}

// NewSampler creates a sampler. Call Init with the stick at rest before
// sampling.
func NewSampler(in AnalogInput, src clock.Source, cfg Config, logger *log.Logger) *Sampler {
	return &Sampler{
		input:  in,
		clock:  src,
		cfg:    cfg,
		logger: logging.OrDiscard(logger),
	}
}

// Init captures the rest position, empties the queue and starts the repeat
// interval from now.
func (s *Sampler) Init() {
	s.cal = Calibration{
		RestX: s.input.ReadAxis(AxisX),
		RestY: s.input.ReadAxis(AxisY),
	}
	s.calibrated = true
	s.ClearQueue()
	s.lastMove = s.clock.Now()

	s.logger.Debug("joystick calibrated", "restX", s.cal.RestX, "restY", s.cal.RestY)
}

// Sample reads both axes once and queues a move if the stick is deflected
// and the repeat interval has passed. It returns the move it classified,
// MoveNone if it did nothing.
func (s *Sampler) Sample() Move {
	if !s.calibrated {
		return MoveNone
	}
	now := s.clock.Now()
	if !clock.Reached(s.lastMove, s.cfg.RepeatInterval, now) {
		return MoveNone
	}

	// One consistent pair of readings per classification.
	x := s.input.ReadAxis(AxisX)
	y := s.input.ReadAxis(AxisY)

	m := Classify(x, y, s.cal, s.cfg.Thresholds)
	if m == MoveNone {
		return MoveNone
	}

	if !s.queue.Push(m) {
		s.dropped++
		s.logger.Debug("joystick queue full, move dropped", "move", m)
	}
	s.lastMove = now
	return m
}

// PopMove removes and returns the oldest queued move, or MoveNone.
func (s *Sampler) PopMove() Move {
	return s.queue.Pop()
}

// ClearQueue discards all queued moves.
func (s *Sampler) ClearQueue() {
	s.queue.Clear()
}

// Len returns the number of queued moves.
func (s *Sampler) Len() int {
	return s.queue.Len()
}

// Queued returns the queued moves, oldest first.
func (s *Sampler) Queued() []Move {
	return s.queue.Snapshot()
}

// Calibration returns the rest position captured by Init.
func (s *Sampler) Calibration() Calibration {
	return s.cal
}

// Dropped returns how many moves were discarded because the queue was full.
func (s *Sampler) Dropped() int {
	return s.dropped
}
