// Package engine owns one instance of every real-time component and the
// virtual board they drive. The main loop holds an Engine and calls Step
// once per iteration; everything else is threaded through it.
package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/board"
	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/countdown"
	"github.com/vovakirdan/frogcore/internal/joystick"
	"github.com/vovakirdan/frogcore/internal/logging"
)

// DefaultStickHold is how long a keyboard push keeps the virtual stick
// deflected, in ms.
const DefaultStickHold = 150

// Clock is a time source that can also schedule periodic callbacks.
type Clock interface {
	clock.Source
	clock.Scheduler
}

// Poller is implemented by clocks whose ticks are delivered by polling,
// such as clock.Pump.
type Poller interface {
	Poll() int
}

// Config gathers the component configurations.
type Config struct {
	Joystick  joystick.Config
	Audio     audio.Config
	Countdown countdown.Config
	StickHold uint32 // ms
}

// DefaultConfig returns the stock configuration for every component.
func DefaultConfig() Config {
	return Config{
		Joystick:  joystick.DefaultConfig(),
		Audio:     audio.DefaultConfig(),
		Countdown: countdown.DefaultConfig(),
		StickHold: DefaultStickHold,
	}
}

// Board is the set of virtual peripherals.
type Board struct {
	PWM      *board.PWM
	Switches *board.Switches
	Stick    *board.Stick
	Display  *board.SegmentLatch
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.OrDiscard(logger)
	}
}

// WithIdle sets what the engine does between polls while a foreground
// track holds the main loop.
func WithIdle(fn func()) Option {
	return func(e *Engine) {
		e.idle = fn
	}
}

// Engine is the single context object the main loop owns.
type Engine struct {
	clock  Clock
	cfg    Config
	logger *log.Logger
	idle   func()

	board     Board
	sampler   *joystick.Sampler
	sequencer *audio.Sequencer
	countdown *countdown.Service

	paused bool
}

// New wires the components to a fresh virtual board.
func New(clk Clock, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		clock:  clk,
		cfg:    cfg,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.idle == nil {
		e.idle = e.defaultIdle
	}

	hold := cfg.StickHold
	if hold == 0 {
		hold = DefaultStickHold
	}
	e.board = Board{
		PWM:      board.NewPWM(),
		Switches: &board.Switches{},
		Stick:    board.NewStick(clk, hold),
		Display:  &board.SegmentLatch{},
	}

	e.sampler = joystick.NewSampler(e.board.Stick, clk, cfg.Joystick, e.logger)
	e.sequencer = audio.NewSequencer(e.board.PWM, e.board.Switches, clk, cfg.Audio,
		audio.WithLogger(e.logger),
		audio.WithIdle(e.idle),
	)
	e.countdown = countdown.NewService(e.board.Display, e.sampler, cfg.Countdown, e.logger)
	return e
}

func (e *Engine) defaultIdle() {
	if st, ok := e.clock.(clock.Stepper); ok {
		st.Step()
		return
	}
	if p, ok := e.clock.(Poller); ok {
		p.Poll()
		time.Sleep(time.Millisecond)
		return
	}
	runtime.Gosched()
}

// Init calibrates the stick, silences audio and starts the countdown.
// The stick must be at rest.
func (e *Engine) Init() {
	e.board.Stick.Release()
	e.sampler.Init()
	e.sequencer.Init()
	e.countdown.Init(e.clock)
	e.paused = false
	e.logger.Debug("engine initialised", "timeLimit", e.cfg.Countdown.TimeLimit)
}

// Step runs one main-loop iteration: pending ticks, audio continuation,
// then at most one queued move.
func (e *Engine) Step() joystick.Move {
	if p, ok := e.clock.(Poller); ok {
		p.Poll()
	}
	e.sequencer.Continue()
	return e.sampler.PopMove()
}

// Play starts a track. Foreground tracks block until finished while ticks
// keep being serviced.
func (e *Engine) Play(id audio.TrackID) {
	e.sequencer.Play(id)
}

// PlayContext is Play with a cancellable wait.
func (e *Engine) PlayContext(ctx context.Context, id audio.TrackID) error {
	return e.sequencer.PlayContext(ctx, id)
}

// Push deflects the virtual stick.
func (e *Engine) Push(m joystick.Move) {
	e.board.Stick.Push(m)
}

// NewRound refills the timer and forgets queued moves. A non-zero limit
// replaces the round length. A paused world is resumed.
func (e *Engine) NewRound(limit uint16) {
	if limit > 0 {
		e.countdown.SetTimeLimit(limit)
	}
	e.countdown.Reset()
	if e.paused {
		e.sequencer.Resume()
		e.paused = false
		e.logger.Debug("resumed by new round")
	}
	e.sampler.ClearQueue()
}

// Pause stops the world: the countdown and sampling halt and the buzzer
// output is switched off.
func (e *Engine) Pause() {
	if e.paused {
		return
	}
	e.countdown.Pause(true)
	e.sequencer.Suspend()
	e.paused = true
	e.logger.Debug("paused")
}

// Resume restarts the world. Moves queued before the pause and ticks that
// piled up during it are discarded.
func (e *Engine) Resume() {
	if !e.paused {
		return
	}
	e.countdown.Pause(false)
	e.sequencer.Resume()
	e.sampler.ClearQueue()
	e.paused = false
	e.logger.Debug("resumed")
}

// Paused reports whether the world is paused.
func (e *Engine) Paused() bool {
	return e.paused
}

// Expired reports whether the round timer has run out.
func (e *Engine) Expired() bool {
	return e.countdown.Expired()
}

// Board returns the virtual peripherals.
func (e *Engine) Board() Board {
	return e.board
}

// Sampler returns the joystick sampler.
func (e *Engine) Sampler() *joystick.Sampler {
	return e.sampler
}

// Sequencer returns the audio sequencer.
func (e *Engine) Sequencer() *audio.Sequencer {
	return e.sequencer
}

// Countdown returns the countdown service.
func (e *Engine) Countdown() *countdown.Service {
	return e.countdown
}

// Clock returns the engine's time source.
func (e *Engine) Clock() Clock {
	return e.clock
}

// Snapshot is the engine state a console renders.
type Snapshot struct {
	Now       clock.Tick
	Remaining uint16
	TimeLimit uint16
	Expired   bool
	Paused    bool
	Queue     []joystick.Move
	Dropped   int
	Audio     audio.Status
	Registers audio.Registers
	Left      uint8
	Right     uint8
	VolumeLow bool
	Muted     bool
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	left, right := e.board.Display.Digits()
	return Snapshot{
		Now:       e.clock.Now(),
		Remaining: e.countdown.Remaining(),
		TimeLimit: e.countdown.TimeLimit(),
		Expired:   e.countdown.Expired(),
		Paused:    e.paused,
		Queue:     e.sampler.Queued(),
		Dropped:   e.sampler.Dropped(),
		Audio:     e.sequencer.Status(),
		Registers: e.board.PWM.Registers(),
		Left:      left,
		Right:     right,
		VolumeLow: e.board.Switches.VolumeDown(),
		Muted:     e.board.Switches.Muted(),
	}
}
