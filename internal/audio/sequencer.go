package audio

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/logging"
)

// DefaultRestGap is the silence between consecutive notes, in ms.
const DefaultRestGap = 50

// Phase is the sequencer's position within a note cycle.
type Phase uint8

const (
	PhaseIdle Phase = iota // no track, or between a rest and the next note
	PhaseTone              // a note is sounding
	PhaseRest              // the gap after a note
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTone:
		return "tone"
	case PhaseRest:
		return "rest"
	default:
		return "unknown"
	}
}

// Config tunes the sequencer.
type Config struct {
	RestGap        uint32  // ms of silence between notes
	Reference      uint32  // generator count rate in Hz
	NormalDuty     float64 // percent
	AttenuatedDuty float64 // percent, used while the volume switch is down
}

// DefaultConfig returns the stock sequencer configuration.
func DefaultConfig() Config {
	return Config{
		RestGap:        DefaultRestGap,
		Reference:      DefaultReference,
		NormalDuty:     DefaultNormalDuty,
		AttenuatedDuty: DefaultAttenuatedDuty,
	}
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger for track load and unload events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logging.OrDiscard(logger)
	}
}

// WithIdle sets the function Wait calls between polls. Use it to service
// periodic ticks while a foreground track holds the main loop.
func WithIdle(fn func()) Option {
	return func(s *Sequencer) {
		s.idle = fn
	}
}

// Status is a snapshot of the sequencer for display.
type Status struct {
	Track  TrackID
	Phase  Phase
	Cursor int
	Len    int
	Freq   uint16
	Period uint32
	Pulse  uint32
	Duty   float64
	Output bool
}

// Sequencer plays one track at a time on a Waveform.
type Sequencer struct {
	wave   Waveform
	sw     Switches
	clock  clock.Source
	cfg    Config
	logger *log.Logger
	idle   func()

	track  Track
	loaded bool
	cursor int
	phase  Phase
	start  clock.Tick // when the current phase began
	noteMS uint32

	duty   float64
	freq   uint16
	period uint32
	pulse  uint32
	output bool

	suspended    bool
	resumeOutput bool
}

// NewSequencer creates a sequencer. sw may be nil, meaning full volume and
// never muted.
func NewSequencer(wave Waveform, sw Switches, src clock.Source, cfg Config, opts ...Option) *Sequencer {
	s := &Sequencer{
		wave:   wave,
		sw:     sw,
		clock:  src,
		cfg:    cfg,
		logger: logging.Discard(),
		idle:   runtime.Gosched,
	}
	if st, ok := src.(clock.Stepper); ok {
		s.idle = st.Step
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init silences the generator and forgets any loaded track.
func (s *Sequencer) Init() {
	s.freq = 0
	s.duty = s.cfg.NormalDuty
	s.period = Period(s.cfg.Reference, s.freq)
	s.pulse = PulseWidth(s.duty, s.period)
	s.wave.SetPeriod(s.period)
	s.wave.SetPulseWidth(s.pulse)
	s.wave.DisableOutput()
	s.output = false

	s.track = Track{}
	s.loaded = false
	s.cursor = 0
	s.phase = PhaseIdle
	s.suspended = false
	s.resumeOutput = false
}

// Play loads and starts a track, or continues the loaded one for NoTrack.
// Foreground tracks play to completion before Play returns. Unknown ids
// are ignored.
func (s *Sequencer) Play(id TrackID) {
	//nolint:errcheck // Background context never cancels
	s.PlayContext(context.Background(), id)
}

// PlayContext is Play with a cancellable wait for foreground tracks.
func (s *Sequencer) PlayContext(ctx context.Context, id TrackID) error {
	if id == NoTrack {
		s.Continue()
		return nil
	}

	t, ok := Lookup(id)
	if !ok {
		return nil
	}
	s.Load(t)
	if t.Foreground {
		return s.Wait(ctx)
	}
	return nil
}

// Load replaces whatever is playing with t and starts its first note.
// It never waits, even for foreground tracks.
func (s *Sequencer) Load(t Track) {
	s.updateDuty()
	if s.phase == PhaseTone {
		s.silence()
	}

	s.track = t
	s.loaded = len(t.Notes) > 0
	s.cursor = 0
	s.phase = PhaseIdle
	if !s.loaded {
		return
	}

	s.logger.Debug("track loaded", "track", t.Name, "notes", len(t.Notes))
	s.startNote(s.clock.Now())
}

// Continue advances the loaded track to the current time. It does a bounded
// amount of work and never blocks.
func (s *Sequencer) Continue() {
	s.updateDuty()
	if !s.loaded {
		return
	}
	now := s.clock.Now()
	for s.step(now) {
	}
}

// Wait polls the loaded track until it unloads. It returns ctx.Err() if
// the context is cancelled first, leaving the track loaded.
func (s *Sequencer) Wait(ctx context.Context) error {
	for {
		s.Continue()
		if !s.loaded {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.idle != nil {
			s.idle()
		}
	}
}

// step applies at most one transition and reports whether it did. Phases
// begin at the time the previous one was due to end, not when the
// transition was noticed, so a late poll catches up without drift.
func (s *Sequencer) step(now clock.Tick) bool {
	n := len(s.track.Notes)
	switch {
	case s.phase == PhaseRest && s.cursor < n && clock.Reached(s.start, s.cfg.RestGap, now):
		s.phase = PhaseIdle
		s.start += clock.Tick(s.cfg.RestGap)
		return true

	case s.phase == PhaseTone && clock.Reached(s.start, s.noteMS, now):
		s.silence()
		s.phase = PhaseRest
		s.start += clock.Tick(s.noteMS)
		return true

	case s.phase == PhaseIdle && s.cursor < n:
		s.startNote(s.start)
		return true

	case s.phase == PhaseRest && s.cursor >= n:
		s.unload()
	}
	return false
}

func (s *Sequencer) startNote(now clock.Tick) {
	note := s.track.Notes[s.cursor]
	s.freq = note.Freq
	s.period = Period(s.cfg.Reference, s.freq)
	s.pulse = PulseWidth(s.duty, s.period)
	s.wave.SetPeriod(s.period)
	s.wave.SetPulseWidth(s.pulse)
	s.noteMS = uint32(note.Duration)
	s.start = now
	s.phase = PhaseTone

	if s.freq != Rest && !s.muted() && !s.suspended {
		s.wave.EnableOutput()
		s.output = true
	} else if s.output {
		s.silence()
	}
	s.cursor++
}

func (s *Sequencer) silence() {
	s.wave.DisableOutput()
	s.output = false
}

func (s *Sequencer) unload() {
	s.logger.Debug("track finished", "track", s.track.Name)
	s.loaded = false
	s.phase = PhaseIdle
	s.track = Track{}
	s.cursor = 0
}

func (s *Sequencer) updateDuty() {
	if s.sw != nil && s.sw.VolumeDown() {
		s.duty = s.cfg.AttenuatedDuty
	} else {
		s.duty = s.cfg.NormalDuty
	}
}

func (s *Sequencer) muted() bool {
	return s.sw != nil && s.sw.Muted()
}

// Suspend turns the output off without disturbing the track, remembering
// whether it was sounding.
func (s *Sequencer) Suspend() {
	if s.suspended {
		return
	}
	s.resumeOutput = s.output
	s.silence()
	s.suspended = true
}

// Resume restores the output state saved by Suspend.
func (s *Sequencer) Resume() {
	if !s.suspended {
		return
	}
	s.suspended = false
	if s.resumeOutput && s.phase == PhaseTone && !s.muted() {
		s.wave.EnableOutput()
		s.output = true
	}
	s.resumeOutput = false
}

// Loaded reports whether a track is playing.
func (s *Sequencer) Loaded() bool {
	return s.loaded
}

// Finished reports whether the last loaded track has unloaded.
func (s *Sequencer) Finished() bool {
	return !s.loaded
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Cursor returns the index of the next note to start.
func (s *Sequencer) Cursor() int {
	return s.cursor
}

// Status returns a snapshot for display.
func (s *Sequencer) Status() Status {
	id := NoTrack
	if s.loaded {
		id = s.track.ID
	}
	return Status{
		Track:  id,
		Phase:  s.phase,
		Cursor: s.cursor,
		Len:    len(s.track.Notes),
		Freq:   s.freq,
		Period: s.period,
		Pulse:  s.pulse,
		Duty:   s.duty,
		Output: s.output,
	}
}
