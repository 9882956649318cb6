package speaker

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/logging"
)

// DefaultAmplitude keeps the buzzer well below full scale.
const DefaultAmplitude = 0.25

// Speaker streams a Reader to the default output device.
// oto allows one context per process, so open at most one Speaker.
type Speaker struct {
	ctx    *oto.Context
	player *oto.Player
	logger *log.Logger

	mu      sync.Mutex
	started bool
}

// Open creates the audio context and a player reading from src. The
// generator counts at reference Hz.
func Open(src RegisterSource, reference uint32, sampleRate int, logger *log.Logger) (*Speaker, error) {
	logger = logging.OrDiscard(logger)
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("speaker: cannot open audio device: %w", err)
	}
	<-ready

	synth := audio.NewSynth(reference, uint32(sampleRate), DefaultAmplitude)
	player := ctx.NewPlayer(NewReader(src, synth))
	// Small buffer so register changes are heard within a few ms.
	player.SetBufferSize(sampleRate / 100 * 4)

	logger.Info("audio device open", "sampleRate", sampleRate)
	return &Speaker{ctx: ctx, player: player, logger: logger}, nil
}

// Start begins playback.
func (s *Speaker) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.player.Play()
		s.started = true
	}
}

// Close stops playback and releases the player.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = false
	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	if err != nil {
		return fmt.Errorf("speaker: close: %w", err)
	}
	return nil
}
