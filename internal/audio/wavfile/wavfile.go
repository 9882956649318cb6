// Package wavfile renders sound effects offline and writes them as 16-bit
// mono WAV files. Rendering drives a real Sequencer on a manual clock, so
// the file is exactly what the buzzer would play.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/board"
	"github.com/vovakirdan/frogcore/internal/clock"
)

const (
	bitDepth  = 16
	pcmFormat = 1
)

// ErrUnknownTrack is returned for a track id with no table entry.
var ErrUnknownTrack = errors.New("wavfile: unknown track")

// Options control rendering.
type Options struct {
	Audio      audio.Config
	SampleRate int
	Amplitude  float32
	VolumeDown bool          // render with the attenuated duty cycle
	Tail       time.Duration // silence appended after the track unloads
}

// DefaultOptions renders at CD rate with some headroom.
func DefaultOptions() Options {
	return Options{
		Audio:      audio.DefaultConfig(),
		SampleRate: audio.DefaultSampleRate,
		Amplitude:  0.5,
	}
}

// Render plays t to completion and returns its samples.
func Render(t audio.Track, opts Options) []float32 {
	if opts.SampleRate <= 0 {
		opts.SampleRate = audio.DefaultSampleRate
	}

	clk := clock.NewManual(0)
	pwm := board.NewPWM()
	sw := &board.Switches{}
	sw.SetVolumeDown(opts.VolumeDown)

	seq := audio.NewSequencer(pwm, sw, clk, opts.Audio)
	seq.Init()
	synth := audio.NewSynth(opts.Audio.Reference, uint32(opts.SampleRate), opts.Amplitude)

	total := t.PlayTime(opts.Audio.RestGap) + uint32(opts.Tail.Milliseconds())
	rate := uint64(opts.SampleRate)
	out := make([]float32, int(uint64(total)*rate/1000))

	seq.Load(t)
	done := 0
	for ms := uint64(0); ms < uint64(total); ms++ {
		seq.Continue()
		end := int((ms + 1) * rate / 1000)
		synth.Fill(out[done:end], pwm.Registers())
		done = end
		clk.Step()
	}
	return out
}

// RenderID renders a track from the table.
func RenderID(id audio.TrackID, opts Options) ([]float32, error) {
	t, ok := audio.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTrack, int(id))
	}
	return Render(t, opts), nil
}

// Write encodes samples in [-1, 1] as a 16-bit mono WAV stream.
func Write(w io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)

	data := make([]int, len(samples))
	for i, v := range samples {
		v = float32(math.Max(-1, math.Min(1, float64(v))))
		data[i] = int(v * math.MaxInt16)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavfile: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavfile: finalise: %w", err)
	}
	return nil
}

// Export renders a track and writes it to path.
func Export(path string, id audio.TrackID, opts Options) (rerr error) {
	samples, err := RenderID(id, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavfile: %w", err)
		}
	}()

	sampleRate := opts.SampleRate
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}
	return Write(f, samples, sampleRate)
}
