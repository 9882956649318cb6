// Package speaker plays the buzzer's square wave through the host sound
// card. A Reader samples the live generator registers and synthesises PCM
// for an oto player.
package speaker

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/vovakirdan/frogcore/internal/audio"
)

// RegisterSource exposes the generator state, normally a *board.PWM.
type RegisterSource interface {
	Registers() audio.Registers
}

// Reader is an io.Reader of mono float32 little-endian samples.
type Reader struct {
	mu    sync.Mutex
	src   RegisterSource
	synth *audio.Synth
	buf   []float32
}

// NewReader creates a reader that samples src through synth.
func NewReader(src RegisterSource, synth *audio.Synth) *Reader {
	return &Reader{src: src, synth: synth}
}

// Read fills p with whole samples. It never fails and never blocks.
// Registers are read once per call, so a change lands at buffer granularity.
func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(p) / 4
	if n == 0 {
		return 0, nil
	}
	if cap(r.buf) < n {
		r.buf = make([]float32, n)
	}
	samples := r.buf[:n]
	r.synth.Fill(samples, r.src.Registers())

	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return n * 4, nil
}
