package speaker

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/vovakirdan/frogcore/internal/audio"
)

type fixedRegs audio.Registers

func (f fixedRegs) Registers() audio.Registers { return audio.Registers(f) }

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return out
}

func TestReaderSilentWhenDisabled(t *testing.T) {
	r := NewReader(fixedRegs{Period: 2272, Pulse: 454}, audio.NewSynth(audio.DefaultReference, 44100, 1))
	p := make([]byte, 400)
	n, err := r.Read(p)
	if err != nil || n != 400 {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	for i, v := range decode(p) {
		if v != 0 {
			t.Fatalf("sample %d = %v, expected silence", i, v)
		}
	}
}

func TestReaderProducesSquareWave(t *testing.T) {
	regs := fixedRegs{Period: 2272, Pulse: 454, Enabled: true}
	r := NewReader(regs, audio.NewSynth(audio.DefaultReference, 44100, 1))

	p := make([]byte, 4*4410) // 100 ms
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}
	var pos, neg int
	for _, v := range decode(p) {
		switch {
		case v > 0:
			pos++
		case v < 0:
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		t.Fatalf("expected both wave levels, pos=%d neg=%d", pos, neg)
	}
	if ratio := float64(pos) / float64(pos+neg); ratio < 0.18 || ratio > 0.22 {
		t.Errorf("high fraction = %.3f, expected the 20%% duty", ratio)
	}
}

func TestReaderWholeSamplesOnly(t *testing.T) {
	r := NewReader(fixedRegs{}, audio.NewSynth(audio.DefaultReference, 44100, 1))
	n, _ := r.Read(make([]byte, 10))
	if n != 8 {
		t.Errorf("Read(10 bytes) = %d, expected 8", n)
	}
	n, _ = r.Read(make([]byte, 3))
	if n != 0 {
		t.Errorf("Read(3 bytes) = %d, expected 0", n)
	}
}
