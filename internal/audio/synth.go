package audio

// DefaultSampleRate is the PCM rate used for speaker output and export.
const DefaultSampleRate = 44100

// Registers is the programmed state of a square-wave generator.
type Registers struct {
	Period  uint32 // reference cycles
	Pulse   uint32 // reference cycles high
	Enabled bool
}

// Synth turns generator registers into PCM samples by running a phase
// counter at the reference rate. The output is centred on zero so the
// duty cycle changes loudness without adding a DC offset.
type Synth struct {
	reference  uint32
	sampleRate uint32
	amplitude  float32

	// phase is the position within the current period, in reference cycles
	// scaled by sampleRate so the per-sample increment is an integer.
	phase uint64
}

// NewSynth creates a synth for a generator counting at reference Hz.
func NewSynth(reference, sampleRate uint32, amplitude float32) *Synth {
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}
	return &Synth{
		reference:  reference,
		sampleRate: sampleRate,
		amplitude:  amplitude,
	}
}

// SampleRate returns the output rate in Hz.
func (s *Synth) SampleRate() uint32 {
	return s.sampleRate
}

// Fill writes len(dst) samples for the given register state.
func (s *Synth) Fill(dst []float32, regs Registers) {
	if !regs.Enabled || regs.Period == 0 {
		for i := range dst {
			dst[i] = 0
		}
		s.phase = 0
		return
	}

	pulse := regs.Pulse
	if pulse > regs.Period {
		pulse = regs.Period
	}
	duty := float32(pulse) / float32(regs.Period)
	high := s.amplitude * (1 - duty)
	low := -s.amplitude * duty

	// Work in units of 1/sampleRate cycles: each sample advances the counter
	// by reference units, and one period spans Period*sampleRate units.
	span := uint64(regs.Period) * uint64(s.sampleRate)
	edge := uint64(pulse) * uint64(s.sampleRate)
	step := uint64(s.reference)
	s.phase %= span

	for i := range dst {
		if s.phase < edge {
			dst[i] = high
		} else {
			dst[i] = low
		}
		s.phase = (s.phase + step) % span
	}
}
