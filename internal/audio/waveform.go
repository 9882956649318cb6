package audio

// DefaultReference is the generator's count rate: an 8 MHz clock divided by 8.
const DefaultReference = 1_000_000

// Duty cycles in percent.
const (
	DefaultNormalDuty     = 20.0
	DefaultAttenuatedDuty = 0.2
)

// Waveform is a square-wave generator counting at a fixed reference rate.
type Waveform interface {
	// SetPeriod sets the wave period in reference clock cycles.
	SetPeriod(cycles uint32)
	// SetPulseWidth sets the high time in reference clock cycles.
	SetPulseWidth(cycles uint32)
	EnableOutput()
	DisableOutput()
}

// Switches are the board's volume and mute inputs, read on every call.
type Switches interface {
	// VolumeDown selects the attenuated duty cycle.
	VolumeDown() bool
	// Muted keeps the output pin disabled.
	Muted() bool
}

// Period converts a frequency to a period in reference cycles, truncating.
// A zero frequency has no waveform and yields zero.
func Period(reference uint32, freq uint16) uint32 {
	if freq == 0 {
		return 0
	}
	return reference / uint32(freq)
}

// PulseWidth converts a duty cycle in percent to a pulse width in cycles,
// truncating.
func PulseWidth(duty float64, period uint32) uint32 {
	return uint32(duty * float64(period) / 100)
}
