// Package board models the peripherals the frogcore components drive: the
// buzzer's PWM generator, the analog joystick, the volume and mute switches,
// and the two-digit seven-segment display.
//
// The models are safe to read from another goroutine (the speaker, the
// console renderer) while the main loop writes them.
package board

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/frogcore/internal/audio"
)

// PWM is a square-wave generator register file.
type PWM struct {
	mu      sync.Mutex
	regs    audio.Registers
	enables int
}

// NewPWM creates a generator with its output disabled.
func NewPWM() *PWM {
	return &PWM{}
}

// SetPeriod implements audio.Waveform.
func (p *PWM) SetPeriod(cycles uint32) {
	p.mu.Lock()
	p.regs.Period = cycles
	p.mu.Unlock()
}

// SetPulseWidth implements audio.Waveform.
func (p *PWM) SetPulseWidth(cycles uint32) {
	p.mu.Lock()
	p.regs.Pulse = cycles
	p.mu.Unlock()
}

// EnableOutput implements audio.Waveform.
func (p *PWM) EnableOutput() {
	p.mu.Lock()
	if !p.regs.Enabled {
		p.enables++
	}
	p.regs.Enabled = true
	p.mu.Unlock()
}

// DisableOutput implements audio.Waveform.
func (p *PWM) DisableOutput() {
	p.mu.Lock()
	p.regs.Enabled = false
	p.mu.Unlock()
}

// Registers returns the current register state.
func (p *PWM) Registers() audio.Registers {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.regs
}

// Enables returns how many times the output went from off to on.
func (p *PWM) Enables() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enables
}

// Switches holds the volume-down and mute slide switches.
type Switches struct {
	volumeDown atomic.Bool
	muted      atomic.Bool
}

// VolumeDown implements audio.Switches.
func (s *Switches) VolumeDown() bool {
	return s.volumeDown.Load()
}

// Muted implements audio.Switches.
func (s *Switches) Muted() bool {
	return s.muted.Load()
}

// SetVolumeDown sets the volume switch.
func (s *Switches) SetVolumeDown(on bool) {
	s.volumeDown.Store(on)
}

// SetMuted sets the mute switch.
func (s *Switches) SetMuted(on bool) {
	s.muted.Store(on)
}

// ToggleVolumeDown flips the volume switch and returns the new position.
func (s *Switches) ToggleVolumeDown() bool {
	on := !s.volumeDown.Load()
	s.volumeDown.Store(on)
	return on
}

// ToggleMuted flips the mute switch and returns the new position.
func (s *Switches) ToggleMuted() bool {
	on := !s.muted.Load()
	s.muted.Store(on)
	return on
}
