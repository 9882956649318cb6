// Package config provides YAML-based configuration loading and difficulty
// presets for the frogcore components.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/countdown"
	"github.com/vovakirdan/frogcore/internal/engine"
	"github.com/vovakirdan/frogcore/internal/joystick"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config contains all configuration for the frogcore engine.
type Config struct {
	Clock      ClockConfig      `yaml:"clock"`
	Joystick   JoystickConfig   `yaml:"joystick"`
	Audio      AudioConfig      `yaml:"audio"`
	Countdown  CountdownConfig  `yaml:"countdown"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ClockConfig defines the periodic tick source.
type ClockConfig struct {
	TickIntervalMS uint32 `yaml:"tick_interval_ms"`
}

// JoystickConfig defines sampler sensitivity and debounce.
type JoystickConfig struct {
	RepeatMS       uint32  `yaml:"repeat_ms"`
	CardinalFactor float64 `yaml:"cardinal_factor"`
	DiagonalFactor float64 `yaml:"diagonal_factor"`
	HoldMS         uint32  `yaml:"hold_ms"` // how long a key push deflects the virtual stick
}

// AudioConfig defines sequencer timing and the waveform generator.
type AudioConfig struct {
	RestGapMS      uint32  `yaml:"rest_gap_ms"`
	ReferenceHz    uint32  `yaml:"reference_hz"`
	NormalDuty     float64 `yaml:"normal_duty"`     // percent
	AttenuatedDuty float64 `yaml:"attenuated_duty"` // percent
	SampleRate     uint32  `yaml:"sample_rate"`
}

// CountdownConfig defines the round timer.
type CountdownConfig struct {
	TimeLimit      uint16 `yaml:"time_limit"` // ticks
	TickIntervalMS uint32 `yaml:"tick_interval_ms"`
}

// DifficultyConfig defines how the round timer shrinks as levels are cleared.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	InitialLevel  float64 `yaml:"initial_level"`  // 0.0 = easy, 1.0 = hard
	MaxAt         int     `yaml:"max_at"`         // level at which max difficulty is reached
	TimeReduction float64 `yaml:"time_reduction"` // fraction of the limit removed at max difficulty
}

// Validate checks the configuration for values the components cannot run
// with. Every error wraps ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.Clock.TickIntervalMS == 0:
		return fmt.Errorf("%w: clock.tick_interval_ms must be positive", ErrInvalid)
	case c.Joystick.RepeatMS == 0:
		return fmt.Errorf("%w: joystick.repeat_ms must be positive", ErrInvalid)
	case c.Joystick.DiagonalFactor <= 1:
		return fmt.Errorf("%w: joystick.diagonal_factor must be greater than 1", ErrInvalid)
	case c.Joystick.CardinalFactor <= 1:
		return fmt.Errorf("%w: joystick.cardinal_factor must be greater than 1", ErrInvalid)
	case c.Joystick.DiagonalFactor >= c.Joystick.CardinalFactor:
		return fmt.Errorf("%w: joystick.diagonal_factor must be below cardinal_factor", ErrInvalid)
	case c.Audio.ReferenceHz == 0:
		return fmt.Errorf("%w: audio.reference_hz must be positive", ErrInvalid)
	case c.Audio.NormalDuty < 0 || c.Audio.NormalDuty > 100:
		return fmt.Errorf("%w: audio.normal_duty must be within 0..100", ErrInvalid)
	case c.Audio.AttenuatedDuty < 0 || c.Audio.AttenuatedDuty > 100:
		return fmt.Errorf("%w: audio.attenuated_duty must be within 0..100", ErrInvalid)
	case c.Countdown.TimeLimit == 0:
		return fmt.Errorf("%w: countdown.time_limit must be positive", ErrInvalid)
	case c.Countdown.TickIntervalMS == 0:
		return fmt.Errorf("%w: countdown.tick_interval_ms must be positive", ErrInvalid)
	case c.Difficulty.TimeReduction < 0 || c.Difficulty.TimeReduction >= 1:
		return fmt.Errorf("%w: difficulty.time_reduction must be within [0, 1)", ErrInvalid)
	}
	return nil
}

// Engine converts the configuration into component settings.
func (c Config) Engine() engine.Config {
	return engine.Config{
		Joystick: joystick.Config{
			RepeatInterval: c.Joystick.RepeatMS,
			Thresholds: joystick.Thresholds{
				Cardinal: c.Joystick.CardinalFactor,
				Diagonal: c.Joystick.DiagonalFactor,
			},
		},
		Audio: audio.Config{
			RestGap:        c.Audio.RestGapMS,
			Reference:      c.Audio.ReferenceHz,
			NormalDuty:     c.Audio.NormalDuty,
			AttenuatedDuty: c.Audio.AttenuatedDuty,
		},
		Countdown: countdown.Config{
			TimeLimit:    c.Countdown.TimeLimit,
			TickInterval: c.Countdown.TickIntervalMS,
		},
		StickHold: c.Joystick.HoldMS,
	}
}
