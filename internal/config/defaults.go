package config

import (
	_ "embed"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/countdown"
	"github.com/vovakirdan/frogcore/internal/engine"
	"github.com/vovakirdan/frogcore/internal/joystick"
)

//go:embed defaults/frogcore.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration. It matches the embedded
// defaults/frogcore.yaml.
func Default() Config {
	return Config{
		Clock: ClockConfig{
			TickIntervalMS: countdown.DefaultTickInterval,
		},
		Joystick: JoystickConfig{
			RepeatMS:       joystick.DefaultRepeatInterval,
			CardinalFactor: joystick.DefaultCardinalFactor,
			DiagonalFactor: joystick.DefaultDiagonalFactor,
			HoldMS:         engine.DefaultStickHold,
		},
		Audio: AudioConfig{
			RestGapMS:      audio.DefaultRestGap,
			ReferenceHz:    audio.DefaultReference,
			NormalDuty:     audio.DefaultNormalDuty,
			AttenuatedDuty: audio.DefaultAttenuatedDuty,
			SampleRate:     audio.DefaultSampleRate,
		},
		Countdown: CountdownConfig{
			TimeLimit:      countdown.DefaultTimeLimit,
			TickIntervalMS: countdown.DefaultTickInterval,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			InitialLevel:  0.0,
			MaxAt:         10,
			TimeReduction: 0.5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
