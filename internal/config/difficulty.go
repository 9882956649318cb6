package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the round timer and stick debounce
	switch preset {
	case DifficultyEasy:
		cfg.Countdown.TimeLimit = scaleLimit(cfg.Countdown.TimeLimit, 1.5)
		cfg.Joystick.RepeatMS = 200
	case DifficultyHard:
		cfg.Countdown.TimeLimit = scaleLimit(cfg.Countdown.TimeLimit, 0.75)
		cfg.Joystick.RepeatMS = 300
	}
}

func scaleLimit(limit uint16, f float64) uint16 {
	v := math.Round(float64(limit) * f)
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	if v < 1 {
		return 1
	}
	return uint16(v)
}

// DifficultyManager calculates the round timer for each level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty (0.0 to 1.0) for a game level, counting
// from zero.
func (d *DifficultyManager) Level(level int) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(level)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TimeLimit returns the round timer for a game level. The limit shrinks by
// up to TimeReduction of the base as difficulty rises.
func (d *DifficultyManager) TimeLimit(base uint16, level int) uint16 {
	reduction := d.Level(level) * d.cfg.TimeReduction
	return scaleLimit(base, 1.0-reduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
