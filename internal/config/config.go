// Package config provides YAML-based tuning for Turkey Run: viewport,
// actors, items, timers, level layout presets and difficulty.
package config

import "time"

// Config contains all tunable values of the game.
type Config struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Player     PlayerConfig     `yaml:"player"`
	Pursuer    PursuerConfig    `yaml:"pursuer"`
	Items      ItemsConfig      `yaml:"items"`
	Power      PowerConfig      `yaml:"power"`
	Session    SessionConfig    `yaml:"session"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Layout     LayoutConfig     `yaml:"layout"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Debug      DebugConfig      `yaml:"debug"`
}

// ViewportConfig is the pixel area mazes are fitted into.
type ViewportConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TickRate int `yaml:"tick_rate"` // simulation ticks per second
}

// PlayerConfig defines the turkey.
type PlayerConfig struct {
	Speed        float64 `yaml:"speed"` // pixels per second
	Size         float64 `yaml:"size"`  // fraction of a tile
	FlashMS      int     `yaml:"flash_ms"`
	FlashRepeats int     `yaml:"flash_repeats"` // must be odd
	FlashAlpha   float64 `yaml:"flash_alpha"`
}

// PursuerConfig defines the farmers.
type PursuerConfig struct {
	Speed       float64 `yaml:"speed"`
	ScaredSpeed float64 `yaml:"scared_speed"`
	Size        float64 `yaml:"size"`
	PulseMS     int     `yaml:"pulse_ms"`
	ScaredAlpha float64 `yaml:"scared_alpha"`
}

// ItemsConfig defines corn and power tokens.
type ItemsConfig struct {
	PickupSize    float64 `yaml:"pickup_size"`
	PowerSize     float64 `yaml:"power_size"`
	PickupPoints  int     `yaml:"pickup_points"`
	PursuerPoints int     `yaml:"pursuer_points"`
	PowerPulseMS  int     `yaml:"power_pulse_ms"`
	PowerScale    float64 `yaml:"power_scale"`
}

// PowerConfig defines the power-up window.
type PowerConfig struct {
	DurationMS int `yaml:"duration_ms"`
}

// SessionConfig defines lives and the level range.
type SessionConfig struct {
	Lives      int `yaml:"lives"`
	StartLevel int `yaml:"start_level"`
	MaxLevel   int `yaml:"max_level"` // 0 = unlimited
}

// GeneratorConfig tunes mazes built past the catalog.
type GeneratorConfig struct {
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	Loops           int `yaml:"loops"`
	PowerCount      int `yaml:"power_count"`
	PowerAttempts   int `yaml:"power_attempts"`
	MinPowerSpacing int `yaml:"min_power_spacing"`
}

// Cell is a grid coordinate in row/column order.
type Cell struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// LayoutConfig holds the preset cells shared by every level.
type LayoutConfig struct {
	Pursuers []Cell `yaml:"pursuers"`
	Power    []Cell `yaml:"power"`   // catalog levels only
	Corners  []Cell `yaml:"corners"` // catalog levels only
	// RefCols/RefRows is the grid the presets were authored for; generated
	// levels scale pursuer cells from it.
	RefCols int `yaml:"ref_cols"`
	RefRows int `yaml:"ref_rows"`
}

// DifficultyConfig defines how pursuers speed up from level to level.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // level or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to pursuer speed at max difficulty
}

// DebugConfig gates developer shortcuts.
type DebugConfig struct {
	Cheats bool `yaml:"cheats"`
}

// Tick returns the simulation step.
func (v ViewportConfig) Tick() time.Duration {
	if v.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(v.TickRate)
}

// FlashInterval is the time between player alpha toggles.
func (p PlayerConfig) FlashInterval() time.Duration {
	return millis(p.FlashMS)
}

// PulseInterval is the scared alpha pulse period.
func (p PursuerConfig) PulseInterval() time.Duration {
	return millis(p.PulseMS)
}

// PulseInterval is the power token scale pulse period.
func (i ItemsConfig) PulseInterval() time.Duration {
	return millis(i.PowerPulseMS)
}

// Duration is how long pursuers stay scared.
func (p PowerConfig) Duration() time.Duration {
	return millis(p.DurationMS)
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. An empty name is normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	if name == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
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

// LivesForPreset returns the life count a preset starts with, or 0 to
// keep the configured value.
func LivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 2
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
