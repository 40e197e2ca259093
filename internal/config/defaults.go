package config

import (
	_ "embed"
)

//go:embed defaults/turkeyrun.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in tuning. It mirrors the embedded
// defaults/turkeyrun.yaml and backs it up if that ever fails to parse.
func DefaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{
			Width:    1200,
			Height:   800,
			TickRate: 60,
		},
		Player: PlayerConfig{
			Speed:        200,
			Size:         0.8,
			FlashMS:      100,
			FlashRepeats: 3,
			FlashAlpha:   0.3,
		},
		Pursuer: PursuerConfig{
			Speed:       100,
			ScaredSpeed: 50,
			Size:        0.8,
			PulseMS:     200,
			ScaredAlpha: 0.3,
		},
		Items: ItemsConfig{
			PickupSize:    0.3,
			PowerSize:     0.4,
			PickupPoints:  1,
			PursuerPoints: 10,
			PowerPulseMS:  500,
			PowerScale:    1.2,
		},
		Power: PowerConfig{
			DurationMS: 10000,
		},
		Session: SessionConfig{
			Lives:      3,
			StartLevel: 1,
		},
		Generator: GeneratorConfig{
			Width:           21,
			Height:          13,
			Loops:           10,
			PowerCount:      4,
			PowerAttempts:   100,
			MinPowerSpacing: 3,
		},
		Layout: LayoutConfig{
			RefCols:  20,
			RefRows:  13,
			Pursuers: []Cell{{Row: 3, Col: 3}, {Row: 3, Col: 16}, {Row: 11, Col: 10}},
			Power:    []Cell{{Row: 3, Col: 9}, {Row: 7, Col: 5}, {Row: 9, Col: 14}},
			Corners:  []Cell{{Row: 1, Col: 1}, {Row: 1, Col: 18}, {Row: 11, Col: 1}, {Row: 11, Col: 18}},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default file, for `turkeyrun config`
// style dumps and tests.
func DefaultYAML() []byte {
	return defaultYAML
}
