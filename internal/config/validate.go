package config

import (
	"errors"
	"fmt"
)

// MinGridSize is the smallest generated maze edge.
const MinGridSize = 5

// Validate reports every invalid value in c.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		bad("viewport: size %dx%d must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.TickRate <= 0 {
		bad("viewport: tick_rate %d must be positive", c.Viewport.TickRate)
	}

	if c.Player.Speed <= 0 {
		bad("player: speed %.2f must be positive", c.Player.Speed)
	}
	if c.Player.Size <= 0 || c.Player.Size > 1 {
		bad("player: size %.2f must be in (0, 1]", c.Player.Size)
	}
	if c.Player.FlashMS <= 0 {
		bad("player: flash_ms %d must be positive", c.Player.FlashMS)
	}
	if c.Player.FlashRepeats < 1 || c.Player.FlashRepeats%2 == 0 {
		bad("player: flash_repeats %d must be odd", c.Player.FlashRepeats)
	}

	if c.Player.FlashAlpha < 0 || c.Player.FlashAlpha > 1 {
		bad("player: flash_alpha %.2f must be in [0, 1]", c.Player.FlashAlpha)
	}

	if c.Pursuer.Speed <= 0 || c.Pursuer.ScaredSpeed <= 0 {
		bad("pursuer: speeds %.2f/%.2f must be positive", c.Pursuer.Speed, c.Pursuer.ScaredSpeed)
	}
	if c.Pursuer.Size <= 0 || c.Pursuer.Size > 1 {
		bad("pursuer: size %.2f must be in (0, 1]", c.Pursuer.Size)
	}
	if c.Pursuer.PulseMS <= 0 {
		bad("pursuer: pulse_ms %d must be positive", c.Pursuer.PulseMS)
	}

	if c.Items.PickupSize <= 0 || c.Items.PowerSize <= 0 {
		bad("items: sizes must be positive")
	}
	if c.Items.PickupPoints < 0 || c.Items.PursuerPoints < 0 {
		bad("items: points must not be negative")
	}
	if c.Items.PowerPulseMS <= 0 {
		bad("items: power_pulse_ms %d must be positive", c.Items.PowerPulseMS)
	}

	if c.Power.DurationMS <= 0 {
		bad("power: duration_ms %d must be positive", c.Power.DurationMS)
	}

	if c.Session.Lives < 1 {
		bad("session: lives %d must be at least 1", c.Session.Lives)
	}
	if c.Session.StartLevel < 1 {
		bad("session: start_level %d must be at least 1", c.Session.StartLevel)
	}
	if c.Session.MaxLevel < 0 || (c.Session.MaxLevel > 0 && c.Session.MaxLevel < c.Session.StartLevel) {
		bad("session: max_level %d is below start_level %d", c.Session.MaxLevel, c.Session.StartLevel)
	}

	if c.Generator.Width < MinGridSize || c.Generator.Height < MinGridSize {
		bad("generator: size %dx%d is below %dx%d", c.Generator.Width, c.Generator.Height, MinGridSize, MinGridSize)
	}
	if c.Generator.Loops < 0 || c.Generator.PowerCount < 0 || c.Generator.PowerAttempts < 0 || c.Generator.MinPowerSpacing < 0 {
		bad("generator: counts must not be negative")
	}

	if len(c.Layout.Corners) == 0 {
		bad("layout: at least one respawn corner is required")
	}
	if c.Layout.RefCols <= 0 || c.Layout.RefRows <= 0 {
		bad("layout: ref_cols/ref_rows must be positive")
	}

	switch c.Difficulty.Progression.Type {
	case "level", "score", "none", "":
	default:
		bad("difficulty: unknown progression %q", c.Difficulty.Progression.Type)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
}
