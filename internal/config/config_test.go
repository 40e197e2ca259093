package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded): %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults drifted from DefaultConfig:\n got %+v\nwant %+v", cfg, DefaultConfig())
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig invalid: %v", err)
	}
}

func TestLoadCustomPathOverridesSomeKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "session:\n  lives: 7\nlayout:\n  corners:\n    - {row: 2, col: 2}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.Lives != 7 {
		t.Errorf("lives = %d, want 7", cfg.Session.Lives)
	}
	if cfg.Player.Speed != 200 {
		t.Errorf("unset player speed = %.1f, want default 200", cfg.Player.Speed)
	}
	if len(cfg.Layout.Corners) != 1 || cfg.Layout.Corners[0] != (Cell{Row: 2, Col: 2}) {
		t.Errorf("corners = %v, want the single override", cfg.Layout.Corners)
	}
	if len(cfg.Layout.Pursuers) != 3 {
		t.Errorf("pursuers = %v, want defaults kept", cfg.Layout.Pursuers)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"even flash repeats", func(c *Config) { c.Player.FlashRepeats = 4 }, "flash_repeats"},
		{"zero tick rate", func(c *Config) { c.Viewport.TickRate = 0 }, "tick_rate"},
		{"negative speed", func(c *Config) { c.Pursuer.Speed = -1 }, "pursuer"},
		{"tiny generator", func(c *Config) { c.Generator.Width = 3 }, "generator"},
		{"no lives", func(c *Config) { c.Session.Lives = 0 }, "lives"},
		{"max below start", func(c *Config) { c.Session.StartLevel = 3; c.Session.MaxLevel = 2 }, "max_level"},
		{"no corners", func(c *Config) { c.Layout.Corners = nil }, "corner"},
		{"bad progression", func(c *Config) { c.Difficulty.Progression.Type = "time" }, "progression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	if _, err := Parse([]byte("player:\n  flash_repeats: 2\n")); err == nil {
		t.Error("Parse accepted even flash_repeats")
	}
	if _, err := Parse([]byte("viewport: [1, 2")); err == nil {
		t.Error("Parse accepted broken YAML")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
		lives   int
	}{
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.0, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("initial = %.1f, want %.1f", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Session.Lives != tt.lives {
				t.Errorf("lives = %d, want %d", cfg.Session.Lives, tt.lives)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset accepted unknown preset")
	}
}

func TestDifficultySpeedByLevel(t *testing.T) {
	cfg := DefaultConfig().Difficulty
	d := NewDifficultyManager(cfg)

	if got := d.Speed(100, 1, 0); got != 100 {
		t.Errorf("level 1 speed = %.2f, want 100", got)
	}
	if got := d.Speed(100, 6, 0); got != 150 {
		t.Errorf("level 6 speed = %.2f, want 150", got)
	}
	if got := d.Speed(100, 50, 0); got != 200 {
		t.Errorf("level 50 speed = %.2f, want capped 200", got)
	}

	d.SetEnabled(false)
	if got := d.Speed(100, 50, 0); got != 100 {
		t.Errorf("disabled speed = %.2f, want 100", got)
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	cfg := DefaultConfig().Difficulty
	cfg.Progression.Type = "none"
	d := NewDifficultyManager(cfg)
	d.SetInitialLevel(2)
	if got := d.Level(9, 999); got != 1 {
		t.Errorf("Level = %.2f, want clamped 1", got)
	}
	if d.IsEnabled() {
		t.Error("progression none should report disabled")
	}
}

func TestTimings(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Viewport.Tick(); got != time.Second/60 {
		t.Errorf("Tick = %v", got)
	}
	if got := cfg.Power.Duration(); got != 10*time.Second {
		t.Errorf("power duration = %v", got)
	}
	if got := cfg.Player.FlashInterval(); got != 100*time.Millisecond {
		t.Errorf("flash = %v", got)
	}
}

func TestWatcherReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("session:\n  lives: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != FileName {
			t.Errorf("event for %q, want %q", got, FileName)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for YAML write")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	for range w.Events {
		// drain until closed
	}
}
