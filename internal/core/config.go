package core

// RuntimeConfig carries what the platform knows about the host when a game
// is (re)started: terminal size, tick rate and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 lets the platform pick a time-based seed
}

// DefaultConfig returns the runtime config used when nothing is known
// about the terminal yet.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the summary a game reports to the platform after each tick.
type GameState struct {
	Score    int
	Level    int
	Lives    int
	GameOver bool // Lost: the platform saves the score once
	Won      bool // Level (or campaign) cleared
	Final    bool // Won the last level: the score is final too
	Paused   bool // No simulation progress this tick
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
