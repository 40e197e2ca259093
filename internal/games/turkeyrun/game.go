// Package turkeyrun adapts the level simulation engine to the arcade
// platform: it turns key actions into engine input and signals and draws
// the maze onto the character screen.
package turkeyrun

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turkeyrun/internal/config"
	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/maze"
	"github.com/vovakirdan/turkeyrun/internal/registry"
	"github.com/vovakirdan/turkeyrun/internal/sim"
)

// Game IDs, also used as leaderboard keys.
const (
	GameID     = "turkeyrun"
	MazeGameID = "turkeyrun_maze"
)

// Mode selects where a session starts.
type Mode string

const (
	ModeCampaign Mode = "campaign" // Catalog levels first, generated after
	ModeMaze     Mode = "maze"     // Generated levels only
)

// bannerTicks is how long a transient message stays on screen.
const bannerTicks = 90

// Package-level settings, set by the CLI before the platform creates a game.
var (
	configPath         string
	difficultyPreset   string
	selectedStartLevel int
	logger             *log.Logger
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the first level. 0 keeps the configured one.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetLogger routes engine logs to l. Nil discards them.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game is the platform adapter around one sim.Engine.
type Game struct {
	mode   Mode
	eng    *sim.Engine
	events *sim.ChannelObserver
	err    error // why the session could not start

	tickRate int
	seed     int64
	screenW  int
	screenH  int

	held   core.Action // direction kept until another one or Stop
	paused bool
	lives  int

	banner      string
	bannerTicks int
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewMaze creates a game that plays generated mazes only.
func NewMaze() *Game {
	return &Game{mode: ModeMaze}
}

func init() {
	registry.Register(GameID, func() registry.Game { return New() })
	registry.Register(MazeGameID, func() registry.Game { return NewMaze() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMaze {
		return MazeGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMaze {
		return "Turkey Run (Endless Maze)"
	}
	return "Turkey Run"
}

// loadConfig reads the config file and applies the package-level settings.
func (g *Game) loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		preset, ok := config.ParsePreset(difficultyPreset)
		if !ok {
			return cfg, fmt.Errorf("turkeyrun: unknown difficulty %q", difficultyPreset)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if g.tickRate > 0 {
		cfg.Viewport.TickRate = g.tickRate
	}

	start := cfg.Session.StartLevel
	if selectedStartLevel > 0 {
		start = selectedStartLevel
	}
	if g.mode == ModeMaze && start <= maze.CatalogSize() {
		start = maze.CatalogSize() + 1
	}
	if last := cfg.Session.MaxLevel; last > 0 && start > last {
		start = last
	}
	cfg.Session.StartLevel = start

	return cfg, cfg.Validate()
}

// Reset builds a new session parked on its first level.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.Close() //nolint:errcheck // Close never fails

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tickRate = rc.TickRate
	g.seed = rc.Seed
	g.held = core.ActionNone
	g.paused = false
	g.banner = ""
	g.bannerTicks = 0
	g.err = nil

	cfg, err := g.loadConfig()
	if err != nil {
		g.fail(err)
		return
	}

	g.events = sim.NewChannelObserver(64)
	opts := []sim.Option{sim.WithObserver(g.events)}
	if g.seed != 0 {
		opts = append(opts, sim.WithSeed(g.seed))
	}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}

	eng, err := sim.New(cfg, opts...)
	if err != nil {
		g.fail(err)
		return
	}
	g.eng = eng
	g.lives = cfg.Session.Lives
	g.drain()
}

func (g *Game) fail(err error) {
	g.err = err
	if logger != nil {
		logger.Error("cannot start session", "game", g.ID(), "error", err)
	}
}

// Reload re-reads the config. The engine applies it at the next level
// transition.
func (g *Game) Reload() error {
	if g.eng == nil {
		return errors.New("turkeyrun: no session to reload")
	}
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := g.eng.SetConfig(cfg); err != nil {
		return err
	}
	g.show("Config reloaded")
	return nil
}

// Close releases the running level.
func (g *Game) Close() error {
	if g.eng != nil {
		g.eng.Close()
		g.eng = nil
	}
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		return core.StepResult{State: g.State()}
	}

	g.steer(in)
	st := g.eng.State()

	switch st.Phase {
	case sim.PhaseIdle:
		if in.Has(core.ActionConfirm) || g.held != core.ActionNone {
			g.signal(g.eng.Start())
		}
	case sim.PhasePlaying:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if in.Has(core.ActionCheat) && !g.paused {
			g.signal(g.eng.ForceWin())
		}
	case sim.PhaseWin:
		switch {
		case in.Has(core.ActionRestart):
			g.transition(g.eng.Restart())
		case in.Has(core.ActionNextLevel), in.Has(core.ActionConfirm):
			if st.Final {
				g.transition(g.eng.Restart())
			} else {
				g.transition(g.eng.NextLevel())
			}
		}
	case sim.PhaseGameOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.transition(g.eng.Restart())
		}
	}

	if !g.paused {
		g.eng.Step(g.input())
	}
	g.drain()
	if g.bannerTicks > 0 {
		g.bannerTicks--
	}

	return core.StepResult{State: g.State()}
}

// steer updates the held direction. Terminals report key presses, not
// holds, so a direction stays held until another one or Stop.
func (g *Game) steer(in core.InputFrame) {
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if in.Has(a) {
			g.held = a
		}
	}
	if in.Has(core.ActionStop) {
		g.held = core.ActionNone
	}
}

func (g *Game) input() sim.Input {
	return sim.Input{
		Up:    g.held == core.ActionUp,
		Down:  g.held == core.ActionDown,
		Left:  g.held == core.ActionLeft,
		Right: g.held == core.ActionRight,
	}
}

// transition runs after a level change signal: the turkey starts still.
func (g *Game) transition(err error) {
	g.held = core.ActionNone
	g.paused = false
	g.signal(err)
}

func (g *Game) signal(err error) {
	if err != nil && logger != nil {
		logger.Debug("signal ignored", "error", err)
	}
}

// drain turns engine events into on-screen banners.
func (g *Game) drain() {
	if g.events == nil {
		return
	}
	for _, ev := range g.events.Drain() {
		switch ev.Kind {
		case sim.EventLivesChanged:
			if ev.Value < g.lives {
				g.show(fmt.Sprintf("Caught! %d lives left", ev.Value))
			}
			g.lives = ev.Value
		case sim.EventLevelChanged:
			g.show(fmt.Sprintf("Level %d", ev.Value))
		}
	}
}

func (g *Game) show(msg string) {
	g.banner = msg
	g.bannerTicks = bannerTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{Paused: true}
	}
	st := g.eng.State()
	return core.GameState{
		Score:    st.Score,
		Level:    st.Level,
		Lives:    st.Lives,
		GameOver: st.Phase == sim.PhaseGameOver,
		Won:      st.Phase == sim.PhaseWin,
		Final:    st.Final,
		Paused:   g.paused || st.Phase == sim.PhaseIdle,
	}
}

// Snapshot returns the engine frame for tests and tooling. ok is false
// when no session is running.
func (g *Game) Snapshot() (snap sim.Snapshot, ok bool) {
	if g.eng == nil {
		return sim.Snapshot{}, false
	}
	return g.eng.Snapshot(), true
}

// Err returns why the session could not start, if it could not.
func (g *Game) Err() error {
	return g.err
}
