// Package sim is the level simulation engine of Turkey Run: it spawns a
// maze level, steps physics at a fixed rate, applies the pickup, power-up
// and catch rules, and drives the session through its phases.
//
// The engine is single-threaded. Step and the signal methods must be
// called from one goroutine; observers run inside those calls.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turkeyrun/internal/config"
	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/physics"
	"github.com/vovakirdan/turkeyrun/internal/sched"
)

// ErrCheatsDisabled is returned by ForceWin unless debug.cheats is set.
var ErrCheatsDisabled = errors.New("sim: cheats disabled")

// Input is the movement intent for one tick. Left wins over Right and Up
// over Down; both axes may be held at once.
type Input struct {
	Up, Down, Left, Right bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver adds an event observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.obs = append(e.obs, o)
		}
	}
}

// WithLogger routes engine logs to l. The default discards them.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSeed fixes the RNG used for generated mazes.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// Engine runs one session of levels.
type Engine struct {
	cfg     config.Config
	pending *config.Config
	log     *log.Logger
	obs     []Observer
	seed    int64

	sched   *sched.Scheduler
	arena   *entity.Arena
	spawner *Spawner
	power   *PowerCoordinator

	state   State
	ticks   int
	settled bool // terminal events already emitted
}

// New validates cfg, builds the start level and parks the session in
// Idle. Nothing moves until Start.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:  cfg,
		log:  log.New(io.Discard),
		seed: time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.sched = sched.New()
	e.arena = entity.NewArena()
	e.spawner = NewSpawner(cfg, e.sched, e.arena, rand.New(rand.NewSource(e.seed)), e.log)
	e.power = newPower(cfg, e.sched, e.arena)
	e.state = State{Phase: PhaseIdle, Level: cfg.Session.StartLevel}

	if err := e.load(TransitionRequest{NextLevel: cfg.Session.StartLevel}); err != nil {
		return nil, err
	}
	e.setRunning(false)
	return e, nil
}

func newPower(cfg config.Config, sc *sched.Scheduler, arena *entity.Arena) *PowerCoordinator {
	return NewPowerCoordinator(sc, arena, cfg.Power.Duration(), cfg.Pursuer.PulseInterval(), cfg.Pursuer.ScaredAlpha)
}

// load tears the current level down and spawns req.NextLevel. The phase
// is left to the caller.
func (e *Engine) load(req TransitionRequest) error {
	e.power.Cleanup()
	if e.pending != nil {
		e.applyConfig(*e.pending)
		e.pending = nil
	}

	score := 0
	if req.KeepScore {
		score = e.state.Score
	}
	total, err := e.spawner.SpawnLevel(req.NextLevel, score)
	if err != nil {
		e.state.Phase = PhaseIdle
		return err
	}

	e.state = State{
		Phase:            e.state.Phase,
		Level:            req.NextLevel,
		Score:            score,
		Lives:            e.cfg.Session.Lives,
		PickupsRemaining: total,
		TotalPickups:     total,
	}
	e.settled = false

	e.emit(Event{Kind: EventLevelChanged, Value: e.state.Level})
	e.emit(Event{Kind: EventScoreChanged, Value: e.state.Score})
	e.emit(Event{Kind: EventLivesChanged, Value: e.state.Lives})
	return nil
}

func (e *Engine) applyConfig(cfg config.Config) {
	e.cfg = cfg
	e.spawner.setConfig(cfg)
	e.power = newPower(cfg, e.sched, e.arena)
}

// Begin applies a transition: tear down, rebuild req.NextLevel and play.
func (e *Engine) Begin(req TransitionRequest) error {
	if req.NextLevel < 1 {
		return fmt.Errorf("sim: invalid level %d", req.NextLevel)
	}
	if err := e.load(req); err != nil {
		return err
	}
	e.state.Phase = PhasePlaying
	e.setRunning(true)
	e.log.Info("level started", "level", e.state.Level, "score", e.state.Score, "pickups", e.state.TotalPickups)
	return nil
}

// Handle applies an inbound signal. Signals the current phase does not
// accept return ErrInvalidTransition and change nothing.
func (e *Engine) Handle(sig Signal) error {
	req, err := transition(e.state, sig, e.cfg.Session.MaxLevel)
	if err != nil {
		return err
	}
	if sig == SignalStart && e.spawner.World() != nil {
		e.state.Phase = PhasePlaying
		e.setRunning(true)
		return nil
	}
	return e.Begin(req)
}

// Start leaves Idle.
func (e *Engine) Start() error { return e.Handle(SignalStart) }

// Restart replays the current level from score 0.
func (e *Engine) Restart() error { return e.Handle(SignalRestart) }

// NextLevel advances after a win, keeping the score.
func (e *Engine) NextLevel() error { return e.Handle(SignalNextLevel) }

// ForceWin ends the level as won. It needs debug.cheats.
func (e *Engine) ForceWin() error {
	if !e.cfg.Debug.Cheats {
		return ErrCheatsDisabled
	}
	if e.state.Phase != PhasePlaying {
		return fmt.Errorf("%w: cheat win while %s", ErrInvalidTransition, e.state.Phase)
	}
	e.state.Phase = PhaseWin
	e.checkTerminal()
	return nil
}

// SetConfig queues cfg for the next level transition.
func (e *Engine) SetConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.pending = &cfg
	return nil
}

// Config returns the configuration of the running level.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Step advances the simulation by one tick. Outside Playing it does
// nothing.
func (e *Engine) Step(in Input) State {
	world := e.spawner.World()
	if e.state.Phase != PhasePlaying || world == nil {
		return e.State()
	}
	dt := e.cfg.Viewport.Tick()
	e.ticks++

	e.sched.Advance(dt)
	e.applyInput(in, world)
	steerPursuers(e.arena, world.SetVelocity)
	contacts := world.Step(dt)
	e.syncBodies(world)
	e.resolve(contacts)
	e.checkTerminal()
	return e.State()
}

func (e *Engine) applyInput(in Input, world *physics.World) {
	p, ok := e.arena.Get(e.spawner.Player())
	if !ok {
		return
	}
	v := core.Vec{}
	if !p.Player.Frozen {
		speed := e.cfg.Player.Speed
		if in.Left {
			v.X = -speed
			p.FlipX = true
		} else if in.Right {
			v.X = speed
			p.FlipX = false
		}
		if in.Up {
			v.Y = -speed
		} else if in.Down {
			v.Y = speed
		}
	}
	p.Vel = v
	world.SetVelocity(p.ID, v)
}

func (e *Engine) syncBodies(world *physics.World) {
	e.arena.Each(0, func(ent *entity.Entity) {
		if ent.Player == nil && ent.Pursuer == nil {
			return
		}
		if pos, ok := world.Position(ent.ID); ok {
			ent.Pos = pos
		}
		if vel, ok := world.Velocity(ent.ID); ok {
			ent.Vel = vel
		}
	})
}

// checkTerminal pauses the level and emits the end event once after the
// session enters Win or GameOver.
func (e *Engine) checkTerminal() {
	if !e.state.Phase.Terminal() || e.settled {
		return
	}
	e.settled = true
	e.setRunning(false)

	if p, ok := e.arena.Get(e.spawner.Player()); ok {
		p.Player.Frozen = true
		p.Vel = core.Vec{}
		if w := e.spawner.World(); w != nil {
			w.SetVelocity(p.ID, core.Vec{})
		}
	}

	switch e.state.Phase {
	case PhaseWin:
		last := e.cfg.Session.MaxLevel
		e.state.Final = last > 0 && e.state.Level >= last
		e.log.Info("level cleared", "level", e.state.Level, "score", e.state.Score, "final", e.state.Final)
		e.emit(Event{Kind: EventGameWin})
	case PhaseGameOver:
		e.log.Info("game over", "level", e.state.Level, "score", e.state.Score)
		e.emit(Event{Kind: EventGameOver, Value: e.state.Score})
	}
}

// setRunning pauses or resumes the world and the scheduler together.
func (e *Engine) setRunning(running bool) {
	if w := e.spawner.World(); w != nil {
		w.SetPaused(!running)
	}
	e.sched.SetPaused(!running)
}

func (e *Engine) emit(ev Event) {
	for _, o := range e.obs {
		o.OnEvent(ev)
	}
}

// State returns the session summary.
func (e *Engine) State() State {
	s := e.state
	s.PowerActive = e.power.IsActive()
	return s
}

// Ticks returns how many ticks have been simulated.
func (e *Engine) Ticks() int {
	return e.ticks
}

// Close releases the level.
func (e *Engine) Close() {
	e.power.Cleanup()
	e.spawner.Cleanup()
}
