package sim

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turkeyrun/internal/config"
	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/maze"
	"github.com/vovakirdan/turkeyrun/internal/physics"
	"github.com/vovakirdan/turkeyrun/internal/sched"
)

// Spawner is the only place entities are created and destroyed. It owns
// the physics world of the current level.
type Spawner struct {
	cfg   config.Config
	log   *log.Logger
	rng   *rand.Rand
	diff  *config.DifficultyManager
	sched *sched.Scheduler
	arena *entity.Arena

	world   *physics.World
	level   *maze.Level
	layout  maze.Layout
	player  entity.ID
	corners []core.Vec
}

// NewSpawner wires a spawner to the shared scheduler and arena.
func NewSpawner(cfg config.Config, sc *sched.Scheduler, arena *entity.Arena, rng *rand.Rand, logger *log.Logger) *Spawner {
	return &Spawner{
		cfg:   cfg,
		log:   logger,
		rng:   rng,
		diff:  config.NewDifficultyManager(cfg.Difficulty),
		sched: sc,
		arena: arena,
	}
}

// LevelSpec converts the generator and layout sections of cfg to the
// maze placement presets.
func LevelSpec(cfg config.Config) maze.Spec {
	return maze.Spec{
		Gen: maze.GenConfig{
			Width:           cfg.Generator.Width,
			Height:          cfg.Generator.Height,
			Loops:           cfg.Generator.Loops,
			PowerCount:      cfg.Generator.PowerCount,
			PowerAttempts:   cfg.Generator.PowerAttempts,
			MinPowerSpacing: cfg.Generator.MinPowerSpacing,
		},
		FixedPower: cellPoints(cfg.Layout.Power),
		Pursuers:   cellPoints(cfg.Layout.Pursuers),
		Corners:    cellPoints(cfg.Layout.Corners),
		RefWidth:   cfg.Layout.RefCols,
		RefHeight:  cfg.Layout.RefRows,
	}
}

func cellPoints(cells []config.Cell) []maze.Point {
	out := make([]maze.Point, len(cells))
	for i, c := range cells {
		out[i] = maze.Point{X: c.Col, Y: c.Row}
	}
	return out
}

// buildLevel sources level n, falling back to a catalog maze when a
// generated one fails validation.
func (s *Spawner) buildLevel(n int) (*maze.Level, error) {
	spec := LevelSpec(s.cfg)
	lvl, err := maze.Build(n, spec, s.rng)
	if err == nil {
		return lvl, nil
	}
	s.log.Warn("level failed validation, using catalog maze", "level", n, "error", err)
	return maze.Fallback(n, spec)
}

// SpawnLevel tears down the previous level and populates level n. score
// feeds score-based difficulty. It returns the number of pickups.
func (s *Spawner) SpawnLevel(n, score int) (int, error) {
	s.Cleanup()

	lvl, err := s.buildLevel(n)
	if err != nil {
		return 0, fmt.Errorf("sim: spawn level %d: %w", n, err)
	}
	g := lvl.Grid
	layout := maze.ComputeLayout(g.Width(), g.Height(), float64(s.cfg.Viewport.Width), float64(s.cfg.Viewport.Height))

	world := physics.New()
	world.AddWalls(g, layout)
	s.world = world
	s.level = lvl
	s.layout = layout

	tile := layout.Tile
	total := 0
	var spawnErr error
	g.Cells(func(p maze.Point, k maze.CellKind) {
		if !k.Open() || spawnErr != nil {
			return
		}
		pos := layout.Center(p)
		if lvl.IsPower(p) {
			spawnErr = s.spawnPowerToken(p, pos, tile*s.cfg.Items.PowerSize)
			return
		}
		e := entity.NewItem(entity.KindPickup, p, pos, tile*s.cfg.Items.PickupSize)
		id := s.arena.Add(e)
		spawnErr = world.AddSensor(id, entity.KindPickup, pos, e.Size)
		total++
	})
	if spawnErr != nil {
		s.Cleanup()
		return 0, fmt.Errorf("sim: spawn level %d: %w", n, spawnErr)
	}

	start := layout.Center(lvl.Spawn)
	player := entity.NewPlayer(start, tile*s.cfg.Player.Size)
	s.player = s.arena.Add(player)
	if err := world.AddActor(s.player, entity.KindPlayer, start, player.Size); err != nil {
		s.Cleanup()
		return 0, fmt.Errorf("sim: spawn player: %w", err)
	}

	base := s.diff.Speed(s.cfg.Pursuer.Speed, n, score)
	for _, cell := range lvl.Pursuers {
		pos := layout.Center(cell)
		e := entity.NewPursuer(pos, tile*s.cfg.Pursuer.Size, s.player, base, s.cfg.Pursuer.ScaredSpeed)
		id := s.arena.Add(e)
		if err := world.AddActor(id, entity.KindPursuer, pos, e.Size); err != nil {
			s.Cleanup()
			return 0, fmt.Errorf("sim: spawn pursuer: %w", err)
		}
	}

	s.corners = s.corners[:0]
	for _, c := range lvl.Corners {
		s.corners = append(s.corners, layout.Center(c))
	}

	s.log.Debug("level spawned", "level", n, "name", lvl.Name, "pickups", total,
		"power", len(lvl.Power), "pursuers", len(lvl.Pursuers), "generated", lvl.Generated)
	return total, nil
}

func (s *Spawner) spawnPowerToken(cell maze.Point, pos core.Vec, size float64) error {
	id := s.arena.Add(entity.NewItem(entity.KindPowerToken, cell, pos, size))
	if err := s.world.AddSensor(id, entity.KindPowerToken, pos, size); err != nil {
		return err
	}

	scale := s.cfg.Items.PowerScale
	s.sched.Every(sched.Owner(id), s.cfg.Items.PulseInterval(), sched.Forever, func(run int, _ bool) {
		e, ok := s.arena.Get(id)
		if !ok {
			return
		}
		if run%2 == 1 {
			e.Scale = scale
		} else {
			e.Scale = 1
		}
	})
	return nil
}

// RespawnPlayer puts the player back on its start cell, lets it move
// again and starts the invulnerability window. The window flashes the
// alpha flash_repeats+1 times and ends at full opacity.
func (s *Spawner) RespawnPlayer() {
	p, ok := s.arena.Get(s.player)
	if !ok {
		return
	}
	id := p.ID
	owner := sched.Owner(id)
	s.sched.CancelOwner(owner)

	p.Pos = p.Player.Start
	p.Vel = core.Vec{}
	p.Player.Frozen = false
	p.Player.Invulnerable = true
	p.Alpha = s.cfg.Player.FlashAlpha
	if s.world != nil {
		s.world.Teleport(id, p.Pos)
	}

	dim := s.cfg.Player.FlashAlpha
	toggles := 2 * (s.cfg.Player.FlashRepeats + 1)
	s.sched.Every(owner, s.cfg.Player.FlashInterval(), toggles, func(run int, last bool) {
		e, ok := s.arena.Get(id)
		if !ok {
			return
		}
		switch {
		case last:
			e.Alpha = 1
			e.Player.Invulnerable = false
		case run%2 == 1:
			e.Alpha = 1
		default:
			e.Alpha = dim
		}
	})
}

// RespawnPursuer moves pursuer id to the respawn corner farthest from the
// player and makes it hostile again.
func (s *Spawner) RespawnPursuer(id entity.ID) {
	p, ok := s.arena.Get(id)
	if !ok || p.Pursuer == nil {
		return
	}
	player, ok := s.arena.Get(s.player)
	if !ok || len(s.corners) == 0 {
		recoverPursuer(p, s.sched)
		return
	}

	best := s.corners[0]
	maxDistance := 0.0
	for _, c := range s.corners {
		if d := c.Dist(player.Pos); d > maxDistance {
			maxDistance = d
			best = c
		}
	}

	p.Pos = best
	p.Vel = core.Vec{}
	if s.world != nil {
		s.world.Teleport(id, best)
	}
	recoverPursuer(p, s.sched)
}

// Cleanup cancels every task, releases physics resources and removes all
// entities. Each step runs on its own; a failure is logged and skipped.
// Calling it twice is harmless.
func (s *Spawner) Cleanup() {
	s.try("cancel tasks", func() error {
		s.sched.CancelAll()
		return nil
	})

	if s.world != nil {
		for _, id := range s.arena.IDs(0) {
			id := id
			s.try("release body", func() error {
				if !s.world.Has(id) {
					return nil
				}
				return s.world.Remove(id)
			})
		}
		s.try("close world", func() error {
			s.world.Close()
			return nil
		})
	}

	s.try("remove entities", func() error {
		s.arena.Clear()
		return nil
	})

	s.world = nil
	s.level = nil
	s.player = 0
	s.corners = s.corners[:0]
}

func (s *Spawner) try(step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("cleanup step failed", "step", step, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		s.log.Warn("cleanup step failed", "step", step, "error", err)
	}
}

// World returns the physics world of the current level, or nil.
func (s *Spawner) World() *physics.World { return s.world }

// Level returns the current maze level, or nil.
func (s *Spawner) Level() *maze.Level { return s.level }

// Layout returns the pixel layout of the current level.
func (s *Spawner) Layout() maze.Layout { return s.layout }

// Player returns the player's entity ID.
func (s *Spawner) Player() entity.ID { return s.player }

func (s *Spawner) setConfig(cfg config.Config) {
	s.cfg = cfg
	s.diff = config.NewDifficultyManager(cfg.Difficulty)
}
