package sim

import (
	"time"

	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/maze"
)

// EntityView is a read-only copy of one entity for rendering.
type EntityView struct {
	ID           entity.ID
	Kind         entity.Kind
	Pos          core.Vec
	Cell         maze.Point
	Size         float64
	Alpha        float64
	Scale        float64
	FlipX        bool
	Scared       bool
	Invulnerable bool
}

// Snapshot is everything a front end needs to draw one frame.
type Snapshot struct {
	Tick           int
	Now            time.Duration
	State          State
	LevelName      string
	Generated      bool
	Grid           *maze.Grid // shared, do not modify
	Layout         maze.Layout
	Entities       []EntityView // ordered by ID
	PowerRemaining time.Duration
}

// Snapshot copies the current frame.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:           e.ticks,
		Now:            e.sched.Now(),
		State:          e.State(),
		Layout:         e.spawner.Layout(),
		PowerRemaining: e.power.Remaining(),
	}
	if lvl := e.spawner.Level(); lvl != nil {
		snap.LevelName = lvl.Name
		snap.Generated = lvl.Generated
		snap.Grid = lvl.Grid
	}

	for _, ent := range e.arena.Sorted() {
		v := EntityView{
			ID:    ent.ID,
			Kind:  ent.Kind,
			Pos:   ent.Pos,
			Cell:  snap.Layout.CellAt(ent.Pos),
			Size:  ent.Size,
			Alpha: ent.Alpha,
			Scale: ent.Scale,
			FlipX: ent.FlipX,
		}
		if ent.Pursuer != nil {
			v.Scared = ent.Pursuer.Scared
		}
		if ent.Player != nil {
			v.Invulnerable = ent.Player.Invulnerable
		}
		snap.Entities = append(snap.Entities, v)
	}
	return snap
}

// Count returns how many entities of kind the snapshot holds.
func (s Snapshot) Count(kind entity.Kind) int {
	n := 0
	for _, v := range s.Entities {
		if v.Kind == kind {
			n++
		}
	}
	return n
}
