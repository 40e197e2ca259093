// Package physics adapts the Chipmunk space to the maze: static wall
// boxes, dynamic bodies for the player and pursuers, and sensor shapes
// for items. Overlaps seen during a step are buffered and returned after
// it, so game rules never mutate the space mid-step.
package physics

import (
	"fmt"
	"math"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/maze"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypePursuer
	collisionTypePickup
	collisionTypePower
)

// ContactKind names the game-relevant overlap pairs.
type ContactKind uint8

const (
	ContactPickup ContactKind = iota + 1
	ContactPower
	ContactPursuer
)

func (k ContactKind) String() string {
	switch k {
	case ContactPickup:
		return "pickup"
	case ContactPower:
		return "power"
	case ContactPursuer:
		return "pursuer"
	default:
		return "unknown"
	}
}

// Contact is one player overlap seen during a step.
type Contact struct {
	Kind   ContactKind
	Player entity.ID
	Other  entity.ID
}

type pairKey struct {
	a, b entity.ID
}

// World owns one Chipmunk space for the lifetime of a level.
type World struct {
	space  *cp.Space
	bodies map[entity.ID]*cp.Body
	shapes map[entity.ID]*cp.Shape
	owners map[*cp.Shape]entity.ID
	kinds  map[entity.ID]entity.Kind
	walls  int

	contacts []Contact
	seen     map[pairKey]bool
	paused   bool
}

// New creates an empty zero-gravity world.
func New() *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &World{
		space:  space,
		bodies: make(map[entity.ID]*cp.Body),
		shapes: make(map[entity.ID]*cp.Shape),
		owners: make(map[*cp.Shape]entity.ID),
		kinds:  make(map[entity.ID]entity.Kind),
		seen:   make(map[pairKey]bool),
	}
	w.setupHandlers()
	return w
}

// AddWalls builds static boxes for every wall cell of g. Horizontal runs
// are merged first, then stacked runs of equal span, so corridors have
// few internal seams for bodies to catch on.
func (w *World) AddWalls(g *maze.Grid, l maze.Layout) int {
	cols, rows := g.Width(), g.Height()
	done := make([]bool, cols*rows)
	isWall := func(x, y int) bool {
		return !done[y*cols+x] && g.At(maze.Point{X: x, Y: y}) == maze.Wall
	}

	added := 0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if !isWall(x, y) {
				continue
			}
			width := 1
			for x+width < cols && isWall(x+width, y) {
				width++
			}
			height := 1
		grow:
			for y+height < rows {
				for xi := x; xi < x+width; xi++ {
					if !isWall(xi, y+height) {
						break grow
					}
				}
				height++
			}
			for yy := y; yy < y+height; yy++ {
				for xx := x; xx < x+width; xx++ {
					done[yy*cols+xx] = true
				}
			}

			x0 := l.OffsetX + float64(x)*l.Tile
			y0 := l.OffsetY + float64(y)*l.Tile
			bb := cp.BB{L: x0, B: y0, R: x0 + float64(width)*l.Tile, T: y0 + float64(height)*l.Tile}
			shape := cp.NewBox2(w.space.StaticBody, bb, 0)
			shape.SetFriction(0)
			shape.SetElasticity(0)
			shape.SetCollisionType(collisionTypeWall)
			w.space.AddShape(shape)
			added++
		}
	}
	w.walls += added
	return added
}

// WallShapes returns how many static wall boxes the world holds.
func (w *World) WallShapes() int {
	return w.walls
}

// AddActor creates a dynamic, non-rotating square body for the player or
// a pursuer.
func (w *World) AddActor(id entity.ID, kind entity.Kind, pos core.Vec, size float64) error {
	var ct cp.CollisionType
	switch kind {
	case entity.KindPlayer:
		ct = collisionTypePlayer
	case entity.KindPursuer:
		ct = collisionTypePursuer
	default:
		return fmt.Errorf("physics: %v is not an actor", kind)
	}
	if _, exists := w.shapes[id]; exists {
		return fmt.Errorf("physics: entity %d already has a body", id)
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	shape := cp.NewBox(body, size, size, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(ct)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.bodies[id] = body
	w.shapes[id] = shape
	w.owners[shape] = id
	w.kinds[id] = kind
	return nil
}

// AddSensor creates a static overlap-only square for a pickup or power
// token.
func (w *World) AddSensor(id entity.ID, kind entity.Kind, pos core.Vec, size float64) error {
	var ct cp.CollisionType
	switch kind {
	case entity.KindPickup:
		ct = collisionTypePickup
	case entity.KindPowerToken:
		ct = collisionTypePower
	default:
		return fmt.Errorf("physics: %v is not an item", kind)
	}
	if _, exists := w.shapes[id]; exists {
		return fmt.Errorf("physics: entity %d already has a shape", id)
	}

	half := size / 2
	bb := cp.BB{L: pos.X - half, B: pos.Y - half, R: pos.X + half, T: pos.Y + half}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(ct)

	w.space.AddShape(shape)
	w.shapes[id] = shape
	w.owners[shape] = id
	w.kinds[id] = kind
	return nil
}

// Remove drops the shape and body of id.
func (w *World) Remove(id entity.ID) error {
	shape, ok := w.shapes[id]
	if !ok {
		return fmt.Errorf("physics: entity %d has no shape", id)
	}
	delete(w.shapes, id)
	delete(w.owners, shape)
	delete(w.kinds, id)
	w.space.RemoveShape(shape)

	if body, ok := w.bodies[id]; ok {
		delete(w.bodies, id)
		w.space.RemoveBody(body)
	}
	return nil
}

// Has reports whether id has a shape in the world.
func (w *World) Has(id entity.ID) bool {
	_, ok := w.shapes[id]
	return ok
}

// SetVelocity sets the velocity of an actor body, pixels per second.
// The part of v pointing into a wall the body already touches is dropped,
// so a held direction cannot undo the solver's push-out between steps.
func (w *World) SetVelocity(id entity.ID, v core.Vec) {
	body, ok := w.bodies[id]
	if !ok {
		return
	}
	vel := cp.Vector{X: v.X, Y: v.Y}
	if w.space != nil {
		static := w.space.StaticBody
		body.EachArbiter(func(arb *cp.Arbiter) {
			// EachArbiter orders the pair so the body's shape comes first
			// and the normal points away from it.
			_, other := arb.Shapes()
			if other.Sensor() || other.Body() != static || arb.Count() == 0 {
				return
			}
			n := arb.Normal()
			if into := vel.Dot(n); into > 0 {
				vel = vel.Sub(n.Mult(into))
			}
		})
	}
	body.SetVelocityVector(vel)
}

// Velocity returns the current velocity of an actor body.
func (w *World) Velocity(id entity.ID) (core.Vec, bool) {
	body, ok := w.bodies[id]
	if !ok {
		return core.Vec{}, false
	}
	v := body.Velocity()
	return core.Vec{X: v.X, Y: v.Y}, true
}

// Teleport moves an actor and stops it.
func (w *World) Teleport(id entity.ID, pos core.Vec) {
	if body, ok := w.bodies[id]; ok {
		body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
		body.SetVelocityVector(cp.Vector{})
	}
}

// Position returns the center of an actor body.
func (w *World) Position(id entity.ID) (core.Vec, bool) {
	body, ok := w.bodies[id]
	if !ok {
		return core.Vec{}, false
	}
	p := body.Position()
	return core.Vec{X: p.X, Y: p.Y}, true
}

// SetPaused freezes the world: Step does nothing until resumed.
func (w *World) SetPaused(paused bool) {
	w.paused = paused
}

// Paused reports whether the world is frozen.
func (w *World) Paused() bool {
	return w.paused
}

// Step integrates dt and returns the player overlaps seen during it, at
// most one per pair.
func (w *World) Step(dt time.Duration) []Contact {
	if w.paused || w.space == nil || dt <= 0 {
		return nil
	}
	w.contacts = w.contacts[:0]
	clear(w.seen)
	w.space.Step(dt.Seconds())

	out := make([]Contact, len(w.contacts))
	copy(out, w.contacts)
	return out
}

// Close releases the space. The world is unusable afterwards.
func (w *World) Close() {
	clear(w.bodies)
	clear(w.shapes)
	clear(w.owners)
	clear(w.kinds)
	w.space = nil
	w.walls = 0
}

func (w *World) setupHandlers() {
	record := func(kind ContactKind) func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			world, ok := userData.(*World)
			if !ok || world == nil {
				return false
			}
			shapeA, shapeB := arb.Shapes()
			world.record(kind, shapeA, shapeB)
			// Overlaps never push: items are sensors and a caught
			// player is resolved by the rules, not the solver.
			return false
		}
	}

	pickups := w.space.NewCollisionHandler(collisionTypePlayer, collisionTypePickup)
	pickups.UserData = w
	pickups.PreSolveFunc = record(ContactPickup)

	power := w.space.NewCollisionHandler(collisionTypePlayer, collisionTypePower)
	power.UserData = w
	power.PreSolveFunc = record(ContactPower)

	catches := w.space.NewCollisionHandler(collisionTypePlayer, collisionTypePursuer)
	catches.UserData = w
	catches.PreSolveFunc = record(ContactPursuer)

	// Pursuers pass through each other
	crowd := w.space.NewCollisionHandler(collisionTypePursuer, collisionTypePursuer)
	crowd.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}
}

func (w *World) record(kind ContactKind, a, b *cp.Shape) {
	idA, okA := w.owners[a]
	idB, okB := w.owners[b]
	if !okA || !okB {
		return
	}
	player, other := idA, idB
	if w.kinds[idA] != entity.KindPlayer {
		player, other = idB, idA
	}
	key := pairKey{a: player, b: other}
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	w.contacts = append(w.contacts, Contact{Kind: kind, Player: player, Other: other})
}
