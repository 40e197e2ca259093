// Package entity defines the level's actors as one tagged record and the
// arena that owns them. Behavior lives in free functions elsewhere; an
// entity is plain data addressed by a stable ID.
package entity

import (
	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/maze"
)

// ID identifies an entity. IDs start at 1 and are never reused, so a
// stale ID fails lookup instead of aliasing a newer entity.
type ID uint64

// Kind selects which payload of an Entity is set.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindPursuer
	KindPickup
	KindPowerToken
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPursuer:
		return "pursuer"
	case KindPickup:
		return "pickup"
	case KindPowerToken:
		return "power"
	default:
		return "unknown"
	}
}

// Entity is the tagged union over every actor in a level. Exactly one of
// Player, Pursuer or Item is non-nil, matching Kind.
type Entity struct {
	ID   ID
	Kind Kind
	Pos  core.Vec
	Vel  core.Vec
	Size float64 // Side of the square footprint, pixels

	// Presentation only.
	Alpha float64
	Scale float64
	FlipX bool

	Player  *Player
	Pursuer *Pursuer
	Item    *Item
}

// Player is the turkey's state.
type Player struct {
	Start        core.Vec
	Invulnerable bool
	Frozen       bool // Ignores input (level over)
}

// Pursuer is a farmer's state.
type Pursuer struct {
	Target      ID // Weak: resolved through the arena each tick
	Scared      bool
	BaseSpeed   float64
	ScaredSpeed float64
	Speed       float64
}

// Item is the state shared by pickups and power tokens.
type Item struct {
	Cell      maze.Point
	Collected bool
}

// NewPlayer builds a player record at pos.
func NewPlayer(pos core.Vec, size float64) Entity {
	return Entity{
		Kind:   KindPlayer,
		Pos:    pos,
		Size:   size,
		Alpha:  1,
		Scale:  1,
		Player: &Player{Start: pos},
	}
}

// NewPursuer builds a hostile pursuer chasing target.
func NewPursuer(pos core.Vec, size float64, target ID, baseSpeed, scaredSpeed float64) Entity {
	return Entity{
		Kind:  KindPursuer,
		Pos:   pos,
		Size:  size,
		Alpha: 1,
		Scale: 1,
		Pursuer: &Pursuer{
			Target:      target,
			BaseSpeed:   baseSpeed,
			ScaredSpeed: scaredSpeed,
			Speed:       baseSpeed,
		},
	}
}

// NewItem builds a pickup or power token on cell.
func NewItem(kind Kind, cell maze.Point, pos core.Vec, size float64) Entity {
	return Entity{
		Kind:  kind,
		Pos:   pos,
		Size:  size,
		Alpha: 1,
		Scale: 1,
		Item:  &Item{Cell: cell},
	}
}
