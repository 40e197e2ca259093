package entity

import (
	"testing"

	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/maze"
)

func TestArenaStableIDs(t *testing.T) {
	a := NewArena()
	p := a.Add(NewPlayer(core.V(10, 10), 8))
	f := a.Add(NewPursuer(core.V(50, 50), 8, p, 100, 50))

	if p == f || p == 0 {
		t.Fatalf("IDs should be distinct and non-zero: %d %d", p, f)
	}
	e, ok := a.Get(f)
	if !ok || e.Kind != KindPursuer || e.Pursuer.Target != p {
		t.Fatalf("Get(%d) = %+v, %v", f, e, ok)
	}

	a.Clear()
	if _, ok := a.Get(p); ok {
		t.Error("cleared ID should fail lookup")
	}
	next := a.Add(NewPlayer(core.V(0, 0), 8))
	if next <= f {
		t.Errorf("IDs must not be reused: got %d after %d", next, f)
	}
}

func TestArenaEachByKind(t *testing.T) {
	a := NewArena()
	var corn []ID
	for i := 0; i < 5; i++ {
		corn = append(corn, a.Add(NewItem(KindPickup, maze.Point{X: i, Y: 1}, core.V(float64(i), 0), 2)))
	}
	a.Add(NewItem(KindPowerToken, maze.Point{X: 9, Y: 9}, core.V(9, 9), 3))

	if a.Count(KindPickup) != 5 || a.Count(KindPowerToken) != 1 || a.Count(0) != 6 {
		t.Errorf("counts = %d %d %d", a.Count(KindPickup), a.Count(KindPowerToken), a.Count(0))
	}

	// Removing during iteration skips the removed entity
	seen := 0
	a.Each(KindPickup, func(e *Entity) {
		seen++
		if e.ID == corn[0] {
			a.Remove(corn[1])
		}
	})
	if seen != 4 {
		t.Errorf("visited %d pickups, expected 4", seen)
	}
	if a.Remove(corn[1]) {
		t.Error("second Remove should report false")
	}
	ids := a.IDs(KindPickup)
	if len(ids) != 4 || ids[0] != corn[0] || ids[1] != corn[2] {
		t.Errorf("IDs = %v, expected creation order without removed", ids)
	}
}

func TestArenaCompactKeepsOrder(t *testing.T) {
	a := NewArena()
	var ids []ID
	for i := 0; i < 100; i++ {
		ids = append(ids, a.Add(NewItem(KindPickup, maze.Point{X: i}, core.Vec{}, 1)))
	}
	for _, id := range ids[:90] {
		a.Remove(id)
	}
	got := a.IDs(KindPickup)
	if len(got) != 10 || got[0] != ids[90] || got[9] != ids[99] {
		t.Errorf("IDs after compaction = %v", got)
	}
	sorted := a.Sorted()
	if len(sorted) != 10 || sorted[0].ID != ids[90] {
		t.Error("Sorted should list live entities by ID")
	}
}

func TestKindString(t *testing.T) {
	if KindPowerToken.String() != "power" || Kind(0).String() != "unknown" {
		t.Error("Kind.String mismatch")
	}
}
