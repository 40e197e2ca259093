package entity

import "sort"

// Arena owns the entities of the active level.
type Arena struct {
	next    ID
	byID    map[ID]*Entity
	ordered []ID // Insertion order, compacted lazily
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{byID: make(map[ID]*Entity)}
}

// Add stores e under a fresh ID and returns it.
func (a *Arena) Add(e Entity) ID {
	a.next++
	e.ID = a.next
	stored := e
	a.byID[e.ID] = &stored
	a.ordered = append(a.ordered, e.ID)
	return e.ID
}

// Get returns the entity for id. Removed or unknown IDs report false.
func (a *Arena) Get(id ID) (*Entity, bool) {
	e, ok := a.byID[id]
	return e, ok
}

// Remove deletes id and reports whether it was present.
func (a *Arena) Remove(id ID) bool {
	if _, ok := a.byID[id]; !ok {
		return false
	}
	delete(a.byID, id)
	if len(a.ordered) > 2*len(a.byID)+16 {
		a.compact()
	}
	return true
}

func (a *Arena) compact() {
	live := a.ordered[:0]
	for _, id := range a.ordered {
		if _, ok := a.byID[id]; ok {
			live = append(live, id)
		}
	}
	a.ordered = live
}

// Each visits the live entities of kind in creation order. A zero kind
// visits everything. Entities removed during the walk are skipped.
func (a *Arena) Each(kind Kind, fn func(e *Entity)) {
	ids := make([]ID, len(a.ordered))
	copy(ids, a.ordered)
	for _, id := range ids {
		e, ok := a.byID[id]
		if !ok || (kind != 0 && e.Kind != kind) {
			continue
		}
		fn(e)
	}
}

// IDs returns the live IDs of kind in creation order.
func (a *Arena) IDs(kind Kind) []ID {
	var out []ID
	a.Each(kind, func(e *Entity) { out = append(out, e.ID) })
	return out
}

// Count returns the number of live entities of kind (0 for all).
func (a *Arena) Count(kind Kind) int {
	if kind == 0 {
		return len(a.byID)
	}
	n := 0
	for _, e := range a.byID {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Clear removes every entity. IDs keep increasing afterwards.
func (a *Arena) Clear() {
	clear(a.byID)
	a.ordered = a.ordered[:0]
}

// Sorted returns all live entities ordered by ID, for stable rendering.
func (a *Arena) Sorted() []*Entity {
	out := make([]*Entity, 0, len(a.byID))
	for _, e := range a.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
