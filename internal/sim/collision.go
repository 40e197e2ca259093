package sim

import (
	"sort"

	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/physics"
	"github.com/vovakirdan/turkeyrun/internal/sched"
)

// orderContacts puts item contacts before pursuer contacts, so the last
// pickup of a tick wins over a catch in the same tick. Ties keep a stable
// ID order.
func orderContacts(contacts []physics.Contact) {
	rank := func(k physics.ContactKind) int {
		if k == physics.ContactPursuer {
			return 1
		}
		return 0
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		ri, rj := rank(contacts[i].Kind), rank(contacts[j].Kind)
		if ri != rj {
			return ri < rj
		}
		return contacts[i].Other < contacts[j].Other
	})
}

// resolve applies the game rules to one step's contacts. Resolution stops
// as soon as the level ends.
func (e *Engine) resolve(contacts []physics.Contact) {
	orderContacts(contacts)
	for _, c := range contacts {
		if e.state.Phase != PhasePlaying {
			return
		}
		switch c.Kind {
		case physics.ContactPickup:
			e.collectPickup(c.Other)
		case physics.ContactPower:
			e.collectPower(c.Other)
		case physics.ContactPursuer:
			e.touchPursuer(c.Other)
		}
	}
}

// collect marks an item collected and releases it. It reports false for
// an item that is gone or already collected.
func (e *Engine) collect(id entity.ID, kind entity.Kind) bool {
	it, ok := e.arena.Get(id)
	if !ok || it.Kind != kind || it.Item == nil || it.Item.Collected {
		return false
	}
	it.Item.Collected = true
	e.sched.CancelOwner(sched.Owner(id))
	if w := e.spawner.World(); w != nil && w.Has(id) {
		if err := w.Remove(id); err != nil {
			e.log.Warn("release item shape", "id", id, "error", err)
		}
	}
	e.arena.Remove(id)
	return true
}

func (e *Engine) collectPickup(id entity.ID) {
	if !e.collect(id, entity.KindPickup) {
		return
	}
	e.state.Score += e.cfg.Items.PickupPoints
	e.state.PickupsRemaining--
	e.emit(Event{Kind: EventScoreChanged, Value: e.state.Score})
	if e.state.PickupsRemaining <= 0 {
		e.state.PickupsRemaining = 0
		e.state.Phase = PhaseWin
	}
}

func (e *Engine) collectPower(id entity.ID) {
	if !e.collect(id, entity.KindPowerToken) {
		return
	}
	e.power.Activate()
	e.log.Debug("power up", "until", e.power.Remaining())
}

func (e *Engine) touchPursuer(id entity.ID) {
	player, ok := e.arena.Get(e.spawner.Player())
	if !ok || player.Player.Invulnerable {
		return
	}
	p, ok := e.arena.Get(id)
	if !ok || p.Pursuer == nil {
		return
	}

	switch {
	case e.power.IsActive() && p.Pursuer.Scared:
		e.state.Score += e.cfg.Items.PursuerPoints
		e.emit(Event{Kind: EventScoreChanged, Value: e.state.Score})
		e.spawner.RespawnPursuer(id)
	case !p.Pursuer.Scared:
		e.state.Lives--
		e.emit(Event{Kind: EventLivesChanged, Value: e.state.Lives})
		if e.state.Lives <= 0 {
			e.state.Lives = 0
			e.state.Phase = PhaseGameOver
			return
		}
		e.spawner.RespawnPlayer()
	}
}
