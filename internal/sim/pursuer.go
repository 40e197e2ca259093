package sim

import (
	"time"

	"github.com/vovakirdan/turkeyrun/internal/core"
	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/sched"
)

// pursuerIntent returns the velocity a pursuer wants this tick: straight
// at the target while hostile, straight away from it while scared.
func pursuerIntent(p *entity.Entity, target core.Vec) core.Vec {
	dir := target.Sub(p.Pos).Unit()
	if p.Pursuer.Scared {
		dir = dir.Neg()
	}
	return dir.Scale(p.Pursuer.Speed)
}

// steerPursuers sets the velocity of every pursuer toward (or away from)
// its target. A pursuer whose target is gone stops.
func steerPursuers(arena *entity.Arena, setVelocity func(entity.ID, core.Vec)) {
	arena.Each(entity.KindPursuer, func(p *entity.Entity) {
		target, ok := arena.Get(p.Pursuer.Target)
		v := core.Vec{}
		if ok {
			v = pursuerIntent(p, target.Pos)
		}
		p.Vel = v
		p.FlipX = v.X < 0
		setVelocity(p.ID, v)
	})
}

// scarePursuer switches p to Scared and starts its alpha pulse. Scaring
// an already scared pursuer restarts the pulse.
func scarePursuer(p *entity.Entity, arena *entity.Arena, sc *sched.Scheduler, pulse time.Duration, alpha float64) {
	owner := sched.Owner(p.ID)
	sc.CancelOwner(owner)

	p.Pursuer.Scared = true
	p.Pursuer.Speed = p.Pursuer.ScaredSpeed
	p.Alpha = 1

	id := p.ID
	sc.Every(owner, pulse, sched.Forever, func(run int, _ bool) {
		e, ok := arena.Get(id)
		if !ok {
			return
		}
		if run%2 == 1 {
			e.Alpha = alpha
		} else {
			e.Alpha = 1
		}
	})
}

// recoverPursuer returns p to Hostile. It is the single recovery path for
// power expiry and for a pursuer eaten mid-power, and is idempotent.
func recoverPursuer(p *entity.Entity, sc *sched.Scheduler) {
	sc.CancelOwner(sched.Owner(p.ID))
	p.Pursuer.Scared = false
	p.Pursuer.Speed = p.Pursuer.BaseSpeed
	p.Alpha = 1
}
