package sim

import (
	"time"

	"github.com/vovakirdan/turkeyrun/internal/entity"
	"github.com/vovakirdan/turkeyrun/internal/sched"
)

// PowerCoordinator owns the power-up window. One deactivation task is
// armed at a time; re-activation replaces it.
type PowerCoordinator struct {
	sched    *sched.Scheduler
	arena    *entity.Arena
	duration time.Duration
	pulse    time.Duration
	alpha    float64

	active  bool
	timer   sched.TaskID
	expires time.Duration
}

// NewPowerCoordinator creates an inactive coordinator.
func NewPowerCoordinator(sc *sched.Scheduler, arena *entity.Arena, duration, pulse time.Duration, alpha float64) *PowerCoordinator {
	return &PowerCoordinator{
		sched:    sc,
		arena:    arena,
		duration: duration,
		pulse:    pulse,
		alpha:    alpha,
	}
}

// Activate scares every live pursuer and (re)arms the expiry.
func (c *PowerCoordinator) Activate() {
	c.active = true
	c.arena.Each(entity.KindPursuer, func(p *entity.Entity) {
		scarePursuer(p, c.arena, c.sched, c.pulse, c.alpha)
	})

	if c.timer != 0 {
		c.sched.Cancel(c.timer)
	}
	c.expires = c.sched.Now() + c.duration
	c.timer = c.sched.After(sched.Global, c.duration, c.expire)
}

func (c *PowerCoordinator) expire() {
	c.active = false
	c.timer = 0
	c.arena.Each(entity.KindPursuer, func(p *entity.Entity) {
		recoverPursuer(p, c.sched)
	})
}

// IsActive reports whether pursuers are currently edible.
func (c *PowerCoordinator) IsActive() bool {
	return c.active
}

// Remaining returns how long the window has left, zero when inactive.
func (c *PowerCoordinator) Remaining() time.Duration {
	if !c.active {
		return 0
	}
	if left := c.expires - c.sched.Now(); left > 0 {
		return left
	}
	return 0
}

// Cleanup cancels the pending expiry and clears the window without
// touching pursuers.
func (c *PowerCoordinator) Cleanup() {
	if c.timer != 0 {
		c.sched.Cancel(c.timer)
		c.timer = 0
	}
	c.active = false
	c.expires = 0
}
