package movement

import (
	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// Bouncer falls under gravity and reflects off walls, floors and ceilings.
type Bouncer struct {
	Basic
	cfg config.BouncerConfig

	// Bounces counts reflections since creation.
	Bounces int
}

// NewBouncer creates a bouncer with an initial velocity.
func NewBouncer(cfg config.BouncerConfig, vel entity.Vec2) *Bouncer {
	return &Bouncer{Basic: Basic{Vel: vel}, cfg: cfg}
}

var bounceDirs = [4]entity.Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Advance applies gravity, then casts along each axis direction the velocity
// points along and reflects that component on a hit.
func (b *Bouncer) Advance(e *entity.Entity, s Sensors, dt float64) {
	b.Vel.Y += b.cfg.Gravity * dt

	r := e.Rect()
	c := r.Center()
	pos := e.Position()
	for _, d := range bounceDirs {
		v := b.Vel.X*d.X + b.Vel.Y*d.Y
		if v <= 0 {
			continue
		}
		half := abs(d.X)*r.W/2 + abs(d.Y)*r.H/2
		reach := half + v*dt
		res := castRay(s, e, c, c.Add(d.Scale(reach)), collision.IgnoreJumpThrough)
		if !res.Hit {
			continue
		}
		// Stop flush against the surface, then reflect.
		gap := clearance(c, res.ContactPoint, d, half)
		if d.X != 0 {
			pos.X += d.X * gap
			b.Vel.X = -b.Vel.X * b.cfg.BounceX
		} else {
			pos.Y += d.Y * gap
			b.Vel.Y = -b.Vel.Y * b.cfg.BounceY
		}
		b.Bounces++
	}

	b.Vel.X = clamp(b.Vel.X, b.cfg.MaxSpeed)
	b.Vel.Y = clamp(b.Vel.Y, b.cfg.MaxSpeed)
	e.SetPosition(pos)

	// Reflected components carry the entity away from the surface.
	b.step(e, dt)
}
