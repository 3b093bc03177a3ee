package movement

import (
	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// Faller falls under gravity until a downward cast finds ground.
type Faller struct {
	Basic
	cfg config.FallerConfig

	grounded bool
}

// NewFaller creates a faller with the given settings.
func NewFaller(cfg config.FallerConfig) *Faller {
	return &Faller{cfg: cfg}
}

// Grounded reports whether the last cast found ground.
func (f *Faller) Grounded() bool { return f.grounded }

// Advance integrates gravity, casts below the entity and either snaps to
// the contact or keeps falling.
func (f *Faller) Advance(e *entity.Entity, s Sensors, dt float64) {
	if f.cfg.FallOnce && f.grounded {
		f.Vel.Y = 0
		f.step(e, dt)
		return
	}

	f.Vel.Y += f.cfg.Gravity * dt
	if f.Vel.Y > f.cfg.MaxFallSpeed {
		f.Vel.Y = f.cfg.MaxFallSpeed
	}

	if f.Vel.Y <= 0 {
		f.grounded = false
		f.step(e, dt)
		return
	}

	var flags collision.TraceFlags
	if f.cfg.TerrainOnly {
		flags |= collision.IgnoreEntities
	}

	r := e.Rect()
	from := entity.Vec2{X: r.X + r.W/2, Y: r.Bottom()}
	to := entity.Vec2{X: from.X, Y: from.Y + f.Vel.Y*dt}
	res := castRay(s, e, from, to, flags)
	if !res.Hit {
		f.grounded = false
		f.step(e, dt)
		return
	}

	pos := e.Position()
	pos.X += f.Vel.X * dt
	pos.Y += res.ContactPoint.Y - r.Bottom()
	e.SetPosition(pos)
	f.Vel.Y = 0
	f.grounded = true
}
