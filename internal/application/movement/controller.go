// Package movement holds the per-entity movement controllers. A controller
// owns a velocity, senses its surroundings with tracelines and moves its
// entity once per tick.
package movement

import (
	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/domain/entity"
)

// Sensors is the traceline view of the collision service.
type Sensors interface {
	TraceLine(q collision.TraceQuery) collision.TraceResult
}

// Controller moves one entity per tick.
type Controller interface {
	Advance(e *entity.Entity, s Sensors, dt float64)
	Velocity() entity.Vec2
}

// Control is a bitmask of held controls.
type Control uint8

const (
	ControlUp Control = 1 << iota
	ControlDown
	ControlLeft
	ControlRight
	ControlJump
)

// Has reports whether every control in o is held.
func (c Control) Has(o Control) bool { return c&o == o }

// InputSource returns the controls held this tick.
type InputSource interface {
	Controls() Control
}

// Effects receives fire-and-forget side effects.
type Effects interface {
	PlaySound(id string, channel int)
	Spawn(kind string, at entity.Vec2)
}

// Sound ids and spawn kinds emitted by the player controller.
const (
	SoundJump     = "jump"
	SoundRoll     = "roll"
	SoundBrake    = "brake"
	SoundSpinDash = "spindash"
	SoundRelease  = "release"

	SpawnDust = "dust"
)

type noEffects struct{}

func (noEffects) PlaySound(string, int)         {}
func (noEffects) Spawn(string, entity.Vec2) {}

type noInput struct{}

func (noInput) Controls() Control { return 0 }

// Basic applies a stored velocity every tick.
type Basic struct {
	Vel entity.Vec2
}

// NewBasic creates a linear mover.
func NewBasic(vel entity.Vec2) *Basic {
	return &Basic{Vel: vel}
}

// Advance moves e by Vel*dt.
func (b *Basic) Advance(e *entity.Entity, _ Sensors, dt float64) {
	b.step(e, dt)
}

// Velocity returns the current velocity.
func (b *Basic) Velocity() entity.Vec2 { return b.Vel }

func (b *Basic) step(e *entity.Entity, dt float64) {
	e.SetPosition(e.Position().Add(b.Vel.Scale(dt)))
}

// castRay traces from one point to another on behalf of e.
func castRay(s Sensors, e *entity.Entity, from, to entity.Vec2, flags collision.TraceFlags) collision.TraceResult {
	return s.TraceLine(collision.TraceQuery{
		From:   from,
		To:     to,
		Flags:  flags,
		Ignore: e,
		Path:   e.Path,
	})
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
