package movement

import (
	"math"

	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/domain/entity"
)

// Landing angle buckets, measured as degrees away from flat floor.
const (
	landFlat    = 22.5
	landShallow = 45.0
)

func (p *Player) advanceAir(e *entity.Entity, s Sensors, dt float64) {
	st := &p.State

	if st.Jumping && !p.held(ControlJump) && st.Vel.Y < -p.cfg.JumpReleaseSpeed {
		st.Vel.Y = -p.cfg.JumpReleaseSpeed
	}

	if dir := p.direction(); dir != 0 && st.ControlLock <= 0 {
		if st.Vel.X*dir < p.cfg.TopSpeed {
			st.Vel.X += dir * p.cfg.AirAcceleration * dt
			if st.Vel.X*dir > p.cfg.TopSpeed {
				st.Vel.X = dir * p.cfg.TopSpeed
			}
		}
		st.Facing = dir
	}

	st.Vel.Y += p.cfg.Gravity * dt
	if st.Vel.Y > p.cfg.MaxFallSpeed {
		st.Vel.Y = p.cfg.MaxFallSpeed
	}

	prevBottom := e.Rect().Bottom()
	e.SetPosition(e.Position().Add(st.Vel.Scale(dt)))

	p.airWalls(e, s)
	p.smoothAngle(dt)

	if st.Vel.Y < 0 {
		p.ceiling(e, s)
		return
	}
	p.land(e, s, prevBottom)
}

// airWalls pushes the body out of walls on either side.
func (p *Player) airWalls(e *entity.Entity, s Sensors) {
	st := &p.State
	halfW, _ := radii(e)
	c := center(e)

	for _, side := range [2]float64{-1, 1} {
		dir := entity.Vec2{X: side}
		res := castRay(s, e, c, c.Add(dir.Scale(halfW+1)), collision.IgnoreJumpThrough)
		if !res.Hit {
			continue
		}
		g := clearance(c, res.ContactPoint, dir, halfW)
		if g < 0 {
			e.SetPosition(e.Position().Add(dir.Scale(g)))
			c = center(e)
		}
		if st.Vel.X*side > 0 {
			st.Vel.X = 0
		}
	}
}

// smoothAngle rotates the ground angle back to flat while airborne.
func (p *Player) smoothAngle(dt float64) {
	st := &p.State
	if st.Angle == 0 {
		return
	}
	step := p.cfg.AngleSmoothing * dt
	if st.Angle < 180 {
		st.Angle = math.Max(0, st.Angle-step)
		return
	}
	st.Angle += step
	if st.Angle >= 360 {
		st.Angle = 0
	}
}

// ceiling stops upward motion against anything above either sensor.
func (p *Player) ceiling(e *entity.Entity, s Sensors) {
	st := &p.State
	halfW, halfH := radii(e)
	c := center(e)
	up := entity.Vec2{Y: -1}

	best := math.Inf(1)
	for _, side := range [2]float64{-1, 1} {
		from := c.Add(entity.Vec2{X: side * halfW})
		res := castRay(s, e, from, from.Add(up.Scale(halfH)), collision.IgnoreJumpThrough)
		if !res.Hit {
			continue
		}
		best = math.Min(best, clearance(c, res.ContactPoint, up, halfH))
	}
	if math.IsInf(best, 1) || best > 0 {
		return
	}
	e.SetPosition(e.Position().Add(up.Scale(best)))
	st.Vel.Y = 0
}

// land reacquires the ground when either foot sensor finds it within the
// body's half height. Jump-through surfaces only count when the feet were
// above them before this tick's move.
func (p *Player) land(e *entity.Entity, s Sensors, prevBottom float64) {
	st := &p.State
	halfW, halfH := radii(e)
	c := center(e)
	down := entity.Vec2{Y: 1}

	var best collision.TraceResult
	bestGap := math.Inf(1)
	for _, side := range [2]float64{-1, 1} {
		from := c.Add(entity.Vec2{X: side * halfW})
		res := castRay(s, e, from, from.Add(down.Scale(halfH)), 0)
		if !res.Hit {
			continue
		}
		if isJumpThrough(res) && res.ContactPoint.Y < math.Floor(prevBottom) {
			continue
		}
		if g := clearance(c, res.ContactPoint, down, halfH); g < bestGap {
			best, bestGap = res, g
		}
	}
	if math.IsInf(bestGap, 1) {
		return
	}

	e.SetPosition(e.Position().Add(down.Scale(bestGap)))
	st.Angle = surfaceAngle(best, entity.ModeFloor)
	st.GroundSpeed = landingSpeed(st.Vel, st.Angle)
	st.Mode = entity.ModeForAngle(st.Angle)
	st.Falling = false
	st.Jumping = false
	p.uncurl(e)
	p.setGroundVelocity()
}

// landingSpeed derives ground speed from the air velocity on touchdown.
func landingSpeed(vel entity.Vec2, angle float64) float64 {
	d := math.Min(angle, 360-angle)
	slope := -sign(sinDeg(angle))
	switch {
	case d <= landFlat:
		return vel.X
	case math.Abs(vel.X) > vel.Y:
		return vel.X
	case d <= landShallow:
		return vel.Y * 0.5 * slope
	default:
		return vel.Y * slope
	}
}

func isJumpThrough(res collision.TraceResult) bool {
	switch {
	case res.Tile != nil && res.Tile.Def != nil:
		return res.Tile.Def.Solidity == entity.SolidityJumpThrough
	case res.Entity != nil:
		return res.Entity.Solidity == entity.SolidityJumpThrough
	}
	return false
}
