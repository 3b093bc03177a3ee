package movement

import (
	"math"

	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/domain/entity"
)

// Slip and fall-off bands, in degrees away from flat floor.
const (
	slipMin   = 35.0
	slipMax   = 326.0
	detachMin = 69.0
	detachMax = 293.0
)

func (p *Player) advanceGround(e *entity.Entity, s Sensors, dt float64) {
	st := &p.State

	p.resolveWalls(e, s, dt)

	if p.spinDash(e, dt) {
		p.setGroundVelocity()
		return
	}
	if p.pressed(ControlJump) && !st.Crouching && p.jump(e, s, dt) {
		return
	}

	p.slopeGravity(dt)
	if st.Rolling {
		p.rollInput(dt)
	} else {
		p.runInput(e, dt)
	}
	p.updateRoll(e)

	p.setGroundVelocity()
	e.SetPosition(e.Position().Add(st.Vel.Scale(dt)))

	if !p.senseGround(e, s) {
		return
	}
	p.slip()
	p.balance(e, s)
}

func (p *Player) setGroundVelocity() {
	p.State.Vel = VelocityFromGround(p.State.GroundSpeed, p.State.Angle)
}

// resolveWalls casts both sides along the ground tangent, stopping the
// body flush against whatever it would run into this tick. Bodies left
// embedded are pushed out again, up to the configured number of passes.
func (p *Player) resolveWalls(e *entity.Entity, s Sensors, dt float64) {
	st := &p.State
	st.Pushing = false
	right := frameFor(st.Mode).right

	sides := [2]float64{1, -1}
	if st.GroundSpeed < 0 {
		sides = [2]float64{-1, 1}
	}

	for i := 0; i < p.iterations; i++ {
		halfW, _ := radii(e)
		c := center(e)
		step := st.GroundSpeed * dt

		var (
			hit [2]bool
			gap [2]float64
		)
		for k, side := range sides {
			dir := right.Scale(side)
			reach := halfW + 1 + math.Max(0, step*side)
			res := castRay(s, e, c, c.Add(dir.Scale(reach)), collision.IgnoreJumpThrough)
			if res.Hit {
				hit[k] = true
				gap[k] = clearance(c, res.ContactPoint, dir, halfW)
			}
		}

		if hit[0] && hit[1] && gap[0] <= 0 && gap[1] <= 0 {
			if !st.Corner {
				p.log.Printf("player %d wedged between walls at %v", e.ID, e.Position())
			}
			st.Corner = true
			return
		}
		st.Corner = false

		adjusted := false
		for k, side := range sides {
			if !hit[k] {
				continue
			}
			dir := right.Scale(side)
			toward := step * side
			switch {
			case gap[k] < 0:
				e.SetPosition(e.Position().Add(dir.Scale(gap[k])))
				adjusted = true
			case toward > 0 && gap[k] <= toward:
				if gap[k] > 0 {
					e.SetPosition(e.Position().Add(dir.Scale(gap[k])))
					adjusted = true
				}
			case gap[k] <= 0 && p.direction()*side > 0:
				// resting flush and held against the wall
			default:
				continue
			}
			if toward > 0 {
				st.GroundSpeed = 0
				st.Vel = entity.Vec2{}
			}
			st.Pushing = p.direction()*side > 0
			// one correction per pass
			break
		}
		if !adjusted {
			return
		}
	}
}

// spinDash handles crouching and the charge-and-release dash. It reports
// whether the tick was consumed.
func (p *Player) spinDash(e *entity.Entity, dt float64) bool {
	st := &p.State

	if st.SpinDashing {
		if !p.held(ControlDown) {
			st.SpinDashing = false
			st.Crouching = false
			st.GroundSpeed = st.Facing * (p.cfg.SpinDashSpeed + math.Floor(st.SpinRev)*p.cfg.SpinDashRevBonus)
			st.SpinRev = 0
			p.fx.PlaySound(SoundRelease, 0)
			return false
		}
		if p.pressed(ControlJump) {
			st.SpinRev = math.Min(st.SpinRev+p.cfg.SpinDashRevStep, p.cfg.SpinDashRevMax)
			p.fx.PlaySound(SoundSpinDash, 0)
		}
		st.SpinRev -= st.SpinRev * p.cfg.SpinDashDecay * dt
		if st.SpinRev < 0 {
			st.SpinRev = 0
		}
		return true
	}

	st.Crouching = !st.Rolling && st.Mode == entity.ModeFloor &&
		p.held(ControlDown) && math.Abs(st.GroundSpeed) < p.cfg.RollMinSpeed
	if !st.Crouching {
		return false
	}
	st.GroundSpeed = 0
	if p.pressed(ControlJump) {
		st.SpinDashing = true
		st.SpinRev = 0
		p.curl(e)
		p.fx.PlaySound(SoundSpinDash, 0)
	}
	return true
}

// jump launches away from the surface unless the headroom cast hits.
func (p *Player) jump(e *entity.Entity, s Sensors, dt float64) bool {
	st := &p.State
	f := frameFor(st.Mode)
	up := f.down.Scale(-1)

	_, halfH := radii(e)
	c := center(e)
	res := castRay(s, e, c, c.Add(up.Scale(halfH+p.cfg.JumpClearance)), collision.IgnoreJumpThrough)
	if res.Hit {
		return false
	}

	p.setGroundVelocity()
	st.Vel = st.Vel.Add(up.Scale(p.cfg.JumpForce))
	p.curl(e)
	p.detach()
	st.Jumping = true
	st.Crouching = false
	p.fx.PlaySound(SoundJump, 0)

	e.SetPosition(e.Position().Add(st.Vel.Scale(dt)))
	return true
}

func (p *Player) slopeGravity(dt float64) {
	st := &p.State
	sin := sinDeg(st.Angle)
	factor := p.cfg.Slope
	if st.Rolling {
		if sign(st.GroundSpeed) == sign(sin) {
			factor = p.cfg.SlopeRollUp
		} else {
			factor = p.cfg.SlopeRollDown
		}
	} else if st.GroundSpeed == 0 && math.Abs(sin) < sinDeg(slipMin) {
		// shallow slopes hold a standing body
		return
	}
	st.GroundSpeed -= factor * sin * dt
}

// runInput applies acceleration, deceleration and friction while upright.
func (p *Player) runInput(e *entity.Entity, dt float64) {
	st := &p.State
	dir := p.direction()
	if st.ControlLock > 0 {
		dir = 0
	}

	switch {
	case dir != 0 && st.GroundSpeed*dir < 0:
		st.GroundSpeed += dir * p.cfg.Deceleration * dt
		if st.GroundSpeed*dir > 0 {
			st.GroundSpeed = dir * p.cfg.Acceleration * dt
		}
	case dir != 0 && st.Pushing:
		st.GroundSpeed = 0
		st.Facing = dir
	case dir != 0:
		if math.Abs(st.GroundSpeed) < p.cfg.TopSpeed {
			st.GroundSpeed += dir * p.cfg.Acceleration * dt
			if math.Abs(st.GroundSpeed) > p.cfg.TopSpeed {
				st.GroundSpeed = dir * p.cfg.TopSpeed
			}
		}
		st.Facing = dir
	default:
		st.GroundSpeed -= sign(st.GroundSpeed) * math.Min(math.Abs(st.GroundSpeed), p.cfg.Friction*dt)
	}
	st.GroundSpeed = clamp(st.GroundSpeed, p.cfg.MaxRunSpeed)

	p.brake(e, dir)
}

// brake raises the skid flag with its sound and dust when reversing at speed.
func (p *Player) brake(e *entity.Entity, dir float64) {
	st := &p.State
	reversing := dir != 0 && st.GroundSpeed*dir < 0
	if !reversing || st.Mode != entity.ModeFloor {
		st.Braking = false
		return
	}
	if !st.Braking && math.Abs(st.GroundSpeed) >= p.cfg.BrakeSpeed {
		st.Braking = true
		p.fx.PlaySound(SoundBrake, 0)
		r := e.Rect()
		p.fx.Spawn(SpawnDust, entity.Vec2{X: r.Center().X, Y: r.Bottom()})
	}
}

// rollInput applies the rolling friction and the brake against motion.
func (p *Player) rollInput(dt float64) {
	st := &p.State
	dir := p.direction()
	if st.ControlLock > 0 {
		dir = 0
	}

	st.GroundSpeed -= sign(st.GroundSpeed) * math.Min(math.Abs(st.GroundSpeed), p.cfg.RollFriction*dt)
	if dir != 0 && st.GroundSpeed*dir < 0 {
		st.GroundSpeed -= sign(st.GroundSpeed) * math.Min(math.Abs(st.GroundSpeed), p.cfg.RollDeceleration*dt)
	}
	st.GroundSpeed = clamp(st.GroundSpeed, p.cfg.MaxRollSpeed)
	st.Braking = false
}

func (p *Player) updateRoll(e *entity.Entity) {
	st := &p.State
	speed := math.Abs(st.GroundSpeed)
	switch {
	case !st.Rolling && p.held(ControlDown) && p.direction() == 0 && speed >= p.cfg.RollMinSpeed:
		p.curl(e)
		st.Braking = false
		p.fx.PlaySound(SoundRoll, 0)
	case st.Rolling && speed < p.cfg.UnrollSpeed:
		p.uncurl(e)
	}
}

// senseGround casts the two ground sensors of the current mode, snaps to
// the authoritative contact and re-derives the angle and mode. It reports
// whether the body is still grounded.
func (p *Player) senseGround(e *entity.Entity, s Sensors) bool {
	st := &p.State
	f := frameFor(st.Mode)
	halfW, halfH := radii(e)
	c := center(e)

	var flags collision.TraceFlags
	if st.Mode != entity.ModeFloor {
		flags = collision.IgnoreJumpThrough
	}

	var (
		res  [2]collision.TraceResult
		dist [2]float64
	)
	for k, side := range [2]float64{-1, 1} {
		from := c.Add(f.right.Scale(side * halfW))
		res[k] = castRay(s, e, from, from.Add(f.down.Scale(halfH+p.cfg.GroundSnap)), flags)
		if res[k].Hit {
			dist[k] = dot(surfaceAt(res[k].ContactPoint, f.down).Sub(c), f.down)
		}
	}

	best := -1
	switch {
	case res[0].Hit && res[1].Hit:
		best = 0
		if dist[1] < dist[0] {
			best = 1
		}
	case res[0].Hit:
		best = 0
	case res[1].Hit:
		best = 1
	}
	if best < 0 {
		p.log.Printf("player %d lost ground in %s mode at %v", e.ID, st.Mode, e.Position())
		p.detach()
		return false
	}

	e.SetPosition(e.Position().Add(f.down.Scale(dist[best] - halfH)))
	st.Angle = surfaceAngle(res[best], st.Mode)
	st.Mode = entity.ModeForAngle(st.Angle)
	st.sensorHits = [2]bool{res[0].Hit, res[1].Hit}
	return true
}

// slip locks the controls when too slow on a steep surface and drops the
// body off walls and ceilings.
func (p *Player) slip() {
	st := &p.State
	if st.ControlLock > 0 || math.Abs(st.GroundSpeed) >= p.cfg.SlipSpeed {
		return
	}
	if st.Angle < slipMin || st.Angle > slipMax {
		return
	}
	st.ControlLock = p.cfg.ControlLock
	if st.Angle >= detachMin && st.Angle <= detachMax {
		st.GroundSpeed = 0
		p.detach()
	}
}

// balance sets the ledge pose when standing still with one sensor over a
// drop and nothing under the centre.
func (p *Player) balance(e *entity.Entity, s Sensors) {
	st := &p.State
	st.Balance = BalanceNone
	if st.Mode != entity.ModeFloor || st.GroundSpeed != 0 || st.sensorHits[0] == st.sensorHits[1] {
		return
	}

	halfW, halfH := radii(e)
	c := center(e)
	if castRay(s, e, c, c.Add(entity.Vec2{Y: halfH + halfW}), 0).Hit {
		return
	}

	// sensorHits[1] is the right sensor
	ledge := -1.0
	if st.sensorHits[0] {
		ledge = 1
	}
	if ledge != st.Facing {
		st.Balance = BalanceBackward
		return
	}
	st.Balance = BalanceForward
	back := c.Add(entity.Vec2{X: -st.Facing * halfW / 2})
	if !castRay(s, e, back, back.Add(entity.Vec2{Y: halfH + halfW}), 0).Hit {
		st.Balance = BalanceVeryForward
	}
}
