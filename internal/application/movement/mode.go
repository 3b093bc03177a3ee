package movement

import (
	"math"

	"github.com/younwookim/momentum/internal/domain/entity"
)

// frame is the local basis of a movement mode: down points into the
// walk surface, right is the direction of positive ground speed.
type frame struct {
	down, right entity.Vec2
}

var modeFrames = [...]frame{
	entity.ModeFloor:     {down: entity.Vec2{X: 0, Y: 1}, right: entity.Vec2{X: 1, Y: 0}},
	entity.ModeRightWall: {down: entity.Vec2{X: 1, Y: 0}, right: entity.Vec2{X: 0, Y: -1}},
	entity.ModeLeftWall:  {down: entity.Vec2{X: -1, Y: 0}, right: entity.Vec2{X: 0, Y: 1}},
	entity.ModeCeiling:   {down: entity.Vec2{X: 0, Y: -1}, right: entity.Vec2{X: -1, Y: 0}},
}

func frameFor(m entity.Mode) frame {
	if m < 0 || int(m) >= len(modeFrames) {
		return modeFrames[entity.ModeFloor]
	}
	return modeFrames[m]
}

// VelocityFromGround converts ground speed along a surface at angle deg
// into a world velocity. Y grows downwards, so climbing a slope is -Y.
func VelocityFromGround(gsp, deg float64) entity.Vec2 {
	return entity.Vec2{X: gsp * cosDeg(deg), Y: -gsp * sinDeg(deg)}
}

func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

func dot(a, b entity.Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// surfaceAt returns the near edge of the solid pixel at contact when it was
// reached travelling along dir.
func surfaceAt(contact, dir entity.Vec2) entity.Vec2 {
	if dir.X < 0 {
		contact.X++
	}
	if dir.Y < 0 {
		contact.Y++
	}
	return contact
}

// clearance is the free distance between a body edge at radius from c and the
// surface hit by a cast along dir. Negative means embedded.
func clearance(c, contact, dir entity.Vec2, radius float64) float64 {
	return dot(surfaceAt(contact, dir).Sub(c), dir) - radius
}
