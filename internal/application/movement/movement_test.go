package movement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

const dt = 1.0 / 60.0

type quiet struct{}

func (quiet) Printf(string, ...any) {}

// scene is a map plus entity list driving a real collision service.
type scene struct {
	level    *entity.Map
	front    *entity.Layer
	entities []*entity.Entity
	svc      *collision.Service
	nextID   entity.ID
}

func (s *scene) CurrentMap() *entity.Map   { return s.level }
func (s *scene) Entities() []*entity.Entity { return s.entities }

// newScene builds a map of 16px tiles from rows: '#' is solid, '-' is a
// jump-through half tile and '/' is a 45 degree ramp rising to the right.
func newScene(t *testing.T, rows ...string) *scene {
	t.Helper()
	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	s := &scene{level: entity.NewMap(w, len(rows), 16, 16), nextID: 1}
	s.front = s.level.AddLayer("front", entity.LayerCollision)

	full := &entity.TileDefinition{ID: 1, Solidity: entity.SolidityFull, Mask: entity.MaskFull(16, 16)}
	half := &entity.TileDefinition{ID: 2, Solidity: entity.SolidityJumpThrough, Mask: entity.MaskHalf(16, 16)}
	ramp := &entity.TileDefinition{ID: 3, Solidity: entity.SolidityFull, Mask: entity.MaskSlope(16, 16, true)}
	ramp.SetAngle(entity.ModeFloor, 45)
	ramp.SetAngle(entity.ModeRightWall, 45)
	for row, r := range rows {
		for col, ch := range r {
			switch ch {
			case '#':
				s.front.SetTile(col, row, full)
			case '-':
				s.front.SetTile(col, row, half)
			case '/':
				s.front.SetTile(col, row, ramp)
			}
		}
	}

	svc, err := collision.NewService(s, s, collision.Options{Logger: quiet{}})
	require.NoError(t, err)
	s.svc = svc
	return s
}

func (s *scene) spawn(typ string, pos entity.Vec2, w, h float64) *entity.Entity {
	e := entity.New(s.nextID, typ, pos, entity.BoxAround(w, h))
	s.nextID++
	e.Set(entity.OptSpawned, true)
	s.entities = append(s.entities, e)
	return e
}

// run advances c on e for n ticks, rebuilding the index each tick.
func (s *scene) run(e *entity.Entity, c Controller, n int) {
	for i := 0; i < n; i++ {
		s.svc.OnTickStart()
		c.Advance(e, s.svc, dt)
	}
}

func TestBasic_Advance(t *testing.T) {
	s := newScene(t, "....")
	e := s.spawn("bullet", entity.Vec2{X: 10, Y: 10}, 2, 2)
	b := NewBasic(entity.Vec2{X: 60, Y: -30})

	s.run(e, b, 3)

	assert.InDelta(t, 13.0, e.Position().X, 1e-9)
	assert.InDelta(t, 8.5, e.Position().Y, 1e-9)
	assert.Equal(t, entity.Vec2{X: 60, Y: -30}, b.Velocity())
}

func TestFaller_SpeedBeforeContact(t *testing.T) {
	s := newScene(t,
		"....",
		"....",
		"....",
		"....",
		"####",
	)
	cfg := config.FallerConfig{Gravity: 600, MaxFallSpeed: 120}
	e := s.spawn("rock", entity.Vec2{X: 8, Y: 8}, 4, 4)
	f := NewFaller(cfg)

	n := 0
	for !f.Grounded() && n < 200 {
		s.run(e, f, 1)
		n++
		if f.Grounded() {
			break
		}
		want := math.Min(cfg.Gravity*dt*float64(n), cfg.MaxFallSpeed)
		require.InDelta(t, want, f.Velocity().Y, 1e-9, "tick %d", n)
	}

	require.True(t, f.Grounded())
	assert.Equal(t, 64.0, e.Rect().Bottom())
	assert.Equal(t, 0.0, f.Velocity().Y)

	s.run(e, f, 10)
	assert.True(t, f.Grounded())
	assert.Equal(t, 64.0, e.Rect().Bottom(), "resting faller stays put")
}

func TestFaller_TerrainOnly(t *testing.T) {
	rows := []string{"....", "....", "....", "....", "####"}

	for _, tt := range []struct {
		name    string
		terrain bool
		bottom  float64
	}{
		{"stops on entities", false, 36},
		{"ignores entities", true, 64},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := newScene(t, rows...)
			crate := s.spawn("crate", entity.Vec2{X: 8, Y: 40}, 16, 8)
			crate.Solidity = entity.SolidityFull
			e := s.spawn("rock", entity.Vec2{X: 8, Y: 8}, 4, 4)
			f := NewFaller(config.FallerConfig{Gravity: 600, MaxFallSpeed: 120, TerrainOnly: tt.terrain})

			s.run(e, f, 120)
			assert.True(t, f.Grounded())
			assert.Equal(t, tt.bottom, e.Rect().Bottom())
		})
	}
}

func TestFaller_FallOnce(t *testing.T) {
	for _, once := range []bool{true, false} {
		s := newScene(t, "....", "....", "####", "....", "....", "####")
		e := s.spawn("rock", entity.Vec2{X: 8, Y: 8}, 4, 4)
		f := NewFaller(config.FallerConfig{Gravity: 600, MaxFallSpeed: 120, FallOnce: once})

		s.run(e, f, 60)
		require.True(t, f.Grounded())
		require.Equal(t, 32.0, e.Rect().Bottom())

		s.front.SetTile(0, 2, nil)
		s.run(e, f, 120)
		if once {
			assert.Equal(t, 32.0, e.Rect().Bottom(), "a fall-once body stays after landing")
		} else {
			assert.Equal(t, 80.0, e.Rect().Bottom(), "the body keeps falling to the next floor")
		}
	}
}

func TestBouncer_ReflectsOffWall(t *testing.T) {
	s := newScene(t,
		"...#",
		"...#",
		"...#",
		"...#",
	)
	cfg := config.BouncerConfig{MaxSpeed: 960, BounceX: 0.75, BounceY: 0.75}
	e := s.spawn("ball", entity.Vec2{X: 20, Y: 40}, 8, 8)
	b := NewBouncer(cfg, entity.Vec2{X: 120})

	for i := 0; i < 20; i++ {
		s.run(e, b, 1)
		require.LessOrEqual(t, e.Rect().Right(), 48.0, "tick %d embedded the ball", i)
	}

	assert.Equal(t, 1, b.Bounces)
	assert.InDelta(t, -90.0, b.Velocity().X, 1e-9)
}

func TestBouncer_BouncesOnFloor(t *testing.T) {
	s := newScene(t,
		"......",
		"......",
		"......",
		"......",
		"######",
	)
	cfg := config.BouncerConfig{Gravity: 600, MaxSpeed: 960, BounceX: 0.75, BounceY: 0.5}
	e := s.spawn("ball", entity.Vec2{X: 40, Y: 20}, 8, 8)
	b := NewBouncer(cfg, entity.Vec2{})

	sawUp := false
	for i := 0; i < 90; i++ {
		s.run(e, b, 1)
		require.LessOrEqual(t, e.Rect().Bottom(), 64.0+1e-9, "tick %d", i)
		if b.Velocity().Y < 0 {
			sawUp = true
		}
	}
	assert.GreaterOrEqual(t, b.Bounces, 1)
	assert.True(t, sawUp, "floor hits reflect the vertical speed")
}

func TestBouncer_ClampsSpeed(t *testing.T) {
	s := newScene(t, "........")
	e := s.spawn("ball", entity.Vec2{X: 20, Y: 8}, 4, 4)
	b := NewBouncer(config.BouncerConfig{MaxSpeed: 100}, entity.Vec2{X: 500, Y: -500})

	s.run(e, b, 1)
	assert.Equal(t, entity.Vec2{X: 100, Y: -100}, b.Velocity())
}

func TestVelocityFromGround(t *testing.T) {
	v := VelocityFromGround(5, 0)
	assert.InDelta(t, 5.0, v.X, 1e-12)
	assert.InDelta(t, 0.0, v.Y, 1e-12)

	v = VelocityFromGround(10, 90)
	assert.InDelta(t, 0.0, v.X, 1e-9)
	assert.InDelta(t, -10.0, v.Y, 1e-9, "climbing a right wall moves up")

	v = VelocityFromGround(math.Sqrt2, 45)
	assert.InDelta(t, 1.0, v.X, 1e-9)
	assert.InDelta(t, -1.0, v.Y, 1e-9)
}

func TestModeSelection(t *testing.T) {
	assert.Equal(t, entity.ModeRightWall, entity.ModeForAngle(50))
	assert.Equal(t, entity.ModeFloor, entity.ModeForAngle(44))
}

func TestModeFrames(t *testing.T) {
	for _, m := range []entity.Mode{entity.ModeFloor, entity.ModeRightWall, entity.ModeLeftWall, entity.ModeCeiling} {
		f := frameFor(m)
		v := VelocityFromGround(1, m.BaseAngle())
		assert.InDelta(t, f.right.X, v.X, 1e-9, "mode %s", m)
		assert.InDelta(t, f.right.Y, v.Y, 1e-9, "mode %s", m)
		assert.InDelta(t, 0.0, dot(f.down, f.right), 1e-12)
	}
	assert.Equal(t, frameFor(entity.ModeFloor), frameFor(entity.Mode(42)))
}

func TestClearance(t *testing.T) {
	down := entity.Vec2{Y: 1}
	up := entity.Vec2{Y: -1}

	assert.Equal(t, 5.0, clearance(entity.Vec2{X: 10, Y: 5}, entity.Vec2{X: 10, Y: 20}, down, 10))
	assert.Equal(t, 5.0, clearance(entity.Vec2{X: 10, Y: 20}, entity.Vec2{X: 10, Y: 4}, up, 10))
	assert.Equal(t, -2.0, clearance(entity.Vec2{X: 10, Y: 12}, entity.Vec2{X: 10, Y: 20}, down, 10))
}
