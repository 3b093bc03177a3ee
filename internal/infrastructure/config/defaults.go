package config

import (
	"errors"
	"fmt"
)

// Classic per-frame constants at 60fps, converted to per-second units.
const (
	perFrame  = 60.0
	perFrame2 = 60.0 * 60.0
)

// DefaultPhysicsConfig returns the stock tuning.
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 224,
			Scale:        3,
			Framerate:    60,
		},
		Player: PlayerConfig{
			StandWidth:  18,
			StandHeight: 38,
			RollWidth:   14,
			RollHeight:  28,

			Acceleration: 0.046875 * perFrame2,
			Deceleration: 0.5 * perFrame2,
			Friction:     0.046875 * perFrame2,
			TopSpeed:     6 * perFrame,
			MaxRunSpeed:  12 * perFrame,

			Slope:         0.125 * perFrame2,
			SlopeRollUp:   0.078125 * perFrame2,
			SlopeRollDown: 0.3125 * perFrame2,

			RollFriction:     0.0234375 * perFrame2,
			RollDeceleration: 0.125 * perFrame2,
			MaxRollSpeed:     16 * perFrame,
			RollMinSpeed:     1.03125 * perFrame,
			UnrollSpeed:      0.5 * perFrame,

			AirAcceleration: 0.09375 * perFrame2,
			Gravity:         0.21875 * perFrame2,
			MaxFallSpeed:    16 * perFrame,
			AngleSmoothing:  2.8125 * perFrame,

			JumpForce:        6.5 * perFrame,
			JumpReleaseSpeed: 4 * perFrame,
			JumpClearance:    6,

			BrakeSpeed:  4 * perFrame,
			SlipSpeed:   2.5 * perFrame,
			ControlLock: 0.5,

			GroundSnap: 16,

			SpinDashSpeed:    8 * perFrame,
			SpinDashRevStep:  2,
			SpinDashRevMax:   8,
			SpinDashRevBonus: 0.5 * perFrame,
			SpinDashDecay:    1.875,
		},
		Faller: FallerConfig{
			Gravity:      0.21875 * perFrame2,
			MaxFallSpeed: 16 * perFrame,
		},
		Bouncer: BouncerConfig{
			Gravity:  0.09375 * perFrame2,
			MaxSpeed: 16 * perFrame,
			BounceX:  0.75,
			BounceY:  0.75,
		},
		Collision: CollisionConfig{
			QuadtreeCapacity: 10,
			QuadtreeDepth:    8,
			WallIterations:   10,
		},
	}
}

// Validate reports every required setting that is missing or out of range.
func (c *PhysicsConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	if c.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("display.framerate must be positive, got %d", c.Display.Framerate))
	}

	p := c.Player
	positive("player.standWidth", p.StandWidth)
	positive("player.standHeight", p.StandHeight)
	positive("player.rollWidth", p.RollWidth)
	positive("player.rollHeight", p.RollHeight)
	positive("player.acceleration", p.Acceleration)
	positive("player.topSpeed", p.TopSpeed)
	positive("player.maxRunSpeed", p.MaxRunSpeed)
	positive("player.maxRollSpeed", p.MaxRollSpeed)
	positive("player.gravity", p.Gravity)
	positive("player.maxFallSpeed", p.MaxFallSpeed)
	positive("player.jumpForce", p.JumpForce)

	positive("faller.maxFallSpeed", c.Faller.MaxFallSpeed)
	positive("bouncer.maxSpeed", c.Bouncer.MaxSpeed)

	if c.Collision.WallIterations <= 0 {
		errs = append(errs, fmt.Errorf("collision.wallIterations must be positive, got %d", c.Collision.WallIterations))
	}

	return errors.Join(errs...)
}

// FrameTime returns the fixed timestep in seconds.
func (c *PhysicsConfig) FrameTime() float64 {
	if c.Display.Framerate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.Display.Framerate)
}
