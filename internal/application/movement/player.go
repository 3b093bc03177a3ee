package movement

import (
	"log"

	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// Balance is the ledge balance pose. It only drives animation.
type Balance int

const (
	BalanceNone Balance = iota
	BalanceForward
	BalanceBackward
	BalanceVeryForward
)

// String returns the string representation of the balance pose
func (b Balance) String() string {
	switch b {
	case BalanceForward:
		return "forward"
	case BalanceBackward:
		return "backward"
	case BalanceVeryForward:
		return "very_forward"
	default:
		return "none"
	}
}

// PlayerState is the mutable record the player controller works on.
type PlayerState struct {
	Mode    entity.Mode
	Falling bool

	Rolling     bool
	Jumping     bool
	Braking     bool
	Pushing     bool
	Crouching   bool
	SpinDashing bool
	Corner      bool

	SpinRev float64
	Balance Balance

	GroundSpeed float64
	Vel         entity.Vec2
	Angle       float64 // degrees, 0 is flat floor
	Facing      float64 // -1 left, +1 right

	// ControlLock suppresses directional input while positive (seconds).
	ControlLock float64

	sensorHits [2]bool // left, right ground sensors of the last grounded tick
}

// Player is the slope-aware character controller.
type Player struct {
	State PlayerState

	cfg        config.PlayerConfig
	iterations int
	input      InputSource
	fx         Effects
	log        collision.Logger

	controls Control
	prev     Control
}

// NewPlayer creates a player controller. Nil collaborators fall back to no
// input, no effects and the standard logger.
func NewPlayer(cfg config.PlayerConfig, wallIterations int, input InputSource, fx Effects, logger collision.Logger) *Player {
	if input == nil {
		input = noInput{}
	}
	if fx == nil {
		fx = noEffects{}
	}
	if logger == nil {
		logger = log.Default()
	}
	if wallIterations <= 0 {
		wallIterations = 10
	}
	return &Player{
		State: PlayerState{
			Mode:    entity.ModeFloor,
			Falling: true,
			Facing:  1,
		},
		cfg:        cfg,
		iterations: wallIterations,
		input:      input,
		fx:         fx,
		log:        logger,
	}
}

// Attach gives e the standing collision box.
func (p *Player) Attach(e *entity.Entity) {
	e.SetBox(entity.BoxAround(p.cfg.StandWidth, p.cfg.StandHeight))
}

// Configure swaps the tuning, used by config hot reload.
func (p *Player) Configure(cfg config.PlayerConfig) {
	p.cfg = cfg
}

// Velocity returns the world velocity of the last tick.
func (p *Player) Velocity() entity.Vec2 { return p.State.Vel }

// Controls returns the control mask read this tick.
func (p *Player) Controls() Control { return p.controls }

// Advance runs one tick of the state machine.
func (p *Player) Advance(e *entity.Entity, s Sensors, dt float64) {
	p.prev = p.controls
	p.controls = p.input.Controls()

	if p.State.ControlLock > 0 {
		p.State.ControlLock -= dt
		if p.State.ControlLock < 0 {
			p.State.ControlLock = 0
		}
	}

	if p.State.Falling {
		p.advanceAir(e, s, dt)
		return
	}
	p.advanceGround(e, s, dt)
}

func (p *Player) held(c Control) bool    { return p.controls.Has(c) }
func (p *Player) pressed(c Control) bool { return p.controls.Has(c) && !p.prev.Has(c) }

// direction returns -1, 0 or +1 for held left/right input.
func (p *Player) direction() float64 {
	var d float64
	if p.held(ControlLeft) {
		d--
	}
	if p.held(ControlRight) {
		d++
	}
	return d
}

func radii(e *entity.Entity) (halfW, halfH float64) {
	b := e.Box()
	return b.Width() / 2, b.Height() / 2
}

func center(e *entity.Entity) entity.Vec2 {
	return e.Rect().Center()
}

// setBox swaps the collision box keeping the feet on the surface below.
func (p *Player) setBox(e *entity.Entity, w, h float64) {
	_, oldH := radii(e)
	down := frameFor(p.State.Mode).down
	if p.State.Falling {
		down = frameFor(entity.ModeFloor).down
	}
	e.SetBox(entity.BoxAround(w, h))
	e.SetPosition(e.Position().Add(down.Scale(oldH - h/2)))
}

func (p *Player) curl(e *entity.Entity) {
	if p.State.Rolling {
		return
	}
	p.State.Rolling = true
	p.setBox(e, p.cfg.RollWidth, p.cfg.RollHeight)
}

func (p *Player) uncurl(e *entity.Entity) {
	if !p.State.Rolling {
		return
	}
	p.State.Rolling = false
	p.setBox(e, p.cfg.StandWidth, p.cfg.StandHeight)
}

// detach leaves the ground keeping the current world velocity.
func (p *Player) detach() {
	p.State.Falling = true
	p.State.Mode = entity.ModeFloor
	p.State.Braking = false
	p.State.Pushing = false
	p.State.Crouching = false
	p.State.Balance = BalanceNone
}

// surfaceAngle returns the ground angle reported by a sensor hit in mode m.
func surfaceAngle(res collision.TraceResult, m entity.Mode) float64 {
	if res.Tile != nil && res.Tile.Def != nil {
		return res.Tile.Def.Angle(m)
	}
	return m.BaseAngle()
}
