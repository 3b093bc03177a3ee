package system

import (
	"fmt"

	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/application/movement"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/ecs"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// PlayerType is the entity type of the controlled character.
const PlayerType = "player"

// Spawner creates the entities of a stage in a world.
type Spawner struct {
	Physics *config.PhysicsConfig
	Input   movement.InputSource
	Effects movement.Effects
	Logger  collision.Logger
}

// SpawnPlayer creates the player at the stage spawn point.
func (s *Spawner) SpawnPlayer(w *ecs.World, cfg *config.StageConfig) (*movement.Player, error) {
	pc := s.Physics.Player
	pos := entity.Vec2{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y}
	e := w.NewEntity(PlayerType, pos, entity.BoxAround(pc.StandWidth, pc.StandHeight))

	p := movement.NewPlayer(pc, s.Physics.Collision.WallIterations, s.Input, s.Effects, s.Logger)
	if err := w.Attach(e.ID, p); err != nil {
		return nil, err
	}
	w.PlayerID = e.ID
	return p, nil
}

// SpawnEntities creates every configured stage entity with its controller.
func (s *Spawner) SpawnEntities(w *ecs.World, cfg *config.StageConfig) error {
	for i, ec := range cfg.Entities {
		if _, err := s.Spawn(w, ec); err != nil {
			return fmt.Errorf("stage %s entity %d: %w", cfg.ID, i, err)
		}
	}
	return nil
}

// Spawn creates one entity from its config.
func (s *Spawner) Spawn(w *ecs.World, ec config.EntitySpawnConfig) (*entity.Entity, error) {
	if ec.Width <= 0 || ec.Height <= 0 {
		return nil, fmt.Errorf("%s: size must be positive", ec.Type)
	}
	c, err := s.controller(ec)
	if err != nil {
		return nil, err
	}

	e := w.NewEntity(ec.Type, entity.Vec2{X: ec.X, Y: ec.Y}, entity.BoxAround(ec.Width, ec.Height))
	e.Solidity = entity.ParseSolidity(ec.Solidity)
	if ec.Path != nil {
		e.Path = entity.PathOf(*ec.Path)
	}
	if c == nil {
		return e, nil
	}
	if err := w.Attach(e.ID, c); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Spawner) controller(ec config.EntitySpawnConfig) (movement.Controller, error) {
	vel := entity.Vec2{X: ec.VX, Y: ec.VY}
	switch ec.Controller {
	case "":
		return nil, nil
	case "basic":
		return movement.NewBasic(vel), nil
	case "faller":
		f := movement.NewFaller(s.Physics.Faller)
		f.Vel = vel
		return f, nil
	case "bouncer":
		return movement.NewBouncer(s.Physics.Bouncer, vel), nil
	default:
		return nil, fmt.Errorf("%s: unknown controller %q", ec.Type, ec.Controller)
	}
}
