package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/application/movement"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/ecs"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

func createTestWorld(t *testing.T) (*ecs.World, *config.StageConfig) {
	t.Helper()
	cfg := createTestStageConfig()
	m, err := LoadStage(cfg)
	require.NoError(t, err)
	w, err := ecs.NewWorld(m, collision.Options{})
	require.NoError(t, err)
	return w, cfg
}

func TestSpawner_SpawnPlayer(t *testing.T) {
	w, cfg := createTestWorld(t)
	s := &Spawner{Physics: config.DefaultPhysicsConfig()}

	p, err := s.SpawnPlayer(w, cfg)
	require.NoError(t, err)

	e := w.Player()
	require.NotNil(t, e)
	assert.Equal(t, PlayerType, e.Type)
	assert.Equal(t, entity.Vec2{X: 24, Y: 8}, e.Position())
	assert.Equal(t, 18.0, e.Box().Width())
	assert.Equal(t, 38.0, e.Box().Height())
	assert.Same(t, p, w.Controllers[e.ID])
	assert.True(t, p.State.Falling)
}

func TestSpawner_SpawnEntities(t *testing.T) {
	w, cfg := createTestWorld(t)
	s := &Spawner{Physics: config.DefaultPhysicsConfig()}
	path := 1
	cfg.Entities = []config.EntitySpawnConfig{
		{Type: "rock", X: 8, Y: 0, Width: 4, Height: 4, Controller: "faller"},
		{Type: "ball", X: 20, Y: 0, Width: 4, Height: 4, Controller: "bouncer", VX: 30},
		{Type: "bullet", X: 30, Y: 0, Width: 2, Height: 2, Controller: "basic", VX: 10},
		{Type: "crate", X: 40, Y: 0, Width: 8, Height: 8, Solidity: "solid", Path: &path},
	}

	require.NoError(t, s.SpawnEntities(w, cfg))
	require.Len(t, w.Entities(), 4)

	assert.IsType(t, &movement.Faller{}, w.Controllers[w.Entities()[0].ID])
	assert.IsType(t, &movement.Bouncer{}, w.Controllers[w.Entities()[1].ID])
	assert.Equal(t, entity.Vec2{X: 10}, w.Controllers[w.Entities()[2].ID].Velocity())

	crate := w.Entities()[3]
	_, hasController := w.Controllers[crate.ID]
	assert.False(t, hasController)
	assert.Equal(t, entity.SolidityFull, crate.Solidity)
	assert.Equal(t, 1, crate.Path.Get())
}

func TestSpawner_SpawnErrors(t *testing.T) {
	w, _ := createTestWorld(t)
	s := &Spawner{Physics: config.DefaultPhysicsConfig()}

	_, err := s.Spawn(w, config.EntitySpawnConfig{Type: "ghost", Width: 4, Height: 4, Controller: "teleporter"})
	assert.Error(t, err)
	assert.Empty(t, w.Entities(), "nothing is created for an invalid config")

	_, err = s.Spawn(w, config.EntitySpawnConfig{Type: "flat"})
	assert.Error(t, err)
}
