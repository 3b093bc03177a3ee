package main

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/momentum/internal/application/movement"
	"github.com/younwookim/momentum/internal/application/replay"
	"github.com/younwookim/momentum/internal/application/system"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// createTestStageWithGround creates a 40 tile wide stage with ground on row 4
func createTestStageWithGround() *config.StageConfig {
	return &config.StageConfig{
		ID:          "flat",
		Size:        config.StageSizeConfig{TileSize: 16},
		PlayerSpawn: config.PositionConfig{X: 40, Y: 40},
		Layers: []config.LayerConfig{{
			Name: "front",
			Rows: []string{
				strings.Repeat(".", 40),
				strings.Repeat(".", 40),
				strings.Repeat(".", 40),
				strings.Repeat(".", 40),
				strings.Repeat("#", 40),
			},
		}},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "ground", Solidity: "solid", Shape: "full"},
		},
	}
}

func runFlat(t *testing.T, data replay.ReplayData) ReplayReport {
	t.Helper()
	stage := createTestStageWithGround()
	level, err := system.LoadStage(stage)
	require.NoError(t, err)

	report, err := RunReplay(config.DefaultPhysicsConfig(), stage, level, data)
	require.NoError(t, err)
	return report
}

func TestReplayIdlePlayer_Settles(t *testing.T) {
	report := runFlat(t, replay.CreateTestReplayData(120, 0))

	require.Len(t, report.Samples, 120)
	assert.Equal(t, 120, report.Frames)

	settled := report.Samples[60]
	assert.False(t, settled.Falling)
	assert.Equal(t, entity.ModeFloor, settled.Mode)
	for _, s := range report.Samples[60:] {
		assert.Equal(t, settled.Pos, s.Pos, "idle player must not drift (frame %d)", s.Frame)
		assert.InDelta(t, 0, s.Vel.X, 1e-9)
		assert.InDelta(t, 0, s.Vel.Y, 1e-9)
		assert.InDelta(t, 0, s.GroundSpeed, 1e-9)
	}

	// Feet rest on the ground row at y=64.
	assert.InDelta(t, 64.0, settled.Pos.Y+config.DefaultPhysicsConfig().Player.StandHeight/2, 1.0)
}

func TestReplayRunRight_Accelerates(t *testing.T) {
	report := runFlat(t, replay.CreateTestReplayData(120, movement.ControlRight))
	cfg := config.DefaultPhysicsConfig().Player

	final := report.Final()
	assert.False(t, final.Falling)
	assert.Greater(t, final.GroundSpeed, 0.0)
	assert.LessOrEqual(t, final.GroundSpeed, cfg.TopSpeed)
	assert.Greater(t, final.Pos.X, 140.0)

	for i := 1; i < len(report.Samples); i++ {
		assert.GreaterOrEqual(t, report.Samples[i].Pos.X, report.Samples[i-1].Pos.X,
			"running right must never move left (frame %d)", report.Samples[i].Frame)
	}
}

func TestReplay_Deterministic(t *testing.T) {
	data := replay.CreateTestReplayData(90, movement.ControlRight|movement.ControlJump)

	a := runFlat(t, data)
	b := runFlat(t, data)
	assert.Equal(t, a.Samples, b.Samples)
}

func TestReplay_EmbeddedDemoStage(t *testing.T) {
	fsys, err := fs.Sub(configFS, "configs")
	require.NoError(t, err)
	loader := config.NewFSLoader(fsys, "configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	stage, err := loader.LoadStage("demo")
	require.NoError(t, err)
	level, err := loadLevel(loader, stage, "")
	require.NoError(t, err)

	report, err := RunReplay(cfg.Physics, stage, level, replay.CreateTestReplayData(60, 0))
	require.NoError(t, err)
	assert.Equal(t, 60, report.Frames)
	assert.Contains(t, report.String(), "stage demo")
}

func TestReplayReport_EmptyFinal(t *testing.T) {
	assert.Equal(t, Sample{}, ReplayReport{}.Final())
}
