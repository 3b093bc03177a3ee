package main

import (
	"fmt"
	"log"

	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/application/movement"
	"github.com/younwookim/momentum/internal/application/replay"
	"github.com/younwookim/momentum/internal/application/system"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/ecs"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// Sample is the player state after one replayed frame.
type Sample struct {
	Frame       int
	Pos         entity.Vec2
	Vel         entity.Vec2
	GroundSpeed float64
	Mode        entity.Mode
	Falling     bool
}

// ReplayReport summarises a headless replay run.
type ReplayReport struct {
	Stage   string
	Frames  int
	Samples []Sample
}

// Final returns the last sample, or the zero sample for an empty run.
func (r ReplayReport) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

func (r ReplayReport) String() string {
	f := r.Final()
	return fmt.Sprintf("stage %s: %d frames, player at (%.2f, %.2f) vel (%.2f, %.2f) gsp %.2f mode %s falling %t",
		r.Stage, r.Frames, f.Pos.X, f.Pos.Y, f.Vel.X, f.Vel.Y, f.GroundSpeed, f.Mode, f.Falling)
}

// RunReplay simulates a recording against the level at the fixed timestep,
// without a window.
func RunReplay(phys *config.PhysicsConfig, stageCfg *config.StageConfig, level *entity.Map, data replay.ReplayData) (ReplayReport, error) {
	world, err := ecs.NewWorld(level, collision.Options{
		MaxItems: phys.Collision.QuadtreeCapacity,
		MaxDepth: phys.Collision.QuadtreeDepth,
		Logger:   log.Default(),
	})
	if err != nil {
		return ReplayReport{}, err
	}

	replayer := replay.NewReplayer(data)
	spawner := &system.Spawner{Physics: phys, Input: replayer}
	if err := spawner.SpawnEntities(world, stageCfg); err != nil {
		return ReplayReport{}, err
	}
	player, err := spawner.SpawnPlayer(world, stageCfg)
	if err != nil {
		return ReplayReport{}, err
	}

	report := ReplayReport{
		Stage:   stageCfg.ID,
		Samples: make([]Sample, 0, replayer.TotalFrames()),
	}
	dt := phys.FrameTime()
	for replayer.Next() {
		world.Tick(dt)
		e := world.Player()
		if e == nil {
			return report, fmt.Errorf("player removed at frame %d", replayer.CurrentFrame())
		}
		report.Samples = append(report.Samples, sampleOf(replayer.CurrentFrame(), e, player))
		report.Frames = replayer.CurrentFrame()
	}
	return report, nil
}

func sampleOf(frame int, e *entity.Entity, p *movement.Player) Sample {
	return Sample{
		Frame:       frame,
		Pos:         e.Position(),
		Vel:         p.State.Vel,
		GroundSpeed: p.State.GroundSpeed,
		Mode:        p.State.Mode,
		Falling:     p.State.Falling,
	}
}
