package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/momentum/internal/application/game"
	"github.com/younwookim/momentum/internal/application/replay"
	"github.com/younwookim/momentum/internal/application/scene/playing"
	"github.com/younwookim/momentum/internal/application/system"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/infrastructure/audio"
	"github.com/younwookim/momentum/internal/infrastructure/config"
	"github.com/younwookim/momentum/internal/infrastructure/tiled"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back recorded input from file")
	headlessFlag := flag.Bool("headless", false, "Run the replay without a window and print the final state")
	stageFlag := flag.String("stage", "demo", "Stage config name under configs/stages")
	tmxFlag := flag.String("tmx", "", "Build the level from a Tiled map relative to the config directory")
	configFlag := flag.String("config", "", "Config directory on disk; enables physics hot reload")
	muteFlag := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	loader, err := newLoader(*configFlag)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	stageCfg, err := loader.LoadStage(*stageFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}
	level, err := loadLevel(loader, stageCfg, *tmxFlag)
	if err != nil {
		log.Fatalf("Failed to build level: %v", err)
	}

	var replayData *replay.ReplayData
	if *replayFlag != "" {
		replayData, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
	}

	if *headlessFlag {
		if replayData == nil {
			log.Fatal("-headless needs -replay")
		}
		report, err := RunReplay(cfg.Physics, stageCfg, level, *replayData)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		fmt.Println(report)
		return
	}

	opts := playing.Options{
		RecordPath: *recordFlag,
		Replay:     replayData,
	}

	if !*muteFlag {
		bank := audio.NewSoundBank(audio.DefaultRecipes)
		if err := bank.Initialize(); err != nil {
			log.Printf("Audio disabled: %v", err)
		} else {
			defer bank.Cleanup()
			opts.Sounds = bank
		}
	}

	if *configFlag != "" {
		watcher, err := config.NewWatcher(loader)
		if err != nil {
			log.Printf("Hot reload disabled: %v", err)
		} else {
			defer func() { _ = watcher.Close() }()
			opts.Updates = watcher.Updates
			go logWatchErrors(watcher.Errors)
		}
	}

	scene, err := playing.New(cfg, stageCfg, level, opts)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	g := game.New(scene, cfg.Physics.Display.ScreenWidth, cfg.Physics.Display.ScreenHeight, cfg.Physics.FrameTime())
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Physics.Display.ScreenWidth*cfg.Physics.Display.Scale,
		cfg.Physics.Display.ScreenHeight*cfg.Physics.Display.Scale)
	ebiten.SetWindowTitle("Momentum")
	ebiten.SetTPS(cfg.Physics.Display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// newLoader reads configs from dir, or from the embedded copy when dir is empty.
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadLevel builds the level from a Tiled map when one is named, else from
// the stage rows.
func loadLevel(loader *config.Loader, stageCfg *config.StageConfig, tmx string) (*entity.Map, error) {
	if tmx == "" {
		tmx = stageCfg.Tiled
	}
	if tmx != "" {
		return tiled.LoadMap(loader.FS(), tmx)
	}
	return system.LoadStage(stageCfg)
}

func logWatchErrors(errs <-chan error) {
	for err := range errs {
		log.Printf("Config watch: %v", err)
	}
}
