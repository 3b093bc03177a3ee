// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/momentum/internal/application/collision"
	"github.com/younwookim/momentum/internal/application/movement"
	"github.com/younwookim/momentum/internal/application/replay"
	"github.com/younwookim/momentum/internal/application/scene"
	"github.com/younwookim/momentum/internal/application/state"
	"github.com/younwookim/momentum/internal/application/system"
	"github.com/younwookim/momentum/internal/domain/entity"
	"github.com/younwookim/momentum/internal/ecs"
	"github.com/younwookim/momentum/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorSolid      = color.RGBA{80, 80, 100, 255}
	colorJumpThru   = color.RGBA{120, 100, 60, 255}
	colorArtwork    = color.RGBA{50, 50, 70, 255}
	colorEntity     = color.RGBA{200, 100, 100, 255}
	colorPassive    = color.RGBA{255, 215, 0, 255}
	colorDust       = color.RGBA{220, 220, 200, 200}
	colorOverlay    = color.RGBA{0, 0, 0, 128}
	colorPlayerMode = map[entity.Mode]color.RGBA{
		entity.ModeFloor:     {100, 200, 100, 255},
		entity.ModeRightWall: {100, 160, 220, 255},
		entity.ModeLeftWall:  {220, 160, 100, 255},
		entity.ModeCeiling:   {200, 100, 200, 255},
	}
)

// dustLifetime is how long a dust puff stays on screen, in seconds.
const dustLifetime = 0.3

// Poller reads the held controls once per tick.
type Poller interface {
	Poll() movement.Control
}

// SoundPlayer plays a named sound on a channel.
type SoundPlayer interface {
	PlaySound(id string, channel int)
}

// Options configures the optional collaborators of the scene.
type Options struct {
	// RecordPath enables input recording when not empty.
	RecordPath string
	// Replay drives the scene from recorded input instead of Input.
	Replay *replay.ReplayData
	Sounds SoundPlayer
	// Updates delivers hot reloaded physics tuning.
	Updates <-chan *config.PhysicsConfig
	Input   Poller
	// JustPressed reports scene hotkeys. Defaults to inpututil.
	JustPressed func(ebiten.Key) bool
	Logger      collision.Logger
}

type particle struct {
	pos entity.Vec2
	age float64
}

// Playing is the main gameplay scene
type Playing struct {
	config   *config.GameConfig
	stageCfg *config.StageConfig
	level    *entity.Map
	opts     Options
	log      collision.Logger

	world   *ecs.World
	player  *movement.Player
	overlay *debugOverlay
	state   state.GameState

	controls movement.Control
	recorder *replay.Recorder
	replayer *replay.Replayer
	dust     []particle

	showDebug bool
	screenW   int
	screenH   int
	dt        float64
}

// New creates a new Playing scene over a built level.
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, level *entity.Map, opts Options) (*Playing, error) {
	if cfg == nil || cfg.Physics == nil || stageCfg == nil || level == nil {
		return nil, fmt.Errorf("playing scene: %w", collision.ErrNilCollaborator)
	}
	if opts.Input == nil && opts.Replay == nil {
		opts.Input = system.NewKeyboardInput()
	}
	if opts.JustPressed == nil {
		opts.JustPressed = inpututil.IsKeyJustPressed
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	p := &Playing{
		config:    cfg,
		stageCfg:  stageCfg,
		level:     level,
		opts:      opts,
		log:       opts.Logger,
		overlay:   &debugOverlay{},
		state:     state.StatePlaying,
		showDebug: cfg.Physics.Collision.DebugTraces,
		screenW:   cfg.Physics.Display.ScreenWidth,
		screenH:   cfg.Physics.Display.ScreenHeight,
		dt:        cfg.Physics.FrameTime(),
	}
	if err := p.build(); err != nil {
		return nil, err
	}

	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		p.log.Printf("Replaying %d frames of stage %s", p.replayer.TotalFrames(), p.replayer.Stage())
	}
	if opts.RecordPath != "" && opts.Replay == nil {
		p.recorder = replay.NewRecorder(stageCfg.ID)
		p.log.Printf("Recording enabled: %s", opts.RecordPath)
	}
	return p, nil
}

// build creates a fresh world with the stage entities and the player.
func (p *Playing) build() error {
	phys := p.config.Physics
	world, err := ecs.NewWorld(p.level, collision.Options{
		MaxItems: phys.Collision.QuadtreeCapacity,
		MaxDepth: phys.Collision.QuadtreeDepth,
		Logger:   p.log,
		Debug:    p.overlay,
	})
	if err != nil {
		return err
	}
	world.Collisions().SetDebugTraces(p.showDebug)

	spawner := &system.Spawner{Physics: phys, Input: p, Effects: p, Logger: p.log}
	if err := spawner.SpawnEntities(world, p.stageCfg); err != nil {
		return err
	}
	player, err := spawner.SpawnPlayer(world, p.stageCfg)
	if err != nil {
		return err
	}

	p.world = world
	p.player = player
	p.dust = p.dust[:0]
	return nil
}

// Controls implements movement.InputSource for the player controller.
func (p *Playing) Controls() movement.Control { return p.controls }

// PlaySound implements movement.Effects.
func (p *Playing) PlaySound(id string, channel int) {
	if p.opts.Sounds != nil {
		p.opts.Sounds.PlaySound(id, channel)
	}
}

// Spawn implements movement.Effects. Only dust is rendered.
func (p *Playing) Spawn(kind string, at entity.Vec2) {
	if kind == movement.SpawnDust {
		p.dust = append(p.dust, particle{pos: at})
	}
}

// World returns the simulated world.
func (p *Playing) World() *ecs.World { return p.world }

// Player returns the player controller.
func (p *Playing) Player() *movement.Player { return p.player }

// State returns the scene state.
func (p *Playing) State() state.GameState { return p.state }

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.applyUpdates()

	if p.opts.JustPressed(ebiten.KeyF3) {
		p.showDebug = !p.showDebug
		p.world.Collisions().SetDebugTraces(p.showDebug)
	}

	switch p.state {
	case state.StatePlaying:
		p.updatePlaying()
	case state.StatePaused:
		if p.opts.JustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateReplayDone:
		if p.opts.JustPressed(ebiten.KeyR) && p.replayer != nil {
			p.replayer.Reset()
			p.restart()
		}
	}

	return nil, nil // nil = stay on this scene
}

// applyUpdates takes the latest hot reloaded tuning without blocking.
func (p *Playing) applyUpdates() {
	if p.opts.Updates == nil {
		return
	}
	select {
	case cfg, ok := <-p.opts.Updates:
		if !ok || cfg == nil {
			return
		}
		p.config.Physics = cfg
		p.player.Configure(cfg.Player)
		p.dt = cfg.FrameTime()
		p.log.Printf("Physics config reloaded")
	default:
	}
}

func (p *Playing) updatePlaying() {
	if p.opts.JustPressed(ebiten.KeyEscape) {
		p.state = state.StatePaused
		return
	}
	if p.opts.JustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}

	if p.replayer != nil {
		if !p.replayer.Next() {
			p.state = state.StateReplayDone
			p.log.Printf("Replay finished after %d frames", p.replayer.CurrentFrame())
			return
		}
		p.controls = p.replayer.Controls()
	} else {
		p.controls = p.opts.Input.Poll()
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(p.controls)
	}

	p.overlay.Reset()
	p.world.Tick(p.dt)
	p.ageDust()

	if p.fellOut() {
		p.log.Printf("Player left the map at frame %d, restarting", p.world.Frame())
		p.restart()
	}
}

func (p *Playing) ageDust() {
	live := p.dust[:0]
	for _, d := range p.dust {
		d.age += p.dt
		if d.age < dustLifetime {
			live = append(live, d)
		}
	}
	p.dust = live
}

// fellOut reports whether the player is gone or below the map.
func (p *Playing) fellOut() bool {
	e := p.world.Player()
	if e == nil {
		return true
	}
	return e.Rect().Y > p.level.Bounds().Bottom()
}

func (p *Playing) restart() {
	if err := p.build(); err != nil {
		p.log.Printf("Failed to restart stage %s: %v", p.stageCfg.ID, err)
		return
	}
	p.state = state.StatePlaying
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.log.Printf("Failed to save recording: %v", err)
	} else {
		p.log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// camera returns the top left world point of the view, clamped to the map.
func (p *Playing) camera() entity.Vec2 {
	var cam entity.Vec2
	if e := p.world.Player(); e != nil {
		c := e.Rect().Center()
		cam = entity.Vec2{X: c.X - float64(p.screenW)/2, Y: c.Y - float64(p.screenH)/2}
	}
	b := p.level.Bounds()
	cam.X = min(max(cam.X, 0), max(b.W-float64(p.screenW), 0))
	cam.Y = min(max(cam.Y, 0), max(b.H-float64(p.screenH), 0))
	return cam.Floor()
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	cam := p.camera()

	p.drawTiles(screen, cam)
	p.drawEntities(screen, cam)
	p.drawDust(screen, cam)
	if p.showDebug {
		p.overlay.draw(screen, cam)
	}
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateReplayDone:
		p.drawOverlay(screen, "REPLAY DONE\n\nPress R to replay")
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam entity.Vec2) {
	view := entity.Rect{X: cam.X, Y: cam.Y, W: float64(p.screenW), H: float64(p.screenH)}
	for _, l := range p.level.Layers {
		l.Each(func(t *entity.Tile) {
			r := t.Rect()
			if !entity.Overlaps(view, r) {
				return
			}
			p.drawTile(screen, l, t, r.X-cam.X, r.Y-cam.Y)
		})
	}
}

// drawTile fills the occupied columns of a tile mask.
func (p *Playing) drawTile(screen *ebiten.Image, l *entity.Layer, t *entity.Tile, x, y float64) {
	c := colorSolid
	switch {
	case l.Type == entity.LayerArtwork:
		c = colorArtwork
	case t.Def != nil && t.Def.Solidity == entity.SolidityJumpThrough:
		c = colorJumpThru
	}

	if t.Def == nil || t.Def.Mask == nil {
		ebitenutil.DrawRect(screen, x, y, float64(t.W), float64(t.H), c)
		return
	}
	for col := 0; col < t.W; col++ {
		h := t.Def.Mask.Height(col)
		if h == 0 {
			continue
		}
		ebitenutil.DrawRect(screen, x+float64(col), y+float64(t.H-h), 1, float64(h), c)
	}
}

func (p *Playing) drawEntities(screen *ebiten.Image, cam entity.Vec2) {
	for _, e := range p.world.Entities() {
		r := e.Rect()
		c := colorEntity
		switch {
		case e.ID == p.world.PlayerID:
			c = colorPlayerMode[p.player.State.Mode]
		case e.Solidity == entity.SolidityNone:
			c = colorPassive
		}
		ebitenutil.DrawRect(screen, r.X-cam.X, r.Y-cam.Y, r.W, r.H, c)
	}
}

func (p *Playing) drawDust(screen *ebiten.Image, cam entity.Vec2) {
	for _, d := range p.dust {
		size := 2 + 4*d.age/dustLifetime
		ebitenutil.DrawRect(screen, d.pos.X-cam.X-size/2, d.pos.Y-cam.Y-size, size, size, colorDust)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	st := p.player.State
	text := fmt.Sprintf("mode %s  gsp %.1f  angle %.1f\nvel %.1f,%.1f  rev %.1f  %s",
		st.Mode, st.GroundSpeed, st.Angle, st.Vel.X, st.Vel.Y, st.SpinRev, st.Balance)
	switch {
	case p.replayer != nil:
		text += fmt.Sprintf("\nREPLAY %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	case p.recorder != nil:
		text += fmt.Sprintf("\nREC %d", p.recorder.FrameCount())
	}
	ebitenutil.DebugPrint(screen, text)
	ebitenutil.DebugPrintAt(screen, "Arrows: Move | Space: Jump | F3: Traces | ESC: Pause", 4, p.screenH-16)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
