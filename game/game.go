package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"gravityshot/config"
	"gravityshot/level"
	"gravityshot/player"
	"gravityshot/profiling"
	"gravityshot/view"
	"gravityshot/world"
)

// maxFrameTime clamps the frame delta so a stall does not trigger a burst of fixed steps
const maxFrameTime = 100 * time.Millisecond

// Game represents the main game state
type Game struct {
	config config.Config
	log    zerolog.Logger

	// Parent of the per-component loggers
	baseLog zerolog.Logger

	camera   *view.Camera
	renderer *Renderer
	pointer  *PointerInput
	overlay  *Overlay
	sound    player.LaunchAudio
	level    *level.Level
	profiler *profiling.Profiler
	bursts   *view.ParticleSystem

	// The player body is replaced on every restart
	world     *world.World
	player    *world.Entity
	launcher  *player.Launcher
	responder *player.CollisionResponder

	// Time not yet consumed by fixed steps
	accumulator time.Duration

	// FPS tracking
	fps            float64
	fpsFrames      int
	fpsUpdateTimer time.Duration

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// gate lets the player act while the level is ready and the overlay is hidden
type gate struct {
	level   *level.Level
	overlay *Overlay
}

func (g gate) CanShoot() bool     { return g.level.CanShoot() }
func (g gate) InputBlocked() bool { return g.overlay.Paused() }

// NewGame creates a new game instance
func NewGame(cfg config.Config, logger zerolog.Logger) (*Game, error) {
	pointer := NewPointerInput()
	camera := view.NewCamera(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Launch.CameraDistance, pointer)
	camera.Fit(cfg.World.Width, cfg.World.Height)

	g := &Game{
		config:         cfg,
		log:            logger.With().Str("component", "game").Logger(),
		baseLog:        logger,
		camera:         camera,
		renderer:       NewRenderer(camera),
		pointer:        pointer,
		overlay:        &Overlay{},
		level:          level.New(cfg.Level.RestartDelay, cfg.Level.FlightTimeout, logger),
		profiler:       profiling.NewProfiler("profiles", 5*time.Second, 10*time.Second, logger),
		bursts:         view.NewParticleSystem(512),
		fps:            60,
		lastUpdateTime: time.Now(),
	}
	if cfg.Audio.Enabled {
		g.sound = NewLaunchSound(cfg.Audio.Volume, logger)
	}

	if err := g.buildLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildLevel constructs the world from the level layout and wires the
// player's controllers to it. It runs once; restarts go through respawn.
func (g *Game) buildLevel() error {
	cfg := g.config
	w := world.NewWorld(cfg.WorldSettings(), g.baseLog)

	body, err := cfg.Layout().Build(w, g.baseLog)
	if err != nil {
		return err
	}

	launcher, err := player.NewLauncher(cfg.LauncherSettings(), player.Deps{
		Body:      body,
		Gravity:   w.Gravity(),
		Aim:       g.camera,
		Clock:     player.SystemClock{},
		Pointer:   g.pointer,
		Path:      g.renderer,
		Indicator: g.renderer,
		Level:     g.level,
		Audio:     g.sound,
		Gate:      gate{level: g.level, overlay: g.overlay},
		Logger:    &g.baseLog,
	})
	if err != nil {
		return err
	}

	g.world = w
	g.player = body
	g.launcher = launcher
	g.responder = player.NewCollisionResponder(body, g.level, g.baseLog)
	g.renderer.ShowPosition(body.Position())

	g.log.Debug().Int("planets", len(cfg.Level.Planets)).Msg("level built")
	return nil
}

// respawn replaces the player's body with a fresh one at the start and
// re-arms the controllers for the next attempt
func (g *Game) respawn() error {
	g.player.Destroy()

	body, err := g.config.Layout().SpawnPlayer(g.world)
	if err != nil {
		return err
	}

	g.player = body
	g.launcher.Reset(body)
	g.responder.Reset(body)
	g.accumulator = 0
	g.bursts.Clear()
	g.renderer.ShowPosition(body.Position())

	g.log.Debug().Int("shots", g.level.Shots()).Msg("player respawned")
	return nil
}

// Update advances the game by one frame
func (g *Game) Update() error {
	now := time.Now()
	delta := now.Sub(g.lastUpdateTime)
	g.lastUpdateTime = now
	if delta > maxFrameTime {
		delta = maxFrameTime
	}

	g.updateDebugKeys()
	g.updateFPS(delta)

	g.overlay.Update()
	g.pointer.Update()
	g.launcher.PresentationTick()

	if g.overlay.Paused() {
		return nil
	}

	step := g.config.Physics.FixedStep
	g.accumulator += delta
	for g.accumulator >= step {
		g.accumulator -= step
		g.fixedUpdate(step)
	}

	if g.level.Update(delta) {
		g.level.Reset()
		return g.respawn()
	}
	return nil
}

// fixedUpdate runs one simulation step: the preview first, then the
// authoritative engine, then the collision responses
func (g *Game) fixedUpdate(step time.Duration) {
	g.launcher.FixedTick()

	for _, c := range g.world.Step(step.Seconds()) {
		if c.Entity != g.player {
			continue
		}
		wasStopped := g.responder.Stopped()
		g.responder.OnCollision(c.Category)
		if !wasStopped && g.responder.Stopped() {
			g.burst(c.Category)
		}
	}
	g.bursts.Update(step.Seconds())

	g.level.CheckBounds(g.world, g.player)
}

// burst marks the end of a flight
func (g *Game) burst(cause player.Category) {
	clr := color.NRGBA{255, 120, 40, 255}
	if cause == player.Goal {
		clr = color.NRGBA{80, 220, 120, 255}
	}
	g.bursts.Burst(g.player.Position(), 64, clr)
}

func (g *Game) updateFPS(delta time.Duration) {
	g.fpsUpdateTimer += delta
	g.fpsFrames++
	if g.fpsUpdateTimer >= 500*time.Millisecond {
		g.fps = float64(g.fpsFrames) / g.fpsUpdateTimer.Seconds()
		g.fpsFrames = 0
		g.fpsUpdateTimer = 0
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 40, 255}) // Dark blue background
	g.renderer.Render(screen, g.world, HUD{
		Shots:    g.level.Shots(),
		Charge:   g.launcher.ChargeRatio(),
		Charging: g.launcher.State() == player.Charging,
		Phase:    g.level.Phase(),
		Outcome:  g.level.Outcome(),
		Paused:   g.overlay.Paused(),
		FPS:      g.fps,
	})
	drawParticles(screen, g.bursts, g.camera)
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Screen.Width, g.config.Screen.Height
}
