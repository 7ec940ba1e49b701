// Package game hosts the aquarium: it owns the ECS world, the physics
// engine and every floating object, and runs the fixed-step frame loop for
// both the raylib window and headless runs.
package game

import (
	"context"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antigravity/camera"
	"github.com/pthm-cable/antigravity/clock"
	"github.com/pthm-cable/antigravity/components"
	"github.com/pthm-cable/antigravity/config"
	"github.com/pthm-cable/antigravity/floating"
	"github.com/pthm-cable/antigravity/physics"
	"github.com/pthm-cable/antigravity/renderer"
	"github.com/pthm-cable/antigravity/rng"
	"github.com/pthm-cable/antigravity/shapes"
	"github.com/pthm-cable/antigravity/systems"
	"github.com/pthm-cable/antigravity/telemetry"
	"github.com/pthm-cable/antigravity/transport/ws"
	"github.com/pthm-cable/antigravity/typing"
	"github.com/pthm-cable/antigravity/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
	Listen         string // websocket address, empty = no remote renderer

	Config *config.Config // nil = config.Cfg()
	Clock  clock.Clock    // nil = wall clock
	Source rng.Source     // nil = seeded from Seed
}

// Game holds the complete scene state.
type Game struct {
	cfg *config.Config

	world *ecs.World

	// Entity mappers
	objectMapper *ecs.Map4[components.Transform, components.Shape, components.Body, components.Motion]
	objectFilter *ecs.Filter4[components.Transform, components.Shape, components.Body, components.Motion]

	// Individual component mappers for lookups
	transformMap *ecs.Map1[components.Transform]
	shapeMap     *ecs.Map1[components.Shape]
	bodyMap      *ecs.Map1[components.Body]
	motionMap    *ecs.Map1[components.Motion]
	motionFilter *ecs.Filter1[components.Motion]

	physics     *physics.World
	containment *systems.Containment
	camera      *camera.Camera
	lights      []components.PointLight
	env         components.Environment

	rng         rng.Source
	clock       clock.Clock
	specs       []systems.ObjectSpec
	populated   bool
	controllers []*floating.Controller // indexed by object id
	entities    []ecs.Entity           // indexed by object id
	router      systems.PointerRouter
	colliders   map[*shapes.Archetype]physics.Shape
	revealer    *typing.Revealer

	// Fixed-step state
	dt          float32
	maxSubsteps int
	accumulator float32

	// State
	tick     int32
	paused   bool
	stepOnce bool

	// Viewport override from a remote renderer, in world units
	remoteViewport            bool
	remoteW, remoteH          float32
	screenWidth, screenHeight float32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Remote rendering
	remote       *ws.Server
	remoteCancel context.CancelFunc
	remoteDone   chan struct{}

	// Graphics (nil in headless mode)
	headless   bool
	background *renderer.BackgroundRenderer
	scene      *renderer.SceneRenderer
	overlays   *ui.OverlayRegistry
	hud        *ui.HUD
	inspector  *ui.Inspector
	perfPanel  *ui.PerfPanel
	controls   *ui.ControlsPanel
	headline   *ui.HeadlineOverlay
}

// NewGameWithOptions creates the scene, populates it and gives every object
// its initial drift. No physics step has run when it returns.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	src := opts.Source
	if src == nil {
		src = rng.New(opts.Seed)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:         cfg,
		world:       world,
		rng:         src,
		clock:       clk,
		colliders:   make(map[*shapes.Archetype]physics.Shape),
		dt:          cfg.Derived.DT32,
		maxSubsteps: max(cfg.Physics.MaxSubsteps, 1),
		logStats:    opts.LogStats,
		headless:    opts.Headless,

		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}

	g.objectMapper = ecs.NewMap4[components.Transform, components.Shape, components.Body, components.Motion](world)
	g.objectFilter = ecs.NewFilter4[components.Transform, components.Shape, components.Body, components.Motion](world)
	g.transformMap = ecs.NewMap1[components.Transform](world)
	g.shapeMap = ecs.NewMap1[components.Shape](world)
	g.bodyMap = ecs.NewMap1[components.Body](world)
	g.motionMap = ecs.NewMap1[components.Motion](world)
	g.motionFilter = ecs.NewFilter1[components.Motion](world)

	grav := cfg.Physics.Gravity
	g.physics = physics.NewWorld(physics.Settings{
		Gravity:        mgl32.Vec3{float32(grav[0]), float32(grav[1]), float32(grav[2])},
		SleepLinear:    float32(cfg.Physics.SleepLinear),
		SleepAngular:   float32(cfg.Physics.SleepAngular),
		SleepTime:      float32(cfg.Physics.SleepTime),
		MaxLinearSpeed: float32(cfg.Physics.MaxLinearSpeed),
	})

	g.camera = newCamera(cfg)
	g.lights, g.env = newLights(cfg)
	g.containment = systems.NewContainment(systems.ContainmentConfig{
		WallHalfThickness: float32(cfg.Containment.WallHalfThickness),
		WallHalfSpan:      float32(cfg.Containment.WallHalfSpan),
		Depth:             float32(cfg.Containment.Depth),
		MinViewport:       float32(cfg.Containment.MinViewport),
	})

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, g.dt)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	// Walls go in before any body so nothing can start outside them.
	g.syncContainment()
	g.populate()

	g.revealer = typing.New(clk)
	g.revealer.SetBlink(cfg.Derived.CaretBlink)
	if err := g.revealer.Start(cfg.Overlay.TypingText, cfg.Derived.TypingInterval, cfg.Derived.TypingDelay); err != nil {
		slog.Warn("typing line not started", "error", err)
	}

	if opts.Listen != "" {
		g.startRemote(opts.Listen)
	}

	if !opts.Headless {
		g.initGraphics()
	}

	slog.Info("scene ready",
		"objects", len(g.specs),
		"seed", opts.Seed,
		"headless", opts.Headless,
		"listen", opts.Listen,
	)
	return g
}

// newCamera builds the scene camera from config.
func newCamera(cfg *config.Config) *camera.Camera {
	p, t := cfg.Camera.Position, cfg.Camera.Target
	cam := camera.New(
		mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])},
		mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])},
		cfg.Derived.FOVRadians,
		cfg.Derived.ScreenW32,
		cfg.Derived.ScreenH32,
	)
	cam.Near = float32(cfg.Camera.Near)
	cam.Far = float32(cfg.Camera.Far)
	return cam
}

// newLights builds the point lights and environment from config.
func newLights(cfg *config.Config) ([]components.PointLight, components.Environment) {
	lights := make([]components.PointLight, len(cfg.Lighting.Points))
	for i, p := range cfg.Lighting.Points {
		lights[i] = components.PointLight{
			Position:    mgl32.Vec3{float32(p.Position[0]), float32(p.Position[1]), float32(p.Position[2])},
			Color:       cfg.Derived.LightColors[i],
			Intensity:   float32(p.Intensity),
			CastShadows: p.CastShadows,
		}
	}
	env := components.Environment{
		Preset:     cfg.Lighting.Environment,
		Ambient:    float32(cfg.Lighting.Ambient),
		Background: cfg.Derived.Background,
	}
	return lights, env
}

// initGraphics creates renderers and UI (requires the raylib window).
func (g *Game) initGraphics() {
	cfg := g.cfg
	w, h := int32(g.screenWidth), int32(g.screenHeight)

	g.background = renderer.NewBackgroundRenderer(w, h, cfg.Derived.Background, cfg.Lighting.Environment)
	g.scene = renderer.NewSceneRenderer(
		renderer.Highlight{
			Color:             cfg.Derived.HighlightColor,
			Emissive:          cfg.Derived.EmissiveColor,
			EmissiveIntensity: float32(cfg.Highlight.EmissiveIntensity),
		},
		renderer.Surface{
			Roughness: float32(cfg.Body.Roughness),
			Metalness: float32(cfg.Body.Metalness),
		},
	)
	g.background.Init()
	g.scene.Init()

	g.overlays = ui.NewOverlayRegistry()
	g.hud = ui.NewHUD()
	g.inspector = ui.NewInspector(16, 16, 240)
	g.perfPanel = ui.NewPerfPanel(16, 16)
	g.controls = ui.NewControlsPanel(w-236, 16, 220)
	accent := cfg.Derived.Background
	if n := len(cfg.Derived.LightColors); n > 0 {
		accent = cfg.Derived.LightColors[n-1]
	}
	g.headline = ui.NewHeadlineOverlay(ui.HeadlineStyle{
		Margin:       32,
		FontSize:     int32(cfg.Overlay.FontSize),
		HeadlineSize: int32(cfg.Overlay.HeadlineSize),
		Opacity:      float32(cfg.Overlay.Opacity),
		TypedColor:   cfg.Derived.TypingColor,
		AccentColor:  accent,
	})
}

// Tick returns the number of physics steps taken.
func (g *Game) Tick() int32 {
	return g.tick
}

// Paused reports whether stepping is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes stepping.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// Physics returns the physics world.
func (g *Game) Physics() *physics.World {
	return g.physics
}

// Controllers returns the controllers indexed by object id.
func (g *Game) Controllers() []*floating.Controller {
	return g.controllers
}

// Specs returns the populated object specs.
func (g *Game) Specs() []systems.ObjectSpec {
	return g.specs
}

// Revealer returns the typing revealer for the overlay line.
func (g *Game) Revealer() *typing.Revealer {
	return g.revealer
}

// Containment returns the wall system.
func (g *Game) Containment() *systems.Containment {
	return g.containment
}

// Remote returns the websocket server, or nil when remote rendering is off.
func (g *Game) Remote() *ws.Server {
	return g.remote
}
