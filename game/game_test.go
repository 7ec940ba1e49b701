package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/clock"
	"github.com/pthm-cable/antigravity/config"
	"github.com/pthm-cable/antigravity/floating"
	"github.com/pthm-cable/antigravity/systems"
	"github.com/pthm-cable/antigravity/transport/ws"
	"github.com/pthm-cable/antigravity/typing"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, objects int, opts Options) (*Game, *clock.Mock) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Scene.ObjectCount = objects

	clk := clock.NewMock(epoch)
	opts.Config = cfg
	opts.Clock = clk
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g, clk
}

func TestNewGameDriftsEveryObjectOnce(t *testing.T) {
	g, _ := newTestGame(t, 20, Options{})

	if len(g.Specs()) != 20 {
		t.Fatalf("specs = %d, want 20", len(g.Specs()))
	}
	if n := g.Physics().BodyCount(); n != 20 {
		t.Errorf("bodies = %d, want 20", n)
	}
	if n := g.Physics().StaticCount(); n != 6 {
		t.Errorf("statics = %d, want 6", n)
	}
	if g.Tick() != 0 {
		t.Errorf("tick = %d before first update", g.Tick())
	}
	for _, ctrl := range g.Controllers() {
		if ctrl.Drifts() != 1 {
			t.Errorf("object %d drifted %d times", ctrl.ID(), ctrl.Drifts())
		}
		if ctrl.State() != floating.Idle {
			t.Errorf("object %d state = %v, want idle", ctrl.ID(), ctrl.State())
		}
	}
}

func TestPopulateRunsOnce(t *testing.T) {
	g, _ := newTestGame(t, 5, Options{})
	g.populate()

	if n := g.Physics().BodyCount(); n != 5 {
		t.Errorf("bodies = %d after second populate, want 5", n)
	}
	for _, ctrl := range g.Controllers() {
		if ctrl.Drifts() != 1 {
			t.Errorf("object %d drifted %d times", ctrl.ID(), ctrl.Drifts())
		}
	}
}

func TestSceneIsWeightless(t *testing.T) {
	g, _ := newTestGame(t, 3, Options{})
	if grav := g.Physics().Gravity(); grav != (mgl32.Vec3{}) {
		t.Errorf("gravity = %v, want zero", grav)
	}
}

func TestGravityComesFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Scene.ObjectCount = 1
	// Load rejects non-zero gravity; set it afterwards to see where it lands.
	cfg.Physics.Gravity = [3]float64{0, -2, 0}

	g := NewGameWithOptions(Options{Config: cfg, Clock: clock.NewMock(epoch), Headless: true, Seed: 1})
	t.Cleanup(g.Unload)

	if got, want := g.Physics().Gravity(), (mgl32.Vec3{0, -2, 0}); got != want {
		t.Errorf("gravity = %v, want %v", got, want)
	}
}

func TestBodiesStayContained(t *testing.T) {
	g, _ := newTestGame(t, 20, Options{})

	for i := 0; i < 600; i++ {
		if i%120 == 0 {
			g.NudgeAll()
		}
		g.UpdateHeadless()
	}

	if g.Tick() != 600 {
		t.Fatalf("tick = %d, want 600", g.Tick())
	}
	if n := g.Escaped(); n != 0 {
		t.Errorf("%d bodies escaped the walls", n)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, _ := newTestGame(t, 8, Options{Seed: 7})
	b, _ := newTestGame(t, 8, Options{Seed: 7})

	for i := 0; i < 30; i++ {
		a.UpdateHeadless()
		b.UpdateHeadless()
	}
	for i, spec := range a.Specs() {
		other := b.Specs()[i]
		if spec.Archetype != other.Archetype || spec.Position != other.Position {
			t.Fatalf("object %d differs: %v vs %v", i, spec, other)
		}
		sa, _ := a.Physics().Body(a.Controllers()[i].BodyHandle())
		sb, _ := b.Physics().Body(b.Controllers()[i].BodyHandle())
		if sa.Position != sb.Position {
			t.Errorf("object %d position %v vs %v", i, sa.Position, sb.Position)
		}
	}
}

func TestPauseAndStep(t *testing.T) {
	g, _ := newTestGame(t, 3, Options{})

	g.SetPaused(true)
	g.UpdateHeadless()
	g.UpdateHeadless()
	if g.Tick() != 0 {
		t.Fatalf("tick = %d while paused", g.Tick())
	}

	g.StepOnce()
	g.UpdateHeadless()
	g.UpdateHeadless()
	if g.Tick() != 1 {
		t.Errorf("tick = %d after one step, want 1", g.Tick())
	}

	g.SetPaused(false)
	g.UpdateHeadless()
	if g.Tick() != 2 {
		t.Errorf("tick = %d after resume, want 2", g.Tick())
	}
}

func TestAdvanceCapsSubsteps(t *testing.T) {
	g, _ := newTestGame(t, 3, Options{})

	steps := g.advance(10)
	if steps != g.maxSubsteps {
		t.Errorf("steps = %d, want %d", steps, g.maxSubsteps)
	}
	if g.accumulator >= g.dt {
		t.Errorf("accumulator %v carried a full step over", g.accumulator)
	}
}

func TestPointerCommands(t *testing.T) {
	g, _ := newTestGame(t, 4, Options{})

	g.applyCommand(ws.Command{Kind: ws.CommandPointer, Pointer: systems.PointerEvent{Kind: systems.PointerEnter, ObjectID: 2}})
	ctrl := g.Controllers()[2]
	if !ctrl.Hovered() {
		t.Fatal("object 2 not hovered after enter")
	}

	g.applyCommand(ws.Command{Kind: ws.CommandPointer, Pointer: systems.PointerEvent{Kind: systems.PointerClick, ObjectID: 2}})
	if ctrl.Nudges() != 1 {
		t.Errorf("nudges = %d, want 1", ctrl.Nudges())
	}

	g.applyCommand(ws.Command{Kind: ws.CommandPointer, Pointer: systems.PointerEvent{Kind: systems.PointerLeave, ObjectID: 2}})
	if ctrl.Hovered() {
		t.Error("object 2 still hovered after leave")
	}

	// Unknown ids are ignored.
	g.applyCommand(ws.Command{Kind: ws.CommandPointer, Pointer: systems.PointerEvent{Kind: systems.PointerClick, ObjectID: 99}})
}

func TestNudgeAll(t *testing.T) {
	g, _ := newTestGame(t, 6, Options{})
	g.NudgeAll()
	for _, ctrl := range g.Controllers() {
		if ctrl.Nudges() != 1 {
			t.Errorf("object %d nudged %d times", ctrl.ID(), ctrl.Nudges())
		}
	}
}

func TestViewportCommandRebuildsWalls(t *testing.T) {
	g, _ := newTestGame(t, 3, Options{})
	before, _ := g.Containment().Bounds()
	swaps := g.Containment().Swaps()

	g.applyCommand(ws.Command{Kind: ws.CommandViewport, Width: 30, Height: 18})
	g.UpdateHeadless()

	after, ok := g.Containment().Bounds()
	if !ok {
		t.Fatal("no bounds after viewport change")
	}
	if after == before {
		t.Error("bounds unchanged after viewport change")
	}
	if g.Containment().Swaps() != swaps+1 {
		t.Errorf("swaps = %d, want %d", g.Containment().Swaps(), swaps+1)
	}
	if n := g.Physics().StaticCount(); n != 6 {
		t.Errorf("statics = %d after swap, want 6", n)
	}

	// Same size again is a no-op.
	g.applyCommand(ws.Command{Kind: ws.CommandViewport, Width: 30, Height: 18})
	g.UpdateHeadless()
	if g.Containment().Swaps() != swaps+1 {
		t.Errorf("walls rebuilt for an unchanged viewport")
	}
}

func TestTypingLine(t *testing.T) {
	g, clk := newTestGame(t, 1, Options{})
	cfg := g.cfg
	rev := g.Revealer()

	if rev.Text() != "" {
		t.Fatalf("text %q before delay", rev.Text())
	}

	clk.Advance(cfg.Derived.TypingDelay)
	clk.Advance(2 * cfg.Derived.TypingInterval)
	want := string([]rune(cfg.Overlay.TypingText)[:2])
	if rev.Text() != want {
		t.Errorf("text = %q, want %q", rev.Text(), want)
	}

	data := g.headlineData(clk.Now())
	if data.Typed != want {
		t.Errorf("headline typed = %q, want %q", data.Typed, want)
	}
}

func TestUnloadTearsDown(t *testing.T) {
	g, clk := newTestGame(t, 5, Options{})
	ctrls := g.Controllers()

	g.Unload()

	if g.Revealer().State() != typing.Stopped {
		t.Errorf("revealer state = %v, want stopped", g.Revealer().State())
	}
	if clk.Pending() != 0 {
		t.Errorf("%d timers still pending", clk.Pending())
	}
	if n := g.Physics().BodyCount(); n != 0 {
		t.Errorf("bodies = %d after unload", n)
	}
	for _, ctrl := range ctrls {
		if ctrl.State() != floating.Destroyed {
			t.Errorf("object %d state = %v", ctrl.ID(), ctrl.State())
		}
	}

	// Second unload is harmless.
	g.Unload()
}

func TestStatsOutput(t *testing.T) {
	dir := t.TempDir()
	g, _ := newTestGame(t, 4, Options{OutputDir: dir, StatsWindowSec: 0.1})

	for i := 0; i < 12; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("reading stats.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		t.Fatalf("stats.csv has %d lines, want header + rows", len(lines))
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestRemoteServerLifecycle(t *testing.T) {
	g, _ := newTestGame(t, 2, Options{Listen: "127.0.0.1:0"})
	if g.Remote() == nil {
		t.Fatal("no remote server with listen address")
	}
	g.UpdateHeadless()
	g.Unload()
}
