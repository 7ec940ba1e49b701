package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antigravity/renderer"
	"github.com/pthm-cable/antigravity/ui"
)

// Draw renders the scene and the overlay.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	g.background.Draw()

	g.scene.Draw(g.camera, g.instances(), g.lights, g.env)
	if g.overlays.IsEnabled(ui.OverlayWalls) {
		if bounds, ok := g.containment.Bounds(); ok {
			renderer.DrawWalls(g.camera, bounds.Walls())
		}
	}

	g.drawUI()

	rl.EndDrawing()
}

// instances collects the draw list from the ECS.
func (g *Game) instances() []renderer.Instance {
	items := make([]renderer.Instance, 0, len(g.controllers))
	query := g.objectFilter.Query()
	for query.Next() {
		tr, shape, body, _ := query.Get()
		items = append(items, renderer.Instance{
			Archetype: shape.Archetype,
			Position:  tr.Position,
			Rotation:  tr.Rotation,
			Hovered:   body.Ctrl != nil && body.Ctrl.Hovered(),
		})
	}
	return items
}

// headlineData snapshots the overlay text at now.
func (g *Game) headlineData(now time.Time) ui.HeadlineData {
	o := g.cfg.Overlay
	return ui.HeadlineData{
		Brand:    o.Brand,
		Badge:    o.Badge,
		Headline: o.Headline,
		Prompt:   o.Prompt,
		Typed:    g.revealer.Text(),
		Caret:    g.revealer.Cursor(now),
		Footer:   o.Footer,
	}
}

// drawUI renders the 2D layer.
func (g *Game) drawUI() {
	screenW, screenH := int32(g.screenWidth), int32(g.screenHeight)

	if g.overlays.IsEnabled(ui.OverlayHeadline) {
		g.headline.Draw(g.headlineData(g.clock.Now()), screenH)
	}

	if g.overlays.IsEnabled(ui.OverlayHUD) {
		hovered := -1
		if id, ok := g.router.Hovered(); ok {
			hovered = id
		}
		clients := 0
		if g.remote != nil {
			clients = g.remote.Clients()
		}
		g.hud.Draw(ui.HUDData{
			Bodies:    len(g.controllers),
			Sleeping:  g.sleepingCount(),
			Hovered:   hovered,
			Escaped:   g.Escaped(),
			Clicks:    g.totalNudges(),
			WallSwaps: g.containment.Swaps(),
			Clients:   clients,
			Tick:      g.tick,
			FPS:       rl.GetFPS(),
			Paused:    g.paused,
		}, screenW, screenH)
	}

	// Perf and inspector share the left panel slot; the registry keeps at
	// most one of them on.
	left := int32(16)
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(left, screenH/2-g.inspector.Height()/2)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if id, ok := g.router.Hovered(); ok && id < len(g.entities) {
			e := g.entities[id]
			if !e.IsZero() && g.world.Alive(e) {
				g.inspector.SetPosition(left, screenH/2-g.inspector.Height()/2)
				g.inspector.Draw(ui.InspectorData{
					Shape:     *g.shapeMap.Get(e),
					Transform: *g.transformMap.Get(e),
					Motion:    *g.motionMap.Get(e),
					Body:      *g.bodyMap.Get(e),
				})
			}
		}
	}

	if g.overlays.IsEnabled(ui.OverlayControls) {
		act := g.controls.Draw(ui.ControlsState{Paused: g.paused, Bodies: len(g.controllers)}, g.overlays)
		if act.TogglePause {
			g.paused = !g.paused
		}
		if act.Step {
			g.StepOnce()
		}
		if act.NudgeAll {
			g.NudgeAll()
		}
	}
}

// sleepingCount returns how many bodies are asleep.
func (g *Game) sleepingCount() int {
	n := 0
	query := g.motionFilter.Query()
	for query.Next() {
		if query.Get().Sleeping {
			n++
		}
	}
	return n
}

// totalNudges sums the click impulses applied so far.
func (g *Game) totalNudges() int {
	n := 0
	for _, ctrl := range g.controllers {
		if ctrl != nil {
			n += ctrl.Nudges()
		}
	}
	return n
}
