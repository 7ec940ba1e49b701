package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antigravity/systems"
	"github.com/pthm-cable/antigravity/ui"
)

// Update runs one graphical frame of input and simulation.
func (g *Game) Update() {
	g.handleInput()
	g.frame(rl.GetFrameTime())
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.NudgeAll()
	}
	if g.paused && rl.IsKeyPressed(rl.KeyPeriod) {
		g.StepOnce()
	}

	if key := rl.GetKeyPressed(); key != 0 {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	g.handlePointer()
}

// handlePointer hit-tests the mouse against every object and routes the
// resulting enter/leave/click events.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	id, hit := g.pick(mouse.X, mouse.Y)

	// The controls panel swallows clicks over it.
	if hit && g.overlays.IsEnabled(ui.OverlayControls) && g.overControls(mouse) {
		hit = false
	}

	var events []systems.PointerEvent
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		events = g.router.Click(id, hit)
	} else {
		events = g.router.Move(id, hit)
	}
	g.applyPointer(events)

	if _, hovering := g.router.Hovered(); hovering {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

// pick returns the nearest object under a screen point.
func (g *Game) pick(sx, sy float32) (int, bool) {
	ray := g.camera.ScreenRay(sx, sy)
	items := make([]systems.Pickable, 0, len(g.controllers))
	query := g.objectFilter.Query()
	for query.Next() {
		tr, shape, _, _ := query.Get()
		if shape.Archetype == nil {
			continue
		}
		items = append(items, systems.PickableFor(shape.ObjectID, tr.Position, tr.Rotation, shape.Archetype))
	}
	return systems.Pick(ray, items)
}

// applyPointer forwards routed events to their controllers.
func (g *Game) applyPointer(events []systems.PointerEvent) {
	for _, ev := range events {
		ctrl, ok := g.controller(ev.ObjectID)
		if !ok {
			slog.Debug("pointer event for unknown object", "id", ev.ObjectID, "event", ev.Kind)
			continue
		}
		if err := ctrl.Handle(ev); err != nil {
			slog.Debug("pointer event rejected", "id", ev.ObjectID, "event", ev.Kind, "error", err)
			continue
		}
		if ev.Kind == systems.PointerClick {
			g.collector.RecordClick()
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.resize(w, h)
}

// resize updates the camera and renderers for a new screen size. Walls
// follow on the next containment sync.
func (g *Game) resize(w, h float32) {
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	if g.background != nil {
		g.background.Resize(w, h)
	}
	if g.controls != nil {
		g.controls.SetPosition(int32(w)-236, 16)
	}
}

// overControls reports whether a screen point lies on the controls panel.
func (g *Game) overControls(p rl.Vector2) bool {
	x := g.screenWidth - 236
	rect := rl.Rectangle{X: x, Y: 16, Width: 220, Height: float32(g.controls.Height(g.overlays))}
	return rl.CheckCollisionPointRec(p, rect)
}
