package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/components"
	"github.com/pthm-cable/antigravity/physics"
	"github.com/pthm-cable/antigravity/shapes"
	"github.com/pthm-cable/antigravity/telemetry"
)

// UpdateHeadless advances exactly one fixed step without touching raylib.
func (g *Game) UpdateHeadless() {
	g.frame(g.dt)
}

// frame runs one frame: commands, walls, physics, ECS sync, telemetry.
func (g *Game) frame(elapsed float32) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.drainRemote()

	g.perfCollector.StartPhase(telemetry.PhaseContainment)
	g.syncContainment()

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.advance(elapsed)

	g.perfCollector.StartPhase(telemetry.PhaseSync)
	g.syncTransforms()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.publishSnapshot()

	g.perfCollector.EndTick()
}

// advance feeds elapsed time into the fixed-step accumulator and runs at
// most maxSubsteps steps. It returns the number of steps taken.
func (g *Game) advance(elapsed float32) int {
	if g.paused && !g.stepOnce {
		return 0
	}
	if g.stepOnce {
		g.stepOnce = false
		elapsed = g.dt
	}

	g.accumulator += elapsed
	if limit := g.dt * float32(g.maxSubsteps); g.accumulator > limit {
		// Drop time we can't catch up on rather than spiral.
		g.accumulator = limit
	}

	steps := 0
	for g.accumulator >= g.dt && steps < g.maxSubsteps {
		if grav := g.physics.Gravity(); grav != (mgl32.Vec3{}) {
			slog.Error("non-zero gravity in aquarium", "gravity", grav)
		}
		g.physics.Step(g.dt)
		g.collector.RecordContacts(g.physics.LastContacts())
		g.accumulator -= g.dt
		g.tick++
		steps++
	}
	return steps
}

// StepOnce runs a single step on the next frame while paused.
func (g *Game) StepOnce() {
	g.stepOnce = true
}

// viewport returns the visible size at the focal plane in world units. A
// remote renderer's reported viewport takes precedence over the camera.
func (g *Game) viewport() (w, h float32) {
	if g.remoteViewport {
		return g.remoteW, g.remoteH
	}
	return g.camera.Viewport()
}

// syncContainment rebuilds the walls when the viewport changed.
func (g *Game) syncContainment() {
	w, h := g.viewport()
	if g.containment.Sync(g.physics, w, h) {
		g.collector.RecordWallSwap()
		slog.Debug("walls rebuilt", "width", w, "height", h, "statics", g.physics.StaticCount())
	}
}

// syncTransforms copies body state from physics into the ECS.
func (g *Game) syncTransforms() {
	query := g.objectFilter.Query()
	for query.Next() {
		tr, _, body, motion := query.Get()
		if body.Ctrl == nil {
			continue
		}
		st, ok := g.physics.Body(body.Ctrl.BodyHandle())
		if !ok {
			continue
		}
		tr.Position = st.Position
		tr.Rotation = st.Rotation
		*motion = components.Motion{
			LinearVelocity:  st.LinearVelocity,
			AngularVelocity: st.AngularVelocity,
			Sleeping:        st.Sleeping,
		}
	}
}

// NudgeAll clicks every object once.
func (g *Game) NudgeAll() {
	for _, ctrl := range g.controllers {
		if ctrl == nil {
			continue
		}
		if err := ctrl.Click(); err != nil {
			slog.Debug("nudge skipped", "id", ctrl.ID(), "error", err)
			continue
		}
		g.collector.RecordClick()
	}
}

// Escaped counts bodies whose collider reaches outside the wall interior.
func (g *Game) Escaped() int {
	bounds, ok := g.containment.Bounds()
	if !ok {
		return 0
	}
	n := 0
	query := g.objectFilter.Query()
	for query.Next() {
		tr, shape, _, _ := query.Get()
		if shape.Archetype == nil {
			continue
		}
		lo, hi := worldAABB(g.collider(shape.Archetype), tr.Position, tr.Rotation)
		if !bounds.Encloses(lo, hi, escapeTolerance) {
			n++
		}
	}
	return n
}

// escapeTolerance is the wall penetration still counted as contained.
const escapeTolerance = 0.1

// collider returns the cached collision shape for an archetype.
func (g *Game) collider(a *shapes.Archetype) physics.Shape {
	if c, ok := g.colliders[a]; ok {
		return c
	}
	c := a.Collider()
	g.colliders[a] = c
	return c
}

// worldAABB returns the axis-aligned bounds of a posed collider.
func worldAABB(s physics.Shape, pos mgl32.Vec3, rot mgl32.Quat) (lo, hi mgl32.Vec3) {
	inv := rot.Inverse()
	for i := 0; i < 3; i++ {
		var axis mgl32.Vec3
		axis[i] = 1
		hi[i] = pos[i] + rot.Rotate(s.Support(inv.Rotate(axis)))[i]
		lo[i] = pos[i] + rot.Rotate(s.Support(inv.Rotate(axis.Mul(-1))))[i]
	}
	return lo, hi
}
