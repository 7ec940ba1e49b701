package game

import (
	"errors"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antigravity/components"
	"github.com/pthm-cable/antigravity/floating"
	"github.com/pthm-cable/antigravity/physics"
	"github.com/pthm-cable/antigravity/systems"
)

// populate places the objects and registers their bodies. It runs once per
// Game; later calls are ignored.
func (g *Game) populate() {
	if g.populated {
		return
	}
	g.populated = true

	cfg := g.cfg
	g.specs = systems.Populate(cfg.Scene.ObjectCount, float32(cfg.Scene.SpawnExtent), g.rng)
	g.controllers = make([]*floating.Controller, len(g.specs))
	g.entities = make([]ecs.Entity, len(g.specs))

	material := physics.Material{
		Restitution:    float32(cfg.Body.Restitution),
		Friction:       float32(cfg.Body.Friction),
		LinearDamping:  float32(cfg.Body.LinearDamping),
		AngularDamping: float32(cfg.Body.AngularDamping),
	}
	impulses := floating.Impulses{
		DriftLinear: float32(cfg.Impulses.DriftLinear),
		DriftTorque: float32(cfg.Impulses.DriftTorque),
		ClickLinear: float32(cfg.Impulses.ClickLinear),
	}

	for _, spec := range g.specs {
		g.spawnObject(spec, material, impulses)
	}
}

// spawnObject registers one object with physics, drifts it and creates its
// entity.
func (g *Game) spawnObject(spec systems.ObjectSpec, material physics.Material, impulses floating.Impulses) {
	ctrl := floating.New(spec, material, float32(g.cfg.Body.Density), impulses, g.rng)
	g.controllers[spec.ID] = ctrl

	if _, err := ctrl.Register(g.physics); err != nil {
		slog.Warn("object not registered", "id", spec.ID, "error", err)
		return
	}
	if err := ctrl.ApplyInitialDrift(); err != nil {
		slog.Warn("initial drift failed", "id", spec.ID, "error", err)
	} else {
		g.collector.RecordDrift()
	}

	tr := components.Transform{Position: spec.Position}
	if st, ok := g.physics.Body(ctrl.BodyHandle()); ok {
		tr.Rotation = st.Rotation
	}
	shape := components.Shape{ObjectID: spec.ID, Archetype: spec.Archetype}
	body := components.Body{Ctrl: ctrl}
	motion := components.Motion{}
	g.entities[spec.ID] = g.objectMapper.NewEntity(&tr, &shape, &body, &motion)
}

// controller returns the live controller for an object id.
func (g *Game) controller(id int) (*floating.Controller, bool) {
	if id < 0 || id >= len(g.controllers) || g.controllers[id] == nil {
		return nil, false
	}
	return g.controllers[id], true
}

// Unload tears the scene down: the typing line stops, every body is
// removed and output files are closed. Safe to call more than once.
func (g *Game) Unload() {
	if g.revealer != nil {
		g.revealer.Stop()
	}

	for id, ctrl := range g.controllers {
		if ctrl == nil {
			continue
		}
		if err := ctrl.Destroy(); err != nil && !errors.Is(err, floating.ErrDestroyed) {
			slog.Warn("destroying object", "id", id, "error", err)
		}
	}
	for id, e := range g.entities {
		if !e.IsZero() && g.world.Alive(e) {
			g.world.RemoveEntity(e)
		}
		g.entities[id] = ecs.Entity{}
	}

	g.stopRemote()

	if g.scene != nil {
		g.scene.Unload()
	}
	if g.background != nil {
		g.background.Unload()
	}

	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.outputManager = nil
	}
}
