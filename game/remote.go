package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/shapes"
	"github.com/pthm-cable/antigravity/systems"
	"github.com/pthm-cable/antigravity/transport/ws"
)

// startRemote serves the scene to websocket renderers on addr.
func (g *Game) startRemote(addr string) {
	cfg := g.cfg
	g.remote = ws.NewServer(cfg.Derived.SnapshotEvery, cfg.Transport.CommandBuffer)
	g.remote.SetScene(g.sceneMessage())
	g.publishSnapshot()

	ctx, cancel := context.WithCancel(context.Background())
	g.remoteCancel = cancel
	g.remoteDone = make(chan struct{})
	go func() {
		defer close(g.remoteDone)
		if err := g.remote.ListenAndServe(ctx, addr); err != nil {
			slog.Error("remote renderer server stopped", "addr", addr, "error", err)
		}
	}()
}

// stopRemote shuts the websocket server down and waits for it.
func (g *Game) stopRemote() {
	if g.remoteCancel == nil {
		return
	}
	g.remoteCancel()
	<-g.remoteDone
	g.remoteCancel = nil
}

// drainRemote applies queued client commands on the frame goroutine.
func (g *Game) drainRemote() {
	if g.remote == nil {
		return
	}
	g.remote.Drain(g.applyCommand)
}

// applyCommand applies one client command.
func (g *Game) applyCommand(cmd ws.Command) {
	switch cmd.Kind {
	case ws.CommandPointer:
		g.applyPointer([]systems.PointerEvent{cmd.Pointer})
	case ws.CommandViewport:
		g.remoteViewport = true
		g.remoteW, g.remoteH = cmd.Width, cmd.Height
	}
}

// publishSnapshot hands the current poses to the websocket server.
func (g *Game) publishSnapshot() {
	if g.remote == nil {
		return
	}
	msg := &ws.SnapshotMessage{
		Tick:   int64(g.tick),
		Bodies: make([]ws.BodySnapshot, 0, len(g.controllers)),
	}
	query := g.objectFilter.Query()
	for query.Next() {
		tr, shape, body, motion := query.Get()
		snap := ws.BodySnapshot{
			ID:       shape.ObjectID,
			Position: tr.Position,
			Rotation: [4]float32{tr.Rotation.V[0], tr.Rotation.V[1], tr.Rotation.V[2], tr.Rotation.W},
			Sleeping: motion.Sleeping,
		}
		if body.Ctrl != nil {
			snap.Hovered = body.Ctrl.Hovered()
		}
		msg.Bodies = append(msg.Bodies, snap)
	}
	g.remote.Publish(msg)
}

// sceneMessage describes the static scene for remote renderers.
func (g *Game) sceneMessage() ws.SceneMessage {
	cfg := g.cfg
	msg := ws.SceneMessage{
		Camera: ws.CameraInfo{
			Position: g.camera.Position,
			Target:   g.camera.Target,
			FOV:      mgl32.RadToDeg(g.camera.FOVY),
		},
		Material: ws.MaterialInfo{
			Roughness:         float32(cfg.Body.Roughness),
			Metalness:         float32(cfg.Body.Metalness),
			HighlightColor:    hex(cfg.Derived.HighlightColor.R, cfg.Derived.HighlightColor.G, cfg.Derived.HighlightColor.B),
			EmissiveColor:     hex(cfg.Derived.EmissiveColor.R, cfg.Derived.EmissiveColor.G, cfg.Derived.EmissiveColor.B),
			EmissiveIntensity: float32(cfg.Highlight.EmissiveIntensity),
		},
		Ambient:     g.env.Ambient,
		Environment: g.env.Preset,
		Background:  hex(g.env.Background.R, g.env.Background.G, g.env.Background.B),
	}
	for _, a := range shapes.Catalog() {
		msg.Archetypes = append(msg.Archetypes, ws.ArchetypeInfo{
			Name:   a.Name,
			Kind:   a.Kind.String(),
			Params: a.Dims.Params(),
			Color:  hex(a.Color.R, a.Color.G, a.Color.B),
		})
	}
	for _, spec := range g.specs {
		msg.Objects = append(msg.Objects, ws.ObjectInfo{ID: spec.ID, Archetype: spec.Archetype.Name})
	}
	for _, l := range g.lights {
		msg.Lights = append(msg.Lights, ws.LightInfo{
			Position:    l.Position,
			Color:       hex(l.Color.R, l.Color.G, l.Color.B),
			Intensity:   l.Intensity,
			CastShadows: l.CastShadows,
		})
	}
	return msg
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
