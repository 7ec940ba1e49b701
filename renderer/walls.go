package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antigravity/camera"
	"github.com/pthm-cable/antigravity/systems"
)

// wallColor is the debug outline for containment walls.
var wallColor = rl.NewColor(255, 255, 255, 40)

// DrawWalls outlines the containment walls. Debug only; walls are invisible
// in the normal scene.
func DrawWalls(cam *camera.Camera, walls [6]systems.Wall) {
	rl.BeginMode3D(Camera3D(cam))
	for _, w := range walls {
		size := w.HalfExtents.Mul(2)
		rl.DrawCubeWiresV(Vec(w.Center), Vec(size), wallColor)
	}
	rl.EndMode3D()
}
