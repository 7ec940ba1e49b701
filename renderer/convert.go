package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/camera"
)

// Matrix converts a mathgl matrix to raylib's layout. Both are column-major,
// so the element order carries over unchanged.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// Vec converts a mathgl vector to raylib.
func Vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// Color converts an RGBA color to raylib.
func Color(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// RGB returns the color as normalized floats for shader uniforms.
func RGB(c color.RGBA) [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Camera3D builds the raylib camera matching c.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   Vec(c.Position),
		Target:     Vec(c.Target),
		Up:         Vec(c.Up),
		Fovy:       mgl32.RadToDeg(c.FOVY),
		Projection: rl.CameraPerspective,
	}
}

// ModelMatrix composes translation and rotation with a model-space offset
// applied first, so the mesh origin lands on the body's center.
func ModelMatrix(pos mgl32.Vec3, rot mgl32.Quat, offset mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()))
}
