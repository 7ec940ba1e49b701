// Package camera provides the perspective camera that frames the scene and
// converts between screen pixels and world space.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/systems"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// FOVY is the vertical field of view in radians.
	FOVY      float32
	Near, Far float32

	// Screen size in pixels
	ScreenW, ScreenH float32
}

// New creates a camera at position looking at target.
func New(position, target mgl32.Vec3, fovY, screenW, screenH float32) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FOVY:     fovY,
		Near:     0.1,
		Far:      1000,
		ScreenW:  screenW,
		ScreenH:  screenH,
	}
}

// Resize updates the screen size.
func (c *Camera) Resize(w, h float32) {
	c.ScreenW, c.ScreenH = w, h
}

// Aspect returns width/height, or 1 for a degenerate screen.
func (c *Camera) Aspect() float32 {
	if c.ScreenH <= 0 || c.ScreenW <= 0 {
		return 1
	}
	return c.ScreenW / c.ScreenH
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float32 {
	return c.Target.Sub(c.Position).Len()
}

// ViewportAt returns the visible width and height in world units on the
// plane facing the camera at the given distance.
func (c *Camera) ViewportAt(distance float32) (w, h float32) {
	h = 2 * float32(math.Tan(float64(c.FOVY)/2)) * distance
	return h * c.Aspect(), h
}

// Viewport returns the visible size on the plane through the target.
func (c *Camera) Viewport() (w, h float32) {
	return c.ViewportAt(c.Distance())
}

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FOVY, c.Aspect(), c.Near, c.Far)
}

// ScreenRay returns the ray through the pixel (sx, sy), measured from the
// top-left corner of the screen.
func (c *Camera) ScreenRay(sx, sy float32) systems.Ray {
	view, proj := c.View(), c.Projection()
	w, h := int(c.ScreenW), int(c.ScreenH)
	wy := c.ScreenH - sy

	near, err := mgl32.UnProject(mgl32.Vec3{sx, wy, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return systems.Ray{Origin: c.Position, Dir: c.Target.Sub(c.Position).Normalize()}
	}
	far, err := mgl32.UnProject(mgl32.Vec3{sx, wy, 0.5}, view, proj, 0, 0, w, h)
	if err != nil {
		return systems.Ray{Origin: c.Position, Dir: c.Target.Sub(c.Position).Normalize()}
	}
	return systems.Ray{Origin: near, Dir: far.Sub(near).Normalize()}
}

// WorldToScreen projects a world point to pixel coordinates. The bool is
// false for points behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float32, visible bool) {
	view := c.View()
	if view.Mul4x1(p.Vec4(1)).Z() >= 0 {
		return 0, 0, false
	}
	win := mgl32.Project(p, view, c.Projection(), 0, 0, int(c.ScreenW), int(c.ScreenH))
	return win.X(), c.ScreenH - win.Y(), true
}
