package physics

import "github.com/go-gl/mathgl/mgl32"

// Shape is a convex collision shape in body-local space.
type Shape interface {
	// Support returns the point of the shape furthest along dir.
	Support(dir mgl32.Vec3) mgl32.Vec3
	BoundingRadius() float32
}

// Cuboid is a box collider described by half extents.
type Cuboid struct {
	Half mgl32.Vec3
}

// NewCuboid creates a cuboid collider.
func NewCuboid(half mgl32.Vec3) *Cuboid {
	return &Cuboid{Half: half}
}

func (c *Cuboid) Support(dir mgl32.Vec3) mgl32.Vec3 {
	var p mgl32.Vec3
	for i := 0; i < 3; i++ {
		if dir[i] < 0 {
			p[i] = -c.Half[i]
		} else {
			p[i] = c.Half[i]
		}
	}
	return p
}

func (c *Cuboid) BoundingRadius() float32 { return c.Half.Len() }

// Hull is a convex hull collider given by its point cloud.
type Hull struct {
	Points []mgl32.Vec3
	radius float32
}

// NewHull creates a convex hull collider. Interior points are harmless.
func NewHull(points []mgl32.Vec3) *Hull {
	h := &Hull{Points: points}
	for _, p := range points {
		if l := p.Len(); l > h.radius {
			h.radius = l
		}
	}
	return h
}

func (h *Hull) Support(dir mgl32.Vec3) mgl32.Vec3 {
	if len(h.Points) == 0 {
		return mgl32.Vec3{}
	}
	best := h.Points[0]
	bestDot := best.Dot(dir)
	for _, p := range h.Points[1:] {
		if d := p.Dot(dir); d > bestDot {
			best, bestDot = p, d
		}
	}
	return best
}

func (h *Hull) BoundingRadius() float32 { return h.radius }
