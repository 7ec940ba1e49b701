package shapes

import "github.com/pthm-cable/antigravity/physics"

// Collider builds the collision shape for the archetype: a cuboid for
// boxes and a convex hull of the mesh points for everything else.
func (a *Archetype) Collider() physics.Shape {
	if a.IsCuboid() {
		return physics.NewCuboid(a.HalfExtents())
	}
	return physics.NewHull(a.HullPoints())
}

// Mass returns the body mass for the archetype at the given density.
func (a *Archetype) Mass(density float32) float32 {
	return a.Volume() * density
}
