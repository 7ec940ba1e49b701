// Package components defines ECS components for the scene.
package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/floating"
	"github.com/pthm-cable/antigravity/shapes"
)

// Transform is the world pose of an object, copied from physics each frame.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Shape links an entity to its object id and catalog archetype.
type Shape struct {
	ObjectID  int
	Archetype *shapes.Archetype
}

// Body links an entity to the controller that owns its rigid body.
type Body struct {
	Ctrl *floating.Controller
}

// Motion holds the latest velocities reported by physics.
type Motion struct {
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Sleeping        bool
}

// KineticEnergy returns the translational kinetic energy for the given mass.
func (m Motion) KineticEnergy(mass float32) float32 {
	return 0.5 * mass * m.LinearVelocity.Dot(m.LinearVelocity)
}
