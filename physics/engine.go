// Package physics implements the rigid-body engine that drives the floating
// objects. Game code talks to it through the Engine port so the host and
// the controllers can be exercised against any implementation.
package physics

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle identifies a dynamic body inside an engine.
type Handle uint32

// StaticSetID identifies a group of static boxes installed together.
// The zero value never refers to an installed set.
type StaticSetID uint32

var (
	// ErrUnknownBody is returned for handles that were never created or were removed.
	ErrUnknownBody = errors.New("physics: unknown body")
	// ErrInvalidBody is returned when a body description cannot be simulated.
	ErrInvalidBody = errors.New("physics: invalid body description")
)

// Material holds per-body contact and damping coefficients.
type Material struct {
	Restitution    float32
	Friction       float32
	LinearDamping  float32
	AngularDamping float32
}

// BodyDesc describes a dynamic body to create.
type BodyDesc struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Shape    Shape
	Mass     float32
	Material Material
}

// BodyState is a read-only view of a body after the latest step.
type BodyState struct {
	Position        mgl32.Vec3
	Rotation        mgl32.Quat
	LinearVelocity  mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Sleeping        bool
}

// StaticBox is an immovable axis-aligned box.
type StaticBox struct {
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// Engine is the port the rest of the simulation uses.
type Engine interface {
	Gravity() mgl32.Vec3
	CreateBody(desc BodyDesc) (Handle, error)
	RemoveBody(h Handle) error
	// ReplaceStatics removes the set old (if any) and installs walls as a new
	// set in a single call, so no step ever runs between removal and insertion.
	ReplaceStatics(old StaticSetID, walls []StaticBox) StaticSetID
	ApplyImpulse(h Handle, impulse mgl32.Vec3, wake bool) error
	ApplyTorqueImpulse(h Handle, torque mgl32.Vec3, wake bool) error
	Body(h Handle) (BodyState, bool)
	Step(dt float32)
}
