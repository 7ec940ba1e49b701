// Package floating implements the per-object controller that owns a rigid
// body: it creates the body, kicks it once into motion and reacts to
// pointer interaction.
package floating

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/physics"
	"github.com/pthm-cable/antigravity/rng"
	"github.com/pthm-cable/antigravity/systems"
)

var (
	// ErrNotRegistered is returned for operations that need a body before Register.
	ErrNotRegistered = errors.New("floating: body not registered")
	// ErrAlreadyRegistered is returned by a second Register.
	ErrAlreadyRegistered = errors.New("floating: body already registered")
	// ErrAlreadyDrifted is returned by a second ApplyInitialDrift.
	ErrAlreadyDrifted = errors.New("floating: initial drift already applied")
	// ErrDestroyed is returned for any operation after Destroy.
	ErrDestroyed = errors.New("floating: controller destroyed")
)

// State is the interaction state of an object.
type State uint8

const (
	Unregistered State = iota
	Idle
	Hovered
	Destroyed
)

var stateNames = map[State]string{
	Unregistered: "unregistered",
	Idle:         "idle",
	Hovered:      "hovered",
	Destroyed:    "destroyed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Impulses holds the impulse ranges a controller applies.
type Impulses struct {
	DriftLinear float32 // per axis (rand-0.5)*DriftLinear
	DriftTorque float32 // per axis rand*DriftTorque
	ClickLinear float32 // per axis (rand-0.5)*ClickLinear
}

// DefaultImpulses returns the standard drift and click ranges.
func DefaultImpulses() Impulses {
	return Impulses{DriftLinear: 2, DriftTorque: 1, ClickLinear: 5}
}

// DefaultMaterial returns the bouncy, lightly damped body material.
func DefaultMaterial() physics.Material {
	return physics.Material{
		Restitution:    0.9,
		Friction:       0.1,
		LinearDamping:  0.5,
		AngularDamping: 0.5,
	}
}

// Controller owns the body of one floating object.
type Controller struct {
	spec     systems.ObjectSpec
	material physics.Material
	density  float32
	impulses Impulses
	src      rng.Source

	engine  physics.Engine
	handle  physics.Handle
	state   State
	hovered bool
	drifted bool

	drifts int
	nudges int
}

// New creates an unregistered controller for spec.
func New(spec systems.ObjectSpec, material physics.Material, density float32, impulses Impulses, src rng.Source) *Controller {
	if density <= 0 {
		density = 1
	}
	return &Controller{
		spec:     spec,
		material: material,
		density:  density,
		impulses: impulses,
		src:      src,
		state:    Unregistered,
	}
}

// Register creates the body in engine at the spec position.
func (c *Controller) Register(engine physics.Engine) (physics.Handle, error) {
	switch c.state {
	case Destroyed:
		return 0, ErrDestroyed
	case Unregistered:
	default:
		return c.handle, ErrAlreadyRegistered
	}

	arch := c.spec.Archetype
	h, err := engine.CreateBody(physics.BodyDesc{
		Position: c.spec.Position,
		Rotation: mgl32.QuatIdent(),
		Shape:    arch.Collider(),
		Mass:     arch.Mass(c.density),
		Material: c.material,
	})
	if err != nil {
		return 0, fmt.Errorf("register object %d: %w", c.spec.ID, err)
	}
	c.engine = engine
	c.handle = h
	c.state = Idle
	return h, nil
}

// ApplyInitialDrift applies the one-time random linear and torque impulse.
func (c *Controller) ApplyInitialDrift() error {
	if err := c.ready(); err != nil {
		return err
	}
	if c.drifted {
		return ErrAlreadyDrifted
	}

	s := float64(c.impulses.DriftLinear)
	linear := mgl32.Vec3{
		float32(rng.Centered(c.src, s)),
		float32(rng.Centered(c.src, s)),
		float32(rng.Centered(c.src, s)),
	}
	tq := c.impulses.DriftTorque
	torque := mgl32.Vec3{
		float32(c.src.Float64()) * tq,
		float32(c.src.Float64()) * tq,
		float32(c.src.Float64()) * tq,
	}

	if err := c.engine.ApplyImpulse(c.handle, linear, true); err != nil {
		return fmt.Errorf("drift object %d: %w", c.spec.ID, err)
	}
	if err := c.engine.ApplyTorqueImpulse(c.handle, torque, true); err != nil {
		return fmt.Errorf("drift object %d: %w", c.spec.ID, err)
	}
	c.drifted = true
	c.drifts++
	return nil
}

// PointerEnter marks the object hovered. Visual only.
func (c *Controller) PointerEnter() error {
	if err := c.ready(); err != nil {
		return err
	}
	c.hovered = true
	c.state = Hovered
	return nil
}

// PointerLeave clears the hover mark.
func (c *Controller) PointerLeave() error {
	if err := c.ready(); err != nil {
		return err
	}
	c.hovered = false
	c.state = Idle
	return nil
}

// Click applies a random nudge and wakes the body. No torque is applied.
func (c *Controller) Click() error {
	if err := c.ready(); err != nil {
		return err
	}
	s := float64(c.impulses.ClickLinear)
	nudge := mgl32.Vec3{
		float32(rng.Centered(c.src, s)),
		float32(rng.Centered(c.src, s)),
		float32(rng.Centered(c.src, s)),
	}
	if err := c.engine.ApplyImpulse(c.handle, nudge, true); err != nil {
		return fmt.Errorf("nudge object %d: %w", c.spec.ID, err)
	}
	c.nudges++
	return nil
}

// Destroy removes the body. Later calls on the controller return ErrDestroyed.
func (c *Controller) Destroy() error {
	if c.state == Destroyed {
		return ErrDestroyed
	}
	registered := c.state != Unregistered
	c.state = Destroyed
	c.hovered = false
	if !registered {
		return nil
	}
	if err := c.engine.RemoveBody(c.handle); err != nil {
		return fmt.Errorf("destroy object %d: %w", c.spec.ID, err)
	}
	return nil
}

// Handle dispatches a routed pointer event.
func (c *Controller) Handle(ev systems.PointerEvent) error {
	switch ev.Kind {
	case systems.PointerEnter:
		return c.PointerEnter()
	case systems.PointerLeave:
		return c.PointerLeave()
	case systems.PointerClick:
		return c.Click()
	}
	return fmt.Errorf("floating: unknown pointer event %d", ev.Kind)
}

func (c *Controller) ready() error {
	switch c.state {
	case Unregistered:
		return ErrNotRegistered
	case Destroyed:
		return ErrDestroyed
	}
	return nil
}

// ID returns the object id.
func (c *Controller) ID() int { return c.spec.ID }

// Spec returns the spawn description.
func (c *Controller) Spec() systems.ObjectSpec { return c.spec }

// BodyHandle returns the engine handle; valid once registered.
func (c *Controller) BodyHandle() physics.Handle { return c.handle }

// State returns the interaction state.
func (c *Controller) State() State { return c.state }

// Hovered reports whether the pointer is over the object.
func (c *Controller) Hovered() bool { return c.hovered }

// Drifts returns how many initial drifts were applied (0 or 1).
func (c *Controller) Drifts() int { return c.drifts }

// Nudges returns how many click impulses were applied.
func (c *Controller) Nudges() int { return c.nudges }
