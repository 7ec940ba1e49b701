package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Settings configures a World.
type Settings struct {
	Gravity        mgl32.Vec3
	SleepLinear    float32 // linear speed below which a body counts as idle
	SleepAngular   float32 // angular speed below which a body counts as idle
	SleepTime      float32 // seconds idle before a body sleeps
	MaxLinearSpeed float32 // 0 = unlimited
}

// DefaultSettings returns a zero-gravity configuration.
func DefaultSettings() Settings {
	return Settings{
		SleepLinear:    0.01,
		SleepAngular:   0.01,
		SleepTime:      2.0,
		MaxLinearSpeed: 40,
	}
}

type body struct {
	pos      mgl32.Vec3
	rot      mgl32.Quat
	vel      mgl32.Vec3
	angVel   mgl32.Vec3
	shape    Shape
	radius   float32
	invMass  float32
	invInert float32
	mat      Material
	sleeping bool
	idleTime float32
}

func (b *body) wake() {
	b.sleeping = false
	b.idleTime = 0
}

// support returns the world-space support point of the body along dir.
func (b *body) support(dir mgl32.Vec3) mgl32.Vec3 {
	local := b.rot.Inverse().Rotate(dir)
	return b.pos.Add(b.rot.Rotate(b.shape.Support(local)))
}

// World is a small rigid-body simulator with dynamic convex bodies and
// static axis-aligned boxes. It is not safe for concurrent use; the frame
// loop owns it.
type World struct {
	settings Settings

	nextHandle Handle
	bodies     map[Handle]*body
	order      []Handle

	nextStatic StaticSetID
	statics    map[StaticSetID][]StaticBox

	contacts int
}

// NewWorld creates an empty world. Gravity is fixed for the world's lifetime.
func NewWorld(settings Settings) *World {
	return &World{
		settings: settings,
		bodies:   make(map[Handle]*body),
		statics:  make(map[StaticSetID][]StaticBox),
	}
}

var _ Engine = (*World)(nil)

// Gravity returns the world's gravity vector.
func (w *World) Gravity() mgl32.Vec3 { return w.settings.Gravity }

// CreateBody adds a dynamic body.
func (w *World) CreateBody(desc BodyDesc) (Handle, error) {
	if desc.Shape == nil {
		return 0, fmt.Errorf("%w: missing shape", ErrInvalidBody)
	}
	if desc.Mass <= 0 {
		return 0, fmt.Errorf("%w: mass %v", ErrInvalidBody, desc.Mass)
	}
	rot := desc.Rotation
	if rot.Len() == 0 {
		rot = mgl32.QuatIdent()
	}
	r := desc.Shape.BoundingRadius()
	inertia := 0.4 * desc.Mass * r * r
	if inertia <= 0 {
		inertia = desc.Mass
	}

	w.nextHandle++
	h := w.nextHandle
	w.bodies[h] = &body{
		pos:      desc.Position,
		rot:      rot.Normalize(),
		shape:    desc.Shape,
		radius:   r,
		invMass:  1 / desc.Mass,
		invInert: 1 / inertia,
		mat:      desc.Material,
	}
	w.order = append(w.order, h)
	return h, nil
}

// RemoveBody deletes a body.
func (w *World) RemoveBody(h Handle) error {
	if _, ok := w.bodies[h]; !ok {
		return fmt.Errorf("remove %d: %w", h, ErrUnknownBody)
	}
	delete(w.bodies, h)
	for i, o := range w.order {
		if o == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReplaceStatics swaps one static set for another.
func (w *World) ReplaceStatics(old StaticSetID, walls []StaticBox) StaticSetID {
	delete(w.statics, old)
	w.nextStatic++
	id := w.nextStatic
	boxes := make([]StaticBox, len(walls))
	copy(boxes, walls)
	w.statics[id] = boxes
	return id
}

// StaticCount returns the number of installed static boxes.
func (w *World) StaticCount() int {
	n := 0
	for _, set := range w.statics {
		n += len(set)
	}
	return n
}

// ApplyImpulse changes a body's linear velocity by impulse/mass.
func (w *World) ApplyImpulse(h Handle, impulse mgl32.Vec3, wake bool) error {
	b, ok := w.bodies[h]
	if !ok {
		return fmt.Errorf("impulse %d: %w", h, ErrUnknownBody)
	}
	b.vel = b.vel.Add(impulse.Mul(b.invMass))
	if wake {
		b.wake()
	}
	return nil
}

// ApplyTorqueImpulse changes a body's angular velocity.
func (w *World) ApplyTorqueImpulse(h Handle, torque mgl32.Vec3, wake bool) error {
	b, ok := w.bodies[h]
	if !ok {
		return fmt.Errorf("torque impulse %d: %w", h, ErrUnknownBody)
	}
	b.angVel = b.angVel.Add(torque.Mul(b.invInert))
	if wake {
		b.wake()
	}
	return nil
}

// Body returns the state of a body.
func (w *World) Body(h Handle) (BodyState, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return BodyState{}, false
	}
	return b.state(), true
}

func (b *body) state() BodyState {
	return BodyState{
		Position:        b.pos,
		Rotation:        b.rot,
		LinearVelocity:  b.vel,
		AngularVelocity: b.angVel,
		Sleeping:        b.sleeping,
	}
}

// ForEach visits every body in creation order.
func (w *World) ForEach(fn func(h Handle, s BodyState)) {
	for _, h := range w.order {
		fn(h, w.bodies[h].state())
	}
}

// BodyCount returns the number of dynamic bodies.
func (w *World) BodyCount() int { return len(w.bodies) }

// LastContacts returns the number of contacts resolved by the latest step.
func (w *World) LastContacts() int { return w.contacts }

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.contacts = 0

	for _, h := range w.order {
		b := w.bodies[h]
		if b.sleeping {
			continue
		}
		w.integrate(b, dt)
	}

	for i := 0; i < len(w.order); i++ {
		a := w.bodies[w.order[i]]
		for j := i + 1; j < len(w.order); j++ {
			w.collideBodies(a, w.bodies[w.order[j]])
		}
	}

	for _, h := range w.order {
		b := w.bodies[h]
		if b.sleeping {
			continue
		}
		for _, set := range w.statics {
			for _, box := range set {
				w.collideStatic(b, box)
			}
		}
	}

	for _, h := range w.order {
		b := w.bodies[h]
		if b.sleeping {
			continue
		}
		w.updateSleep(b, dt)
	}
}

func (w *World) integrate(b *body, dt float32) {
	b.vel = b.vel.Add(w.settings.Gravity.Mul(dt))
	b.vel = b.vel.Mul(1 / (1 + dt*b.mat.LinearDamping))
	b.angVel = b.angVel.Mul(1 / (1 + dt*b.mat.AngularDamping))

	if limit := w.settings.MaxLinearSpeed; limit > 0 {
		if s := b.vel.Len(); s > limit {
			b.vel = b.vel.Mul(limit / s)
		}
	}

	b.pos = b.pos.Add(b.vel.Mul(dt))
	if b.angVel.Len() > 0 {
		spin := mgl32.Quat{W: 0, V: b.angVel.Mul(0.5 * dt)}
		b.rot = b.rot.Add(spin.Mul(b.rot)).Normalize()
	}
}

// collideBodies resolves a contact between two dynamic bodies. Normal and
// depth come from the colliders themselves.
func (w *World) collideBodies(a, b *body) {
	if a.sleeping && b.sleeping {
		return
	}
	// Bounding spheres reject distant pairs before the narrow phase.
	if b.pos.Sub(a.pos).Len() >= a.radius+b.radius {
		return
	}
	n, pen, ok := penetration(a, b)
	if !ok {
		return
	}
	w.contacts++
	a.wake()
	b.wake()

	invSum := a.invMass + b.invMass
	a.pos = a.pos.Sub(n.Mul(pen * a.invMass / invSum))
	b.pos = b.pos.Add(n.Mul(pen * b.invMass / invSum))

	rel := b.vel.Sub(a.vel)
	vn := rel.Dot(n)
	if vn >= 0 {
		return
	}
	e := (a.mat.Restitution + b.mat.Restitution) * 0.5
	jn := -(1 + e) * vn / invSum
	a.vel = a.vel.Sub(n.Mul(jn * a.invMass))
	b.vel = b.vel.Add(n.Mul(jn * b.invMass))

	tangent := rel.Sub(n.Mul(vn))
	if tl := tangent.Len(); tl > 1e-4 {
		t := tangent.Mul(1 / tl)
		mu := (a.mat.Friction + b.mat.Friction) * 0.5
		jt := -rel.Dot(t) / invSum
		limit := mu * jn
		jt = clamp(jt, -limit, limit)
		a.vel = a.vel.Sub(t.Mul(jt * a.invMass))
		b.vel = b.vel.Add(t.Mul(jt * b.invMass))
	}
}

// collideStatic separates a body from a static box along the box axis of
// least penetration and reflects the normal velocity.
func (w *World) collideStatic(b *body, box StaticBox) {
	// Broad phase: bounding sphere against the box.
	for i := 0; i < 3; i++ {
		if float32(math.Abs(float64(b.pos[i]-box.Center[i]))) > box.HalfExtents[i]+b.radius {
			return
		}
	}

	var normal mgl32.Vec3
	depth := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		var axis mgl32.Vec3
		axis[i] = 1
		bodyMax := b.support(axis)[i]
		bodyMin := b.support(axis.Mul(-1))[i]
		boxMin := box.Center[i] - box.HalfExtents[i]
		boxMax := box.Center[i] + box.HalfExtents[i]

		pushNeg := bodyMax - boxMin
		pushPos := boxMax - bodyMin
		if pushNeg <= 0 || pushPos <= 0 {
			return
		}
		if pushNeg < depth {
			depth = pushNeg
			normal = axis.Mul(-1)
		}
		if pushPos < depth {
			depth = pushPos
			normal = axis
		}
	}

	w.contacts++
	b.pos = b.pos.Add(normal.Mul(depth))

	vn := b.vel.Dot(normal)
	if vn >= 0 {
		return
	}
	b.vel = b.vel.Sub(normal.Mul((1 + b.mat.Restitution) * vn))

	tangent := b.vel.Sub(normal.Mul(b.vel.Dot(normal)))
	if tl := tangent.Len(); tl > 1e-4 {
		reduce := b.mat.Friction * (1 + b.mat.Restitution) * -vn
		if reduce > tl {
			reduce = tl
		}
		b.vel = b.vel.Sub(tangent.Mul(reduce / tl))
	}
}

func (w *World) updateSleep(b *body, dt float32) {
	if w.settings.SleepTime <= 0 {
		return
	}
	if b.vel.Len() < w.settings.SleepLinear && b.angVel.Len() < w.settings.SleepAngular {
		b.idleTime += dt
		if b.idleTime > w.settings.SleepTime {
			b.sleeping = true
			b.vel = mgl32.Vec3{}
			b.angVel = mgl32.Vec3{}
		}
		return
	}
	b.idleTime = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
