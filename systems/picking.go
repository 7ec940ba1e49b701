package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/shapes"
)

// Ray is a half-line in world space. Dir need not be normalized.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// Pickable is an oriented box that pointer rays can hit. A positive Radius
// makes it a sphere instead.
type Pickable struct {
	ID          int
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	HalfExtents mgl32.Vec3
	Radius      float32
}

// PickableFor builds the hit volume for an object of archetype a. Spheres
// are tested exactly; every other kind uses its tight oriented box.
func PickableFor(id int, pos mgl32.Vec3, rot mgl32.Quat, a *shapes.Archetype) Pickable {
	p := Pickable{ID: id, Position: pos, Rotation: rot, HalfExtents: a.HalfExtents()}
	if d, ok := a.Dims.(shapes.SphereDims); ok {
		p.Radius = d.Radius
	}
	return p
}

// RaySphere intersects a ray with a sphere and returns the entry distance
// in units of Dir, or 0 when the origin is inside.
func RaySphere(ray Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	o := ray.Origin.Sub(center)
	a := ray.Dir.Dot(ray.Dir)
	if a < 1e-12 {
		return 0, false
	}
	b := o.Dot(ray.Dir)
	c := o.Dot(o) - radius*radius
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	if t := (-b - sq) / a; t >= 0 {
		return t, true
	}
	if (-b+sq)/a >= 0 {
		return 0, true
	}
	return 0, false
}

// RayOBB intersects a ray with an oriented box and returns the entry
// distance along the ray in units of Dir.
func RayOBB(ray Ray, center mgl32.Vec3, rot mgl32.Quat, half mgl32.Vec3) (float32, bool) {
	inv := rot.Inverse()
	o := inv.Rotate(ray.Origin.Sub(center))
	d := inv.Rotate(ray.Dir)

	tMin := float32(0)
	tMax := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		if float32(math.Abs(float64(d[i]))) < 1e-8 {
			if o[i] < -half[i] || o[i] > half[i] {
				return 0, false
			}
			continue
		}
		invD := 1 / d[i]
		t1 := (-half[i] - o[i]) * invD
		t2 := (half[i] - o[i]) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// Pick returns the id of the nearest item hit by the ray.
func Pick(ray Ray, items []Pickable) (int, bool) {
	bestID := -1
	bestT := float32(math.MaxFloat32)
	for _, it := range items {
		var (
			t  float32
			ok bool
		)
		if it.Radius > 0 {
			t, ok = RaySphere(ray, it.Position, it.Radius)
		} else {
			t, ok = RayOBB(ray, it.Position, it.Rotation, it.HalfExtents)
		}
		if ok && t < bestT {
			bestID, bestT = it.ID, t
		}
	}
	return bestID, bestID >= 0
}
