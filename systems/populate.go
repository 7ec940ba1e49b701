// Package systems holds the scene-level logic that sits between physics and
// the frame loop: placement, containment walls, picking and pointer routing.
package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/rng"
	"github.com/pthm-cable/antigravity/shapes"
)

// ObjectSpec describes one object to spawn.
type ObjectSpec struct {
	ID        int
	Position  mgl32.Vec3
	Archetype *shapes.Archetype
}

// Populate generates count object specs with ids 0..count-1, spread
// uniformly over [-extent, extent] on x and y in the z=0 plane.
// Each object consumes three draws from src: x, y, then archetype.
func Populate(count int, extent float32, src rng.Source) []ObjectSpec {
	if count <= 0 {
		return []ObjectSpec{}
	}
	specs := make([]ObjectSpec, count)
	span := float64(extent) * 2
	for i := range specs {
		x := float32(rng.Centered(src, span))
		y := float32(rng.Centered(src, span))
		specs[i] = ObjectSpec{
			ID:        i,
			Position:  mgl32.Vec3{x, y, 0},
			Archetype: shapes.PickRandom(src),
		}
	}
	return specs
}
