// Package shapes defines the fixed catalog of object archetypes that can
// populate the scene, along with the geometric data derived from them.
package shapes

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/rng"
)

// Kind identifies a geometry family.
type Kind uint8

const (
	Box Kind = iota
	Sphere
	Cone
	Torus
)

var kindNames = map[Kind]string{
	Box:    "box",
	Sphere: "sphere",
	Cone:   "cone",
	Torus:  "torus",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Dims holds the dimension parameters for one geometry kind.
type Dims interface {
	// Params returns the ordered parameter sequence for the geometry.
	Params() []float32
	kind() Kind
}

// BoxDims is a cuboid of full width, height and depth.
type BoxDims struct {
	Width, Height, Depth float32
}

// SphereDims is a UV sphere.
type SphereDims struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
}

// ConeDims is a cone centered on its bounding box, apex up.
type ConeDims struct {
	Radius         float32
	Height         float32
	RadialSegments int
}

// TorusDims is a torus lying in the XY plane.
type TorusDims struct {
	Radius          float32 // center of tube to center of torus
	Tube            float32
	RadialSegments  int
	TubularSegments int
}

func (d BoxDims) Params() []float32 { return []float32{d.Width, d.Height, d.Depth} }
func (d SphereDims) Params() []float32 {
	return []float32{d.Radius, float32(d.WidthSegments), float32(d.HeightSegments)}
}
func (d ConeDims) Params() []float32 {
	return []float32{d.Radius, d.Height, float32(d.RadialSegments)}
}
func (d TorusDims) Params() []float32 {
	return []float32{d.Radius, d.Tube, float32(d.RadialSegments), float32(d.TubularSegments)}
}

func (BoxDims) kind() Kind    { return Box }
func (SphereDims) kind() Kind { return Sphere }
func (ConeDims) kind() Kind   { return Cone }
func (TorusDims) kind() Kind  { return Torus }

// Archetype is an immutable catalog entry. Archetypes are shared by
// pointer between every object that uses them.
type Archetype struct {
	Name  string
	Kind  Kind
	Dims  Dims
	Color color.RGBA
}

var catalog = []*Archetype{
	{Name: "cube", Kind: Box, Dims: BoxDims{1, 1, 1}, Color: color.RGBA{0x42, 0x85, 0xF4, 0xFF}},
	{Name: "sphere", Kind: Sphere, Dims: SphereDims{0.7, 32, 16}, Color: color.RGBA{0xDB, 0x44, 0x37, 0xFF}},
	{Name: "cone", Kind: Cone, Dims: ConeDims{0.7, 1.5, 32}, Color: color.RGBA{0xF4, 0xB4, 0x00, 0xFF}},
	{Name: "torus", Kind: Torus, Dims: TorusDims{0.6, 0.2, 16, 32}, Color: color.RGBA{0x0F, 0x9D, 0x58, 0xFF}},
	{Name: "bar", Kind: Box, Dims: BoxDims{0.5, 2, 0.5}, Color: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
}

// Catalog returns the archetypes in catalog order. The slice is a copy;
// the archetypes themselves are shared.
func Catalog() []*Archetype {
	out := make([]*Archetype, len(catalog))
	copy(out, catalog)
	return out
}

// ByName looks up an archetype by name.
func ByName(name string) (*Archetype, bool) {
	for _, a := range catalog {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// PickRandom selects an archetype uniformly using one draw from src.
func PickRandom(src rng.Source) *Archetype {
	idx := int(src.Float64() * float64(len(catalog)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(catalog) {
		idx = len(catalog) - 1
	}
	return catalog[idx]
}

// Volume returns the solid volume of the geometry.
func (a *Archetype) Volume() float32 {
	return geometryFor(a.Kind).volume(a.Dims)
}

// BoundingRadius returns the radius of the smallest origin-centered
// sphere containing the geometry.
func (a *Archetype) BoundingRadius() float32 {
	return geometryFor(a.Kind).radius(a.Dims)
}

// HalfExtents returns the half size of the local axis-aligned bounding box.
func (a *Archetype) HalfExtents() mgl32.Vec3 {
	return geometryFor(a.Kind).halfExtents(a.Dims)
}

// HullPoints returns points whose convex hull approximates the mesh.
func (a *Archetype) HullPoints() []mgl32.Vec3 {
	return geometryFor(a.Kind).hull(a.Dims)
}

// IsCuboid reports whether the archetype collides as a box.
func (a *Archetype) IsCuboid() bool {
	return a.Kind == Box
}
