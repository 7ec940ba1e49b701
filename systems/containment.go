package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/physics"
)

// ContainmentConfig holds wall geometry parameters.
type ContainmentConfig struct {
	WallHalfThickness float32
	WallHalfSpan      float32
	Depth             float32 // back/front walls are centered at z = ∓Depth
	MinViewport       float32
}

// DefaultContainmentConfig matches the wall layout of the scene.
func DefaultContainmentConfig() ContainmentConfig {
	return ContainmentConfig{
		WallHalfThickness: 2,
		WallHalfSpan:      50,
		Depth:             10,
		MinViewport:       1,
	}
}

// Bounds is the wall layout for one viewport size.
type Bounds struct {
	ViewportWidth     float32
	ViewportHeight    float32
	WallHalfThickness float32
	WallHalfSpan      float32
	Depth             float32
}

// Wall is one static cuboid.
type Wall struct {
	Name        string
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
}

// ComputeBounds derives the wall layout from a viewport size in world units.
// Sizes below cfg.MinViewport are clamped so the walls never collapse.
func ComputeBounds(width, height float32, cfg ContainmentConfig) Bounds {
	if width < cfg.MinViewport {
		width = cfg.MinViewport
	}
	if height < cfg.MinViewport {
		height = cfg.MinViewport
	}
	return Bounds{
		ViewportWidth:     width,
		ViewportHeight:    height,
		WallHalfThickness: cfg.WallHalfThickness,
		WallHalfSpan:      cfg.WallHalfSpan,
		Depth:             cfg.Depth,
	}
}

// Walls returns floor, ceiling, left, right, back and front in that order.
// The inner faces of the side walls coincide with the viewport edges.
func (b Bounds) Walls() [6]Wall {
	t, s := b.WallHalfThickness, b.WallHalfSpan
	hy := b.ViewportHeight/2 + t
	hx := b.ViewportWidth/2 + t
	horizontal := mgl32.Vec3{s, t, s}
	vertical := mgl32.Vec3{t, s, s}
	depth := mgl32.Vec3{s, s, t}
	return [6]Wall{
		{Name: "floor", Center: mgl32.Vec3{0, -hy, 0}, HalfExtents: horizontal},
		{Name: "ceiling", Center: mgl32.Vec3{0, hy, 0}, HalfExtents: horizontal},
		{Name: "left", Center: mgl32.Vec3{-hx, 0, 0}, HalfExtents: vertical},
		{Name: "right", Center: mgl32.Vec3{hx, 0, 0}, HalfExtents: vertical},
		{Name: "back", Center: mgl32.Vec3{0, 0, -b.Depth}, HalfExtents: depth},
		{Name: "front", Center: mgl32.Vec3{0, 0, b.Depth}, HalfExtents: depth},
	}
}

// StaticBoxes converts the walls to engine statics.
func (b Bounds) StaticBoxes() []physics.StaticBox {
	walls := b.Walls()
	out := make([]physics.StaticBox, len(walls))
	for i, w := range walls {
		out[i] = physics.StaticBox{Center: w.Center, HalfExtents: w.HalfExtents}
	}
	return out
}

// Interior returns the corners of the free volume between the walls.
func (b Bounds) Interior() (lo, hi mgl32.Vec3) {
	zIn := b.Depth - b.WallHalfThickness
	hi = mgl32.Vec3{b.ViewportWidth / 2, b.ViewportHeight / 2, zIn}
	return hi.Mul(-1), hi
}

// Encloses reports whether the box [lo, hi] lies inside the walls, allowing
// tol of penetration.
func (b Bounds) Encloses(lo, hi mgl32.Vec3, tol float32) bool {
	in0, in1 := b.Interior()
	for i := 0; i < 3; i++ {
		if lo[i] < in0[i]-tol || hi[i] > in1[i]+tol {
			return false
		}
	}
	return true
}

// Containment keeps the engine's walls in step with the viewport.
type Containment struct {
	cfg       ContainmentConfig
	bounds    Bounds
	set       physics.StaticSetID
	installed bool
	swaps     int
}

// NewContainment creates a containment system with nothing installed.
func NewContainment(cfg ContainmentConfig) *Containment {
	return &Containment{cfg: cfg}
}

// Sync installs walls for the given viewport if it differs from the
// installed one. Old walls are replaced in a single engine call. It
// reports whether the walls changed.
func (c *Containment) Sync(engine physics.Engine, width, height float32) bool {
	next := ComputeBounds(width, height, c.cfg)
	if c.installed && next == c.bounds {
		return false
	}
	c.set = engine.ReplaceStatics(c.set, next.StaticBoxes())
	c.bounds = next
	c.installed = true
	c.swaps++
	return true
}

// Bounds returns the installed layout. The bool is false before the first Sync.
func (c *Containment) Bounds() (Bounds, bool) {
	return c.bounds, c.installed
}

// Swaps returns how many times walls have been (re)installed.
func (c *Containment) Swaps() int { return c.swaps }
