package shapes

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// geometry computes derived data for one Kind.
type geometry struct {
	volume      func(Dims) float32
	radius      func(Dims) float32
	halfExtents func(Dims) mgl32.Vec3
	hull        func(Dims) []mgl32.Vec3
}

var geometries = map[Kind]geometry{
	Box: {
		volume: func(d Dims) float32 {
			b := d.(BoxDims)
			return b.Width * b.Height * b.Depth
		},
		radius: func(d Dims) float32 {
			b := d.(BoxDims)
			return mgl32.Vec3{b.Width, b.Height, b.Depth}.Mul(0.5).Len()
		},
		halfExtents: func(d Dims) mgl32.Vec3 {
			b := d.(BoxDims)
			return mgl32.Vec3{b.Width, b.Height, b.Depth}.Mul(0.5)
		},
		hull: func(d Dims) []mgl32.Vec3 {
			b := d.(BoxDims)
			hx, hy, hz := b.Width/2, b.Height/2, b.Depth/2
			pts := make([]mgl32.Vec3, 0, 8)
			for _, sx := range []float32{-1, 1} {
				for _, sy := range []float32{-1, 1} {
					for _, sz := range []float32{-1, 1} {
						pts = append(pts, mgl32.Vec3{sx * hx, sy * hy, sz * hz})
					}
				}
			}
			return pts
		},
	},
	Sphere: {
		volume: func(d Dims) float32 {
			r := d.(SphereDims).Radius
			return 4.0 / 3.0 * math.Pi * r * r * r
		},
		radius: func(d Dims) float32 { return d.(SphereDims).Radius },
		halfExtents: func(d Dims) mgl32.Vec3 {
			r := d.(SphereDims).Radius
			return mgl32.Vec3{r, r, r}
		},
		hull: func(d Dims) []mgl32.Vec3 {
			s := d.(SphereDims)
			pts := []mgl32.Vec3{{0, s.Radius, 0}, {0, -s.Radius, 0}}
			for i := 1; i < s.HeightSegments; i++ {
				phi := math.Pi * float64(i) / float64(s.HeightSegments)
				y := float32(math.Cos(phi)) * s.Radius
				ring := float32(math.Sin(phi)) * s.Radius
				for j := 0; j < s.WidthSegments; j++ {
					theta := 2 * math.Pi * float64(j) / float64(s.WidthSegments)
					pts = append(pts, mgl32.Vec3{
						ring * float32(math.Cos(theta)),
						y,
						ring * float32(math.Sin(theta)),
					})
				}
			}
			return pts
		},
	},
	Cone: {
		volume: func(d Dims) float32 {
			c := d.(ConeDims)
			return math.Pi * c.Radius * c.Radius * c.Height / 3
		},
		radius: func(d Dims) float32 {
			c := d.(ConeDims)
			return float32(math.Hypot(float64(c.Radius), float64(c.Height/2)))
		},
		halfExtents: func(d Dims) mgl32.Vec3 {
			c := d.(ConeDims)
			return mgl32.Vec3{c.Radius, c.Height / 2, c.Radius}
		},
		hull: func(d Dims) []mgl32.Vec3 {
			c := d.(ConeDims)
			pts := []mgl32.Vec3{{0, c.Height / 2, 0}}
			for j := 0; j < c.RadialSegments; j++ {
				theta := 2 * math.Pi * float64(j) / float64(c.RadialSegments)
				pts = append(pts, mgl32.Vec3{
					c.Radius * float32(math.Cos(theta)),
					-c.Height / 2,
					c.Radius * float32(math.Sin(theta)),
				})
			}
			return pts
		},
	},
	Torus: {
		volume: func(d Dims) float32 {
			t := d.(TorusDims)
			return 2 * math.Pi * math.Pi * t.Radius * t.Tube * t.Tube
		},
		radius: func(d Dims) float32 {
			t := d.(TorusDims)
			return t.Radius + t.Tube
		},
		halfExtents: func(d Dims) mgl32.Vec3 {
			t := d.(TorusDims)
			return mgl32.Vec3{t.Radius + t.Tube, t.Radius + t.Tube, t.Tube}
		},
		hull: func(d Dims) []mgl32.Vec3 {
			t := d.(TorusDims)
			pts := make([]mgl32.Vec3, 0, t.RadialSegments*t.TubularSegments)
			for j := 0; j < t.RadialSegments; j++ {
				phi := 2 * math.Pi * float64(j) / float64(t.RadialSegments)
				ring := t.Radius + t.Tube*float32(math.Cos(phi))
				z := t.Tube * float32(math.Sin(phi))
				for i := 0; i < t.TubularSegments; i++ {
					theta := 2 * math.Pi * float64(i) / float64(t.TubularSegments)
					pts = append(pts, mgl32.Vec3{
						ring * float32(math.Cos(theta)),
						ring * float32(math.Sin(theta)),
						z,
					})
				}
			}
			return pts
		},
	},
}

func geometryFor(k Kind) geometry {
	g, ok := geometries[k]
	if !ok {
		panic(fmt.Sprintf("shapes: no geometry for kind %d", k))
	}
	return g
}
