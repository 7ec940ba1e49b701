package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/shapes"
)

// meshBuild is a generated mesh plus the model-space offset that centers it.
type meshBuild struct {
	mesh   rl.Mesh
	offset mgl32.Vec3
}

// meshBuilders generate one GPU mesh per archetype kind. They must only run
// after the window (and its GL context) exists.
var meshBuilders = map[shapes.Kind]func(shapes.Dims) meshBuild{
	shapes.Box: func(d shapes.Dims) meshBuild {
		b := d.(shapes.BoxDims)
		return meshBuild{mesh: rl.GenMeshCube(b.Width, b.Height, b.Depth)}
	},
	shapes.Sphere: func(d shapes.Dims) meshBuild {
		s := d.(shapes.SphereDims)
		return meshBuild{mesh: rl.GenMeshSphere(s.Radius, s.HeightSegments, s.WidthSegments)}
	},
	shapes.Cone: func(d shapes.Dims) meshBuild {
		c := d.(shapes.ConeDims)
		// Base sits at y=0; shift down so the body center is mid-height.
		return meshBuild{
			mesh:   rl.GenMeshCone(c.Radius, c.Height, c.RadialSegments),
			offset: ConeOffset(c),
		}
	},
	shapes.Torus: func(d shapes.Dims) meshBuild {
		t := d.(shapes.TorusDims)
		ratio, size := TorusParams(t)
		return meshBuild{mesh: rl.GenMeshTorus(ratio, size, t.TubularSegments, t.RadialSegments)}
	},
}

// ConeOffset centers a raylib cone, whose base sits at the origin, on its
// mid-height.
func ConeOffset(c shapes.ConeDims) mgl32.Vec3 {
	return mgl32.Vec3{0, -c.Height / 2, 0}
}

// TorusParams maps ring and tube radii to raylib's torus parameters: the
// tube-to-ring ratio and the outer scale (twice the ring radius).
func TorusParams(t shapes.TorusDims) (ratio, size float32) {
	if t.Radius <= 0 {
		return 0, 0
	}
	return t.Tube / t.Radius, 2 * t.Radius
}

func buildMesh(a *shapes.Archetype) (meshBuild, error) {
	build, ok := meshBuilders[a.Kind]
	if !ok {
		return meshBuild{}, fmt.Errorf("no mesh builder for %s", a.Kind)
	}
	return build(a.Dims), nil
}
