package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/camera"
	"github.com/pthm-cable/antigravity/shapes"
)

func TestMatrixKeepsColumnMajorOrder(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	r := Matrix(m)
	if r.M12 != 1 || r.M13 != 2 || r.M14 != 3 {
		t.Errorf("translation = (%v, %v, %v), want (1, 2, 3)", r.M12, r.M13, r.M14)
	}
	if r.M0 != 1 || r.M5 != 1 || r.M10 != 1 || r.M15 != 1 {
		t.Errorf("diagonal not identity: %+v", r)
	}
}

func TestModelMatrixAppliesOffsetFirst(t *testing.T) {
	rot := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})
	m := ModelMatrix(mgl32.Vec3{5, 0, 0}, rot, mgl32.Vec3{0, -1, 0})

	// Model origin is shifted down, rotated a quarter turn about z to +x,
	// then translated.
	got := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	want := mgl32.Vec3{6, 0, 0}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("origin maps to %v, want %v", got, want)
	}
}

func TestColorConversions(t *testing.T) {
	c := color.RGBA{R: 0x42, G: 0x85, B: 0xF4, A: 0xFF}
	rc := Color(c)
	if rc.R != c.R || rc.G != c.G || rc.B != c.B || rc.A != c.A {
		t.Errorf("Color = %+v, want %+v", rc, c)
	}
	rgb := RGB(c)
	if math.Abs(float64(rgb[2])-float64(0xF4)/255) > 1e-6 {
		t.Errorf("RGB blue = %v", rgb[2])
	}
}

func TestCamera3DUsesDegrees(t *testing.T) {
	cam := camera.New(mgl32.Vec3{0, 0, 15}, mgl32.Vec3{}, mgl32.DegToRad(45), 1280, 720)
	c := Camera3D(cam)
	if math.Abs(float64(c.Fovy)-45) > 1e-4 {
		t.Errorf("Fovy = %v, want 45", c.Fovy)
	}
	if c.Position.Z != 15 {
		t.Errorf("Position.Z = %v, want 15", c.Position.Z)
	}
}

func TestMeshParams(t *testing.T) {
	torus, _ := shapes.ByName("torus")
	ratio, size := TorusParams(torus.Dims.(shapes.TorusDims))
	if math.Abs(float64(ratio)-0.2/0.6) > 1e-6 || math.Abs(float64(size)-1.2) > 1e-6 {
		t.Errorf("TorusParams = (%v, %v), want (0.333, 1.2)", ratio, size)
	}

	cone, _ := shapes.ByName("cone")
	off := ConeOffset(cone.Dims.(shapes.ConeDims))
	if math.Abs(float64(off.Y())+0.75) > 1e-6 {
		t.Errorf("ConeOffset = %v, want y=-0.75", off)
	}

	for _, a := range shapes.Catalog() {
		if _, ok := meshBuilders[a.Kind]; !ok {
			t.Errorf("no mesh builder for %s", a.Kind)
		}
	}
}

func TestEnvironmentTint(t *testing.T) {
	if EnvironmentTint("City") == ([3]float32{}) {
		t.Error("city preset should have a tint")
	}
	if EnvironmentTint("nowhere") != ([3]float32{}) {
		t.Error("unknown preset should have no tint")
	}
}
