package shapes

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/physics"
	"github.com/pthm-cable/antigravity/rng"
)

func TestCatalogContents(t *testing.T) {
	cat := Catalog()
	if len(cat) != 5 {
		t.Fatalf("catalog has %d entries, want 5", len(cat))
	}

	tests := []struct {
		name   string
		kind   Kind
		params []float32
		hex    [3]uint8
	}{
		{"cube", Box, []float32{1, 1, 1}, [3]uint8{0x42, 0x85, 0xF4}},
		{"sphere", Sphere, []float32{0.7, 32, 16}, [3]uint8{0xDB, 0x44, 0x37}},
		{"cone", Cone, []float32{0.7, 1.5, 32}, [3]uint8{0xF4, 0xB4, 0x00}},
		{"torus", Torus, []float32{0.6, 0.2, 16, 32}, [3]uint8{0x0F, 0x9D, 0x58}},
		{"bar", Box, []float32{0.5, 2, 0.5}, [3]uint8{0xFF, 0xFF, 0xFF}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := cat[i]
			if a.Name != tt.name || a.Kind != tt.kind {
				t.Errorf("entry %d = %s/%s, want %s/%s", i, a.Name, a.Kind, tt.name, tt.kind)
			}
			got := a.Dims.Params()
			if len(got) != len(tt.params) {
				t.Fatalf("params = %v, want %v", got, tt.params)
			}
			for j := range got {
				if got[j] != tt.params[j] {
					t.Errorf("params = %v, want %v", got, tt.params)
					break
				}
			}
			if a.Color.R != tt.hex[0] || a.Color.G != tt.hex[1] || a.Color.B != tt.hex[2] {
				t.Errorf("color = %v, want %v", a.Color, tt.hex)
			}
		})
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0] = nil
	if Catalog()[0] == nil {
		t.Error("mutating the returned slice changed the catalog")
	}
}

func TestPickRandomCoversCatalog(t *testing.T) {
	tests := []struct {
		draw float64
		want string
	}{
		{0, "cube"},
		{0.19, "cube"},
		{0.2, "sphere"},
		{0.45, "cone"},
		{0.7, "torus"},
		{0.99, "bar"},
		{1.0, "bar"},
	}
	for _, tt := range tests {
		got := PickRandom(rng.NewSequence(tt.draw))
		if got.Name != tt.want {
			t.Errorf("PickRandom(%v) = %s, want %s", tt.draw, got.Name, tt.want)
		}
	}
}

func TestPickRandomSharesArchetypes(t *testing.T) {
	src := rng.New(1)
	for i := 0; i < 100; i++ {
		a := PickRandom(src)
		b, ok := ByName(a.Name)
		if !ok || a != b {
			t.Fatalf("PickRandom returned an archetype not in the catalog: %v", a)
		}
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"cube", 1},
		{"sphere", 4.0 / 3.0 * math.Pi * 0.343},
		{"cone", math.Pi * 0.49 * 1.5 / 3},
		{"torus", 2 * math.Pi * math.Pi * 0.6 * 0.04},
		{"bar", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := ByName(tt.name)
			if got := float64(a.Volume()); math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Volume() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHullWithinBounds(t *testing.T) {
	for _, a := range Catalog() {
		t.Run(a.Name, func(t *testing.T) {
			half := a.HalfExtents()
			r := a.BoundingRadius()
			pts := a.HullPoints()
			if len(pts) == 0 {
				t.Fatal("no hull points")
			}
			for _, p := range pts {
				for i := 0; i < 3; i++ {
					if float32(math.Abs(float64(p[i]))) > half[i]+1e-5 {
						t.Fatalf("point %v outside half extents %v", p, half)
					}
				}
				if p.Len() > r+1e-5 {
					t.Fatalf("point %v outside bounding radius %v", p, r)
				}
			}
		})
	}
}

func TestCollider(t *testing.T) {
	for _, a := range Catalog() {
		c := a.Collider()
		_, isCuboid := c.(*physics.Cuboid)
		if isCuboid != (a.Kind == Box) {
			t.Errorf("%s: cuboid collider = %v", a.Name, isCuboid)
		}
	}

	bar, _ := ByName("bar")
	top := bar.Collider().Support(mgl32.Vec3{0, 1, 0})
	if top.Y() != 1 {
		t.Errorf("bar support along +y = %v, want y=1", top)
	}
}

func TestKindString(t *testing.T) {
	if Torus.String() != "torus" {
		t.Errorf("Torus.String() = %q", Torus.String())
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}
