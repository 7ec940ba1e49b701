package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/antigravity/shapes"
)

func TestRayOBB(t *testing.T) {
	unit := mgl32.Vec3{0.5, 0.5, 0.5}
	tests := []struct {
		name   string
		ray    Ray
		center mgl32.Vec3
		rot    mgl32.Quat
		hit    bool
		dist   float32
	}{
		{"head on", Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}}, mgl32.Vec3{}, mgl32.QuatIdent(), true, 9.5},
		{"miss", Ray{mgl32.Vec3{2, 0, 10}, mgl32.Vec3{0, 0, -1}}, mgl32.Vec3{}, mgl32.QuatIdent(), false, 0},
		{"behind", Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1}}, mgl32.Vec3{}, mgl32.QuatIdent(), false, 0},
		{"offset box", Ray{mgl32.Vec3{3, 1, 10}, mgl32.Vec3{0, 0, -1}}, mgl32.Vec3{3, 1, 2}, mgl32.QuatIdent(), true, 7.5},
		{
			"rotated corner",
			Ray{mgl32.Vec3{0.6, 0, 10}, mgl32.Vec3{0, 0, -1}},
			mgl32.Vec3{},
			mgl32.QuatRotate(math.Pi/4, mgl32.Vec3{0, 0, 1}),
			true,
			9.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := RayOBB(tt.ray, tt.center, tt.rot, unit)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && math.Abs(float64(d-tt.dist)) > 1e-4 {
				t.Errorf("distance = %v, want %v", d, tt.dist)
			}
		})
	}
}

func TestPickNearest(t *testing.T) {
	half := mgl32.Vec3{0.5, 0.5, 0.5}
	items := []Pickable{
		{ID: 1, Position: mgl32.Vec3{0, 0, -3}, Rotation: mgl32.QuatIdent(), HalfExtents: half},
		{ID: 2, Position: mgl32.Vec3{0, 0, 2}, Rotation: mgl32.QuatIdent(), HalfExtents: half},
		{ID: 3, Position: mgl32.Vec3{5, 0, 4}, Rotation: mgl32.QuatIdent(), HalfExtents: half},
	}
	id, ok := Pick(Ray{mgl32.Vec3{0, 0, 15}, mgl32.Vec3{0, 0, -1}}, items)
	if !ok || id != 2 {
		t.Errorf("Pick = %d,%v, want 2,true", id, ok)
	}
	if _, ok := Pick(Ray{mgl32.Vec3{0, 10, 15}, mgl32.Vec3{0, 0, -1}}, items); ok {
		t.Error("Pick hit with a ray above every item")
	}
}

func TestRaySphere(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float32
	}{
		{"head on", Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}}, true, 9.3},
		{"off center", Ray{mgl32.Vec3{0.5, 0, 10}, mgl32.Vec3{0, 0, -1}}, true, 10 - float32(math.Sqrt(0.49-0.25))},
		{"past the silhouette", Ray{mgl32.Vec3{0.6, 0.6, 10}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"behind", Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"inside", Ray{mgl32.Vec3{0, 0, 0.2}, mgl32.Vec3{0, 0, -1}}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := RaySphere(tt.ray, mgl32.Vec3{}, 0.7)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && math.Abs(float64(d-tt.dist)) > 1e-4 {
				t.Errorf("distance = %v, want %v", d, tt.dist)
			}
		})
	}
}

func TestPickSphereIgnoresBoxCorner(t *testing.T) {
	sphere, _ := shapes.ByName("sphere")
	cube, _ := shapes.ByName("cube")
	ident := mgl32.QuatIdent()

	ball := PickableFor(1, mgl32.Vec3{}, ident, sphere)
	if ball.Radius != 0.7 {
		t.Fatalf("sphere pickable radius = %v, want 0.7", ball.Radius)
	}
	if box := PickableFor(2, mgl32.Vec3{}, ident, cube); box.Radius != 0 {
		t.Errorf("cube pickable radius = %v, want 0", box.Radius)
	}

	// Inside the sphere's bounding box corner but outside the sphere.
	corner := Ray{mgl32.Vec3{0.6, 0.6, 10}, mgl32.Vec3{0, 0, -1}}
	if _, ok := RayOBB(corner, ball.Position, ball.Rotation, ball.HalfExtents); !ok {
		t.Fatal("corner ray should clip the bounding box")
	}
	if id, ok := Pick(corner, []Pickable{ball}); ok {
		t.Errorf("Pick hit sphere %d through its box corner", id)
	}
	if id, ok := Pick(Ray{mgl32.Vec3{0.3, 0.3, 10}, mgl32.Vec3{0, 0, -1}}, []Pickable{ball}); !ok || id != 1 {
		t.Errorf("Pick = %d,%v, want 1,true", id, ok)
	}
}

func TestPointerRouter(t *testing.T) {
	var r PointerRouter

	if ev := r.Move(0, false); len(ev) != 0 {
		t.Errorf("idle move emitted %v", ev)
	}

	ev := r.Move(3, true)
	if len(ev) != 1 || ev[0] != (PointerEvent{PointerEnter, 3}) {
		t.Errorf("enter = %v", ev)
	}
	if ev := r.Move(3, true); len(ev) != 0 {
		t.Errorf("repeat hover emitted %v", ev)
	}

	ev = r.Move(5, true)
	want := []PointerEvent{{PointerLeave, 3}, {PointerEnter, 5}}
	if len(ev) != 2 || ev[0] != want[0] || ev[1] != want[1] {
		t.Errorf("switch = %v, want %v", ev, want)
	}

	ev = r.Click(5, true)
	if len(ev) != 1 || ev[0] != (PointerEvent{PointerClick, 5}) {
		t.Errorf("click = %v", ev)
	}

	ev = r.Move(0, false)
	if len(ev) != 1 || ev[0] != (PointerEvent{PointerLeave, 5}) {
		t.Errorf("leave = %v", ev)
	}
	if _, ok := r.Hovered(); ok {
		t.Error("still hovering after leave")
	}
	if ev := r.Click(0, false); len(ev) != 0 {
		t.Errorf("click on nothing emitted %v", ev)
	}
}

func TestParsePointerEventKind(t *testing.T) {
	for _, k := range []PointerEventKind{PointerEnter, PointerLeave, PointerClick} {
		got, ok := ParsePointerEventKind(k.String())
		if !ok || got != k {
			t.Errorf("round trip of %v = %v,%v", k, got, ok)
		}
	}
	if _, ok := ParsePointerEventKind("hover"); ok {
		t.Error("unknown kind parsed")
	}
}
