package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	gjkMaxIterations = 64
	epaMaxIterations = 32
	epaTolerance     = 1e-4
)

// minkowski returns the support point of the difference a - b along dir.
func minkowski(a, b *body, dir mgl32.Vec3) mgl32.Vec3 {
	return a.support(dir).Sub(b.support(dir.Mul(-1)))
}

// penetration returns the contact normal (pointing from a towards b) and
// depth of two overlapping bodies. ok is false when the colliders do not
// intersect.
func penetration(a, b *body) (normal mgl32.Vec3, depth float32, ok bool) {
	s, hit := gjk(a, b)
	if !hit {
		return mgl32.Vec3{}, 0, false
	}
	if n, d, found := epa(a, b, s.pts); found {
		if d <= 0 {
			return mgl32.Vec3{}, 0, false
		}
		return n, d, true
	}

	// Flat simplex: measure the overlap along the centre line instead.
	n := b.pos.Sub(a.pos)
	if n.LenSqr() < 1e-12 {
		n = mgl32.Vec3{0, 1, 0}
	} else {
		n = n.Normalize()
	}
	if d := minkowski(a, b, n).Dot(n); d > 0 {
		return n, d, true
	}
	return mgl32.Vec3{}, 0, false
}

// simplex holds up to four Minkowski points, newest first.
type simplex struct {
	pts [4]mgl32.Vec3
	n   int
}

func (s *simplex) push(p mgl32.Vec3) {
	s.pts[3], s.pts[2], s.pts[1], s.pts[0] = s.pts[2], s.pts[1], s.pts[0], p
	s.n = min(s.n+1, 4)
}

func (s *simplex) set(pts ...mgl32.Vec3) {
	s.n = copy(s.pts[:], pts)
}

// gjk reports whether the origin lies inside a - b. On a hit the simplex is
// a tetrahedron enclosing the origin.
func gjk(a, b *body) (simplex, bool) {
	var s simplex
	dir := b.pos.Sub(a.pos)
	if dir.LenSqr() < 1e-12 {
		dir = mgl32.Vec3{1, 0, 0}
	}
	s.push(minkowski(a, b, dir))
	dir = s.pts[0].Mul(-1)

	for i := 0; i < gjkMaxIterations; i++ {
		if dir.LenSqr() < 1e-12 {
			if s.n < 2 {
				// Origin is a support point: touching, not overlapping.
				return s, false
			}
			dir = perpendicular(s.pts[1].Sub(s.pts[0]))
		}
		p := minkowski(a, b, dir)
		if p.Dot(dir) <= 0 {
			return s, false
		}
		s.push(p)
		if s.next(&dir) {
			return s, true
		}
	}
	return s, false
}

func sameDir(a, b mgl32.Vec3) bool { return a.Dot(b) > 0 }

// perpendicular returns some vector orthogonal to v.
func perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if math.Abs(float64(v.X())) > math.Abs(float64(v.Y())) {
		axis = mgl32.Vec3{0, 1, 0}
	}
	if p := v.Cross(axis); p.LenSqr() > 1e-12 {
		return p
	}
	return mgl32.Vec3{0, 0, 1}
}

// next reduces the simplex to the feature nearest the origin and updates
// the search direction. It returns true once the origin is enclosed.
func (s *simplex) next(dir *mgl32.Vec3) bool {
	switch s.n {
	case 2:
		return s.line(dir)
	case 3:
		return s.triangle(dir)
	case 4:
		return s.tetrahedron(dir)
	}
	return false
}

func (s *simplex) line(dir *mgl32.Vec3) bool {
	a, b := s.pts[0], s.pts[1]
	ab, ao := b.Sub(a), a.Mul(-1)
	if sameDir(ab, ao) {
		*dir = ab.Cross(ao).Cross(ab)
	} else {
		s.set(a)
		*dir = ao
	}
	return false
}

func (s *simplex) triangle(dir *mgl32.Vec3) bool {
	a, b, c := s.pts[0], s.pts[1], s.pts[2]
	ab, ac, ao := b.Sub(a), c.Sub(a), a.Mul(-1)
	abc := ab.Cross(ac)

	switch {
	case sameDir(abc.Cross(ac), ao):
		if sameDir(ac, ao) {
			s.set(a, c)
			*dir = ac.Cross(ao).Cross(ac)
			return false
		}
		s.set(a, b)
		return s.line(dir)
	case sameDir(ab.Cross(abc), ao):
		s.set(a, b)
		return s.line(dir)
	case sameDir(abc, ao):
		*dir = abc
	default:
		s.set(a, c, b)
		*dir = abc.Mul(-1)
	}
	return false
}

func (s *simplex) tetrahedron(dir *mgl32.Vec3) bool {
	a, b, c, d := s.pts[0], s.pts[1], s.pts[2], s.pts[3]
	ab, ac, ad, ao := b.Sub(a), c.Sub(a), d.Sub(a), a.Mul(-1)

	if sameDir(ab.Cross(ac), ao) {
		s.set(a, b, c)
		return s.triangle(dir)
	}
	if sameDir(ac.Cross(ad), ao) {
		s.set(a, c, d)
		return s.triangle(dir)
	}
	if sameDir(ad.Cross(ab), ao) {
		s.set(a, d, b)
		return s.triangle(dir)
	}
	return true
}

// epa expands the GJK tetrahedron towards the boundary of a - b and returns
// the face of least penetration.
func epa(a, b *body, tetra [4]mgl32.Vec3) (mgl32.Vec3, float32, bool) {
	vol := tetra[1].Sub(tetra[0]).Dot(tetra[2].Sub(tetra[0]).Cross(tetra[3].Sub(tetra[0])))
	if math.Abs(float64(vol)) < 1e-9 {
		return mgl32.Vec3{}, 0, false
	}

	poly := append(make([]mgl32.Vec3, 0, 32), tetra[:]...)
	faces := []int{0, 1, 2, 0, 3, 1, 0, 2, 3, 1, 3, 2}
	// The polytope only grows, so the first centroid stays inside it and
	// orients every face outward.
	centroid := tetra[0].Add(tetra[1]).Add(tetra[2]).Add(tetra[3]).Mul(0.25)

	for iter := 0; iter < epaMaxIterations; iter++ {
		normals, dists, best := faceNormals(poly, faces, centroid)
		if best < 0 {
			return mgl32.Vec3{}, 0, false
		}
		n, d := normals[best], dists[best]
		p := minkowski(a, b, n)
		if p.Dot(n)-d < epaTolerance {
			return n, d, true
		}

		var horizon [][2]int
		kept := make([]int, 0, len(faces)+6)
		for f := 0; f < len(faces)/3; f++ {
			i, j, k := faces[3*f], faces[3*f+1], faces[3*f+2]
			if sameDir(normals[f], p.Sub(poly[i])) {
				horizon = addEdge(horizon, i, j)
				horizon = addEdge(horizon, j, k)
				horizon = addEdge(horizon, k, i)
				continue
			}
			kept = append(kept, i, j, k)
		}
		if len(horizon) == 0 {
			return n, d, true
		}
		idx := len(poly)
		poly = append(poly, p)
		for _, e := range horizon {
			kept = append(kept, e[0], e[1], idx)
		}
		faces = kept
	}

	normals, dists, best := faceNormals(poly, faces, centroid)
	if best < 0 {
		return mgl32.Vec3{}, 0, false
	}
	return normals[best], dists[best], true
}

// faceNormals returns outward unit normals and origin distances per face,
// plus the index of the closest face (-1 if every face is degenerate).
func faceNormals(poly []mgl32.Vec3, faces []int, centroid mgl32.Vec3) ([]mgl32.Vec3, []float32, int) {
	count := len(faces) / 3
	normals := make([]mgl32.Vec3, count)
	dists := make([]float32, count)
	best := -1
	bestDist := float32(math.MaxFloat32)

	for f := 0; f < count; f++ {
		a, b, c := poly[faces[3*f]], poly[faces[3*f+1]], poly[faces[3*f+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		l := n.Len()
		if l < 1e-9 {
			dists[f] = math.MaxFloat32
			continue
		}
		n = n.Mul(1 / l)
		if n.Dot(a.Sub(centroid)) < 0 {
			n = n.Mul(-1)
		}
		normals[f] = n
		dists[f] = n.Dot(a)
		if dists[f] < bestDist {
			bestDist = dists[f]
			best = f
		}
	}
	return normals, dists, best
}

// addEdge adds a horizon edge. An edge shared by two removed faces is
// interior to the hole and cancels out.
func addEdge(edges [][2]int, i, j int) [][2]int {
	for k, e := range edges {
		if (e[0] == j && e[1] == i) || (e[0] == i && e[1] == j) {
			return append(edges[:k], edges[k+1:]...)
		}
	}
	return append(edges, [2]int{i, j})
}
