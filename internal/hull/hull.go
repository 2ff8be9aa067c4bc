// Package hull maintains the convex hull of a growing point set and measures
// its isothetic width exactly.
//
// Vertices are kept as a strictly convex counter-clockwise ring (cross
// product of consecutive edges positive). Every insertion replaces the ring
// by a new slice and pushes the previous one on an undo log, so the last
// insertions can be rolled back in constant time.
package hull

import "github.com/ironsheep/blurred-segments/internal/geom"

// Hull is an incremental convex hull.
type Hull struct {
	verts []geom.Point
	log   [][]geom.Point

	// anti caches Antipodal until the ring changes.
	anti      Antipodal
	antiValid bool
}

// New returns the hull of a single point.
func New(p geom.Point) *Hull {
	return &Hull{verts: []geom.Point{p}}
}

// Len returns the number of hull vertices.
func (h *Hull) Len() int { return len(h.verts) }

// Vertices returns a copy of the vertex ring.
func (h *Hull) Vertices() []geom.Point {
	return append([]geom.Point(nil), h.verts...)
}

// Insertions returns the number of insertions that can be rolled back.
func (h *Hull) Insertions() int { return len(h.log) }

// Insert adds p and reports whether the hull changed. Points inside the hull
// or on its boundary leave it unchanged but still count as an insertion.
func (h *Hull) Insert(p geom.Point) bool {
	h.log = append(h.log, h.verts)
	changed := h.insert(p)
	if changed {
		h.antiValid = false
	}
	return changed
}

func (h *Hull) insert(p geom.Point) bool {
	switch len(h.verts) {
	case 1:
		if p == h.verts[0] {
			return false
		}
		h.verts = []geom.Point{h.verts[0], p}
		return true
	case 2:
		return h.insertInSegment(p)
	}
	return h.insertInPolygon(p)
}

func (h *Hull) insertInSegment(p geom.Point) bool {
	a, b := h.verts[0], h.verts[1]
	c := geom.Cross(a, b, p)
	switch {
	case c > 0:
		h.verts = []geom.Point{a, b, p}
	case c < 0:
		h.verts = []geom.Point{a, p, b}
	default:
		ab := a.VectorTo(b)
		t := ab.Dot(a.VectorTo(p))
		switch {
		case t < 0:
			h.verts = []geom.Point{p, b}
		case t > ab.Norm2():
			h.verts = []geom.Point{a, p}
		default:
			return false
		}
	}
	return true
}

func (h *Hull) insertInPolygon(p geom.Point) bool {
	v := h.verts
	n := len(v)
	next := func(i int) int { return (i + 1) % n }
	prev := func(i int) int { return (i + n - 1) % n }

	s := -1
	for i := 0; i < n; i++ {
		if geom.Cross(v[i], v[next(i)], p) < 0 {
			s = i
			break
		}
	}
	if s < 0 {
		return false
	}
	// Grow the chain of edges seen from p, absorbing edges p is aligned with.
	e, length := s, 1
	for length < n-1 && geom.Cross(v[prev(s)], v[s], p) <= 0 {
		s = prev(s)
		length++
	}
	for length < n-1 && geom.Cross(v[next(e)], v[next(next(e))], p) <= 0 {
		e = next(e)
		length++
	}
	kept := n - length + 1
	nv := make([]geom.Point, 0, kept+1)
	for j, i := 0, next(e); j < kept; j, i = j+1, next(i) {
		nv = append(nv, v[i])
	}
	h.verts = append(nv, p)
	return true
}

// Rollback undoes the last k insertions.
func (h *Hull) Rollback(k int) {
	k = min(k, len(h.log))
	if k <= 0 {
		return
	}
	h.verts = h.log[len(h.log)-k]
	h.log = h.log[:len(h.log)-k]
	h.antiValid = false
}

// Commit forgets the undo log.
func (h *Hull) Commit() {
	h.log = h.log[:0]
}

// Antipodal is a hull edge together with the vertex farthest from its line.
type Antipodal struct {
	Start  geom.Point
	End    geom.Point
	Vertex geom.Point
	// Height is |det(End-Start, Vertex-Start)|.
	Height int64
}

// Edge returns End - Start.
func (a Antipodal) Edge() geom.Vector {
	return a.Start.VectorTo(a.End)
}

// Width returns the isothetic width Height / max(|ex|, |ey|).
func (a Antipodal) Width() geom.ExactDistance {
	return geom.ExactDistance{Num: int(a.Height), Den: a.Edge().Chessboard()}
}

// Antipodal returns the edge-vertex pair realising the minimal isothetic
// width. Ties are broken on the edge direction so that the result does not
// depend on the insertion order.
func (h *Hull) Antipodal() Antipodal {
	if !h.antiValid {
		h.anti = h.antipodal()
		h.antiValid = true
	}
	return h.anti
}

func (h *Hull) antipodal() Antipodal {
	v := h.verts
	n := len(v)
	switch n {
	case 1:
		return Antipodal{Start: v[0], End: v[0], Vertex: v[0]}
	case 2:
		return Antipodal{Start: v[0], End: v[1], Vertex: v[0]}
	}
	var best Antipodal
	found := false
	j := 1
	for i := 0; i < n; i++ {
		a, b := v[i], v[(i+1)%n]
		for geom.Cross(a, b, v[(j+1)%n]) > geom.Cross(a, b, v[j]) {
			j = (j + 1) % n
		}
		cand := Antipodal{Start: a, End: b, Vertex: v[j], Height: geom.Cross(a, b, v[j])}
		if !found || narrower(cand, best) {
			best = cand
			found = true
		}
	}
	return best
}

// narrower reports whether a is thinner than b, or as thin with a smaller
// normalised edge direction.
func narrower(a, b Antipodal) bool {
	ea, eb := a.Edge(), b.Edge()
	l := a.Height * int64(eb.Chessboard())
	r := b.Height * int64(ea.Chessboard())
	if l != r {
		return l < r
	}
	da, db := Normalize(ea.Primitive()), Normalize(eb.Primitive())
	if da.X != db.X {
		return da.X < db.X
	}
	return da.Y < db.Y
}

// Width returns the minimal isothetic width of the hull: 0/0 for a single
// point and 0/n for aligned points.
func (h *Hull) Width() geom.ExactDistance {
	return h.Antipodal().Width()
}

// SupportVector returns the normalised primitive direction of the edge
// realising the width, or the null vector for a single point.
func (h *Hull) SupportVector() geom.Vector {
	return Normalize(h.Antipodal().Edge().Primitive())
}

// Normalize returns v or -v, whichever has x > 0, or x == 0 and y > 0.
func Normalize(v geom.Vector) geom.Vector {
	if v.X < 0 || (v.X == 0 && v.Y < 0) {
		return v.Invert()
	}
	return v
}
