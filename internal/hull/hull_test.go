package hull

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/ironsheep/blurred-segments/internal/geom"
)

func build(pts []geom.Point) *Hull {
	h := New(pts[0])
	for _, p := range pts[1:] {
		h.Insert(p)
	}
	return h
}

func TestSquare(t *testing.T) {
	h := build([]geom.Point{geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 4), geom.Pt(0, 4), geom.Pt(2, 2), geom.Pt(4, 2)})
	if h.Len() != 4 {
		t.Fatalf("got %d vertices %v, want 4", h.Len(), h.Vertices())
	}
	if w := h.Width(); !w.Equals(geom.NewExactDistance(4, 1)) {
		t.Errorf("width: got %v, want 4", w)
	}
}

func TestAlignedPoints(t *testing.T) {
	h := build([]geom.Point{geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(0, 0), geom.Pt(3, 3), geom.Pt(2, 2)})
	if h.Len() != 2 {
		t.Fatalf("got %d vertices %v, want 2", h.Len(), h.Vertices())
	}
	w := h.Width()
	if w.Num != 0 || w.Den != 3 {
		t.Errorf("width: got %v, want 0/3", w)
	}
	if got := h.SupportVector(); got != geom.Vec(1, 1) {
		t.Errorf("support vector: got %v, want <1,1>", got)
	}
}

func TestSinglePoint(t *testing.T) {
	h := New(geom.Pt(5, 5))
	if h.Insert(geom.Pt(5, 5)) {
		t.Error("inserting the same point should not change the hull")
	}
	if w := h.Width(); w.IsDefined() {
		t.Errorf("width of a point: got %v, want undefined", w)
	}
	if !h.SupportVector().IsNull() {
		t.Errorf("support vector of a point: got %v, want null", h.SupportVector())
	}
}

func TestAlignedExtension(t *testing.T) {
	// (6,0) is aligned with the bottom edge; (2,0) must leave the hull.
	h := build([]geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(1, 2)})
	h.Insert(geom.Pt(6, 0))
	want := map[geom.Point]bool{geom.Pt(0, 0): true, geom.Pt(6, 0): true, geom.Pt(1, 2): true}
	if h.Len() != 3 {
		t.Fatalf("got %v, want 3 vertices", h.Vertices())
	}
	for _, v := range h.Vertices() {
		if !want[v] {
			t.Errorf("unexpected vertex %v", v)
		}
	}
}

func TestRollback(t *testing.T) {
	h := build([]geom.Point{geom.Pt(0, 0), geom.Pt(5, 1), geom.Pt(10, 0)})
	before := h.Vertices()
	h.Insert(geom.Pt(5, -3))
	h.Insert(geom.Pt(5, 0))
	if h.Len() != 4 {
		t.Fatalf("got %v, want 4 vertices", h.Vertices())
	}
	h.Rollback(2)
	after := h.Vertices()
	if len(after) != len(before) {
		t.Fatalf("got %v, want %v", after, before)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("got %v, want %v", after, before)
		}
	}
	if h.Insertions() != 2 {
		t.Errorf("insertions: got %d, want 2", h.Insertions())
	}
}

func TestWidthFollowsRollback(t *testing.T) {
	h := build([]geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 1)})

	tests := []struct {
		name string
		step func()
		want geom.ExactDistance
	}{
		{"thin triangle", func() {}, geom.NewExactDistance(1, 1)},
		{"inner point", func() { h.Insert(geom.Pt(5, 0)) }, geom.NewExactDistance(1, 1)},
		{"tall apex", func() { h.Insert(geom.Pt(5, 6)) }, geom.NewExactDistance(6, 1)},
		{"apex undone", func() { h.Rollback(1) }, geom.NewExactDistance(1, 1)},
		{"apex again", func() { h.Insert(geom.Pt(5, 6)) }, geom.NewExactDistance(6, 1)},
		{"both undone", func() { h.Rollback(2) }, geom.NewExactDistance(1, 1)},
	}
	for _, tt := range tests {
		tt.step()
		if w := h.Width(); !w.Equals(tt.want) {
			t.Errorf("%s: width %v, want %v", tt.name, w, tt.want)
		}
		// A second query must agree with the first one.
		if w := h.Width(); !w.Equals(tt.want) {
			t.Errorf("%s: repeated width %v, want %v", tt.name, w, tt.want)
		}
	}
	if got := h.SupportVector(); got != geom.Vec(1, 0) {
		t.Errorf("support vector: got %v, want <1,0>", got)
	}
}

// bruteWidth returns the minimal isothetic width over every direction
// defined by two of the points.
func bruteWidth(pts []geom.Point) geom.ExactDistance {
	var best geom.ExactDistance
	found := false
	for i := range pts {
		for j := range pts {
			d := pts[i].VectorTo(pts[j])
			if d.IsNull() {
				continue
			}
			lo, hi := int64(0), int64(0)
			for k, q := range pts {
				c := d.Det(pts[i].VectorTo(q))
				if k == 0 || c < lo {
					lo = c
				}
				if k == 0 || c > hi {
					hi = c
				}
			}
			w := geom.ExactDistance{Num: int(hi - lo), Den: d.Chessboard()}
			if !found || w.LessThan(best) {
				best = w
				found = true
			}
		}
	}
	return best
}

func randomBand(rng *rand.Rand, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		x := rng.Intn(40)
		pts[i] = geom.Pt(x, x/3+rng.Intn(4))
	}
	return pts
}

func TestWidthAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 200; trial++ {
		pts := randomBand(rng, 3+rng.Intn(25))
		h := build(pts)
		got, want := h.Width(), bruteWidth(pts)
		if h.Len() >= 2 && !got.Equals(want) {
			t.Fatalf("trial %d: width %v, brute force %v (points %v)", trial, got, want, pts)
		}
	}
}

// Growing the same set from both ends in two different orders gives the same
// width and support vector.
func TestOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 100; trial++ {
		pts := randomBand(rng, 5+rng.Intn(30))
		sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
		mid := len(pts) / 2

		// Alternate right then left from the middle.
		a := New(pts[mid])
		for l, r := mid-1, mid+1; l >= 0 || r < len(pts); l, r = l-1, r+1 {
			if r < len(pts) {
				a.Insert(pts[r])
			}
			if l >= 0 {
				a.Insert(pts[l])
			}
		}
		// All the right side first, then all the left side.
		b := New(pts[mid])
		for r := mid + 1; r < len(pts); r++ {
			b.Insert(pts[r])
		}
		for l := mid - 1; l >= 0; l-- {
			b.Insert(pts[l])
		}

		if !a.Width().Equals(b.Width()) {
			t.Fatalf("trial %d: widths %v and %v differ", trial, a.Width(), b.Width())
		}
		if a.SupportVector() != b.SupportVector() {
			t.Fatalf("trial %d: support vectors %v and %v differ", trial, a.SupportVector(), b.SupportVector())
		}
	}
}
