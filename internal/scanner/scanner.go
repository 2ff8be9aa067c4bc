package scanner

import "github.com/ironsheep/blurred-segments/internal/geom"

// Scanner produces the scans of a directional strip. Scans are written into
// the caller's buffer, which is reset first, and the filled slice is
// returned. A short or empty scan means the strip left the image on that
// side.
type Scanner interface {
	// First returns the central scan.
	First(buf []geom.Point) []geom.Point
	// NextOnLeft returns the next scan on the left of the scan direction.
	NextOnLeft(buf []geom.Point) []geom.Point
	// NextOnRight returns the next scan on the right of the scan direction.
	NextOnRight(buf []geom.Point) []geom.Point
	// BindTo re-centres an adaptive strip on the line a*x + b*y = c. Fixed
	// scanners ignore it.
	BindTo(a, b, c int)
	// Locate returns the position of p in the strip: X is the scan index,
	// positive on the left, Y the offset from the start of that scan.
	Locate(p geom.Point) geom.Point
	// Clone returns an independent copy in the same state.
	Clone() Scanner
	// Octant returns the canonical frame of the scan direction.
	Octant() Octant
}

// strip is the state shared by all scanner variants. Everything but the
// octant itself is expressed in the canonical frame.
type strip struct {
	oct      Octant
	u, v     int
	steps    []bool
	xlo, xhi int
	ylo, yhi int
	left     int

	adaptive bool
	ox, oy   int
	a, b     int
	c1, c2   int

	templA, templB, templNu int

	// lk and rk are the last scan indices issued on each side; lhint and rhint
	// the start abscissae of those scans.
	lk, rk       int
	lhint, rhint int
}

func newStrip(width, height int, dir geom.Vector, origin geom.Point, adaptive bool) strip {
	oct := OctantOf(dir)
	d := oct.VectorToLocal(dir)
	lo := oct.ToLocal(geom.Point{})
	hi := oct.ToLocal(geom.Point{X: width - 1, Y: height - 1})
	o := oct.ToLocal(origin)
	return strip{
		oct:      oct,
		u:        d.X,
		v:        d.Y,
		steps:    d.Steps(),
		xlo:      min(lo.X, hi.X),
		xhi:      max(lo.X, hi.X),
		ylo:      min(lo.Y, hi.Y),
		yhi:      max(lo.Y, hi.Y),
		left:     oct.Det(),
		adaptive: adaptive,
		ox:       o.X,
		oy:       o.Y,
		a:        d.X,
		b:        d.Y,
		lhint:    o.X,
		rhint:    o.X,
	}
}

// rise returns the height of the central scan t columns away from the
// origin: the naive line floor((2tv + u - 1) / 2u).
func (s *strip) rise(t int) int {
	return int(geom.FloorDiv(int64(2*t*s.v+s.u-1), int64(2*s.u)))
}

func (s *strip) inBox(x, y int) bool {
	return x >= s.xlo && x <= s.xhi && y >= s.ylo && y <= s.yhi
}

func (s *strip) setTemplate() {
	s.templA, s.templB = s.a, s.b
	s.templNu = s.c2 - s.c1
}

// rescaledWidth returns the template corridor width expressed for the new
// line coefficients, keeping the L1 or L-infinity pixel width.
func (s *strip) rescaledWidth(na, nb int) int {
	oldB := abs(s.templB)
	oldN1 := abs(s.templA) + oldB
	oldNinf := max(abs(s.templA), oldB)
	newN1 := abs(na) + abs(nb)
	newNinf := max(abs(na), abs(nb))
	if newN1*oldNinf > oldN1*newNinf {
		return s.templNu * newN1 / oldN1
	}
	return s.templNu * newNinf / oldNinf
}

// orient maps the image line a*x + b*y = c into the canonical frame with
// coefficients increasing along the scan direction. It reports false when
// the line is parallel to the scan direction.
func (s *strip) orient(a, b, c int) (int, int, int, bool) {
	n := s.oct.VectorToLocal(geom.Vector{X: a, Y: b})
	ps := n.X*s.u + n.Y*s.v
	if ps == 0 {
		return 0, 0, 0, false
	}
	if ps < 0 {
		n = n.Invert()
		c = -c
	}
	return n.X, n.Y, c, true
}

func (s *strip) Octant() Octant { return s.oct }

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
