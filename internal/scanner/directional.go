package scanner

import "github.com/ironsheep/blurred-segments/internal/geom"

// directionalScanner walks the strip of any non axis-aligned direction.
type directionalScanner struct {
	strip
}

func (s *directionalScanner) Clone() Scanner {
	c := *s
	return &c
}

func (s *directionalScanner) First(buf []geom.Point) []geom.Point {
	hint := s.ox
	return s.scan(0, &hint, buf)
}

func (s *directionalScanner) NextOnLeft(buf []geom.Point) []geom.Point {
	s.lk += s.left
	return s.scan(s.lk, &s.lhint, buf)
}

func (s *directionalScanner) NextOnRight(buf []geom.Point) []geom.Point {
	s.rk -= s.left
	return s.scan(s.rk, &s.rhint, buf)
}

// bound returns the value of the bounding form at column x of scan k.
func (s *directionalScanner) bound(x, k int) int {
	return s.a*x + s.b*(s.oy+s.rise(x-s.ox)+k)
}

// start returns the first column of scan k inside the lower bound, walking
// from hint. The form strictly increases along a scan.
func (s *directionalScanner) start(k, hint int) int {
	x := hint
	for s.bound(x-1, k) >= s.c1 {
		x--
	}
	for s.bound(x, k) < s.c1 {
		x++
	}
	return x
}

func (s *directionalScanner) scan(k int, hint *int, buf []geom.Point) []geom.Point {
	buf = buf[:0]
	x := s.start(k, *hint)
	*hint = x
	y := s.oy + s.rise(x-s.ox) + k
	i := mod(x-s.ox, s.u)
	if x < s.xlo {
		// Jump to the box instead of stepping through the outside.
		y += s.rise(s.xlo-s.ox) - s.rise(x-s.ox)
		i = mod(s.xlo-s.ox, s.u)
		x = s.xlo
	}
	for s.a*x+s.b*y <= s.c2 {
		if s.inBox(x, y) {
			buf = append(buf, s.oct.ToImage(geom.Point{X: x, Y: y}))
		} else if len(buf) > 0 || x > s.xhi || y > s.yhi {
			break
		}
		if s.steps[i] {
			y++
		}
		x++
		if i++; i == s.u {
			i = 0
		}
	}
	return buf
}

func (s *directionalScanner) BindTo(a, b, c int) {
	if !s.adaptive {
		return
	}
	na, nb, nc, ok := s.orient(a, b, c)
	if !ok || na <= 0 || na+nb <= 0 {
		return
	}
	nu := s.rescaledWidth(na, nb)
	s.a, s.b = na, nb
	s.c1, s.c2 = nc-nu/2, nc+nu/2
}

func (s *directionalScanner) Locate(p geom.Point) geom.Point {
	q := s.oct.ToLocal(p)
	k := q.Y - s.oy - s.rise(q.X-s.ox)
	return geom.Point{X: k * s.left, Y: q.X - s.start(k, q.X)}
}
