package scanner

import "github.com/ironsheep/blurred-segments/internal/geom"

// vhScanner handles horizontal and vertical scan directions: in the
// canonical frame every scan is a row, so its extent has a closed form.
type vhScanner struct {
	strip
}

func (s *vhScanner) Clone() Scanner {
	c := *s
	return &c
}

func (s *vhScanner) First(buf []geom.Point) []geom.Point {
	return s.scan(0, buf)
}

func (s *vhScanner) NextOnLeft(buf []geom.Point) []geom.Point {
	s.lk += s.left
	return s.scan(s.lk, buf)
}

func (s *vhScanner) NextOnRight(buf []geom.Point) []geom.Point {
	s.rk -= s.left
	return s.scan(s.rk, buf)
}

// extent returns the first and last columns of row y between the bounds.
func (s *vhScanner) extent(y int) (int, int) {
	xs := int(geom.CeilDiv(int64(s.c1-s.b*y), int64(s.a)))
	xe := int(geom.FloorDiv(int64(s.c2-s.b*y), int64(s.a)))
	return xs, xe
}

func (s *vhScanner) scan(k int, buf []geom.Point) []geom.Point {
	buf = buf[:0]
	y := s.oy + k
	if y < s.ylo || y > s.yhi {
		return buf
	}
	xs, xe := s.extent(y)
	for x := max(xs, s.xlo); x <= min(xe, s.xhi); x++ {
		buf = append(buf, s.oct.ToImage(geom.Point{X: x, Y: y}))
	}
	return buf
}

func (s *vhScanner) BindTo(a, b, c int) {
	if !s.adaptive {
		return
	}
	na, nb, nc, ok := s.orient(a, b, c)
	if !ok || na <= 0 {
		return
	}
	nu := s.rescaledWidth(na, nb)
	s.a, s.b = na, nb
	s.c1, s.c2 = nc-nu/2, nc+nu/2
}

func (s *vhScanner) Locate(p geom.Point) geom.Point {
	q := s.oct.ToLocal(p)
	k := q.Y - s.oy
	xs, _ := s.extent(q.Y)
	return geom.Point{X: k * s.left, Y: q.X - xs}
}
