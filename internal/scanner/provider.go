package scanner

import "github.com/ironsheep/blurred-segments/internal/geom"

// Provider builds scanners clipped to an image of a given size.
type Provider struct {
	width  int
	height int
}

// NewProvider returns a provider for width x height images.
func NewProvider(width, height int) *Provider {
	return &Provider{width: width, height: height}
}

// SetSize changes the clipping box of the scanners built afterwards.
func (sp *Provider) SetSize(width, height int) {
	sp.width = width
	sp.height = height
}

// Between returns a fixed scanner whose central scan runs from p1 to p2 and
// whose bounding lines, orthogonal to p1p2, pass through p1 and p2.
// It returns nil when p1 == p2.
func (sp *Provider) Between(p1, p2 geom.Point) Scanner {
	dir := p1.VectorTo(p2)
	if dir.IsNull() {
		return nil
	}
	s := newStrip(sp.width, sp.height, dir, p1, false)
	q1, q2 := s.oct.ToLocal(p1), s.oct.ToLocal(p2)
	s.c1 = s.a*q1.X + s.b*q1.Y
	s.c2 = s.a*q2.X + s.b*q2.Y
	s.setTemplate()
	return sp.wrap(s)
}

// Centered returns a scanner whose central scan follows dir through center,
// length pixels long. Adaptive scanners accept BindTo.
// It returns nil when dir is null.
func (sp *Provider) Centered(center geom.Point, dir geom.Vector, length int, adaptive bool) Scanner {
	if dir.IsNull() {
		return nil
	}
	s := newStrip(sp.width, sp.height, dir, center, adaptive)
	w2 := (length + 1) / 2
	s.c1 = s.a*(s.ox-w2) + s.b*(s.oy+s.rise(-w2))
	s.c2 = s.a*(s.ox+w2) + s.b*(s.oy+s.rise(w2))
	s.setTemplate()
	return sp.wrap(s)
}

func (sp *Provider) wrap(s strip) Scanner {
	if s.v == 0 {
		return &vhScanner{strip: s}
	}
	return &directionalScanner{strip: s}
}
