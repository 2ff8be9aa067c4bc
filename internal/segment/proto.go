package segment

import (
	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/hull"
)

// Proto is a blurred segment under construction. It grows on both sides of
// an initial point while the digital thickness of its points stays within
// the assigned maximal width.
type Proto struct {
	maxWidth geom.ExactDistance
	pts      pointList
	hull     *hull.Hull

	alive   bool
	notFlat bool
	flat    bool
	leftOK  bool
	rightOK bool
}

// NewProto starts a segment at p with the given maximal width.
func NewProto(maxWidth int, p geom.Point) *Proto {
	return &Proto{
		maxWidth: geom.NewExactDistance(maxWidth, 1),
		pts:      pointList{initial: p},
		hull:     hull.New(p),
		alive:    true,
	}
}

// NewProtoFromPoints builds a segment from an initial point and its left and
// right neighbours, nearest first. Points that would widen the segment too
// much stop the growth on their side.
func NewProtoFromPoints(maxWidth int, center geom.Point, left, right []geom.Point) *Proto {
	bs := NewProto(maxWidth, center)
	for _, p := range left {
		if !bs.AddLeftSorted(p) && p != bs.pts.front() {
			break
		}
	}
	for _, p := range right {
		if !bs.AddRightSorted(p) && p != bs.pts.back() {
			break
		}
	}
	return bs
}

// Size returns the number of points.
func (bs *Proto) Size() int { return bs.pts.size() }

// IsExtending reports whether the segment has grown beyond its initial point.
func (bs *Proto) IsExtending() bool {
	return bs.notFlat || bs.flat || bs.leftOK || bs.rightOK
}

// IsNotFlat reports whether the points span a two-dimensional hull.
func (bs *Proto) IsNotFlat() bool { return bs.notFlat }

// MaxWidth returns the assigned maximal width.
func (bs *Proto) MaxWidth() geom.ExactDistance { return bs.maxWidth }

// SetMaxWidth changes the assigned maximal width.
func (bs *Proto) SetMaxWidth(w geom.ExactDistance) { bs.maxWidth = w }

// StrictThickness returns (nu - 1) / p for the current points.
func (bs *Proto) StrictThickness() geom.ExactDistance {
	strict, _ := bs.thickness()
	return strict
}

// DigitalThickness returns nu / p for the current points.
func (bs *Proto) DigitalThickness() geom.ExactDistance {
	_, digital := bs.thickness()
	return digital
}

func (bs *Proto) thickness() (geom.ExactDistance, geom.ExactDistance) {
	if bs.hull.Len() == 1 {
		return geom.NewExactDistance(0, 1), geom.NewExactDistance(1, 1)
	}
	a := bs.hull.Antipodal()
	s := a.Edge().Primitive()
	h := s.Det(a.Start.VectorTo(a.Vertex))
	if h < 0 {
		h = -h
	}
	p := s.Chessboard()
	return geom.NewExactDistance(int(h), p), geom.NewExactDistance(int(h)+1, p)
}

// Line returns the thinnest digital straight line containing the points.
func (bs *Proto) Line() DigitalStraightLine {
	a := bs.hull.Antipodal()
	s := hull.Normalize(a.Edge().Primitive())
	la, lb := s.Y, -s.X
	ce := la*a.Start.X + lb*a.Start.Y
	cv := la*a.Vertex.X + lb*a.Vertex.Y
	return DigitalStraightLine{A: la, B: lb, C: min(ce, cv), Nu: absInt(cv-ce) + 1}
}

// SupportVector returns the direction of the hull edge realising the width.
func (bs *Proto) SupportVector() geom.Vector {
	return bs.hull.SupportVector()
}

// AddLeft tries to extend the segment at its front.
func (bs *Proto) AddLeft(p geom.Point) bool { return bs.addPoint(p, true) }

// AddRight tries to extend the segment at its back.
func (bs *Proto) AddRight(p geom.Point) bool { return bs.addPoint(p, false) }

// AddLeftSorted is AddLeft ignoring a point equal to the current front.
func (bs *Proto) AddLeftSorted(p geom.Point) bool {
	if p == bs.pts.front() {
		return false
	}
	return bs.addPoint(p, true)
}

// AddRightSorted is AddRight ignoring a point equal to the current back.
func (bs *Proto) AddRightSorted(p geom.Point) bool {
	if p == bs.pts.back() {
		return false
	}
	return bs.addPoint(p, false)
}

func (bs *Proto) addPoint(p geom.Point, onLeft bool) bool {
	if !bs.alive {
		return false
	}
	bs.hull.Insert(p)
	if _, digital := bs.thickness(); digital.GreaterThan(bs.maxWidth) {
		bs.hull.Rollback(1)
		return false
	}
	bs.hull.Commit()
	if onLeft {
		bs.pts.left = append(bs.pts.left, p)
		bs.leftOK = true
	} else {
		bs.pts.right = append(bs.pts.right, p)
		bs.rightOK = true
	}
	bs.updateShape()
	return true
}

func (bs *Proto) updateShape() {
	bs.notFlat = bs.hull.Len() > 2
	bs.flat = bs.hull.Len() == 2
}

// RemoveLeft drops the n front-most points.
func (bs *Proto) RemoveLeft(n int) {
	bs.pts.removeLeft(n)
	bs.leftOK = len(bs.pts.left) > 0
	bs.rebuild()
}

// RemoveRight drops the n back-most points.
func (bs *Proto) RemoveRight(n int) {
	bs.pts.removeRight(n)
	bs.rightOK = len(bs.pts.right) > 0
	bs.rebuild()
}

func (bs *Proto) rebuild() {
	h := hull.New(bs.pts.initial)
	for _, p := range bs.pts.left {
		h.Insert(p)
	}
	for _, p := range bs.pts.right {
		h.Insert(p)
	}
	h.Commit()
	bs.hull = h
	bs.updateShape()
}

// EndOfBirth freezes the segment. It returns nil when fewer than two points
// were accepted. The prototype cannot grow afterwards.
func (bs *Proto) EndOfBirth() *BlurredSegment {
	if !bs.alive {
		return nil
	}
	bs.alive = false
	if bs.Size() < 2 || bs.hull.Len() < 2 {
		return nil
	}
	strict, _ := bs.thickness()
	return &BlurredSegment{
		points:  bs.pts.all(),
		initial: len(bs.pts.left),
		line:    bs.Line(),
		support: bs.SupportVector(),
		strict:  strict,
	}
}
