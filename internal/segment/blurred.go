package segment

import "github.com/ironsheep/blurred-segments/internal/geom"

// Scan records the strip a segment was tracked in: its centre (or first
// end point) and its scan direction.
type Scan struct {
	Center    geom.Point  `json:"center"`
	Direction geom.Vector `json:"direction"`
}

// BlurredSegment is a finished blurred segment. It is never modified after
// creation.
type BlurredSegment struct {
	points  []geom.Point
	initial int
	line    DigitalStraightLine
	support geom.Vector
	strict  geom.ExactDistance
	scan    Scan
}

// SetScan records the strip the segment came from.
func (bs *BlurredSegment) SetScan(center geom.Point, dir geom.Vector) {
	bs.scan = Scan{Center: center, Direction: dir}
}

// Scan returns the strip the segment came from.
func (bs *BlurredSegment) Scan() Scan { return bs.scan }

// Size returns the number of points.
func (bs *BlurredSegment) Size() int { return len(bs.points) }

// Points returns a copy of the points, from front to back.
func (bs *BlurredSegment) Points() []geom.Point {
	return append([]geom.Point(nil), bs.points...)
}

// At returns the i-th point from the front.
func (bs *BlurredSegment) At(i int) geom.Point { return bs.points[i] }

// FrontPoint returns the first point.
func (bs *BlurredSegment) FrontPoint() geom.Point { return bs.points[0] }

// BackPoint returns the last point.
func (bs *BlurredSegment) BackPoint() geom.Point { return bs.points[len(bs.points)-1] }

// Center returns the point the segment was grown from.
func (bs *BlurredSegment) Center() geom.Point { return bs.points[bs.initial] }

// Line returns the fitted digital straight line.
func (bs *BlurredSegment) Line() DigitalStraightLine { return bs.line }

// Segment returns the fitted line restricted to the end points.
func (bs *BlurredSegment) Segment() DigitalStraightSegment {
	return DigitalStraightSegment{Line: bs.line, Start: bs.FrontPoint(), End: bs.BackPoint()}
}

// SupportVector returns the direction of the hull edge realising the width.
func (bs *BlurredSegment) SupportVector() geom.Vector { return bs.support }

// MinimalWidth returns the strict thickness at the end of growth.
func (bs *BlurredSegment) MinimalWidth() geom.ExactDistance { return bs.strict }

// Extent returns the number of pixels of a naive line joining the end points.
func (bs *BlurredSegment) Extent() int {
	return bs.FrontPoint().Chessboard(bs.BackPoint()) + 1
}

// SquaredLength returns the squared distance between the end points.
func (bs *BlurredSegment) SquaredLength() int64 {
	return bs.FrontPoint().VectorTo(bs.BackPoint()).Norm2()
}

// CenterOfIntersection returns the pixel where the line p1p2 crosses the
// central line of the segment, or Center when they are parallel.
func (bs *BlurredSegment) CenterOfIntersection(p1, p2 geom.Point) geom.Point {
	cl := bs.line.CentralLine()
	d := p1.VectorTo(p2)
	den := int64(cl.A)*int64(d.X) + int64(cl.B)*int64(d.Y)
	if den == 0 {
		return bs.Center()
	}
	num := int64(cl.C) - int64(cl.A)*int64(p1.X) - int64(cl.B)*int64(p1.Y)
	if den < 0 {
		num, den = -num, -den
	}
	return geom.Point{
		X: p1.X + int(roundDiv(num*int64(d.X), den)),
		Y: p1.Y + int(roundDiv(num*int64(d.Y), den)),
	}
}

// roundDiv returns a / b rounded half up, for b > 0.
func roundDiv(a, b int64) int64 {
	return geom.FloorDiv(2*a+b, 2*b)
}
