// Package segment holds blurred segments: the growing prototype used while
// tracking and the immutable result it yields.
//
// A blurred segment is a run of pixels that fits inside a digital straight
// line of bounded isothetic thickness. The prototype keeps the convex hull of
// its points and accepts a new point only while the hull stays thin enough.
package segment

import (
	"fmt"

	"github.com/ironsheep/blurred-segments/internal/geom"
)

// DigitalStraightLine is the set of pixels (x, y) with
// C <= A*x + B*y <= C + Nu - 1.
type DigitalStraightLine struct {
	A  int `json:"a"`
	B  int `json:"b"`
	C  int `json:"c"`
	Nu int `json:"nu"`
}

// Line is the Euclidean line A*x + B*y = C.
type Line struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

func (l DigitalStraightLine) String() string {
	return fmt.Sprintf("%d <= %dx + %dy <= %d", l.C, l.A, l.B, l.C+l.Nu-1)
}

// Contains reports whether p lies between the bounding lines.
func (l DigitalStraightLine) Contains(p geom.Point) bool {
	r := l.A*p.X + l.B*p.Y
	return r >= l.C && r <= l.C+l.Nu-1
}

// Period returns max(|A|, |B|).
func (l DigitalStraightLine) Period() int {
	return max(absInt(l.A), absInt(l.B))
}

// BoundingLines returns the two leaning lines of the digital line.
func (l DigitalStraightLine) BoundingLines() (Line, Line) {
	return Line{A: l.A, B: l.B, C: l.C}, Line{A: l.A, B: l.B, C: l.C + l.Nu - 1}
}

// CentralLine returns the line halfway between the bounding lines, with
// doubled coefficients to stay integral.
func (l DigitalStraightLine) CentralLine() Line {
	return Line{A: 2 * l.A, B: 2 * l.B, C: 2*l.C + l.Nu - 1}
}

// Thickness returns the isothetic thickness Nu / Period.
func (l DigitalStraightLine) Thickness() geom.ExactDistance {
	return geom.NewExactDistance(l.Nu, l.Period())
}

// Direction returns the direction vector (-B, A).
func (l DigitalStraightLine) Direction() geom.Vector {
	return geom.Vector{X: -l.B, Y: l.A}
}

// DigitalStraightSegment is a digital straight line restricted to the span
// between two end points.
type DigitalStraightSegment struct {
	Line  DigitalStraightLine `json:"line"`
	Start geom.Point          `json:"start"`
	End   geom.Point          `json:"end"`
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
