package geom

import "fmt"

// Point is an integer pixel position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// VectorTo returns the vector from p to q.
func (p Point) VectorTo(q Point) Vector {
	return Vector{X: q.X - p.X, Y: q.Y - p.Y}
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(q.X-p.X) + abs(q.Y-p.Y)
}

// Chessboard returns the L-infinity distance between p and q.
func (p Point) Chessboard(q Point) int {
	return max(abs(q.X-p.X), abs(q.Y-p.Y))
}

// IsConnectedTo reports whether q is p or one of its 8 neighbours.
func (p Point) IsConnectedTo(q Point) bool {
	return abs(q.X-p.X) <= 1 && abs(q.Y-p.Y) <= 1
}

// ColinearTo reports whether p, p1 and p2 lie on one line.
func (p Point) ColinearTo(p1, p2 Point) bool {
	return cross(p, p1, p2) == 0
}

// ToLeft reports whether the turn p -> p1 -> p2 is strictly
// counter-clockwise in a y-up frame.
func (p Point) ToLeft(p1, p2 Point) bool {
	return cross(p, p1, p2) > 0
}

// ToLeftOrOn is ToLeft including the colinear case.
func (p Point) ToLeftOrOn(p1, p2 Point) bool {
	return cross(p, p1, p2) >= 0
}

func cross(o, a, b Point) int64 {
	return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(b.X-o.X)*int64(a.Y-o.Y)
}

// Cross returns the z component of (a-o) x (b-o).
func Cross(o, a, b Point) int64 {
	return cross(o, a, b)
}

// DrawTo returns the naive digital segment from p to q, both included,
// appended to buf. The segment is 8-connected and follows the classic
// Bresenham error walk.
func (p Point) DrawTo(q Point, buf []Point) []Point {
	dx, dy := abs(q.X-p.X), abs(q.Y-p.Y)
	sx, sy := sign(q.X-p.X), sign(q.Y-p.Y)
	x, y := p.X, p.Y
	if dx >= dy {
		e := dx
		for i := 0; i <= dx; i++ {
			buf = append(buf, Point{X: x, Y: y})
			x += sx
			e -= 2 * dy
			if e < 0 {
				y += sy
				e += 2 * dx
			}
		}
		return buf
	}
	e := dy
	for i := 0; i <= dy; i++ {
		buf = append(buf, Point{X: x, Y: y})
		y += sy
		e -= 2 * dx
		if e < 0 {
			x += sx
			e += 2 * dy
		}
	}
	return buf
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func sign(a int) int {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return 0
}
