package geom

import "fmt"

// Vector is an integer displacement.
type Vector struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y int) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) String() string {
	return fmt.Sprintf("<%d,%d>", v.X, v.Y)
}

// Orthog returns v rotated by a quarter turn: (-y, x).
func (v Vector) Orthog() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// Invert returns -v.
func (v Vector) Invert() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Dot returns the scalar product of v and w.
func (v Vector) Dot(w Vector) int64 {
	return int64(v.X)*int64(w.X) + int64(v.Y)*int64(w.Y)
}

// Det returns the determinant of (v, w).
func (v Vector) Det(w Vector) int64 {
	return int64(v.X)*int64(w.Y) - int64(v.Y)*int64(w.X)
}

// Norm2 returns the squared Euclidean norm.
func (v Vector) Norm2() int64 {
	return v.Dot(v)
}

// Manhattan returns |x| + |y|.
func (v Vector) Manhattan() int {
	return abs(v.X) + abs(v.Y)
}

// Chessboard returns max(|x|, |y|).
func (v Vector) Chessboard() int {
	return max(abs(v.X), abs(v.Y))
}

// IsNull reports whether v is the zero vector.
func (v Vector) IsNull() bool {
	return v.X == 0 && v.Y == 0
}

// DirectedAs reports whether v and ref point to the same half plane.
func (v Vector) DirectedAs(ref Vector) bool {
	return v.Dot(ref) >= 0
}

// OrientedAs reports whether the angle between v and ref, regardless of
// sense, is below 30 degrees: cos² > 3/4.
func (v Vector) OrientedAs(ref Vector) bool {
	ps := v.Dot(ref)
	return 4*ps*ps > 3*v.Norm2()*ref.Norm2()
}

// NearlyAs reports whether the squared cosine between v and ref is at least
// percent/100. Both vectors must be non-null.
func (v Vector) NearlyAs(ref Vector, percent int) bool {
	ps := v.Dot(ref)
	return ps*ps*100 >= v.Norm2()*ref.Norm2()*int64(percent)
}

// Steps returns the Bresenham step pattern of v: one entry per unit move
// along the dominant axis, true when the minor coordinate also moves.
func (v Vector) Steps() []bool {
	u, w := abs(v.X), abs(v.Y)
	if w > u {
		u, w = w, u
	}
	steps := make([]bool, u)
	e := u
	for i := range steps {
		e -= 2 * w
		if e < 0 {
			e += 2 * u
			steps[i] = true
		}
	}
	return steps
}

// Primitive returns v divided by the gcd of its coordinates.
func (v Vector) Primitive() Vector {
	g := gcd(abs(v.X), abs(v.Y))
	if g <= 1 {
		return v
	}
	return Vector{X: v.X / g, Y: v.Y / g}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// FloorDiv returns floor(a / b) for b != 0.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CeilDiv returns ceil(a / b) for b != 0.
func CeilDiv(a, b int64) int64 {
	return -FloorDiv(-a, b)
}
