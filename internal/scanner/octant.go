package scanner

import "github.com/ironsheep/blurred-segments/internal/geom"

// Octant is the signed axis permutation that maps a direction to the
// canonical frame, where it has coordinates (u, v) with u >= v >= 0.
type Octant struct {
	Swap bool // |dy| > |dx|
	NegX bool // dx < 0
	NegY bool // dy < 0
}

// OctantOf classifies d. The zero vector maps to the identity.
func OctantOf(d geom.Vector) Octant {
	ax, ay := d.X, d.Y
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	return Octant{Swap: ay > ax, NegX: d.X < 0, NegY: d.Y < 0}
}

// Number returns the octant index, 1 to 8, counted from the +x axis towards
// the +y axis.
func (o Octant) Number() int {
	switch {
	case !o.NegX && !o.NegY:
		if o.Swap {
			return 2
		}
		return 1
	case o.NegX && !o.NegY:
		if o.Swap {
			return 3
		}
		return 4
	case o.NegX && o.NegY:
		if o.Swap {
			return 6
		}
		return 5
	}
	if o.Swap {
		return 7
	}
	return 8
}

// ToLocal maps an image point into the canonical frame.
func (o Octant) ToLocal(p geom.Point) geom.Point {
	x, y := p.X, p.Y
	if o.NegX {
		x = -x
	}
	if o.NegY {
		y = -y
	}
	if o.Swap {
		x, y = y, x
	}
	return geom.Point{X: x, Y: y}
}

// ToImage maps a canonical point back into the image.
func (o Octant) ToImage(q geom.Point) geom.Point {
	x, y := q.X, q.Y
	if o.Swap {
		x, y = y, x
	}
	if o.NegY {
		y = -y
	}
	if o.NegX {
		x = -x
	}
	return geom.Point{X: x, Y: y}
}

// VectorToLocal maps an image vector into the canonical frame.
func (o Octant) VectorToLocal(v geom.Vector) geom.Vector {
	q := o.ToLocal(geom.Point{X: v.X, Y: v.Y})
	return geom.Vector{X: q.X, Y: q.Y}
}

// Det is the determinant of the permutation, +1 or -1.
func (o Octant) Det() int {
	d := 1
	if o.Swap {
		d = -d
	}
	if o.NegX {
		d = -d
	}
	if o.NegY {
		d = -d
	}
	return d
}
