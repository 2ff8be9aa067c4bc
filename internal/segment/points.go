package segment

import "github.com/ironsheep/blurred-segments/internal/geom"

// pointList is a list growing on both ends from an initial point. Left
// points are stored nearest first.
type pointList struct {
	left    []geom.Point
	initial geom.Point
	right   []geom.Point
}

func (l *pointList) size() int {
	return len(l.left) + 1 + len(l.right)
}

func (l *pointList) front() geom.Point {
	if n := len(l.left); n > 0 {
		return l.left[n-1]
	}
	return l.initial
}

func (l *pointList) back() geom.Point {
	if n := len(l.right); n > 0 {
		return l.right[n-1]
	}
	return l.initial
}

func (l *pointList) removeLeft(n int) {
	l.left = l.left[:len(l.left)-min(n, len(l.left))]
}

func (l *pointList) removeRight(n int) {
	l.right = l.right[:len(l.right)-min(n, len(l.right))]
}

// all returns the points from front to back in a new slice.
func (l *pointList) all() []geom.Point {
	pts := make([]geom.Point, 0, l.size())
	for i := len(l.left) - 1; i >= 0; i-- {
		pts = append(pts, l.left[i])
	}
	pts = append(pts, l.initial)
	return append(pts, l.right...)
}
