package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Unit returns the unit vector of v. The second result is false when v is the
// zero vector, in which case the returned direction is the zero vector.
func Unit(v r2.Point) (r2.Point, bool) {
	n := v.Norm()
	if n == 0 || math.IsNaN(n) {
		return r2.Point{}, false
	}
	return v.Mul(1 / n), true
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// orient returns twice the signed area of triangle abc.
// Positive means c lies to the left of the directed line a→b.
func orient(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// boundsOf returns the smallest rectangle containing pts.
func boundsOf(pts []r2.Point) r2.Rect {
	r := r2.EmptyRect()
	for _, p := range pts {
		r = r.AddPoint(p)
	}
	return r
}
