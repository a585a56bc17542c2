package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Segment is an ordered pair of points. It serves both as the geometry of a
// directed graph edge and, undirected, as boundary geometry.
type Segment struct {
	A, B r2.Point
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b r2.Point) Segment { return Segment{A: a, B: b} }

// Length returns the segment length.
func (s Segment) Length() float64 { return Distance(s.A, s.B) }

// Delta returns B - A.
func (s Segment) Delta() r2.Point { return s.B.Sub(s.A) }

// Reverse returns the segment with its endpoints swapped.
func (s Segment) Reverse() Segment { return Segment{A: s.B, B: s.A} }

// Bounds returns the axis-aligned bounding box of the segment.
func (s Segment) Bounds() r2.Rect { return r2.RectFromPoints(s.A, s.B) }

// Degenerate reports whether both endpoints coincide.
func (s Segment) Degenerate() bool { return s.A == s.B }

// String implements fmt.Stringer.
func (s Segment) String() string {
	return fmt.Sprintf("[(%g, %g) → (%g, %g)]", s.A.X, s.A.Y, s.B.X, s.B.Y)
}

// Intersects reports whether s and o share at least one point. Both segments
// are closed: shared endpoints, an endpoint lying on the other segment, and
// collinear overlap all count.
func (s Segment) Intersects(o Segment) bool {
	d1 := sign(orient(o.A, o.B, s.A))
	d2 := sign(orient(o.A, o.B, s.B))
	d3 := sign(orient(s.A, s.B, o.A))
	d4 := sign(orient(s.A, s.B, o.B))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	switch {
	case d1 == 0 && onSegment(o, s.A):
		return true
	case d2 == 0 && onSegment(o, s.B):
		return true
	case d3 == 0 && onSegment(s, o.A):
		return true
	case d4 == 0 && onSegment(s, o.B):
		return true
	}
	return false
}

// Crosses reports whether the ray segment s crosses the boundary segment o
// under the half-open rule used for parity counting: an endpoint of o lying
// exactly on the line through s is treated as being on its negative side.
// Two boundary segments meeting at a vertex on the ray therefore contribute
// a single crossing when the boundary passes through, and zero or two when it
// only touches.
func (s Segment) Crosses(o Segment) bool {
	oa := orient(s.A, s.B, o.A) > 0
	ob := orient(s.A, s.B, o.B) > 0
	if oa == ob {
		return false
	}
	// o straddles the ray's line; check the ray's endpoints straddle o.
	sa := sign(orient(o.A, o.B, s.A))
	sb := sign(orient(o.A, o.B, s.B))
	return sa*sb <= 0
}

// onSegment reports whether p, known to be collinear with s, lies within the
// bounding box of s.
func onSegment(s Segment, p r2.Point) bool {
	return p.X >= math.Min(s.A.X, s.B.X) && p.X <= math.Max(s.A.X, s.B.X) &&
		p.Y >= math.Min(s.A.Y, s.B.Y) && p.Y <= math.Max(s.A.Y, s.B.Y)
}
