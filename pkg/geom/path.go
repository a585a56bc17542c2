package geom

import (
	"slices"

	"github.com/golang/geo/r2"
)

// OpenPath is an open polyline. Consecutive points form its segments.
type OpenPath []r2.Point

// Segments returns the segments between consecutive points.
func (p OpenPath) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p)-1)
	for i := 0; i+1 < len(p); i++ {
		segs = append(segs, Segment{A: p[i], B: p[i+1]})
	}
	return segs
}

// Bounds returns the bounding box of all points.
func (p OpenPath) Bounds() r2.Rect { return boundsOf(p) }

// Length returns the total length of the polyline.
func (p OpenPath) Length() float64 {
	total := 0.0
	for i := 0; i+1 < len(p); i++ {
		total += Distance(p[i], p[i+1])
	}
	return total
}

// Start returns the first point. It panics on an empty path.
func (p OpenPath) Start() r2.Point { return p[0] }

// End returns the last point. It panics on an empty path.
func (p OpenPath) End() r2.Point { return p[len(p)-1] }

// Reversed returns a reversed copy.
func (p OpenPath) Reversed() OpenPath {
	out := slices.Clone(p)
	slices.Reverse(out)
	return out
}

// Loop is a closed polygon. The edge from the last point back to the first
// is implied and must not be repeated in the point list.
type Loop []r2.Point

// Segments returns every edge of the loop including the closing edge.
func (l Loop) Segments() []Segment {
	if len(l) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(l))
	for i := range l {
		segs = append(segs, l.SegmentAfter(i))
	}
	return segs
}

// SegmentAfter returns the edge starting at vertex i.
func (l Loop) SegmentAfter(i int) Segment {
	return Segment{A: l[i], B: l[(i+1)%len(l)]}
}

// Bounds returns the bounding box of all vertices.
func (l Loop) Bounds() r2.Rect { return boundsOf(l) }

// Perimeter returns the total edge length including the closing edge.
func (l Loop) Perimeter() float64 {
	total := 0.0
	for _, s := range l.Segments() {
		total += s.Length()
	}
	return total
}

// SignedArea returns the shoelace area; positive for counter-clockwise loops.
func (l Loop) SignedArea() float64 {
	area := 0.0
	for i := range l {
		j := (i + 1) % len(l)
		area += l[i].X*l[j].Y - l[j].X*l[i].Y
	}
	return area / 2
}

// Contains reports whether p lies inside the loop using the even-odd rule.
// Points exactly on an edge may report either value.
func (l Loop) Contains(p r2.Point) bool {
	if len(l) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(l)-1; i < len(l); j, i = i, i+1 {
		a, b := l[i], l[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Winding returns the winding number of the loop around p: positive for
// counter-clockwise loops enclosing p, negative for clockwise ones, zero when
// p is outside.
func (l Loop) Winding(p r2.Point) int {
	wn := 0
	for i, a := range l {
		b := l[(i+1)%len(l)]
		if a.Y <= p.Y {
			if b.Y > p.Y && orient(a, b, p) > 0 {
				wn++
			}
		} else if b.Y <= p.Y && orient(a, b, p) < 0 {
			wn--
		}
	}
	return wn
}

// Encloses reports whether the loop winds around p a non-zero number of
// times. For simple loops it agrees with Contains away from the edges.
func (l Loop) Encloses(p r2.Point) bool {
	return len(l) >= 3 && l.Winding(p) != 0
}

// Rotated returns a copy of the loop starting at vertex i.
func (l Loop) Rotated(i int) Loop {
	out := make(Loop, 0, len(l))
	out = append(out, l[i:]...)
	return append(out, l[:i]...)
}

// Closed returns the loop as an open path that returns to its first vertex.
func (l Loop) Closed() OpenPath {
	if len(l) == 0 {
		return nil
	}
	out := make(OpenPath, 0, len(l)+1)
	out = append(out, l...)
	return append(out, l[0])
}
