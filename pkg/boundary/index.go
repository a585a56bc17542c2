package boundary

import (
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/geom"
)

// Index is the union of every boundary registered for a layer.
type Index struct {
	all    *Set
	bounds r2.Rect
	loops  int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{all: NewSet(), bounds: r2.EmptyRect()}
}

// AddPath registers an open boundary. It contributes crossing segments but
// no bucket and does not grow the bounding box.
func (x *Index) AddPath(p geom.OpenPath) {
	x.all.InsertAll(p.Segments())
}

// AddLoop registers a closed boundary, grows the bounding box to cover it,
// and returns a private set holding only this loop's segments.
func (x *Index) AddLoop(l geom.Loop) *Set {
	segs := l.Segments()
	x.all.InsertAll(segs)
	for _, p := range l {
		x.bounds = x.bounds.AddPoint(p)
	}
	x.loops++

	private := NewSet()
	private.InsertAll(segs)
	return private
}

// CrossesBoundary reports whether seg touches any registered boundary.
func (x *Index) CrossesBoundary(seg geom.Segment) bool {
	return x.all.Crosses(seg)
}

// Bounds returns the bounding box of all registered loops. It is empty until
// the first loop is added.
func (x *Index) Bounds() r2.Rect { return x.bounds }

// Loops returns the number of registered closed boundaries.
func (x *Index) Loops() int { return x.loops }

// Len returns the number of boundary segments.
func (x *Index) Len() int { return x.all.Len() }

// Clear removes every boundary and resets the bounding box.
func (x *Index) Clear() {
	x.all = NewSet()
	x.bounds = r2.EmptyRect()
	x.loops = 0
}
