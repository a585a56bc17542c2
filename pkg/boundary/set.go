package boundary

import (
	"github.com/dhconnelly/rtreego"

	"github.com/matzehuels/pathorder/pkg/geom"
)

// Pad is added to every side of a bounding box handed to the R-tree.
// Degenerate boxes (axis-aligned or zero-length segments) would otherwise be
// rejected by rtreego, and touching boxes would be lost to rounding.
const Pad = 1e-9

const (
	minBranch = 4
	maxBranch = 16
)

// item adapts a segment to rtreego.Spatial.
type item struct {
	seg  geom.Segment
	rect rtreego.Rect
}

func (it *item) Bounds() rtreego.Rect { return it.rect }

// Set is a collection of boundary segments supporting exact crossing queries.
// The zero value is not usable; call [NewSet].
type Set struct {
	tree *rtreego.Rtree
	segs []geom.Segment
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{tree: rtreego.NewTree(2, minBranch, maxBranch)}
}

// Insert adds a segment.
func (s *Set) Insert(seg geom.Segment) {
	s.tree.Insert(&item{seg: seg, rect: rectOf(seg)})
	s.segs = append(s.segs, seg)
}

// InsertAll adds every segment.
func (s *Set) InsertAll(segs []geom.Segment) {
	for _, seg := range segs {
		s.Insert(seg)
	}
}

// Len returns the number of stored segments.
func (s *Set) Len() int { return len(s.segs) }

// Segments returns the stored segments in insertion order.
func (s *Set) Segments() []geom.Segment { return s.segs }

// Candidates returns the segments whose padded bounding box overlaps the
// probe's. The result may contain segments that do not intersect probe.
func (s *Set) Candidates(probe geom.Segment) []geom.Segment {
	if len(s.segs) == 0 {
		return nil
	}
	hits := s.tree.SearchIntersect(rectOf(probe))
	out := make([]geom.Segment, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*item).seg)
	}
	return out
}

// Search returns the segments that exactly intersect probe.
func (s *Set) Search(probe geom.Segment) []geom.Segment {
	var out []geom.Segment
	for _, c := range s.Candidates(probe) {
		if probe.Intersects(c) {
			out = append(out, c)
		}
	}
	return out
}

// Crosses reports whether probe touches any stored segment.
func (s *Set) Crosses(probe geom.Segment) bool {
	for _, c := range s.Candidates(probe) {
		if probe.Intersects(c) {
			return true
		}
	}
	return false
}

// CountCrossings returns how many stored segments the ray crosses under the
// half-open parity rule of [geom.Segment.Crosses]. An odd result means the
// ray's start lies inside the closed figure the set describes.
func (s *Set) CountCrossings(ray geom.Segment) int {
	n := 0
	for _, c := range s.Candidates(ray) {
		if ray.Crosses(c) {
			n++
		}
	}
	return n
}

// rectOf converts a segment's bounding box into a padded rtreego rectangle.
func rectOf(seg geom.Segment) rtreego.Rect {
	b := seg.Bounds()
	lo, hi := b.Lo(), b.Hi()
	r, err := rtreego.NewRect(
		rtreego.Point{lo.X - Pad, lo.Y - Pad},
		[]float64{hi.X - lo.X + 2*Pad, hi.Y - lo.Y + 2*Pad},
	)
	if err != nil {
		// Lengths are strictly positive by construction.
		panic(err)
	}
	return r
}
