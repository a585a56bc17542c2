// Package boundary indexes boundary segments for travel-crossing queries.
//
// A [Set] stores segments in an R-tree (github.com/dhconnelly/rtreego). Every
// query runs in two phases: the tree returns candidates whose padded bounding
// boxes overlap the probe, then each candidate is tested exactly with
// [geom.Segment.Intersects]. Boxes are padded by [Pad] on every side so the
// broad phase may over-report but never misses a touching segment.
//
// An [Index] is the layer-wide view: the union of every registered boundary
// plus the running bounding box of all closed boundary loops. Registering a
// loop also returns a private [Set] holding only that loop's segments, which
// the optimizer uses for point location.
package boundary
