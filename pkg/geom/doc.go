// Package geom provides the planar primitives used by toolpath ordering.
//
// Points and rectangles come from [github.com/golang/geo/r2]. This package adds
// the pieces the ordering core needs on top of them:
//
//   - [Segment]: an ordered pair of points with exact intersection tests
//   - [OpenPath]: an open polyline
//   - [Loop]: a closed polygon whose closing edge is implied
//   - [Unit]: vector normalization that reports the zero vector instead of failing
//
// # Intersection Semantics
//
// [Segment.Intersects] treats segments as closed sets: touching endpoints and
// collinear overlap both count as an intersection. Travel moves that merely
// graze a boundary are therefore rejected.
//
// [Segment.Crosses] uses a half-open rule suited to ray casting: a ray passing
// exactly through a shared vertex of two boundary segments is counted once,
// which keeps parity tests stable on polygon corners.
package geom
