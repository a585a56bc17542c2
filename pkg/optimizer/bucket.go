package optimizer

import (
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/boundary"
	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/fastgraph"
	"github.com/matzehuels/pathorder/pkg/geom"
)

// bucket scopes one closed boundary loop: its own segments for point
// location and the graph of everything printed inside it.
type bucket struct {
	loop   geom.Loop
	bounds *boundary.Set
	graph  *fastgraph.Graph
}

// pickBucket returns the first bucket whose loop encloses p. A ray is cast
// from p to a point beyond the lower left corner of the boundary bounding
// box; an odd crossing count against a bucket's segments means p is inside.
func (f *FastGraph) pickBucket(p r2.Point) (*bucket, error) {
	lo := f.index.Bounds().Lo()
	target := r2.Point{X: lo.X - f.cfg.BucketMargin, Y: lo.Y - f.cfg.BucketMargin}
	ray := geom.Seg(p, target)

	for _, b := range f.buckets {
		if b.bounds.CountCrossings(ray)%2 == 1 {
			return b, nil
		}
	}

	f.logger.Error("point did not fall into any bucket",
		"point", p,
		"lo", lo,
		"hi", f.index.Bounds().Hi())
	return nil, errors.New(errors.ErrCodeNoBucket,
		"point (%g, %g) lies outside every boundary loop", p.X, p.Y)
}
