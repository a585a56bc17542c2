package pipeline

import (
	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/containment"
	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/layerio"
)

// regions builds the containment hierarchy of the layer's boundary loops.
func regions(layer *layerio.Layer) *containment.Tree {
	root := containment.NewRoot()
	for l := range layer.BoundaryLoops() {
		root.Insert(l)
	}
	return root
}

// checkEnclosed fails with NO_BUCKET naming the first shape that starts
// outside every boundary loop. Layers without boundary loops place all
// shapes in one region and are not checked.
func checkEnclosed(layer *layerio.Layer, logger *log.Logger) error {
	if len(layer.Boundaries.Loops) == 0 {
		return nil
	}
	root := regions(layer)
	deepest := 0
	for i, s := range layer.Paths {
		if len(s.Points) == 0 {
			continue
		}
		p := r2.Point{X: s.Points[0][0], Y: s.Points[0][1]}
		if root.Select(p) == root {
			return errors.New(errors.ErrCodeNoBucket,
				"path %d starts at (%g, %g), outside every boundary loop", i, p.X, p.Y)
		}
		deepest = max(deepest, root.Depth(p))
	}
	logger.Debug("boundary regions", "loops", root.Len(), "deepest", deepest)
	return nil
}
