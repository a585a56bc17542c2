package optimizer

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/fastgraph"
	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// edgeLess reports whether edge cost a is a better next step than b given
// the incoming travel direction. Higher priority wins outright. Distances
// within Coarseness tie and are then ranked by an effective distance that
// penalizes turning.
func (c Config) edgeLess(a, b fastgraph.Cost, incoming r2.Point) bool {
	if a.Label.Priority != b.Label.Priority {
		return a.Label.Priority > b.Label.Priority
	}
	if math.Abs(a.Distance-b.Distance) > c.Coarseness {
		return a.Distance < b.Distance
	}
	return c.effectiveDistance(a, incoming) < c.effectiveDistance(b, incoming)
}

// effectiveDistance adds a turn penalty in [0, 2*DirectionWeight]: zero for
// continuing straight, the maximum for reversing.
func (c Config) effectiveDistance(cost fastgraph.Cost, incoming r2.Point) float64 {
	return cost.Distance + c.DirectionWeight*(1-cost.Alignment(incoming))
}

// entryLess reports whether node a is a better place to start a run than b.
// Distance to the history point decides unless within Coarseness; then
// higher priority wins.
func (c Config) entryLess(a, b *fastgraph.Node, history r2.Point) bool {
	da := geom.Distance(a.Position, history)
	db := geom.Distance(b.Position, history)
	if math.Abs(da-db) > c.Coarseness {
		return da < db
	}
	if a.Label.Priority != b.Label.Priority {
		return a.Label.Priority > b.Label.Priority
	}
	return da < db
}

// probe is a candidate connector target considered by buildLinks.
type probe struct {
	node     fastgraph.Handle
	label    toolpath.Label
	distance float64
}

// probeCompare sorts probes nearest first, breaking exact ties toward
// higher priority.
func probeCompare(a, b probe) int {
	switch {
	case a.distance < b.distance:
		return -1
	case a.distance > b.distance:
		return 1
	case a.label.Priority > b.label.Priority:
		return -1
	case a.label.Priority < b.label.Priority:
		return 1
	}
	return 0
}

// belowCutoff reports whether candidate ranks below the nearest candidate's
// priority. Link building stops there so a walk never jumps over nearer
// geometry of higher priority.
func belowCutoff(nearest, candidate toolpath.Label) bool {
	return candidate.Priority < nearest.Priority
}
