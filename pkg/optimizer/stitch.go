package optimizer

import (
	"math"
	"slices"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// SplitPaths groups runs into fragments: maximal sequences in which every
// run starts where the previous one ended. Runs with fewer than two points
// are skipped. The returned waste is the total jump distance between
// consecutive fragments, the travel the ordering spends without printing.
func SplitPaths(runs toolpath.Paths) ([]toolpath.Paths, float64) {
	var (
		fragments []toolpath.Paths
		waste     float64
		last      geom.OpenPath
	)
	for _, r := range runs {
		if r.Len() < 2 {
			continue
		}
		if last == nil || r.Start() != last.End() {
			if last != nil {
				waste += geom.Distance(last.End(), r.Start())
			}
			fragments = append(fragments, nil)
		}
		k := len(fragments) - 1
		fragments[k] = append(fragments[k], r)
		last = r.Path
	}
	return fragments, waste
}

// Stitch re-orders runs to reduce unjoined travel. Starting from the first
// fragment it repeatedly moves to another fragment: the nearest one
// reachable by a straight join touching no boundary, provided its priority
// is at least that of the nearest fragment overall, in which case a
// connection run is inserted; otherwise the nearest fragment, paying its
// distance as waste.
//
// Stitch reports whether the new ordering's waste is strictly lower than
// that of runs. Callers keep the original ordering otherwise.
func (f *FastGraph) Stitch(runs toolpath.Paths) (toolpath.Paths, bool) {
	fragments, before := SplitPaths(runs)
	if len(fragments) == 0 {
		return nil, false
	}

	var (
		out   toolpath.Paths
		after float64
		cur   = 0
	)
	for {
		current := fragments[cur]
		out = append(out, current...)
		fragments = slices.Delete(fragments, cur, cur+1)
		if len(fragments) == 0 {
			break
		}

		from := current[len(current)-1].End()
		nearest, connected := f.stitchTargets(from, fragments)

		if connected >= 0 {
			to := fragments[connected][0].Start()
			out = append(out, toolpath.LabeledPath{
				Label: toolpath.Connection(),
				Path:  geom.OpenPath{from, to},
			})
			cur = connected
			continue
		}
		after += geom.Distance(from, fragments[nearest][0].Start())
		cur = nearest
	}

	f.logger.Debug("stitched runs", "waste_before", before, "waste_after", after)
	return out, after < before
}

// stitchTargets returns the index of the fragment nearest to from, and the
// index of the nearest fragment reachable by a legal join whose priority is
// at least the nearest fragment's, or -1 if there is none.
func (f *FastGraph) stitchTargets(from r2.Point, fragments []toolpath.Paths) (nearest, connected int) {
	nearest, connected = -1, -1
	nearestDist, connectedDist := math.Inf(1), math.Inf(1)
	dists := make([]float64, len(fragments))

	for i, frag := range fragments {
		d := geom.Distance(from, frag[0].Start())
		dists[i] = d
		if d < nearestDist {
			nearest, nearestDist = i, d
		}
	}

	floor := fragments[nearest][0].Label.Priority
	for i, frag := range fragments {
		if frag[0].Label.Priority < floor || dists[i] >= connectedDist {
			continue
		}
		if f.index.CrossesBoundary(geom.Seg(from, frag[0].Start())) {
			continue
		}
		connected, connectedDist = i, dists[i]
	}
	return nearest, connected
}
