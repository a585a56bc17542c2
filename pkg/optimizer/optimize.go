package optimizer

import (
	"context"
	"math"
	"slices"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/fastgraph"
	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Optimize walks every non-empty graph, nearest bucket first, and returns
// the ordered runs. Runs with fewer than two points are dropped. With
// StrategyStitch each bucket's runs are then re-stitched while that strictly
// reduces unjoined travel.
//
// The registered paths are consumed; boundaries are kept. Optimize fails
// only when ctx is done; geometry outside every bucket is reported by
// AddPath and AddLoop instead.
func (f *FastGraph) Optimize(ctx context.Context) (toolpath.Paths, error) {
	perBucket, err := f.optimize1(ctx)
	if err != nil {
		return nil, err
	}

	var out toolpath.Paths
	for _, runs := range perBucket {
		if f.cfg.Strategy == StrategyStitch {
			runs = f.improve(runs)
		}
		out = append(out, runs...)
	}
	return out, nil
}

// improve re-stitches runs up to IterativeEffort times, keeping an ordering
// only when it strictly lowers waste.
func (f *FastGraph) improve(runs toolpath.Paths) toolpath.Paths {
	for i := 0; i < f.cfg.IterativeEffort; i++ {
		next, better := f.Stitch(runs)
		if !better {
			break
		}
		f.logger.Debug("stitch pass improved ordering", "pass", i+1, "runs", len(next))
		runs = next
	}
	return runs
}

// optimize1 repeatedly picks the pending graph holding the entry nearest to
// the history point and walks it to exhaustion.
func (f *FastGraph) optimize1(ctx context.Context) ([]toolpath.Paths, error) {
	var pending []*fastgraph.Graph
	for _, g := range f.Graphs() {
		if !g.Empty() {
			pending = append(pending, g)
		}
	}
	f.logger.Debug("optimizing layer", "buckets", len(pending), "nodes", f.Nodes())

	var out []toolpath.Paths
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		best, bestDist := 0, math.Inf(1)
		for i, g := range pending {
			for _, n := range g.Entries() {
				if d := geom.SquaredDistance(n.Position, f.history); d < bestDist {
					best, bestDist = i, d
				}
			}
		}

		runs := f.optimize1Inner(pending[best])
		f.logger.Debug("walked bucket", "runs", len(runs), "remaining", len(pending)-1)
		out = append(out, runs)
		pending = slices.Delete(pending, best, best+1)
	}
	return out, nil
}

// optimize1Inner consumes g. Each run starts at the best entry node and
// follows the best outgoing edge until none is left even after trying to
// build a connector.
func (f *FastGraph) optimize1Inner(g *fastgraph.Graph) toolpath.Paths {
	asm := newAssembler(&f.history)
	var unit r2.Point

	for !g.Empty() {
		cur := f.nearestEntry(g)
		start := g.Node(cur)
		asm.appendPoint(start.Position, start.Label)

		for {
			link, ok := f.bestLink(g, cur, unit)
			if !ok {
				break
			}
			unit = link.Cost.Unit
			asm.appendPoint(g.Node(link.Node).Position, link.Cost.Label)

			g.Disconnect(cur, link.Node)
			g.Disconnect(link.Node, cur)
			if g.Node(cur).Isolated() {
				_ = g.DestroyNode(cur)
			}
			cur = link.Node
		}

		f.retire(g, cur)
		asm.flush()
	}
	return asm.runs()
}

// nearestEntry returns the entry node that best starts a run from the
// history point. It falls back to any live node if no entries remain.
func (f *FastGraph) nearestEntry(g *fastgraph.Graph) fastgraph.Handle {
	var best fastgraph.Handle
	var bestNode *fastgraph.Node
	for h, n := range g.Entries() {
		if bestNode == nil || f.cfg.entryLess(n, bestNode, f.history) {
			best, bestNode = h, n
		}
	}
	if bestNode != nil {
		return best
	}
	for h := range g.Nodes() {
		return h
	}
	return best
}

// retire removes the node a run ended on. A dead end has no forward edges;
// any incoming edges left on it can no longer be walked and are dropped so
// the walk always terminates.
func (f *FastGraph) retire(g *fastgraph.Graph, h fastgraph.Handle) {
	n := g.Node(h)
	if n == nil {
		return
	}
	if !n.ReverseEmpty() {
		f.logger.Debug("dropping unreachable edges", "node", h, "edges", len(n.Reverse()))
		for _, l := range n.Reverse() {
			g.Disconnect(l.Node, h)
		}
	}
	if n.ForwardEmpty() {
		_ = g.DestroyNode(h)
	}
}

// bestLink returns the best outgoing edge of h, building a connector first
// if h has none.
func (f *FastGraph) bestLink(g *fastgraph.Graph, h fastgraph.Handle, incoming r2.Point) (fastgraph.Link, bool) {
	if g.Node(h).ForwardEmpty() {
		f.buildLinks(g, h)
	}
	links := g.Node(h).Forward()
	if len(links) == 0 {
		return fastgraph.Link{}, false
	}
	best := links[0]
	for _, l := range links[1:] {
		if f.cfg.edgeLess(l.Cost, best.Cost, incoming) {
			best = l
		}
	}
	return best, true
}

// buildLinks connects from to the nearest other entry node reachable by a
// straight join that touches no boundary. Candidates are tried nearest
// first, and the search stops at the first candidate of lower priority than
// the nearest one. At most one connector is created.
func (f *FastGraph) buildLinks(g *fastgraph.Graph, from fastgraph.Handle) {
	origin := g.Node(from).Position

	var probes []probe
	for h, n := range g.Entries() {
		if h == from {
			continue
		}
		probes = append(probes, probe{
			node:     h,
			label:    n.Label,
			distance: geom.Distance(origin, n.Position),
		})
	}
	if len(probes) == 0 {
		return
	}
	slices.SortStableFunc(probes, probeCompare)

	for _, p := range probes {
		if belowCutoff(probes[0].label, p.label) {
			return
		}
		target := g.Node(p.node).Position
		if f.index.CrossesBoundary(geom.Seg(origin, target)) {
			continue
		}
		_ = g.Connect(from, p.node, fastgraph.NewCost(toolpath.Connection(), origin, target))
		f.logger.Debug("built connector", "from", origin, "to", target, "distance", p.distance)
		return
	}
}
