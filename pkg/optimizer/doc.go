// Package optimizer orders labeled toolpaths for one layer.
//
// # FastGraph
//
// [FastGraph] partitions the layer into buckets, one per closed boundary
// loop, and builds a graph per bucket: every physical segment becomes a pair
// of opposite edges, open path ends and loop vertices become entry nodes.
// [FastGraph.Optimize] then repeats:
//
//  1. Pick the bucket holding the entry nearest to the history point.
//  2. Walk its graph. A run starts at the best entry and keeps following the
//     best outgoing edge (highest priority, then shortest, then straightest),
//     consuming edges as it goes. At a dead end a single connector edge is
//     built to the nearest entry reachable without touching a boundary.
//  3. When no edge or connector remains, start a new run from the nearest
//     remaining entry until the bucket's graph is empty.
//
// Consecutive points with the same label form a run; a label change starts a
// new run that begins where the previous one ended. With [StrategyStitch]
// the runs of each bucket are additionally re-stitched by [FastGraph.Stitch].
//
// Point location uses ray parity: a point belongs to the first bucket whose
// loop the ray from the point to beyond the boundary bounding box crosses an
// odd number of times. Geometry outside every bucket is rejected with a
// NO_BUCKET error.
//
// # Simple
//
// [Simple] is the bucket-free variant: nearest loop first, then nearest open
// path, optionally merging consecutive outputs across legal joins.
//
// # Usage
//
//	fg, err := optimizer.NewFastGraph(optimizer.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	fg.AddBoundaryLoop(outline)
//	if err := fg.AddLoop(perimeter, toolpath.New(toolpath.KindPerimeter, 2)); err != nil {
//	    return err
//	}
//	runs, err := fg.Optimize(ctx)
package optimizer
