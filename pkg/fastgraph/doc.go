// Package fastgraph provides the mutable directed graph walked by the
// toolpath optimizer.
//
// Nodes live in an arena and are addressed by a [Handle]: a slot index plus a
// generation counter. Destroying a node bumps its slot's generation, so
// handles captured before the destruction are detected as stale instead of
// silently aliasing a reused slot. Freed slots go on a free list and are only
// handed out again by [Graph.CreateNode].
//
// Every node keeps forward (outgoing) and reverse (incoming) adjacency.
// [Graph.Connect] and [Graph.Disconnect] update both sides together, so an
// edge a→b always appears in a's forward list and b's reverse list. Physical
// toolpath segments are added as a pair of opposite edges; synthetic travel
// connectors are single edges.
//
// Walkers mutate the graph while traversing it. [Node.Forward] returns a
// snapshot, so removing edges after choosing one never invalidates the
// choice.
package fastgraph
