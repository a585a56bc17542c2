// Package pkg provides the core libraries for pathorder, the toolpath
// ordering stage of a 3D-printing slicer.
//
// # Overview
//
// A sliced layer is a set of labeled polylines (perimeters, infill, support)
// plus the boundary loops of the part. pathorder decides the order and
// direction in which those polylines are printed, inserting travel moves
// ("connections") that never cross a boundary. The pkg directory is organized
// into four areas:
//
//  1. Geometry: [geom], [boundary] and [containment]
//  2. Ordering: [toolpath], [fastgraph] and [optimizer]
//  3. Input/output: [layerio] and [render]
//  4. Infrastructure: [pipeline], [cache], [observability] and [errors]
//
// # Architecture
//
// The typical data flow:
//
//	layer.json
//	     ↓
//	[layerio] package (decode + validate)
//	     ↓
//	[optimizer] package (buckets, graph walk, stitching)
//	     ↓
//	[layerio] / [render] packages (JSON runs, SVG, DOT)
//
// # Quick Start
//
//	layer, _ := layerio.ImportLayer("layer.json")
//
//	f, _ := optimizer.NewFastGraph(optimizer.DefaultConfig(), nil)
//	for l := range layer.BoundaryLoops() {
//	    f.AddBoundaryLoop(l)
//	}
//	_ = optimizer.AddAll(f, layer.Loops())
//	_ = optimizer.AddAll(f, layer.OpenPaths())
//
//	runs, _ := f.Optimize(ctx)
//	_ = layerio.ExportOutput(layerio.NewOutput(runs), "runs.json")
//
// [pipeline] wraps these steps with option validation, caching and metrics.
// It is the entry point used by the CLI and the HTTP server.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/optimizer    # Specific package
//	go test -run Example ./... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/geom
// [boundary]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/boundary
// [containment]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/containment
// [toolpath]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/toolpath
// [fastgraph]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/fastgraph
// [optimizer]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/optimizer
// [layerio]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/layerio
// [render]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pathorder/pkg/errors
package pkg
