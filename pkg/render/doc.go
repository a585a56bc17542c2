// Package render draws toolpath graphs and ordered runs for debugging.
//
// # SVG
//
// [GraphSVG] draws the live optimizer graphs: every node as a red circle and
// every directed edge as a black line. [RunsSVG] draws an ordered run
// sequence as polylines colored by label kind, with travel connections
// dashed and the print order marked by the first point of each run.
// Both are built with github.com/ajstarks/svgo.
//
//	var buf bytes.Buffer
//	err := render.RunsSVG(&buf, runs, render.Options{})
//
// # Graphviz
//
// [ToDOT] converts graphs to DOT with pinned node positions, and [RenderDOT]
// lays it out with the embedded Graphviz from github.com/goccy/go-graphviz.
//
//	dot := render.ToDOT(render.Options{Detailed: true}, graphs...)
//	svg, err := render.RenderDOT(ctx, dot)
package render
