package optimizer

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/boundary"
	"github.com/matzehuels/pathorder/pkg/fastgraph"
	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/render"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// FastGraph orders toolpaths by walking per-bucket graphs.
//
// Register boundaries first: every closed boundary loop becomes a bucket,
// and paths added afterwards land in the bucket enclosing their first point.
// Paths added while no bucket exists go to a global graph that is walked as
// one more bucket without its own boundary.
//
// Optimize consumes the registered paths and keeps the boundaries, so the
// same value can order several path sets against one boundary set. A
// FastGraph is not safe for concurrent use.
type FastGraph struct {
	cfg     Config
	logger  *log.Logger
	index   *boundary.Index
	buckets []*bucket
	global  *fastgraph.Graph
	history r2.Point
}

// NewFastGraph returns an optimizer using cfg. A nil logger uses
// log.Default().
func NewFastGraph(cfg Config, logger *log.Logger) (*FastGraph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FastGraph{
		cfg:    cfg,
		logger: logger,
		index:  boundary.NewIndex(),
		global: fastgraph.New(),
	}, nil
}

// Config returns the optimizer's configuration.
func (f *FastGraph) Config() Config { return f.cfg }

// SetHistoryPoint sets the machine position the first run is chosen
// relative to. Callers carry it from one layer to the next.
func (f *FastGraph) SetHistoryPoint(p r2.Point) { f.history = p }

// HistoryPoint returns the last placed output point.
func (f *FastGraph) HistoryPoint() r2.Point { return f.history }

// AddBoundaryPath registers an open boundary that travel must not cross.
func (f *FastGraph) AddBoundaryPath(p geom.OpenPath) {
	f.index.AddPath(p)
}

// AddBoundaryLoop registers a closed boundary and creates its bucket.
func (f *FastGraph) AddBoundaryLoop(l geom.Loop) {
	private := f.index.AddLoop(l)
	f.buckets = append(f.buckets, &bucket{
		loop:   l,
		bounds: private,
		graph:  fastgraph.New(),
	})
}

// ClearBoundaries removes every boundary and bucket, including any paths
// already placed in a bucket.
func (f *FastGraph) ClearBoundaries() {
	f.index.Clear()
	f.buckets = nil
}

// ClearPaths removes every registered path and loop.
func (f *FastGraph) ClearPaths() {
	f.global.Clear()
	for _, b := range f.buckets {
		b.graph.Clear()
	}
}

// Buckets returns the number of registered closed boundaries.
func (f *FastGraph) Buckets() int { return len(f.buckets) }

// CrossesBoundary reports whether seg touches any registered boundary.
func (f *FastGraph) CrossesBoundary(seg geom.Segment) bool {
	return f.index.CrossesBoundary(seg)
}

// graphFor returns the graph geometry starting at p belongs in.
func (f *FastGraph) graphFor(p r2.Point) (*fastgraph.Graph, error) {
	if len(f.buckets) == 0 {
		return f.global, nil
	}
	b, err := f.pickBucket(p)
	if err != nil {
		return nil, err
	}
	return b.graph, nil
}

// AddPath adds an open path as a chain of nodes. Both ends are entries.
// Empty paths are ignored.
func (f *FastGraph) AddPath(p geom.OpenPath, label toolpath.Label) error {
	if len(p) == 0 {
		return nil
	}
	g, err := f.graphFor(p[0])
	if err != nil {
		return err
	}
	last := g.CreateNode(p[0], label, true)
	for i := 1; i < len(p); i++ {
		cur := g.CreateNode(p[i], label, i == len(p)-1)
		connectPair(g, last, cur, p[i-1], p[i], label)
		last = cur
	}
	return nil
}

// AddLoop adds a closed loop as a cycle of nodes. Every vertex is an entry.
// Loops with fewer than two points are ignored.
func (f *FastGraph) AddLoop(l geom.Loop, label toolpath.Label) error {
	if len(l) < 2 {
		return nil
	}
	g, err := f.graphFor(l[0])
	if err != nil {
		return err
	}
	first := g.CreateNode(l[0], label, true)
	last := first
	for i := 1; i < len(l); i++ {
		cur := g.CreateNode(l[i], label, true)
		connectPair(g, last, cur, l[i-1], l[i], label)
		last = cur
	}
	connectPair(g, last, first, l[len(l)-1], l[0], label)
	return nil
}

// connectPair adds a physical segment as two opposite edges.
func connectPair(g *fastgraph.Graph, a, b fastgraph.Handle, pa, pb r2.Point, label toolpath.Label) {
	front := fastgraph.NewCost(label, pa, pb)
	// Handles were just created, so neither call can fail.
	_ = g.Connect(a, b, front)
	_ = g.Connect(b, a, front.Reversed())
}

// Graphs returns the global graph followed by each bucket's graph in
// registration order.
func (f *FastGraph) Graphs() []*fastgraph.Graph {
	gs := make([]*fastgraph.Graph, 0, len(f.buckets)+1)
	gs = append(gs, f.global)
	for _, b := range f.buckets {
		gs = append(gs, b.graph)
	}
	return gs
}

// Nodes returns the number of live nodes across all graphs.
func (f *FastGraph) Nodes() int {
	n := 0
	for _, g := range f.Graphs() {
		n += g.Count()
	}
	return n
}

// WriteSVG draws the live graphs for debugging: nodes as circles, edges as
// lines.
func (f *FastGraph) WriteSVG(w io.Writer) error {
	return render.GraphSVG(w, f.Graphs()...)
}
