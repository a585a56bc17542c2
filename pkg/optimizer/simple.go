package optimizer

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/boundary"
	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Simple orders toolpaths without buckets or graphs. Loops are emitted
// first, then open paths, each time choosing whichever remaining entry point
// is nearest to the end of the previous output. Loops may be entered at any
// vertex and are closed back onto it; open paths are reversed when entered
// at their end.
//
// With Config.LinkPaths, consecutive outputs with equal labels are merged
// when the join between them touches no boundary.
type Simple struct {
	linkPaths  bool
	logger     *log.Logger
	boundaries *boundary.Set
	loops      []toolpath.LabeledLoop
	paths      toolpath.Paths
}

// NewSimple returns a simple optimizer. Only cfg.LinkPaths is consulted.
func NewSimple(cfg Config, logger *log.Logger) *Simple {
	if logger == nil {
		logger = log.Default()
	}
	return &Simple{
		linkPaths:  cfg.LinkPaths,
		logger:     logger,
		boundaries: boundary.NewSet(),
	}
}

// AddPath registers an open path. Empty paths are ignored.
func (s *Simple) AddPath(p geom.OpenPath, label toolpath.Label) error {
	if len(p) > 0 {
		s.paths = append(s.paths, toolpath.LabeledPath{Label: label, Path: p})
	}
	return nil
}

// AddLoop registers a loop. Empty loops are ignored.
func (s *Simple) AddLoop(l geom.Loop, label toolpath.Label) error {
	if len(l) > 0 {
		s.loops = append(s.loops, toolpath.LabeledLoop{Label: label, Loop: l})
	}
	return nil
}

// AddBoundaryPath registers an open boundary.
func (s *Simple) AddBoundaryPath(p geom.OpenPath) { s.boundaries.InsertAll(p.Segments()) }

// AddBoundaryLoop registers a closed boundary.
func (s *Simple) AddBoundaryLoop(l geom.Loop) { s.boundaries.InsertAll(l.Segments()) }

// ClearBoundaries removes every boundary.
func (s *Simple) ClearBoundaries() { s.boundaries = boundary.NewSet() }

// ClearPaths removes every registered path and loop.
func (s *Simple) ClearPaths() {
	s.loops = nil
	s.paths = nil
}

// Optimize orders and consumes everything registered.
func (s *Simple) Optimize() toolpath.Paths {
	var out toolpath.Paths

	for len(s.loops) > 0 {
		li, vi := 0, 0
		if len(out) > 0 {
			li, vi = nearestLoopEntry(s.loops, out[len(out)-1].End())
		}
		l := s.loops[li]
		out = append(out, toolpath.LabeledPath{Label: l.Label, Path: l.Loop.Rotated(vi).Closed()})
		s.loops = slices.Delete(s.loops, li, li+1)
	}

	for len(s.paths) > 0 {
		pi, atEnd := 0, false
		if len(out) > 0 {
			pi, atEnd = nearestPathEntry(s.paths, out[len(out)-1].End())
		}
		p := s.paths[pi]
		if atEnd {
			p.Path = p.Path.Reversed()
		}
		out = append(out, p)
		s.paths = slices.Delete(s.paths, pi, pi+1)
	}

	if s.linkPaths {
		before := len(out)
		out = s.link(out)
		s.logger.Debug("linked paths", "before", before, "after", len(out))
	}
	return out
}

func nearestLoopEntry(loops []toolpath.LabeledLoop, from r2.Point) (loop, vertex int) {
	best := geom.Distance(from, loops[0].Loop[0])
	for i, l := range loops {
		for j, p := range l.Loop {
			if d := geom.Distance(from, p); d < best {
				best, loop, vertex = d, i, j
			}
		}
	}
	return loop, vertex
}

func nearestPathEntry(paths toolpath.Paths, from r2.Point) (path int, atEnd bool) {
	best := geom.Distance(from, paths[0].Start())
	for i, p := range paths {
		if d := geom.Distance(from, p.Start()); d < best {
			best, path, atEnd = d, i, false
		}
		if d := geom.Distance(from, p.End()); d < best {
			best, path, atEnd = d, i, true
		}
	}
	return path, atEnd
}

// link merges each output into its predecessor when they share a label and
// the transition between them touches no boundary. A shared endpoint is kept
// once.
func (s *Simple) link(paths toolpath.Paths) toolpath.Paths {
	if len(paths) == 0 {
		return paths
	}
	out := toolpath.Paths{paths[0]}
	for _, p := range paths[1:] {
		prev := &out[len(out)-1]
		if prev.Label != p.Label || s.boundaries.Crosses(geom.Seg(prev.End(), p.Start())) {
			out = append(out, p)
			continue
		}
		next := p.Path
		if prev.End() == p.Start() {
			next = next[1:]
		}
		prev.Path = append(slices.Clone(prev.Path), next...)
	}
	return out
}
