package optimizer

import (
	"slices"
	"testing"

	"github.com/matzehuels/pathorder/pkg/geom"
)

func TestSimpleLoopsThenPaths(t *testing.T) {
	s := NewSimple(DefaultConfig(), nil)
	_ = s.AddPath(geom.OpenPath{pt(31, 0), pt(40, 0)}, infill)
	_ = s.AddLoop(square(0, 0, 10), perimeter)
	_ = s.AddLoop(square(20, 0, 10), perimeter)

	out := s.Optimize()
	if len(out) != 3 {
		t.Fatalf("outputs = %d, want 3", len(out))
	}
	if want := square(0, 0, 10).Closed(); !slices.Equal(out[0].Path, want) {
		t.Errorf("first = %v, want %v", out[0].Path, want)
	}
	if want := square(20, 0, 10).Closed(); !slices.Equal(out[1].Path, want) {
		t.Errorf("second = %v, want %v", out[1].Path, want)
	}
	if out[2].Label != infill || out[2].Start() != pt(31, 0) {
		t.Errorf("third = %v, want the infill path", out[2])
	}
}

func TestSimpleEntersNearestVertex(t *testing.T) {
	s := NewSimple(DefaultConfig(), nil)
	_ = s.AddLoop(square(0, 0, 1), perimeter)
	_ = s.AddLoop(geom.Loop{pt(12, 12), pt(10, 12), pt(10, 10), pt(12, 10)}, perimeter)

	out := s.Optimize()
	if len(out) != 2 {
		t.Fatalf("outputs = %d, want 2", len(out))
	}
	// From (0,0) the nearest vertex of the second loop is (10,10).
	if out[1].Start() != pt(10, 10) || out[1].End() != pt(10, 10) {
		t.Errorf("second loop = %v, want it entered and closed at (10,10)", out[1].Path)
	}
}

func TestSimpleReversesPaths(t *testing.T) {
	s := NewSimple(DefaultConfig(), nil)
	_ = s.AddPath(geom.OpenPath{pt(0, 0), pt(5, 0)}, infill)
	_ = s.AddPath(geom.OpenPath{pt(20, 0), pt(6, 0)}, infill)

	out := s.Optimize()
	if len(out) != 2 {
		t.Fatalf("outputs = %d, want 2", len(out))
	}
	if !slices.Equal(out[1].Path, geom.OpenPath{pt(6, 0), pt(20, 0)}) {
		t.Errorf("second = %v, want reversed", out[1].Path)
	}
}

func TestSimpleLinkPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinkPaths = true

	s := NewSimple(cfg, nil)
	_ = s.AddPath(geom.OpenPath{pt(0, 0), pt(5, 0)}, infill)
	_ = s.AddPath(geom.OpenPath{pt(6, 0), pt(9, 0)}, infill)
	_ = s.AddPath(geom.OpenPath{pt(10, 0), pt(12, 0)}, perimeter)

	out := s.Optimize()
	if len(out) != 2 {
		t.Fatalf("outputs = %v, want 2", out)
	}
	if want := (geom.OpenPath{pt(0, 0), pt(5, 0), pt(6, 0), pt(9, 0)}); !slices.Equal(out[0].Path, want) {
		t.Errorf("linked = %v, want %v", out[0].Path, want)
	}

	// A boundary between the paths prevents linking.
	s = NewSimple(cfg, nil)
	s.AddBoundaryPath(geom.OpenPath{pt(5.5, -1), pt(5.5, 1)})
	_ = s.AddPath(geom.OpenPath{pt(0, 0), pt(5, 0)}, infill)
	_ = s.AddPath(geom.OpenPath{pt(6, 0), pt(9, 0)}, infill)
	if out := s.Optimize(); len(out) != 2 {
		t.Errorf("outputs = %d, want 2 when the join crosses a boundary", len(out))
	}
}

func TestSimpleLinkSharedEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinkPaths = true

	s := NewSimple(cfg, nil)
	_ = s.AddPath(geom.OpenPath{pt(0, 0), pt(5, 0)}, infill)
	_ = s.AddPath(geom.OpenPath{pt(5, 0), pt(9, 0)}, infill)

	out := s.Optimize()
	if len(out) != 1 {
		t.Fatalf("outputs = %v, want 1", out)
	}
	if want := (geom.OpenPath{pt(0, 0), pt(5, 0), pt(9, 0)}); !slices.Equal(out[0].Path, want) {
		t.Errorf("linked = %v, want %v", out[0].Path, want)
	}
}

func TestSimpleClear(t *testing.T) {
	s := NewSimple(DefaultConfig(), nil)
	_ = s.AddLoop(square(0, 0, 1), perimeter)
	s.AddBoundaryLoop(square(-1, -1, 5))
	s.ClearPaths()
	s.ClearBoundaries()
	if out := s.Optimize(); len(out) != 0 {
		t.Errorf("outputs = %v, want none", out)
	}
	if s.boundaries.Len() != 0 {
		t.Errorf("boundaries = %d, want 0", s.boundaries.Len())
	}
}
