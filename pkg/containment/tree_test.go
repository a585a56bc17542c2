package containment

import (
	"testing"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/geom"
)

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func square(x, y, size float64) geom.Loop {
	return geom.Loop{pt(x, y), pt(x+size, y), pt(x+size, y+size), pt(x, y+size)}
}

func TestRootContains(t *testing.T) {
	root := NewRoot()
	other := NewRoot()
	normal := New(square(0, 0, 10))

	if root.IsValid() {
		t.Error("root should be invalid")
	}
	if !root.Contains(normal) {
		t.Error("root should contain normal trees")
	}
	if root.Contains(other) {
		t.Error("root should not contain another root")
	}
	if normal.Contains(root) {
		t.Error("normal tree should not contain a root")
	}
	if !root.ContainsPoint(pt(1e9, -1e9)) {
		t.Error("root should contain every point")
	}
}

func TestNormalContains(t *testing.T) {
	outer := New(square(0, 0, 10))
	inner := New(square(2, 2, 2))
	apart := New(square(20, 0, 5))

	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if inner.Contains(outer) {
		t.Error("inner should not contain outer")
	}
	if outer.Contains(apart) {
		t.Error("outer should not contain a disjoint loop")
	}
	if !outer.ContainsPoint(pt(5, 5)) || outer.ContainsPoint(pt(15, 5)) {
		t.Error("ContainsPoint disagrees with position")
	}
}

func TestSelect(t *testing.T) {
	root := NewRoot()
	root.Insert(square(0, 0, 10)) // A
	root.Insert(square(2, 2, 4))  // B inside A
	root.Insert(square(20, 0, 10))

	tests := []struct {
		name     string
		p        r2.Point
		wantLoop geom.Loop
	}{
		{"OutsideAll", pt(50, 50), nil},
		{"InsideOnlyA", pt(8, 8), square(0, 0, 10)},
		{"InsideB", pt(3, 3), square(2, 2, 4)},
		{"InsideSibling", pt(25, 5), square(20, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := root.Select(tt.p)
			if tt.wantLoop == nil {
				if got != root {
					t.Errorf("Select(%v) = %v, want root", tt.p, got.Loop())
				}
				return
			}
			if !sameLoop(got.Loop(), tt.wantLoop) {
				t.Errorf("Select(%v) = %v, want %v", tt.p, got.Loop(), tt.wantLoop)
			}
		})
	}
}

func TestInsertAdoptsContainedSiblings(t *testing.T) {
	root := NewRoot()
	root.Insert(square(2, 2, 2))
	root.Insert(square(6, 6, 2))
	root.Insert(square(0, 0, 10))

	if got := len(root.Children()); got != 1 {
		t.Fatalf("root children = %d, want 1", got)
	}
	if got := len(root.Children()[0].Children()); got != 2 {
		t.Errorf("outer children = %d, want 2", got)
	}
	if got := root.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
	if got := root.Depth(pt(3, 3)); got != 2 {
		t.Errorf("Depth = %d, want 2", got)
	}
}

func TestSwap(t *testing.T) {
	a := NewRoot()
	a.Insert(square(0, 0, 10))
	b := New(square(50, 50, 1))

	a.Swap(b)
	if !a.IsValid() || len(a.Children()) != 0 {
		t.Errorf("after Swap a = %v valid=%v", a.Loop(), a.IsValid())
	}
	if b.IsValid() || len(b.Children()) != 1 {
		t.Errorf("after Swap b valid=%v children=%d", b.IsValid(), len(b.Children()))
	}
}

func TestWalk(t *testing.T) {
	root := NewRoot()
	root.Insert(square(0, 0, 10))
	root.Insert(square(2, 2, 2))

	var depths []int
	root.Walk(func(_ *Tree, depth int) bool {
		depths = append(depths, depth)
		return true
	})
	if len(depths) != 3 || depths[0] != 0 || depths[1] != 1 || depths[2] != 2 {
		t.Errorf("depths = %v, want [0 1 2]", depths)
	}

	visited := 0
	root.Walk(func(_ *Tree, depth int) bool {
		visited++
		return depth < 1
	})
	if visited != 2 {
		t.Errorf("pruned walk visited %d, want 2", visited)
	}
}

func sameLoop(a, b geom.Loop) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
