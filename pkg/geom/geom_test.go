package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

func square(x, y, size float64) Loop {
	return Loop{pt(x, y), pt(x+size, y), pt(x+size, y+size), pt(x, y+size)}
}

func TestUnit(t *testing.T) {
	u, ok := Unit(pt(3, 4))
	if !ok {
		t.Fatal("Unit(3,4) ok = false, want true")
	}
	if math.Abs(u.X-0.6) > 1e-12 || math.Abs(u.Y-0.8) > 1e-12 {
		t.Errorf("Unit(3,4) = %v, want (0.6, 0.8)", u)
	}

	u, ok = Unit(r2.Point{})
	if ok {
		t.Error("Unit(0,0) ok = true, want false")
	}
	if u != (r2.Point{}) {
		t.Errorf("Unit(0,0) = %v, want zero vector", u)
	}
}

func TestSegmentIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"proper cross", Seg(pt(0, 0), pt(2, 2)), Seg(pt(0, 2), pt(2, 0)), true},
		{"disjoint", Seg(pt(0, 0), pt(1, 0)), Seg(pt(0, 1), pt(1, 1)), false},
		{"shared endpoint", Seg(pt(0, 0), pt(1, 1)), Seg(pt(1, 1), pt(2, 0)), true},
		{"t junction", Seg(pt(0, 0), pt(2, 0)), Seg(pt(1, 0), pt(1, 3)), true},
		{"collinear overlap", Seg(pt(0, 0), pt(2, 0)), Seg(pt(1, 0), pt(3, 0)), true},
		{"collinear apart", Seg(pt(0, 0), pt(1, 0)), Seg(pt(2, 0), pt(3, 0)), false},
		{"parallel", Seg(pt(0, 0), pt(2, 2)), Seg(pt(1, 0), pt(3, 2)), false},
		{"near miss", Seg(pt(0, 0), pt(1, 1)), Seg(pt(1.01, 0), pt(2, -1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentCrossesCountsVertexOnce(t *testing.T) {
	sq := square(0, 0, 10)
	// The ray passes exactly through the corner (0,0).
	ray := Seg(pt(5, 5), pt(-20, -20))
	count := 0
	for _, s := range sq.Segments() {
		if ray.Crosses(s) {
			count++
		}
	}
	if count%2 != 1 {
		t.Errorf("crossings through corner = %d, want odd", count)
	}

	outside := Seg(pt(15, 5), pt(-20, -20))
	count = 0
	for _, s := range sq.Segments() {
		if outside.Crosses(s) {
			count++
		}
	}
	if count%2 != 0 {
		t.Errorf("crossings from outside = %d, want even", count)
	}
}

func TestLoopContains(t *testing.T) {
	sq := square(0, 0, 10)
	if !sq.Contains(pt(5, 5)) {
		t.Error("Contains(5,5) = false, want true")
	}
	if sq.Contains(pt(15, 5)) {
		t.Error("Contains(15,5) = true, want false")
	}
	if (Loop{pt(0, 0), pt(1, 1)}).Contains(pt(0.5, 0.5)) {
		t.Error("degenerate loop should contain nothing")
	}
}

func TestLoopWinding(t *testing.T) {
	ccw := square(0, 0, 10)
	cw := Loop{ccw[3], ccw[2], ccw[1], ccw[0]}

	if got := ccw.Winding(pt(5, 5)); got != 1 {
		t.Errorf("ccw.Winding = %d, want 1", got)
	}
	if got := cw.Winding(pt(5, 5)); got != -1 {
		t.Errorf("cw.Winding = %d, want -1", got)
	}
	if got := ccw.Winding(pt(-5, 5)); got != 0 {
		t.Errorf("outside Winding = %d, want 0", got)
	}
	if !cw.Encloses(pt(2, 8)) || cw.Encloses(pt(12, 8)) {
		t.Error("Encloses disagrees with position")
	}
}

func TestLoopSegmentsAndRotation(t *testing.T) {
	sq := square(0, 0, 1)
	segs := sq.Segments()
	if len(segs) != 4 {
		t.Fatalf("len(Segments) = %d, want 4", len(segs))
	}
	if segs[3].B != sq[0] {
		t.Errorf("closing segment ends at %v, want %v", segs[3].B, sq[0])
	}
	if got := sq.Perimeter(); got != 4 {
		t.Errorf("Perimeter = %v, want 4", got)
	}
	if got := sq.SignedArea(); got != 1 {
		t.Errorf("SignedArea = %v, want 1", got)
	}
	rot := sq.Rotated(2)
	if rot[0] != sq[2] || rot[3] != sq[1] {
		t.Errorf("Rotated(2) = %v", rot)
	}
	if closed := sq.Closed(); len(closed) != 5 || closed[4] != sq[0] {
		t.Errorf("Closed = %v", closed)
	}
}

func TestOpenPath(t *testing.T) {
	p := OpenPath{pt(0, 0), pt(3, 0), pt(3, 4)}
	if got := p.Length(); got != 7 {
		t.Errorf("Length = %v, want 7", got)
	}
	if got := len(p.Segments()); got != 2 {
		t.Errorf("len(Segments) = %d, want 2", got)
	}
	rev := p.Reversed()
	if rev.Start() != p.End() || p[0] != pt(0, 0) {
		t.Errorf("Reversed = %v (original %v)", rev, p)
	}
	b := p.Bounds()
	if b.Lo() != pt(0, 0) || b.Hi() != pt(3, 4) {
		t.Errorf("Bounds = %v", b)
	}
	if (OpenPath{pt(1, 1)}).Segments() != nil {
		t.Error("single point path should have no segments")
	}
}
