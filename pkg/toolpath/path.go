package toolpath

import (
	"iter"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/geom"
)

// LabeledPath is a run: an ordered point sequence carrying one label.
type LabeledPath struct {
	Label Label         `json:"label"`
	Path  geom.OpenPath `json:"points"`
}

// Append adds points to the end of the path.
func (p *LabeledPath) Append(pts ...r2.Point) { p.Path = append(p.Path, pts...) }

// Reset clears the label and points, keeping the point buffer.
func (p *LabeledPath) Reset() {
	p.Label = Label{}
	p.Path = p.Path[:0]
}

// Len returns the number of points.
func (p LabeledPath) Len() int { return len(p.Path) }

// Start returns the first point. It panics on an empty path.
func (p LabeledPath) Start() r2.Point { return p.Path.Start() }

// End returns the last point. It panics on an empty path.
func (p LabeledPath) End() r2.Point { return p.Path.End() }

// LabeledLoop is a closed loop carrying one label.
type LabeledLoop struct {
	Label Label     `json:"label"`
	Loop  geom.Loop `json:"points"`
}

// Paths is an ordered run sequence.
type Paths []LabeledPath

// Points returns the total number of points across all runs.
func (ps Paths) Points() int {
	n := 0
	for _, p := range ps {
		n += p.Len()
	}
	return n
}

// Length returns the summed polyline length across all runs.
func (ps Paths) Length() float64 {
	total := 0.0
	for _, p := range ps {
		total += p.Path.Length()
	}
	return total
}

// TravelLength returns the distance of the implicit jumps between
// consecutive runs that do not share an endpoint.
func (ps Paths) TravelLength() float64 {
	total := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i-1].Len() == 0 || ps[i].Len() == 0 {
			continue
		}
		total += geom.Distance(ps[i-1].End(), ps[i].Start())
	}
	return total
}

// All yields every run in order.
func (ps Paths) All() iter.Seq[LabeledPath] {
	return func(yield func(LabeledPath) bool) {
		for _, p := range ps {
			if !yield(p) {
				return
			}
		}
	}
}

// Labeled pairs a value with a label, for feeding arbitrary geometry
// sequences into an optimizer.
func Labeled[T any](seq iter.Seq[T], label Label) iter.Seq2[T, Label] {
	return func(yield func(T, Label) bool) {
		for v := range seq {
			if !yield(v, label) {
				return
			}
		}
	}
}
