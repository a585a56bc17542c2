package optimizer

import (
	"slices"

	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// assembler compacts a stream of labeled points into runs. Consecutive
// points with equal labels share a run; on a label change the new run is
// seeded with the previous run's last point so travel stays continuous.
type assembler struct {
	out     toolpath.Paths
	active  toolpath.LabeledPath
	history *r2.Point
}

func newAssembler(history *r2.Point) *assembler {
	return &assembler{history: history}
}

// appendPoint extends the active run with p, starting a new run when the
// label changes. Every point moves the history point.
func (a *assembler) appendPoint(p r2.Point, label toolpath.Label) {
	switch {
	case !a.active.Label.Valid():
		a.active.Label = label
		a.active.Append(p)
	case a.active.Label == label:
		a.active.Append(p)
	default:
		prev := p
		if a.active.Len() > 0 {
			prev = a.active.End()
		}
		a.flush()
		a.active.Label = label
		a.active.Append(prev, p)
	}
	*a.history = p
}

// flush commits the active run if it has a valid label and at least two
// points, then resets it.
func (a *assembler) flush() {
	if a.active.Label.Valid() && a.active.Len() >= 2 {
		a.out = append(a.out, toolpath.LabeledPath{
			Label: a.active.Label,
			Path:  slices.Clone(a.active.Path),
		})
	}
	a.active.Reset()
}

// runs flushes and returns everything assembled so far.
func (a *assembler) runs() toolpath.Paths {
	a.flush()
	return a.out
}
