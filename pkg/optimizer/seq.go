package optimizer

import (
	"iter"

	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Shape is the geometry an optimizer accepts.
type Shape interface {
	geom.OpenPath | geom.Loop
}

// Sink receives labeled geometry. Both FastGraph and Simple implement it.
type Sink interface {
	AddPath(p geom.OpenPath, label toolpath.Label) error
	AddLoop(l geom.Loop, label toolpath.Label) error
}

// AddAll feeds every labeled shape in seq to s, stopping at the first error.
//
//	err := optimizer.AddAll(fg, toolpath.Labeled(slices.Values(loops), perimeter))
func AddAll[S Shape](s Sink, seq iter.Seq2[S, toolpath.Label]) error {
	for shape, label := range seq {
		var err error
		switch v := any(shape).(type) {
		case geom.OpenPath:
			err = s.AddPath(v, label)
		case geom.Loop:
			err = s.AddLoop(v, label)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
