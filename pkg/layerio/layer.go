package layerio

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/golang/geo/r2"
	"github.com/samber/lo"

	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Point is the wire form of a point: [x, y].
type Point [2]float64

func (p Point) r2() r2.Point { return r2.Point{X: p[0], Y: p[1]} }

func fromR2(p r2.Point, _ int) Point { return Point{p.X, p.Y} }

func toR2(p Point, _ int) r2.Point { return p.r2() }

// Shape is one labeled input path.
type Shape struct {
	Label  toolpath.Label `json:"label"`
	Points []Point        `json:"points"`
	Closed bool           `json:"closed,omitempty"`
}

// Boundaries holds the layer's boundary geometry.
type Boundaries struct {
	Loops [][]Point `json:"loops,omitempty"`
	Paths [][]Point `json:"paths,omitempty"`
}

// Layer is the decoded input for one layer.
type Layer struct {
	History    *Point     `json:"history,omitempty"`
	Boundaries Boundaries `json:"boundaries"`
	Paths      []Shape    `json:"paths"`
}

// HistoryPoint returns the start position, or the origin when unset.
func (l *Layer) HistoryPoint() r2.Point {
	if l.History == nil {
		return r2.Point{}
	}
	return l.History.r2()
}

// BoundaryLoops yields the boundary loops in registration order.
func (l *Layer) BoundaryLoops() iter.Seq[geom.Loop] {
	return func(yield func(geom.Loop) bool) {
		for _, pts := range l.Boundaries.Loops {
			if !yield(geom.Loop(lo.Map(pts, toR2))) {
				return
			}
		}
	}
}

// BoundaryPaths yields the open boundary paths.
func (l *Layer) BoundaryPaths() iter.Seq[geom.OpenPath] {
	return func(yield func(geom.OpenPath) bool) {
		for _, pts := range l.Boundaries.Paths {
			if !yield(geom.OpenPath(lo.Map(pts, toR2))) {
				return
			}
		}
	}
}

// Loops yields the closed shapes with their labels.
func (l *Layer) Loops() iter.Seq2[geom.Loop, toolpath.Label] {
	return func(yield func(geom.Loop, toolpath.Label) bool) {
		for _, s := range l.Paths {
			if s.Closed && !yield(geom.Loop(lo.Map(s.Points, toR2)), s.Label) {
				return
			}
		}
	}
}

// OpenPaths yields the open shapes with their labels.
func (l *Layer) OpenPaths() iter.Seq2[geom.OpenPath, toolpath.Label] {
	return func(yield func(geom.OpenPath, toolpath.Label) bool) {
		for _, s := range l.Paths {
			if !s.Closed && !yield(geom.OpenPath(lo.Map(s.Points, toR2)), s.Label) {
				return
			}
		}
	}
}

// Validate checks that every coordinate is finite, every shape has a valid
// label, and every shape has enough points to draw.
func (l *Layer) Validate() error {
	if l.History != nil {
		if err := validatePoints("history", []Point{*l.History}); err != nil {
			return err
		}
	}
	for i, pts := range l.Boundaries.Loops {
		name := fmt.Sprintf("boundaries.loops[%d]", i)
		if len(pts) < 3 {
			return errors.New(errors.ErrCodeInvalidLayer, "%s needs at least 3 points, got %d", name, len(pts))
		}
		if err := validatePoints(name, pts); err != nil {
			return err
		}
	}
	for i, pts := range l.Boundaries.Paths {
		name := fmt.Sprintf("boundaries.paths[%d]", i)
		if len(pts) < 2 {
			return errors.New(errors.ErrCodeInvalidLayer, "%s needs at least 2 points, got %d", name, len(pts))
		}
		if err := validatePoints(name, pts); err != nil {
			return err
		}
	}
	for i, s := range l.Paths {
		name := fmt.Sprintf("paths[%d]", i)
		if !s.Label.Valid() {
			return errors.New(errors.ErrCodeInvalidLayer, "%s has an invalid label kind", name)
		}
		if s.Label.IsConnection() {
			return errors.New(errors.ErrCodeInvalidLayer, "%s: connection labels are reserved for travel", name)
		}
		if len(s.Points) < 2 {
			return errors.New(errors.ErrCodeInvalidLayer, "%s needs at least 2 points, got %d", name, len(s.Points))
		}
		if err := validatePoints(name, s.Points); err != nil {
			return err
		}
	}
	return nil
}

func validatePoints(name string, pts []Point) error {
	for i, p := range pts {
		if err := errors.ValidateFinite(fmt.Sprintf("%s[%d].x", name, i), p[0]); err != nil {
			return err
		}
		if err := errors.ValidateFinite(fmt.Sprintf("%s[%d].y", name, i), p[1]); err != nil {
			return err
		}
	}
	return nil
}

// ReadLayer decodes and validates a layer from r. It does not close r.
func ReadLayer(r io.Reader) (*Layer, error) {
	var l Layer
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayer, err, "decode layer")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// ImportLayer reads the layer file at path.
func ImportLayer(path string) (*Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayer(f)
}

// WriteLayer encodes l as indented JSON.
func WriteLayer(l *Layer, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
