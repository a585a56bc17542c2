package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/geom"
	"github.com/matzehuels/pathorder/pkg/layerio"
	"github.com/matzehuels/pathorder/pkg/optimizer"
	"github.com/matzehuels/pathorder/pkg/render"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// boundarySink is an optimizer that also accepts boundaries.
type boundarySink interface {
	optimizer.Sink
	AddBoundaryLoop(l geom.Loop)
	AddBoundaryPath(p geom.OpenPath)
}

// feed registers the layer's boundaries, then its loops and open paths.
// Boundaries go first because path placement depends on them.
func feed(s boundarySink, layer *layerio.Layer) error {
	for l := range layer.BoundaryLoops() {
		s.AddBoundaryLoop(l)
	}
	for p := range layer.BoundaryPaths() {
		s.AddBoundaryPath(p)
	}
	if err := optimizer.AddAll(s, layer.Loops()); err != nil {
		return err
	}
	return optimizer.AddAll(s, layer.OpenPaths())
}

func newFastGraph(layer *layerio.Layer, opts Options) (*optimizer.FastGraph, error) {
	f, err := optimizer.NewFastGraph(opts.Optimizer, opts.Logger)
	if err != nil {
		return nil, err
	}
	if err := checkEnclosed(layer, opts.Logger); err != nil {
		return nil, err
	}
	f.SetHistoryPoint(layer.HistoryPoint())
	if err := feed(f, layer); err != nil {
		return nil, err
	}
	return f, nil
}

// Order runs the optimizer selected by opts over layer without caching.
func Order(ctx context.Context, layer *layerio.Layer, opts Options) (toolpath.Paths, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Simple {
		s := optimizer.NewSimple(opts.Optimizer, opts.Logger)
		if err := feed(s, layer); err != nil {
			return nil, err
		}
		return s.Optimize(), nil
	}
	f, err := newFastGraph(layer, opts)
	if err != nil {
		return nil, err
	}
	return f.Optimize(ctx)
}

// RenderGraph draws the optimizer graph built from layer, before any
// ordering, in one of ValidGraphFormats.
func RenderGraph(ctx context.Context, layer *layerio.Layer, opts Options, format string) ([]byte, error) {
	if err := errors.ValidateFormat(format, ValidGraphFormats); err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Simple {
		return nil, errors.New(errors.ErrCodeUnsupported, "the simple optimizer has no graph to render")
	}
	f, err := newFastGraph(layer, opts)
	if err != nil {
		return nil, err
	}

	ropts := opts.RenderOptions()
	switch format {
	case GraphFormatSVG:
		var buf bytes.Buffer
		if err := render.GraphSVGWithOptions(&buf, ropts, f.Graphs()...); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case GraphFormatDOT:
		return []byte(render.ToDOT(ropts, f.Graphs()...)), nil
	default:
		data, err := render.RenderDOT(ctx, render.ToDOT(ropts, f.Graphs()...))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz")
		}
		return data, nil
	}
}

// RenderOutput encodes an ordered output in one of ValidFormats.
func RenderOutput(out *layerio.Output, opts Options, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := layerio.WriteOutput(out, &buf); err != nil {
			return nil, err
		}
	case FormatSVG:
		if err := render.RunsSVG(&buf, out.Paths(), opts.RenderOptions()); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return buf.Bytes(), nil
}
