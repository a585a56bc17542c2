package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/fastgraph"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

const (
	DefaultScale  = 10.0
	DefaultMargin = 20
)

// Options configures debug rendering.
type Options struct {
	// Scale is the number of pixels per model unit. Zero uses DefaultScale.
	Scale float64
	// Margin is the padding around the drawing in pixels. Zero uses
	// DefaultMargin.
	Margin int
	// Detailed adds labels to DOT nodes and run titles to SVG output.
	Detailed bool
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	return o
}

// KindColors maps label kinds to stroke colors.
var KindColors = map[toolpath.Kind]string{
	toolpath.KindPerimeter:  "#d62728",
	toolpath.KindInsets:     "#ff7f0e",
	toolpath.KindInfill:     "#1f77b4",
	toolpath.KindSupport:    "#2ca02c",
	toolpath.KindRaft:       "#9467bd",
	toolpath.KindConnection: "#7f7f7f",
}

func colorOf(k toolpath.Kind) string {
	if c, ok := KindColors[k]; ok {
		return c
	}
	return "black"
}

// frame maps model coordinates to pixel coordinates with y pointing up.
type frame struct {
	bounds r2.Rect
	scale  float64
	margin int
}

func newFrame(bounds r2.Rect, opts Options) frame {
	return frame{bounds: bounds, scale: opts.Scale, margin: opts.Margin}
}

func (f frame) size() (int, int) {
	if f.bounds.IsEmpty() {
		return 2 * f.margin, 2 * f.margin
	}
	sz := f.bounds.Size()
	return int(math.Ceil(sz.X*f.scale)) + 2*f.margin, int(math.Ceil(sz.Y*f.scale)) + 2*f.margin
}

func (f frame) xy(p r2.Point) (int, int) {
	x := float64(f.margin) + (p.X-f.bounds.Lo().X)*f.scale
	y := float64(f.margin) + (f.bounds.Hi().Y-p.Y)*f.scale
	return int(math.Round(x)), int(math.Round(y))
}

// GraphSVG draws the nodes and directed edges of graphs.
func GraphSVG(w io.Writer, graphs ...*fastgraph.Graph) error {
	return GraphSVGWithOptions(w, Options{}, graphs...)
}

// GraphSVGWithOptions is GraphSVG with explicit options.
func GraphSVGWithOptions(w io.Writer, opts Options, graphs ...*fastgraph.Graph) error {
	opts = opts.withDefaults()
	bounds := r2.EmptyRect()
	for _, g := range graphs {
		for _, n := range g.Nodes() {
			bounds = bounds.AddPoint(n.Position)
		}
	}
	f := newFrame(bounds, opts)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := f.size()
	canvas.Start(width, height)
	for _, g := range graphs {
		for _, n := range g.Nodes() {
			x, y := f.xy(n.Position)
			canvas.Circle(x, y, 2, "stroke:red;fill:red")
			for _, l := range n.Forward() {
				x2, y2 := f.xy(g.Node(l.Node).Position)
				canvas.Line(x, y, x2, y2, "stroke:black;stroke-width:1")
			}
		}
	}
	canvas.End()
	return ew.err
}

// RunsSVG draws runs in order. Each run starts with a small circle;
// connections are dashed.
func RunsSVG(w io.Writer, runs toolpath.Paths, opts Options) error {
	opts = opts.withDefaults()
	bounds := r2.EmptyRect()
	for _, r := range runs {
		for _, p := range r.Path {
			bounds = bounds.AddPoint(p)
		}
	}
	f := newFrame(bounds, opts)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := f.size()
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	for i, r := range runs {
		if r.Len() == 0 {
			continue
		}
		xs, ys := make([]int, r.Len()), make([]int, r.Len())
		for j, p := range r.Path {
			xs[j], ys[j] = f.xy(p)
		}
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", colorOf(r.Label.Kind))
		if r.Label.IsConnection() {
			style += ";stroke-dasharray:4,3;stroke-width:1"
		}
		canvas.Gid(fmt.Sprintf("run-%d", i))
		if opts.Detailed {
			canvas.Title(fmt.Sprintf("%d %s", i, r.Label))
		}
		canvas.Polyline(xs, ys, style)
		canvas.Circle(xs[0], ys[0], 3, "fill:"+colorOf(r.Label.Kind))
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error so svgo's unchecked writes can be
// reported once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
