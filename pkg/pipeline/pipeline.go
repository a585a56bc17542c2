// Package pipeline orders layers and renders the results.
//
// It is shared by the CLI and the HTTP server so both apply the same
// defaults, caching, and instrumentation. A run has two stages:
//
//  1. Order: feed the layer to an optimizer and collect the ordered runs
//  2. Render: encode the runs as JSON and draw them as SVG
//
// Each stage is cached by content hash, so re-ordering an unchanged layer
// with unchanged options is a cache lookup.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, layer, pipeline.Options{
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// The debug graph renderer [RenderGraph] is not cached: it draws the
// optimizer's graph before ordering consumes it.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathorder/pkg/cache"
	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/layerio"
	"github.com/matzehuels/pathorder/pkg/optimizer"
	"github.com/matzehuels/pathorder/pkg/render"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Output formats for ordered runs.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// Graph formats for the pre-order debug rendering.
const (
	GraphFormatSVG      = "svg"
	GraphFormatDOT      = "dot"
	GraphFormatGraphviz = "graphviz"
)

// ValidFormats is the set of output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
}

// ValidGraphFormats is the set of debug graph formats.
var ValidGraphFormats = map[string]bool{
	GraphFormatSVG:      true,
	GraphFormatDOT:      true,
	GraphFormatGraphviz: true,
}

// StrategySimple names the simple optimizer in logs, metrics and keys.
const StrategySimple = "simple"

// Options configures one pipeline run. It can be loaded from TOML with
// [LoadConfig] and is accepted as JSON by the HTTP server.
type Options struct {
	Optimizer optimizer.Config `toml:"optimizer" json:"optimizer"`

	// Simple selects the non-bucketed optimizer.
	Simple bool `toml:"simple" json:"simple,omitempty"`

	Formats []string `toml:"formats" json:"formats,omitempty"`

	// Scale is pixels per model unit for SVG output.
	Scale float64 `toml:"scale" json:"scale,omitempty"`

	// Detailed adds titles and labels to rendered output.
	Detailed bool `toml:"detailed" json:"detailed,omitempty"`

	// Refresh bypasses cached orderings.
	Refresh bool `toml:"-" json:"refresh,omitempty"`

	Logger *log.Logger `toml:"-" json:"-"`

	validated bool
}

// DefaultOptions returns options with the default optimizer configuration
// and JSON output.
func DefaultOptions() Options {
	return Options{
		Optimizer: optimizer.DefaultConfig(),
		Formats:   []string{FormatJSON},
	}
}

// Result is the outcome of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and responses.
	RunID string

	// LayerHash is the content hash of the input layer.
	LayerHash string

	Runs      toolpath.Paths
	Output    *layerio.Output
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and input sizes.
type Stats struct {
	Loops      int
	Paths      int
	OrderTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	OrderHit  bool
	RenderHit bool
}

// ValidateFormats checks every output format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults fills defaults and validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Optimizer.SetDefaults()
	if err := o.Optimizer.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("scale", o.Scale); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// StrategyName returns the optimizer name used in logs and metrics.
func (o *Options) StrategyName() string {
	if o.Simple {
		return StrategySimple
	}
	return string(o.Optimizer.Strategy)
}

// OrderKeyOpts returns the cache key options for the order stage.
func (o *Options) OrderKeyOpts() cache.OrderKeyOpts {
	return cache.OrderKeyOpts{
		Strategy:        string(o.Optimizer.Strategy),
		Simple:          o.Simple,
		LinkPaths:       o.Optimizer.LinkPaths,
		Coarseness:      o.Optimizer.Coarseness,
		DirectionWeight: o.Optimizer.DirectionWeight,
		BucketMargin:    o.Optimizer.BucketMargin,
		IterativeEffort: o.Optimizer.IterativeEffort,
	}
}

// ArtifactKeyOpts returns the cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Scale: o.Scale, Detailed: o.Detailed}
}

// RenderOptions returns the drawing options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{Scale: o.Scale, Detailed: o.Detailed}
}
