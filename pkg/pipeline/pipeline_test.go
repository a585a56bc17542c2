package pipeline

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"

	"github.com/matzehuels/pathorder/pkg/cache"
	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/layerio"
	"github.com/matzehuels/pathorder/pkg/optimizer"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

const squareLayer = `{
  "boundaries": {"loops": [[[0, 0], [100, 0], [100, 100], [0, 100]]]},
  "paths": [
    {"label": {"kind": "perimeter", "priority": 2}, "points": [[10, 10], [90, 10], [90, 90], [10, 90]], "closed": true},
    {"label": {"kind": "infill", "priority": 1}, "points": [[20, 20], [80, 80]]}
  ]
}`

// printed is the perimeter of the loop plus the infill diagonal.
var printed = 320 + 60*math.Sqrt2

func readLayer(t *testing.T, s string) *layerio.Layer {
	t.Helper()
	l, err := layerio.ReadLayer(strings.NewReader(s))
	if err != nil {
		t.Fatalf("ReadLayer: %v", err)
	}
	return l
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		wantErr bool
	}{
		{[]string{"json"}, false},
		{[]string{"json", "svg"}, false},
		{nil, false},
		{[]string{"png"}, true},
		{[]string{"SVG"}, true},
		{[]string{"svg", ""}, true},
	}
	for _, tt := range tests {
		err := ValidateFormats(tt.formats)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormats(%v) code = %v, want INVALID_FORMAT", tt.formats, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Optimizer.Strategy != optimizer.StrategyGreedy {
		t.Errorf("Strategy = %q, want greedy", opts.Optimizer.Strategy)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if got := opts.StrategyName(); got != "greedy" {
		t.Errorf("StrategyName = %q, want greedy", got)
	}
	opts.Simple = true
	if got := opts.StrategyName(); got != StrategySimple {
		t.Errorf("StrategyName = %q, want simple", got)
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"Strategy", Options{Optimizer: optimizer.Config{Strategy: "annealing"}}, errors.ErrCodeInvalidStrategy},
		{"Format", Options{Formats: []string{"gcode"}}, errors.ErrCodeInvalidFormat},
		{"Scale", Options{Scale: -1}, errors.ErrCodeInvalidConfig},
		{"Coarseness", Options{Optimizer: optimizer.Config{Coarseness: -0.1}}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	opts, err := DecodeConfig(strings.NewReader(`
formats = ["json", "svg"]
detailed = true

[optimizer]
strategy = "stitch"
iterative_effort = 3
`))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if opts.Optimizer.Strategy != optimizer.StrategyStitch {
		t.Errorf("Strategy = %q, want stitch", opts.Optimizer.Strategy)
	}
	if opts.Optimizer.IterativeEffort != 3 {
		t.Errorf("IterativeEffort = %d, want 3", opts.Optimizer.IterativeEffort)
	}
	if opts.Optimizer.Coarseness != optimizer.DefaultCoarseness {
		t.Errorf("Coarseness = %v, want default %v", opts.Optimizer.Coarseness, optimizer.DefaultCoarseness)
	}
	if len(opts.Formats) != 2 || !opts.Detailed {
		t.Errorf("opts = %+v", opts)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Syntax", `formats = [`},
		{"UnknownKey", "colour = \"red\"\n"},
		{"UnknownNested", "[optimizer]\nspeed = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("DecodeConfig = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pathorder.toml")
	if err := os.WriteFile(path, []byte("simple = true\n[optimizer]\nlink_paths = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !opts.Simple || !opts.Optimizer.LinkPaths {
		t.Errorf("opts = %+v, want simple with link_paths", opts)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadConfig missing = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"Greedy", Options{}},
		{"Stitch", Options{Optimizer: optimizer.Config{Strategy: optimizer.StrategyStitch}}},
		{"Simple", Options{Simple: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := Order(context.Background(), readLayer(t, squareLayer), tt.opts)
			if err != nil {
				t.Fatalf("Order: %v", err)
			}
			st := layerio.ComputeStats(runs)
			if math.Abs(st.PrintLength-printed) > 1e-9 {
				t.Errorf("PrintLength = %v, want %v", st.PrintLength, printed)
			}
			kinds := map[toolpath.Kind]bool{}
			for _, r := range runs {
				kinds[r.Label.Kind] = true
			}
			if !kinds[toolpath.KindPerimeter] || !kinds[toolpath.KindInfill] {
				t.Errorf("kinds = %v, want perimeter and infill", kinds)
			}
		})
	}
}

func TestOrderNoBucket(t *testing.T) {
	layer := readLayer(t, `{
  "boundaries": {"loops": [[[0, 0], [10, 0], [10, 10], [0, 10]]]},
  "paths": [{"label": {"kind": "infill"}, "points": [[50, 50], [60, 60]]}]
}`)
	_, err := Order(context.Background(), layer, Options{})
	if !errors.Is(err, errors.ErrCodeNoBucket) {
		t.Errorf("Order = %v, want NO_BUCKET", err)
	}
	if err != nil && !strings.Contains(err.Error(), "path 0 starts at (50, 50)") {
		t.Errorf("Order error = %q, want it to name path 0", err)
	}
}

func TestCheckEnclosed(t *testing.T) {
	layer := readLayer(t, `{
  "boundaries": {"loops": [
    [[40, 40], [60, 40], [60, 60], [40, 60]],
    [[0, 0], [100, 0], [100, 100], [0, 100]]
  ]},
  "paths": [
    {"label": {"kind": "infill"}, "points": [[10, 20], [30, 20]]},
    {"label": {"kind": "infill"}, "points": [[45, 50], [55, 50]]}
  ]
}`)
	root := regions(layer)
	if root.Len() != 2 {
		t.Errorf("regions Len = %d, want 2", root.Len())
	}
	if d := root.Depth(r2.Point{X: 50, Y: 50}); d != 2 {
		t.Errorf("Depth inside the hole = %d, want 2", d)
	}
	if err := checkEnclosed(layer, log.New(io.Discard)); err != nil {
		t.Errorf("checkEnclosed = %v, want nil", err)
	}

	runs, err := Order(context.Background(), layer, Options{})
	if err != nil {
		t.Fatalf("Order = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("runs = %d, want 2", len(runs))
	}

	layer.Paths = append(layer.Paths, layerio.Shape{
		Label:  toolpath.New(toolpath.KindInfill, 1),
		Points: []layerio.Point{{150, 150}, {160, 150}},
	})
	if err := checkEnclosed(layer, log.New(io.Discard)); !errors.Is(err, errors.ErrCodeNoBucket) {
		t.Errorf("checkEnclosed = %v, want NO_BUCKET", err)
	}
}

func TestRunnerCaches(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()
	ctx := context.Background()
	opts := Options{Formats: []string{FormatJSON, FormatSVG}}

	first, err := runner.Execute(ctx, readLayer(t, squareLayer), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.OrderHit || first.CacheInfo.RenderHit {
		t.Errorf("first CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if !strings.Contains(string(first.Artifacts[FormatSVG]), "<polyline") {
		t.Error("svg artifact has no runs")
	}
	if first.Stats.Loops != 1 || first.Stats.Paths != 1 {
		t.Errorf("Stats = %+v, want 1 loop and 1 path", first.Stats)
	}

	second, err := runner.Execute(ctx, readLayer(t, squareLayer), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.OrderHit || !second.CacheInfo.RenderHit {
		t.Errorf("second CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if second.RunID == first.RunID {
		t.Error("run IDs repeat")
	}
	if second.LayerHash != first.LayerHash {
		t.Error("layer hash changed")
	}
	if string(second.Artifacts[FormatJSON]) != string(first.Artifacts[FormatJSON]) {
		t.Error("cached JSON differs from computed JSON")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, readLayer(t, squareLayer), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.OrderHit {
		t.Error("Refresh still hit the order cache")
	}
}

func TestRenderGraph(t *testing.T) {
	layer := readLayer(t, squareLayer)
	ctx := context.Background()

	svg, err := RenderGraph(ctx, layer, Options{}, GraphFormatSVG)
	if err != nil {
		t.Fatalf("RenderGraph svg: %v", err)
	}
	// Four loop vertices and two path endpoints.
	if got := strings.Count(string(svg), "<circle"); got != 6 {
		t.Errorf("circles = %d, want 6", got)
	}

	dot, err := RenderGraph(ctx, layer, Options{}, GraphFormatDOT)
	if err != nil {
		t.Fatalf("RenderGraph dot: %v", err)
	}
	if !strings.HasPrefix(string(dot), "digraph") {
		t.Errorf("dot = %q", dot)
	}

	if _, err := RenderGraph(ctx, layer, Options{}, "png"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderGraph png = %v, want INVALID_FORMAT", err)
	}
	if _, err := RenderGraph(ctx, layer, Options{Simple: true}, GraphFormatSVG); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("RenderGraph simple = %v, want UNSUPPORTED", err)
	}
}
