package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pathorder/pkg/cache"
	"github.com/matzehuels/pathorder/pkg/layerio"
	"github.com/matzehuels/pathorder/pkg/observability"
	"github.com/matzehuels/pathorder/pkg/toolpath"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so one Runner may serve many
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer uses DefaultKeyer, a nil cache
// disables caching, and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// HashLayer returns the content hash of layer.
func HashLayer(layer *layerio.Layer) (string, error) {
	data, err := json.Marshal(layer)
	if err != nil {
		return "", fmt.Errorf("hash layer: %w", err)
	}
	return cache.Hash(data), nil
}

// Execute orders layer and renders every requested format.
func (r *Runner) Execute(ctx context.Context, layer *layerio.Layer, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	hash, err := HashLayer(layer)
	if err != nil {
		return nil, err
	}
	result.LayerHash = hash
	for _, s := range layer.Paths {
		if s.Closed {
			result.Stats.Loops++
		} else {
			result.Stats.Paths++
		}
	}

	orderStart := time.Now()
	runs, hit, err := r.OrderWithCacheInfo(ctx, layer, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("order: %w", err)
	}
	result.Runs = runs
	result.Output = layerio.NewOutput(runs)
	result.Stats.OrderTime = time.Since(orderStart)
	result.CacheInfo.OrderHit = hit

	st := result.Output.Stats
	logger.Info("ordered layer",
		"strategy", opts.StrategyName(),
		"runs", st.Runs,
		"connections", st.Connections,
		"travel", fmt.Sprintf("%.2f", st.TravelLength+st.JumpLength),
		"cached", hit,
		"duration", result.Stats.OrderTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result.Output, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// OrderWithCacheInfo orders layer, consulting the cache first unless
// opts.Refresh is set. layerHash must be HashLayer(layer).
func (r *Runner) OrderWithCacheInfo(ctx context.Context, layer *layerio.Layer, layerHash string, opts Options) (toolpath.Paths, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	key := r.Keyer.OrderKey(layerHash, opts.OrderKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, err := cache.Lookup(ctx, r.Cache, key); err == nil {
			if out, err := layerio.ReadOutput(bytes.NewReader(data)); err == nil {
				hooks.OnCacheHit(ctx, "order")
				return out.Paths(), true, nil
			}
		}
		hooks.OnCacheMiss(ctx, "order")
	}

	strategy := opts.StrategyName()
	observability.Pipeline().OnOrderStart(ctx, strategy, len(layer.Paths))
	start := time.Now()
	runs, err := Order(ctx, layer, opts)
	observability.Pipeline().OnOrderComplete(ctx, strategy, len(runs), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := layerio.WriteOutput(layerio.NewOutput(runs), &buf); err == nil {
		if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLOrder); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "order", buf.Len())
		}
	}
	return runs, false, nil
}

// Order is OrderWithCacheInfo without the hit flag.
func (r *Runner) Order(ctx context.Context, layer *layerio.Layer, opts Options) (toolpath.Paths, error) {
	hash, err := HashLayer(layer)
	if err != nil {
		return nil, err
	}
	runs, _, err := r.OrderWithCacheInfo(ctx, layer, hash, opts)
	return runs, err
}

// RenderWithCacheInfo renders out in every format of opts.Formats. The
// reported hit is true only when every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, out *layerio.Output, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	var encoded bytes.Buffer
	if err := layerio.WriteOutput(&layerio.Output{Runs: out.Runs, Stats: out.Stats}, &encoded); err != nil {
		return nil, false, fmt.Errorf("serialize output for cache key: %w", err)
	}
	hash := cache.Hash(encoded.Bytes())
	hooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := cache.Lookup(ctx, r.Cache, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
		if err != nil {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		hooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	for _, format := range opts.Formats {
		data, err := RenderOutput(out, opts, format)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on opts if none is set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
