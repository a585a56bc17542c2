// Package prom implements observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/pathorder/pkg/observability"
)

const namespace = "pathorder"

// Hooks records pipeline and cache events as Prometheus metrics.
type Hooks struct {
	orders        *prometheus.CounterVec
	orderDuration *prometheus.HistogramVec
	orderRuns     *prometheus.HistogramVec
	inFlight      prometheus.Gauge

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec
}

// New creates hooks and registers their collectors with reg.
// It panics if a collector is already registered, like MustRegister.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Layers ordered, by strategy and outcome.",
		}, []string{"strategy", "status"}),
		orderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_duration_seconds",
			Help:      "Time spent ordering one layer.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"strategy"}),
		orderRuns: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_runs",
			Help:      "Runs produced per ordered layer.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"strategy"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders_in_flight",
			Help:      "Layers currently being ordered.",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Artifacts rendered, by format and outcome.",
		}, []string{"format", "status"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes, by key type and event.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache, by key type.",
		}, []string{"key_type"}),
	}
	reg.MustRegister(
		h.orders, h.orderDuration, h.orderRuns, h.inFlight,
		h.renders, h.renderDuration,
		h.cacheEvents, h.cacheBytes,
	)
	return h
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnOrderStart implements observability.PipelineHooks.
func (h *Hooks) OnOrderStart(_ context.Context, _ string, _ int) {
	h.inFlight.Inc()
}

// OnOrderComplete implements observability.PipelineHooks.
func (h *Hooks) OnOrderComplete(_ context.Context, strategy string, runs int, d time.Duration, err error) {
	h.inFlight.Dec()
	h.orders.WithLabelValues(strategy, status(err)).Inc()
	h.orderDuration.WithLabelValues(strategy).Observe(d.Seconds())
	if err == nil {
		h.orderRuns.WithLabelValues(strategy).Observe(float64(runs))
	}
}

// OnRenderStart implements observability.PipelineHooks.
func (h *Hooks) OnRenderStart(context.Context, []string) {}

// OnRenderComplete implements observability.PipelineHooks.
func (h *Hooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	for _, f := range formats {
		h.renders.WithLabelValues(f, status(err)).Inc()
		h.renderDuration.WithLabelValues(f).Observe(d.Seconds())
	}
}

// OnCacheHit implements observability.CacheHooks.
func (h *Hooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (h *Hooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (h *Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ observability.PipelineHooks = (*Hooks)(nil)
	_ observability.CacheHooks    = (*Hooks)(nil)
)
