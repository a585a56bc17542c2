package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pathorder/pkg/cache"
	"github.com/matzehuels/pathorder/pkg/observability"
	"github.com/matzehuels/pathorder/pkg/observability/prom"
	"github.com/matzehuels/pathorder/pkg/pipeline"
)

// shutdownTimeout bounds the wait for in-flight requests on exit.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		config    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layer ordering over HTTP",
		Long: `Serve layer ordering over HTTP.

Endpoints:
  POST /v1/order   order the layer JSON in the body (?strategy=, ?simple=, ?link=)
  GET  /healthz    liveness
  GET  /metrics    Prometheus metrics

Orderings are cached in Redis when --redis is set; otherwise caching is off.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(config)
			if err != nil {
				return err
			}
			// Validate a copy: requests apply their own overrides to opts
			// and are validated again per request.
			check := opts
			if err := check.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, redisAddr, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the result cache (host:port)")
	cmd.Flags().StringVar(&config, "config", "", "TOML options file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	var store cache.Cache = cache.NewNullCache()
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: redisAddr})
		if err != nil {
			return err
		}
		store = rc
		logger.Info("using redis cache", "addr", redisAddr)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	hooks := prom.New(reg)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "serve:"), logger)
	defer runner.Close()

	s := &server{runner: runner, base: opts, gatherer: reg, logger: logger}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", addr, "strategy", opts.StrategyName())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
