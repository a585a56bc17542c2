package cli

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/pathorder/pkg/buildinfo"
	"github.com/matzehuels/pathorder/pkg/errors"
	"github.com/matzehuels/pathorder/pkg/layerio"
	"github.com/matzehuels/pathorder/pkg/optimizer"
	"github.com/matzehuels/pathorder/pkg/pipeline"
)

// maxLayerBytes caps the size of a request body.
const maxLayerBytes = 64 << 20

// server is the HTTP surface of the serve command.
type server struct {
	runner   *pipeline.Runner
	base     pipeline.Options
	gatherer prometheus.Gatherer
	logger   *log.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/order", s.handleOrder)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleOrder orders the layer in the request body. The query parameters
// strategy, simple and link override the server's options.
func (s *server) handleOrder(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	logger := s.logger.With("request", reqID)

	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = logger

	layer, err := layerio.ReadLayer(http.MaxBytesReader(w, r.Body, maxLayerBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), layer, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := *result.Output
	out.RunID = result.RunID
	w.Header().Set("X-Run-ID", result.RunID)
	w.Header().Set("X-Cache", strconv.FormatBool(result.CacheInfo.OrderHit))
	writeJSON(w, http.StatusOK, out)
}

func (s *server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	opts.Formats = []string{pipeline.FormatJSON}
	q := r.URL.Query()
	if v := q.Get("strategy"); v != "" {
		opts.Optimizer.Strategy = optimizer.Strategy(v)
	}
	for name, dst := range map[string]*bool{"simple": &opts.Simple, "link": &opts.Optimizer.LinkPaths} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", name)
		}
		*dst = b
	}
	return opts, nil
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	reqID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request", reqID, "err", err)
	} else {
		s.logger.Debug("request rejected", "request", reqID, "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: reqID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
