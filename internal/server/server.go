// Package server exposes a read-only HTTP view of package state.
//
// The server reports statuses and resolved actions but never installs or
// removes anything.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/syncer"
)

const shutdownTimeout = 5 * time.Second

// Snapshotter produces reconciled snapshots.
type Snapshotter interface {
	Snapshot(ctx context.Context, refresh bool) (syncer.Snapshot, error)
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RefreshResponse is returned by POST /api/v1/refresh.
type RefreshResponse struct {
	Changed bool        `json:"changed"`
	Plan    syncer.Plan `json:"plan"`
}

// Server serves package state over HTTP.
type Server struct {
	snapshots   Snapshotter
	manifestURL string
	log         *zap.SugaredLogger
	metrics     *metrics
}

// New returns a Server reading state from snapshots. logger may be nil.
func New(snapshots Snapshotter, manifestURL string, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		snapshots:   snapshots,
		manifestURL: manifestURL,
		log:         logger,
		metrics:     newMetrics(),
	}
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/packages", s.listPackages)
		r.Post("/refresh", s.refresh)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(listener.Addr())
	}
	s.log.Infow("status server listening", "addr", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Observe(elapsed.Seconds())
		s.log.Debugw("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.snapshots.Snapshot(r.Context(), false)
	if err != nil {
		s.log.Errorw("snapshot failed", "error", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}
	s.metrics.observeSummary(snapshot.Summary())
	writeJSON(w, http.StatusOK, syncer.BuildPlan(s.manifestURL, snapshot))
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.snapshots.Snapshot(r.Context(), true)
	if err != nil {
		s.metrics.refreshes.WithLabelValues(refreshFailure).Inc()
		s.log.Errorw("manifest refresh failed", "error", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}
	s.metrics.refreshes.WithLabelValues(refreshSuccess).Inc()
	s.metrics.observeSummary(snapshot.Summary())
	s.log.Infow(messages.ServerRefreshed, "changed", snapshot.Manifest.Changed())
	writeJSON(w, http.StatusOK, RefreshResponse{
		Changed: snapshot.Manifest.Changed(),
		Plan:    syncer.BuildPlan(s.manifestURL, snapshot),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
