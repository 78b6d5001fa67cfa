// Package server exposes the lists resource over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/logging"
	"github.com/balkashynov/tinytodo/internal/metrics"
)

// Options configures a Server. Zero values get defaults.
type Options struct {
	Addr           string
	Gate           Gate
	Logger         *slog.Logger
	Recorder       metrics.Recorder
	MetricsHandler http.Handler
}

// Server serves the lists API.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	manager  *lists.Manager
	gate     Gate
	logger   *slog.Logger
	recorder metrics.Recorder
}

// New creates a server around manager.
func New(manager *lists.Manager, opts Options) *Server {
	if opts.Gate == nil {
		opts.Gate = TokenGate{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	s := &Server{
		router:   chi.NewRouter(),
		manager:  manager,
		gate:     opts.Gate,
		logger:   opts.Logger,
		recorder: opts.Recorder,
	}
	s.setupRoutes(opts.MetricsHandler)

	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(metricsHandler http.Handler) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	if metricsHandler != nil {
		s.router.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	s.router.Route("/api/lists", func(r chi.Router) {
		r.Get("/", s.handleAll)
		r.Post("/", s.handleCreate)
		r.Put("/", s.handleBulk)

		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
		r.Put("/{id}", s.handleAction)
	})
}

// Handler returns the HTTP handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	s.logger.Info("HTTP server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("HTTP server stopped")
		return nil
	}
}

// logRequests logs method, path, status and duration of every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("HTTP request",
			logging.Method(r.Method),
			logging.Path(r.URL.Path),
			logging.Status(status),
			logging.DurationMS(float64(time.Since(start).Microseconds())/1000),
			logging.RequestID(middleware.GetReqID(r.Context())))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
