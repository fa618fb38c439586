// Package server exposes the analyze, generate, evaluate, compare, and history
// operations as a JSON HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/HartBrook/lyra/internal/eval"
	"github.com/HartBrook/lyra/internal/history"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 150 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Version is reported by /health.
var Version = "dev"

// Options holds the server's collaborators.
// Generator and Judge carry their own model clients.
type Options struct {
	Generator  *optimize.Generator
	Judge      *eval.Judge
	History    *history.Store
	ExportsDir string
	Model      string
	Logger     *zap.Logger

	// Registry receives the server's metrics and is served on /metrics.
	// A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Server is the lyra HTTP API.
type Server struct {
	router  *gin.Engine
	handler *Handler
	logger  *zap.Logger
}

// New creates the server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := NewMetrics(reg)

	h := &Handler{
		generator:  opts.Generator,
		judge:      opts.Judge,
		history:    opts.History,
		exportsDir: opts.ExportsDir,
		model:      opts.Model,
		metrics:    metrics,
		logger:     logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(RequestMetrics(metrics))

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", h.Analyze)
		v1.POST("/candidates", h.Candidates)
		v1.POST("/evaluate", h.Evaluate)
		v1.POST("/compare", h.Compare)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", h.CreateSession)
			sessions.GET("", h.ListSessions)
			sessions.GET("/:id", h.GetSession)
		}
	}

	return &Server{router: router, handler: h, logger: logger}
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("server exited gracefully")
	return nil
}
