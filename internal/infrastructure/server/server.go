package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/botsync/internal/infrastructure/config"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/logging"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/botsync/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/botsync/internal/jobs"
)

// JobRunner runs jobs by name.
type JobRunner interface {
	Run(ctx context.Context, name string) (jobs.Status, error)
	Names() []string
	Last() []jobs.Run
}

// Server is the admin HTTP server
type Server struct {
	router  *gin.Engine
	runner  JobRunner
	logger  *logging.Logger
	config  config.ServerConfig
	metrics *monitoring.Metrics
	started time.Time
}

// NewServer creates a new server instance
func NewServer(cfg config.ServerConfig, runner JobRunner, logger *logging.Logger, metrics *monitoring.Metrics, tracer *tracing.Tracer, development bool) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	// Create router
	if !development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	if tracer != nil {
		router.Use(tracing.HTTPMiddleware(tracer))
	}
	router.Use(monitoring.Middleware(metrics))

	s := &Server{
		router:  router,
		runner:  runner,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		started: time.Now(),
	}

	// Register routes
	router.GET("/health", s.health)
	router.GET("/jobs", s.listJobs)
	router.POST("/jobs/:name", s.runJob)

	if reg := metrics.Registry(); reg != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting admin server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("admin server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down admin server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown admin server: %w", err)
	}
	return nil
}
