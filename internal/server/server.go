package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendy/internal/config"
	"trendy/internal/core"
	"trendy/internal/logger"
	"trendy/internal/pipeline"
)

// Runner executes one run. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, opts pipeline.RunOptions) (*core.Run, error)
}

// Defaults are applied to requests that do not set city or mode
type Defaults struct {
	City       string
	Mode       core.Mode
	RunTimeout time.Duration
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	runner     Runner
	defaults   Defaults
	config     config.Server
	log        *slog.Logger
}

// New creates a new HTTP server instance
func New(runner Runner, cfg config.Server, defaults Defaults) *Server {
	if defaults.Mode == "" {
		defaults.Mode = core.ModeGrounded
	}

	s := &Server{
		router:   chi.NewRouter(),
		runner:   runner,
		defaults: defaults,
		config:   cfg,
		log:      logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)

	if len(s.config.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/reports", s.handleCreateReports)
	})

	s.router.Get("/", s.handleHomePage)
	s.router.Post("/generate", s.handleGeneratePage)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}

// execute applies defaults and the run timeout, then runs the pipeline.
func (s *Server) execute(ctx context.Context, city string, mode core.Mode) (*core.Run, error) {
	if city == "" {
		city = s.defaults.City
	}
	if mode == "" {
		mode = s.defaults.Mode
	}
	if s.defaults.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.defaults.RunTimeout)
		defer cancel()
	}
	return s.runner.Run(ctx, pipeline.RunOptions{Mode: mode, City: city})
}
