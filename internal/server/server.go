package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/config"
	"github.com/jackzampolin/lpnmatch/internal/home"
	"github.com/jackzampolin/lpnmatch/internal/results"
	"github.com/jackzampolin/lpnmatch/internal/server/endpoints"
	"github.com/jackzampolin/lpnmatch/internal/svcctx"
)

// sweepInterval is how often expired results are removed.
const sweepInterval = 10 * time.Minute

// Server is the lpnmatch HTTP server.
// It owns the result store and sweeps expired results while running.
type Server struct {
	httpServer *http.Server
	home       *home.Dir
	configMgr  *config.Manager
	results    *results.Store
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: server.host from config)
	Host string
	// Port is the port to listen on (default: server.port from config)
	Port string
	// Home is the lpnmatch home directory holding stored results
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support.
	// Defaults are used when nil.
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil {
		return nil, errors.New("home directory is required")
	}

	current := config.DefaultConfig()
	if cfg.ConfigManager != nil {
		current = cfg.ConfigManager.Get()
	}
	if cfg.Host == "" {
		cfg.Host = current.Server.Host
	}
	if cfg.Port == "" {
		cfg.Port = current.Server.Port
	}

	if err := cfg.Home.EnsureExists(); err != nil {
		return nil, err
	}
	store, err := results.Open(cfg.Home.ResultsPath(), current.ResultTTLDuration(), cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}

	// Watch for config changes
	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			store.SetTTL(c.ResultTTLDuration())
			cfg.Logger.Info("config reloaded",
				"extract_workers", c.Extract.Workers,
				"max_upload_mb", c.Server.MaxUploadMB,
				"result_ttl", c.ResultTTLDuration())
		})
	}

	s := &Server{
		home:      cfg.Home,
		configMgr: cfg.ConfigManager,
		results:   store,
		logger:    cfg.Logger,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           s.withServices(mux),
		ReadHeaderTimeout: 30 * time.Second,
		ReadTimeout:       10 * time.Minute, // large PDF uploads
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	return s, nil
}

// Start starts the server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	// Bind before publishing services so a port clash fails fast
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	// Create services struct for context enrichment
	s.mu.Lock()
	s.services = &svcctx.Services{
		Logger:  s.logger,
		Home:    s.home,
		Config:  s.configMgr,
		Results: s.results,
	}
	s.mu.Unlock()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		s.results.Run(sweepCtx, sweepInterval)
	}()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			serveErr = fmt.Errorf("HTTP server error: %w", err)
		}
	}

	stopSweep()
	<-sweepDone

	if err := s.shutdown(); err != nil {
		return err
	}
	return serveErr
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.mu.Lock()
	s.services = nil
	s.mu.Unlock()

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Results returns the result store.
func (s *Server) Results() *results.Store {
	return s.results
}

// Handler returns the root HTTP handler, for use with httptest.
// Services are attached even if Start has not been called.
func (s *Server) Handler() http.Handler {
	s.mu.Lock()
	if s.services == nil {
		s.services = &svcctx.Services{
			Logger:  s.logger,
			Home:    s.home,
			Config:  s.configMgr,
			Results: s.results,
		}
	}
	s.mu.Unlock()
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc := s.currentServices(); svc != nil {
			ctx = svcctx.WithServices(ctx, svc)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) currentServices() *svcctx.Services {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if services are not attached yet.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.ResultsFrom(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
