// Package api serves the AutoCare HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/autocare/autocare/internal/app"
	"github.com/autocare/autocare/internal/config"
	"github.com/autocare/autocare/internal/logging"
)

// Server is the HTTP API server.
type Server struct {
	router    *http.ServeMux
	server    *http.Server
	app       *app.App
	validator *Validator
	log       *slog.Logger
	version   string
	started   time.Time
}

// NewServer creates a server for a. Routes and middleware are registered
// immediately; call Start to listen.
func NewServer(a *app.App, cfg config.ServerConfig, version string) (*Server, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	s := &Server{
		router:    http.NewServeMux(),
		app:       a,
		validator: v,
		log:       logging.New("api"),
		version:   version,
		started:   time.Now(),
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.applyMiddleware(s.router),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler; the last one applied runs first.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	handler = RecoveryMiddleware(s.log)(handler)
	handler = LoggingMiddleware(s.log)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
