// package server contains the router, middleware and HTTP server lifecycle for the watchlist web app
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, CSRF checks, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler is implemented by types that own a set of routes.
type Handler interface {
	Register(r Router) // Register adds the handler's routes to r
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	Group(fn func(r Router))                          // Group registers routes that share extra middleware
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// ErrorRenderer writes an error response for status. Middleware uses it so the web layer controls error pages.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, status int)

// PlainError is the [ErrorRenderer] used when none is configured.
func PlainError(w http.ResponseWriter, r *http.Request, status int) {
	http.Error(w, http.StatusText(status), status)
}

const shutdownTimeout = 10 * time.Second

// Server runs an [http.Server] until its context is cancelled, then shuts down gracefully.
type Server struct {
	http   *http.Server
	logger *log.Logger
}

// New creates a [Server] for handler on addr.
func New(addr string, handler http.Handler, logger *log.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Listen binds the configured address. The listener is handed to [Server.Serve].
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is done.
//
// On cancellation it stops accepting and waits for in-flight requests to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errs <- s.http.Serve(ln)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
