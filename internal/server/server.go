package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"beacon/internal/config"
	"beacon/internal/logging"
	"beacon/internal/page"
	"beacon/internal/telemetry"
	"beacon/internal/version"
)

var (
	// ErrAlreadyListening is returned by Listen when the socket is already bound
	ErrAlreadyListening = errors.New("server is already listening")

	// ErrNotListening is returned by Serve before Listen succeeded
	ErrNotListening = errors.New("server is not listening")

	// ErrServerStopped is returned by Listen after Shutdown
	ErrServerStopped = errors.New("server has been shut down")
)

// healthResponse is the body of GET /health
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	versionInfo version.Info
	renderer    page.Renderer
	now         func() time.Time
	healthBody  []byte
	handler     http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	stopped    bool
}

// Option customizes a Server built by New
type Option func(*Server)

// WithRenderer replaces the renderer selected from the page config
func WithRenderer(r page.Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithClock sets the time source used for the page render info
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a new server instance. Nothing is bound until Listen.
func New(cfg *config.Config, versionInfo version.Info, opts ...Option) (*Server, error) {
	s := &Server{
		config:      cfg,
		versionInfo: versionInfo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		renderer, err := page.FromConfig(cfg.Page)
		if err != nil {
			return nil, fmt.Errorf("failed to load landing page: %w", err)
		}
		s.renderer = renderer
	}

	body, err := json.Marshal(healthResponse{Status: "healthy", Message: cfg.HealthMessage})
	if err != nil {
		return nil, fmt.Errorf("failed to encode health response: %w", err)
	}
	s.healthBody = body

	s.handler = s.routes()
	return s, nil
}

// routes builds the mux and wraps it in the middleware chain
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)

	var h http.Handler = mux
	h = recoverMiddleware(h)
	h = accessLogMiddleware(h)
	h = requestIDMiddleware(h)
	return telemetry.Middleware(h, telemetry.DefaultServiceName)
}

// Handler returns the complete handler chain
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Listen binds the configured port on all interfaces
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrServerStopped
	}
	if s.listener != nil {
		return ErrAlreadyListening
	}

	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	port := s.config.Port
	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}
	logging.Printf("[INFO] Server running on port %d", port)
	return nil
}

// Serve handles connections on the bound socket until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Serve() error {
	s.mu.Lock()
	srv, ln := s.httpServer, s.listener
	s.mu.Unlock()

	if srv == nil || ln == nil {
		return ErrNotListening
	}

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Start binds the socket and serves until Shutdown
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Addr returns the bound address, or nil before Listen
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown gracefully shuts down the server. It is safe to call before
// Listen and more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}
	s.stopped = true

	if s.httpServer == nil {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)
	// Shutdown only closes listeners Serve has picked up.
	if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logging.Info("Server stopped")
	return nil
}
