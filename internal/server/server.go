// Package server runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// ShutdownHook runs during graceful shutdown, after the HTTP server stopped
// accepting connections.
type ShutdownHook func(ctx context.Context) error

// Server wraps http.Server with signal handling and ordered shutdown hooks.
type Server struct {
	server          *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
	hooks           []ShutdownHook
	done            chan struct{}
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger. If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShutdownTimeout bounds how long graceful shutdown may take.
// Defaults to 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithShutdownHook appends a hook run during shutdown, in registration order.
func WithShutdownHook(hook ShutdownHook) Option {
	return func(s *Server) {
		if hook != nil {
			s.hooks = append(s.hooks, hook)
		}
	}
}

// New creates a Server for the given address and handler.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
		},
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdownTimeout: defaultShutdownTimeout,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts the HTTP server and blocks until shutdown. It handles SIGINT and
// SIGTERM for graceful shutdown. Returns nil on clean shutdown, or an error if
// the server fails to start or shutdown hooks fail.
func (s *Server) Run(baseCtx context.Context) error {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Listen first to surface bind errors synchronously.
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Even when Serve fails, the hooks must still run so resources opened
	// before Run (DB pool, schedulers) are released.
	select {
	case err := <-errCh:
		return s.shutdown(err)
	case <-ctx.Done():
	case <-s.done:
	}
	return s.shutdown(nil)
}

func (s *Server) shutdown(serveErr error) error {
	s.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if serveErr != nil {
		errs = append(errs, serveErr)
	}
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range s.hooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}
	s.logger.Info("shutdown completed")
	return nil
}

// Stop triggers graceful shutdown programmatically. Safe to call more than
// once.
func (s *Server) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
