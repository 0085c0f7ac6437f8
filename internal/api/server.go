package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/timmy/memezvukach/internal/logger"
)

// Server wraps the keep-alive HTTP server lifecycle.
type Server struct {
	srv *http.Server
}

// NewServer builds the keep-alive server on the given port.
// Parameters:
//   - port: TCP port to listen on.
//   - mode: Gin mode (debug, release, test).
// Returns:
//   - *Server: configured server, not yet listening.
func NewServer(port int, mode string) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           SetupRouter(mode),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run listens until the context is cancelled, then shuts down gracefully.
// Parameters:
//   - ctx: cancellation signal for shutdown.
// Returns:
//   - error: listener failure, nil on clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.CtxInfo(ctx, "Keep-alive server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
