// Package server exposes a single chat widget over a small local JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bz888/gemchat/internal/api/server/handlers"
	"github.com/bz888/gemchat/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	srv         *http.Server
	localLogger *logger.Logger
}

func New(addr string, handler *handlers.Handler) *Server {
	mux := http.NewServeMux()
	registerRoutes(mux, handler)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		localLogger: logger.NewLogger("Server"),
	}
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.localLogger.Info("Server started on http://localhost" + s.srv.Addr + "/")
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.localLogger.Info("Server stopped")
	return nil
}
