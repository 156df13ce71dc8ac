package web

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
}

const (
	maxHeaderBytes    = 1 << 20
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// normalizeAddr accepts "8080" as well as ":8080" or "host:8080".
func normalizeAddr(listen string) string {
	if len(listen) == 0 || strings.Contains(listen, ":") {
		return listen
	}

	return ":" + listen
}

// Run blocks serving handler until Shutdown is called.
func (s *Server) Run(listen string, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              normalizeAddr(listen),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown stops the server, letting in-flight requests complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}
