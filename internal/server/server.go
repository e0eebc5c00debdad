// Package server exposes the generated page over HTTP in serve mode, plus
// health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Server serves the generated output file.
type Server struct {
	output  string
	port    int
	metrics http.Handler
}

// New creates a server for the page at output. metricsHandler may be nil to
// disable the /metrics endpoint.
func New(port int, output string, metricsHandler http.Handler) *Server {
	return &Server{output: output, port: port, metrics: metricsHandler}
}

// Handler builds the HTTP routing. The page is served at / and re-read from
// disk on every request, so rebuilds show up on refresh.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if _, err := os.Stat(s.output); err != nil {
			http.Error(w, "page not generated yet", http.StatusServiceUnavailable)
			return
		}
		http.ServeFile(w, r, s.output)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	return mux
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving generated page", "addr", fmt.Sprintf("http://localhost:%d", s.port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
