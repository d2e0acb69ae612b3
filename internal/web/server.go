// Package web exposes the dashboard HTTP API: solving questions, browsing
// and searching solve history, and running the benchmark suite. It is a
// thin JSON surface over the agent, history and bench packages.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/pondlabs/ponder/internal/bench"
	"github.com/pondlabs/ponder/internal/history"
)

// Server serves the dashboard API.
type Server struct {
	server *http.Server
}

// New builds the router and server. The history store may be nil, in which
// case the history endpoints report 503 and solves are not persisted.
func New(addr string, solver bench.Solver, store *history.Store) *Server {
	h := &handlers{solver: solver, store: store}

	r := chi.NewRouter()
	r.Use(logMiddleware())

	r.Get("/healthz", h.health)
	r.Post("/api/solve", h.solve)
	r.Get("/api/history", h.recent)
	r.Get("/api/history/search", h.search)
	r.Post("/api/bench", h.bench)

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: r,
		},
	}
}

// Start blocks serving until Stop is called or the listener fails.
func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}
