// Package api implements the netlayout HTTP API.
//
// The API exposes the layout pipeline over JSON: one-shot layout and
// crossing-count endpoints for ad-hoc topologies, plus CRUD for topologies
// kept in the configured store. Stored topologies can be laid out in place,
// which persists the updated positions.
//
// # Endpoints
//
//	GET    /healthz                       liveness probe
//	POST   /v1/layout                     compute positions for a posted topology
//	POST   /v1/render                     render a posted topology to svg/png/dot
//	POST   /v1/crossings                  count link crossings at posted positions
//	GET    /v1/topologies                 list stored topologies
//	POST   /v1/topologies                 create or update a stored topology
//	GET    /v1/topologies/{name}          fetch a stored topology
//	DELETE /v1/topologies/{name}          delete a stored topology
//	POST   /v1/topologies/{name}/layout   lay out a stored topology and persist it
//
// Errors are returned as {"error": "...", "code": "..."} with an HTTP status
// derived from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmichalek/netlayout/pkg/pipeline"
	"github.com/jmichalek/netlayout/pkg/store"
)

// Server serves the netlayout HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server around the given pipeline runner and topology store.
// A nil logger falls back to log.Default().
func New(runner *pipeline.Runner, s store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	srv := &Server{
		runner: runner,
		store:  s,
		logger: logger,
	}
	srv.router = srv.routes()
	return srv
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// routes wires up the router with middleware and all endpoints.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/crossings", s.handleCrossings)

		r.Route("/topologies", func(r chi.Router) {
			r.Get("/", s.handleTopologyList)
			r.Post("/", s.handleTopologySave)
			r.Get("/{name}", s.handleTopologyGet)
			r.Delete("/{name}", s.handleTopologyDelete)
			r.Post("/{name}/layout", s.handleTopologyLayout)
		})
	})

	return r
}

// ListenAndServe runs the API server until ctx is cancelled, then shuts it
// down gracefully with a short drain timeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("API server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
