// Package server exposes the engine over an HTTP API.
//
// The API has two halves: stateless analysis endpoints that take a graph
// snapshot in the request body (POST /v1/layout, /v1/paths, /v1/similar,
// /v1/clusters, /v1/score), and a named-graph CRUD surface backed by a
// store (/v1/graphs). Every error response carries the machine-readable
// error code alongside the message.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/knomap/knomap/pkg/pipeline"
	"github.com/knomap/knomap/pkg/store"
)

// Server wires the pipeline runner and graph store into HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store disables the /v1/graphs surface; a
// nil logger falls back to the default.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/paths", s.handlePaths)
		r.Post("/similar", s.handleSimilar)
		r.Post("/clusters", s.handleClusters)
		r.Post("/score", s.handleScore)

		if s.store != nil {
			r.Route("/graphs", func(r chi.Router) {
				r.Get("/", s.handleListGraphs)
				r.Put("/{name}", s.handleSaveGraph)
				r.Get("/{name}", s.handleLoadGraph)
				r.Delete("/{name}", s.handleDeleteGraph)
				r.Post("/{name}/layout", s.handleStoredLayout)
			})
		}
	})

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
