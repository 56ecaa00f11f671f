package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knomap/knomap/pkg/cluster"
	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/layout"
	"github.com/knomap/knomap/pkg/pipeline"
	"github.com/knomap/knomap/pkg/scoring"
	"github.com/knomap/knomap/pkg/similarity"
	"github.com/knomap/knomap/pkg/traverse"
)

// ====== Layout ======

type layoutRequest struct {
	Graph   concept.Graph    `json:"graph"`
	Options pipeline.Options `json:"options"`
}

type layoutResponse struct {
	Graph concept.Graph      `json:"graph"`
	View  layout.View        `json:"view"`
	Stats pipeline.Stats     `json:"stats"`
	Cache pipeline.CacheInfo `json:"cache"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.runLayout(w, r, req.Graph, req.Options)
}

func (s *Server) runLayout(w http.ResponseWriter, r *http.Request, g concept.Graph, opts pipeline.Options) {
	result, err := s.runner.ApplyLayout(r.Context(), g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Graph: result.Graph,
		View:  result.View,
		Stats: result.Stats,
		Cache: result.CacheInfo,
	})
}

// ====== Analysis queries ======

type pathsRequest struct {
	Graph    concept.Graph `json:"graph"`
	Source   string        `json:"source"`
	Target   string        `json:"target"`
	All      bool          `json:"all,omitempty"`
	MaxDepth int           `json:"max_depth,omitempty"`
}

type pathsResponse struct {
	Paths []traverse.PathResult `json:"paths"`
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	var req pathsRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidateNodeID(req.Source); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidateNodeID(req.Target); err != nil {
		s.fail(w, r, err)
		return
	}

	if req.All {
		paths, err := s.runner.AllPaths(r.Context(), req.Graph, req.Source, req.Target, req.MaxDepth)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pathsResponse{Paths: paths})
		return
	}

	res, err := s.runner.ShortestPath(r.Context(), req.Graph, req.Source, req.Target)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pathsResponse{Paths: []traverse.PathResult{res}})
}

type similarRequest struct {
	Graph     concept.Graph `json:"graph"`
	TargetID  string        `json:"target_id"`
	Threshold float64       `json:"threshold,omitempty"`
}

type similarResponse struct {
	Matches []similarity.Match `json:"matches"`
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	var req similarRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidateNodeID(req.TargetID); err != nil {
		s.fail(w, r, err)
		return
	}

	matches, err := s.runner.FindSimilar(r.Context(), req.Graph, req.TargetID, req.Threshold)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if matches == nil {
		matches = []similarity.Match{}
	}
	writeJSON(w, http.StatusOK, similarResponse{Matches: matches})
}

type clustersRequest struct {
	Graph   concept.Graph `json:"graph"`
	MinSize int           `json:"min_size,omitempty"`
}

type clustersResponse struct {
	Clusters []cluster.Result `json:"clusters"`
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	var req clustersRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	clusters, err := s.runner.Clusters(r.Context(), req.Graph, req.MinSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if clusters == nil {
		clusters = []cluster.Result{}
	}
	writeJSON(w, http.StatusOK, clustersResponse{Clusters: clusters})
}

type scoreRequest struct {
	Graph  concept.Graph `json:"graph"`
	RootID string        `json:"root_id"`
}

type scoreResponse struct {
	Scores []scoring.Score `json:"scores"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := errors.ValidateNodeID(req.RootID); err != nil {
		s.fail(w, r, err)
		return
	}

	scores, err := s.runner.Scores(r.Context(), req.Graph, req.RootID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if scores == nil {
		scores = []scoring.Score{}
	}
	writeJSON(w, http.StatusOK, scoreResponse{Scores: scores})
}

// ====== Stored graphs ======

type listGraphsResponse struct {
	Graphs []string `json:"graphs"`
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, listGraphsResponse{Graphs: names})
}

func (s *Server) handleSaveGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var g concept.Graph
	if err := decodeBody(r, &g); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), name, g); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

func (s *Server) handleLoadGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rec, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.store.Delete(r.Context(), name); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStoredLayout lays out a graph loaded from the store, so clients
// holding only a graph name never ship the graph body over the wire.
func (s *Server) handleStoredLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rec, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var opts pipeline.Options
	if err := decodeBody(r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	s.runLayout(w, r, rec.Graph, opts)
}
