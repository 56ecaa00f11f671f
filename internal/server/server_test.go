package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/pipeline"
	"github.com/knomap/knomap/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := New(runner, store.NewMemoryStore(), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func testGraph() concept.Graph {
	return concept.Graph{
		Nodes: []concept.Node{
			{ID: "a", Title: "Graph Theory", Type: concept.TypeField},
			{ID: "b", Title: "Dijkstra", Type: concept.TypeAlgorithm},
			{ID: "c", Title: "Dijkstra's Algorithm", Type: concept.TypeAlgorithm},
		},
		Edges: []concept.Edge{
			{ID: "e1", Source: "a", Target: "b", Label: "contains"},
			{ID: "e2", Source: "b", Target: "c"},
		},
	}
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/layout", layoutRequest{
		Graph:   testGraph(),
		Options: pipeline.Options{Strategy: "radial", RootID: "a"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out layoutResponse
	decodeInto(t, resp, &out)

	if len(out.Graph.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(out.Graph.Nodes))
	}
	for _, n := range out.Graph.Nodes {
		if n.Position == nil {
			t.Errorf("node %s not positioned", n.ID)
		}
	}
	if out.View.Zoom <= 0 {
		t.Errorf("View.Zoom = %v, want > 0", out.View.Zoom)
	}
	if out.Stats.NodeCount != 3 || out.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", out.Stats)
	}
}

func TestLayoutRootRequired(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/layout", layoutRequest{
		Graph:   testGraph(),
		Options: pipeline.Options{Strategy: "radial"},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	var out errorResponse
	decodeInto(t, resp, &out)
	if out.Code != "ROOT_REQUIRED" {
		t.Errorf("code = %q, want ROOT_REQUIRED", out.Code)
	}
}

func TestLayoutInvalidStrategy(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/layout", layoutRequest{
		Graph:   testGraph(),
		Options: pipeline.Options{Strategy: "spiral"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var out errorResponse
	decodeInto(t, resp, &out)
	if out.Code != "INVALID_STRATEGY" {
		t.Errorf("code = %q, want INVALID_STRATEGY", out.Code)
	}
}

func TestLayoutRejectsUnknownFields(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/layout", "application/json",
		bytes.NewReader([]byte(`{"grph": {}}`)))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestShortestPathEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/paths", pathsRequest{
		Graph:  testGraph(),
		Source: "a",
		Target: "c",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out pathsResponse
	decodeInto(t, resp, &out)
	if len(out.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(out.Paths))
	}
	p := out.Paths[0]
	if !p.Found || p.Distance != 2 {
		t.Errorf("path = %+v, want found with distance 2", p)
	}
}

func TestAllPathsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/paths", pathsRequest{
		Graph:  testGraph(),
		Source: "a",
		Target: "c",
		All:    true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out pathsResponse
	decodeInto(t, resp, &out)
	if len(out.Paths) != 1 {
		t.Errorf("got %d paths, want 1", len(out.Paths))
	}
}

func TestPathsRejectsBadNodeID(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/paths", pathsRequest{
		Graph:  testGraph(),
		Source: "has space",
		Target: "c",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var out errorResponse
	decodeInto(t, resp, &out)
	if out.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", out.Code)
	}
}

func TestSimilarEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/similar", similarRequest{
		Graph:     testGraph(),
		TargetID:  "b",
		Threshold: 0.3,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out similarResponse
	decodeInto(t, resp, &out)
	if out.Matches == nil {
		t.Fatal("matches should never be null")
	}
	// "Dijkstra" and "Dijkstra's Algorithm" share enough text to match
	// at this threshold.
	found := false
	for _, m := range out.Matches {
		if m.Node.ID == "c" {
			found = true
		}
	}
	if !found {
		t.Errorf("matches = %+v, want node c included", out.Matches)
	}
}

func TestClustersEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/clusters", clustersRequest{Graph: testGraph()})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out clustersResponse
	decodeInto(t, resp, &out)
	if len(out.Clusters) != 1 {
		t.Errorf("got %d clusters, want 1", len(out.Clusters))
	}
}

func TestScoreEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/v1/score", scoreRequest{
		Graph:  testGraph(),
		RootID: "a",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out scoreResponse
	decodeInto(t, resp, &out)
	if len(out.Scores) != 3 {
		t.Errorf("got %d scores, want 3", len(out.Scores))
	}
}

func TestGraphCRUD(t *testing.T) {
	ts := newTestServer(t)
	client := ts.Client()

	// Save.
	data, _ := json.Marshal(testGraph())
	req, _ := http.NewRequestWithContext(context.Background(),
		http.MethodPut, ts.URL+"/v1/graphs/main", bytes.NewReader(data))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}

	// List.
	resp, err = http.Get(ts.URL + "/v1/graphs/")
	if err != nil {
		t.Fatal(err)
	}
	var list listGraphsResponse
	decodeInto(t, resp, &list)
	if len(list.Graphs) != 1 || list.Graphs[0] != "main" {
		t.Errorf("graphs = %v, want [main]", list.Graphs)
	}

	// Load.
	resp, err = http.Get(ts.URL + "/v1/graphs/main")
	if err != nil {
		t.Fatal(err)
	}
	var rec store.Record
	decodeInto(t, resp, &rec)
	if rec.Name != "main" || len(rec.Graph.Nodes) != 3 {
		t.Errorf("record = %+v", rec)
	}

	// Layout from the store.
	resp = postJSON(t, ts, "/v1/graphs/main/layout",
		pipeline.Options{Strategy: "radial", RootID: "a"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stored layout status = %d, want 200", resp.StatusCode)
	}
	var lo layoutResponse
	decodeInto(t, resp, &lo)
	if len(lo.Graph.Nodes) != 3 {
		t.Errorf("stored layout returned %d nodes", len(lo.Graph.Nodes))
	}

	// Delete.
	req, _ = http.NewRequestWithContext(context.Background(),
		http.MethodDelete, ts.URL+"/v1/graphs/main", nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", resp.StatusCode)
	}

	// Gone.
	resp, err = http.Get(ts.URL + "/v1/graphs/main")
	if err != nil {
		t.Fatal(err)
	}
	var e errorResponse
	decodeInto(t, resp, &e)
	if resp.StatusCode != http.StatusNotFound || e.Code != "GRAPH_NOT_FOUND" {
		t.Errorf("status = %d code = %q, want 404 GRAPH_NOT_FOUND", resp.StatusCode, e.Code)
	}
}

func TestSaveGraphRejectsUnsafeURL(t *testing.T) {
	ts := newTestServer(t)

	g := concept.Graph{Nodes: []concept.Node{
		{ID: "a", Title: "Alpha", ImageURL: "javascript:alert(1)"},
	}}
	data, _ := json.Marshal(g)
	req, _ := http.NewRequestWithContext(context.Background(),
		http.MethodPut, ts.URL+"/v1/graphs/main", bytes.NewReader(data))
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var e errorResponse
	decodeInto(t, resp, &e)
	if resp.StatusCode != http.StatusBadRequest || e.Code != "INVALID_INPUT" {
		t.Errorf("status = %d code = %q, want 400 INVALID_INPUT", resp.StatusCode, e.Code)
	}
}

func TestLoadMissingGraph(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/graphs/ghost")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
