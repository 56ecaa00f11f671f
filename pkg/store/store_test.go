package store

import (
	"context"
	"testing"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
)

func sampleGraph() concept.Graph {
	return concept.Graph{
		Nodes: []concept.Node{{ID: "a", Title: "Alpha"}, {ID: "b", Title: "Beta"}},
		Edges: []concept.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if err := s.Save(ctx, "main", sampleGraph()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Name != "main" {
		t.Errorf("Name = %q, want main", rec.Name)
	}
	if len(rec.Graph.Nodes) != 2 || len(rec.Graph.Edges) != 1 {
		t.Errorf("loaded graph has %d nodes / %d edges", len(rec.Graph.Nodes), len(rec.Graph.Edges))
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Load(context.Background(), "ghost")
	if !errors.Is(err, errors.ErrCodeGraphNotFound) {
		t.Errorf("error = %v, want GRAPH_NOT_FOUND", err)
	}
}

func TestMemoryStoreSaveRejectsUnsafeURLs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tests := []struct {
		name string
		node concept.Node
	}{
		{"javascript image", concept.Node{ID: "a", ImageURL: "javascript:alert(1)"}},
		{"file resource", concept.Node{ID: "a", Resources: []string{"file:///etc/passwd"}}},
		{"schemeless resource", concept.Node{ID: "a", Resources: []string{"example.com/doc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := concept.Graph{Nodes: []concept.Node{tt.node}}
			err := s.Save(ctx, "main", g)
			if err == nil {
				t.Fatal("expected error for unsafe URL")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidInput {
				t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}

	// Plain http(s) content still saves.
	ok := concept.Graph{Nodes: []concept.Node{{
		ID:        "a",
		ImageURL:  "https://example.com/a.png",
		Resources: []string{"http://example.com/doc"},
	}}}
	if err := s.Save(ctx, "main", ok); err != nil {
		t.Fatalf("Save with http(s) URLs: %v", err)
	}
}

func TestMemoryStoreSavePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, "main", sampleGraph()); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Load(ctx, "main")

	if err := s.Save(ctx, "main", concept.Graph{}); err != nil {
		t.Fatal(err)
	}
	second, _ := s.Load(ctx, "main")

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("resave should preserve CreatedAt")
	}
	if len(second.Graph.Nodes) != 0 {
		t.Error("resave should replace the graph")
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	g := sampleGraph()
	if err := s.Save(ctx, "main", g); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's graph must not touch the stored copy.
	g.Nodes[0].Title = "mutated"
	rec, _ := s.Load(ctx, "main")
	if rec.Graph.Nodes[0].Title != "Alpha" {
		t.Error("store leaked a reference to the caller's graph")
	}

	// Mutating a loaded copy must not touch the stored copy either.
	rec.Graph.Nodes[0].Title = "mutated"
	again, _ := s.Load(ctx, "main")
	if again.Graph.Nodes[0].Title != "Alpha" {
		t.Error("store leaked a reference to a loaded graph")
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Save(ctx, name, concept.Graph{}); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, "main", concept.Graph{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "main"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "main"); !errors.Is(err, errors.ErrCodeGraphNotFound) {
		t.Errorf("second delete error = %v, want GRAPH_NOT_FOUND", err)
	}
}

func TestMemoryStoreRejectsBadNames(t *testing.T) {
	s := NewMemoryStore()
	err := s.Save(context.Background(), "../escape", sampleGraph())
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("error = %v, want INVALID_GRAPH", err)
	}
}
