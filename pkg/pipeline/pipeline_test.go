package pipeline

import (
	"context"
	"testing"

	"github.com/knomap/knomap/pkg/cache"
	"github.com/knomap/knomap/pkg/concept"
)

func testGraph() concept.Graph {
	return concept.Graph{
		Nodes: []concept.Node{
			{ID: "a", Title: "Graph Theory"},
			{ID: "b", Title: "Graph Algorithms"},
			{ID: "c", Title: "Shortest Paths"},
		},
		Edges: []concept.Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "b", Target: "c"},
		},
	}
}

func TestValidateStrategy(t *testing.T) {
	for _, s := range []string{"force", "radial", "intelligent", "hierarchy"} {
		if err := ValidateStrategy(s); err != nil {
			t.Errorf("ValidateStrategy(%q) = %v, want nil", s, err)
		}
	}
	if err := ValidateStrategy("spiral"); err == nil {
		t.Error("ValidateStrategy should reject unknown strategies")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Strategy != DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", opts.Strategy, DefaultStrategy)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("canvas = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if opts.NodeRadius != DefaultNodeRadius {
		t.Errorf("NodeRadius = %v, want %v", opts.NodeRadius, DefaultNodeRadius)
	}

	// Idempotent
	opts.Width = 123
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Width != 123 {
		t.Error("second validation should not reset fields")
	}
}

func TestApplyLayoutCachesResult(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Strategy: "radial", RootID: "a"}

	first, err := runner.ApplyLayout(ctx, testGraph(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run should be a cache miss")
	}
	for _, n := range first.Graph.Nodes {
		if n.Position == nil {
			t.Errorf("node %s unpositioned", n.ID)
		}
	}

	second, err := runner.ApplyLayout(ctx, testGraph(), Options{Strategy: "radial", RootID: "a"})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the cache")
	}
	if second.GraphHash != first.GraphHash {
		t.Error("identical snapshots should share a graph hash")
	}
	for i := range first.Graph.Nodes {
		p1, p2 := first.Graph.Nodes[i].Position, second.Graph.Nodes[i].Position
		if p1.X != p2.X || p1.Y != p2.Y {
			t.Errorf("cached positions differ for %s", first.Graph.Nodes[i].ID)
		}
	}
}

func TestApplyLayoutRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	if _, err := runner.ApplyLayout(ctx, testGraph(), Options{Strategy: "radial", RootID: "a"}); err != nil {
		t.Fatal(err)
	}
	res, err := runner.ApplyLayout(ctx, testGraph(), Options{Strategy: "radial", RootID: "a", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("refresh should not report a cache hit")
	}
}

func TestApplyLayoutDifferentOptionsDifferentKeys(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	if _, err := runner.ApplyLayout(ctx, testGraph(), Options{Strategy: "radial", RootID: "a"}); err != nil {
		t.Fatal(err)
	}
	res, err := runner.ApplyLayout(ctx, testGraph(), Options{Strategy: "radial", RootID: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("different root must not reuse the cached layout")
	}
}

func TestApplyLayoutRootRequired(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.ApplyLayout(context.Background(), testGraph(), Options{Strategy: "radial"})
	if err == nil {
		t.Fatal("expected root-required error")
	}
}

func TestQueryPassthroughs(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()
	g := testGraph()

	path, err := runner.ShortestPath(ctx, g, "a", "c")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if !path.Found || path.Distance != 2 {
		t.Errorf("path = %+v, want found at distance 2", path)
	}

	paths, err := runner.AllPaths(ctx, g, "a", "c", 0)
	if err != nil {
		t.Fatalf("AllPaths: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("found %d paths, want 1", len(paths))
	}

	clusters, err := runner.Clusters(ctx, g, 2)
	if err != nil {
		t.Fatalf("Clusters: %v", err)
	}
	if len(clusters) != 1 {
		t.Errorf("found %d clusters, want 1", len(clusters))
	}

	matches, err := runner.FindSimilar(ctx, g, "a", 0.3)
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	for _, m := range matches {
		if m.Node.ID == "a" {
			t.Error("target should not match itself")
		}
	}

	scores, err := runner.Scores(ctx, g, "a")
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("scored %d nodes, want 3", len(scores))
	}
}

func TestQueryCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()
	g := testGraph()

	first, err := runner.ShortestPath(ctx, g, "a", "c")
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.ShortestPath(ctx, g, "a", "c")
	if err != nil {
		t.Fatal(err)
	}
	if first.Distance != second.Distance || len(first.Path) != len(second.Path) {
		t.Errorf("cached query result differs: %+v vs %+v", first, second)
	}
}

func TestScoresUnknownRoot(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	scores, err := runner.Scores(context.Background(), testGraph(), "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 0 {
		t.Errorf("unknown root should yield empty scores, got %d", len(scores))
	}
}
