package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/pipeline"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

// writeTestGraph writes a small connected graph and returns its path.
func writeTestGraph(t *testing.T) string {
	t.Helper()
	g := concept.Graph{
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
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := concept.WriteGraphFile(g, path); err != nil {
		t.Fatalf("write test graph: %v", err)
	}
	return path
}

// run executes the CLI with args and returns the error.
func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

// captureStdout runs fn and returns everything it wrote to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	return buf.String()
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDGOverride(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q, want XDG override", dir)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if path != filepath.Join("/tmp/xdg-config", appName, "config.toml") {
		t.Errorf("configPath() = %q", path)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Layout.Strategy != pipeline.DefaultStrategy {
		t.Errorf("Layout.Strategy = %q, want %q", cfg.Layout.Strategy, pipeline.DefaultStrategy)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := `
[cache]
backend = "none"

[store]
mongo_uri = "mongodb://localhost:27017"

[layout]
strategy = "radial"
width = 1200
`
	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, appName, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig()
	if cfg.Cache.Backend != CacheBackendNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Store.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("Store.MongoURI = %q", cfg.Store.MongoURI)
	}
	if cfg.Layout.Strategy != "radial" || cfg.Layout.Width != 1200 {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	// Untouched sections keep their defaults.
	if cfg.Layout.Height != pipeline.DefaultHeight {
		t.Errorf("Layout.Height = %v, want default", cfg.Layout.Height)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := LoadConfig()
	if cfg.Cache.Backend != CacheBackendFile {
		t.Error("missing config file should fall back to defaults")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := newTestCLI()
	root := c.RootCommand()

	want := []string{"layout", "paths", "traverse", "search", "similar", "clusters", "score", "graphs", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writeTestGraph(t)
	output := filepath.Join(t.TempDir(), "out.json")

	c := newTestCLI()
	err := run(t, c, "layout", input, "--strategy", "radial", "--root", "a", "-o", output)
	if err != nil {
		t.Fatalf("layout command: %v", err)
	}

	g, err := concept.ReadGraphFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, n := range g.Nodes {
		if n.Position == nil {
			t.Errorf("node %s not positioned", n.ID)
		}
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "layout", input, "--no-cache"); err != nil {
		t.Fatalf("layout command: %v", err)
	}

	want := strings.TrimSuffix(input, ".json") + ".layout.json"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected default output at %s: %v", want, err)
	}
}

func TestLayoutCommandRejectsBadOutput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := writeTestGraph(t)

	c := newTestCLI()
	// A trailing separator names a directory, not an output file.
	if err := run(t, c, "layout", input, "--root", "a", "-o", "out/", "--no-cache"); err == nil {
		t.Fatal("expected error for directory output path")
	}
}

func TestLayoutCommandRootRequired(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writeTestGraph(t)

	c := newTestCLI()
	// Not a TTY in tests, so no interactive picker; radial needs a root.
	err := run(t, c, "layout", input, "--strategy", "radial", "--no-cache")
	if err == nil {
		t.Fatal("expected error for rooted strategy without --root")
	}
}

func TestPathsCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "paths", input, "a", "c", "--no-cache"); err != nil {
		t.Fatalf("paths command: %v", err)
	}
	if err := run(t, c, "paths", input, "a", "c", "--all", "--no-cache"); err != nil {
		t.Fatalf("paths --all: %v", err)
	}
}

func TestPathsCommandBadNodeID(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "paths", input, "has space", "c"); err == nil {
		t.Fatal("expected error for node id with whitespace")
	}
}

func TestTraverseCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := writeTestGraph(t)

	c := newTestCLI()
	out := captureStdout(t, func() {
		if err := run(t, c, "traverse", input, "a"); err != nil {
			t.Errorf("traverse command: %v", err)
		}
	})
	// With --max-depth left at 0 the whole chain is reachable, not just
	// the start node.
	if !strings.Contains(out, "Visited 3 concepts") {
		t.Errorf("default depth should reach all three concepts, got:\n%s", out)
	}
	for _, id := range []string{"a", "b", "c"} {
		if !strings.Contains(out, id) {
			t.Errorf("traverse output missing %s:\n%s", id, out)
		}
	}

	if err := run(t, c, "traverse", input, "a", "-m", "dfs"); err != nil {
		t.Fatalf("traverse dfs: %v", err)
	}
	if err := run(t, c, "traverse", input, "a", "-m", "sideways"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestSearchCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "search", input, "dijkstra"); err != nil {
		t.Fatalf("search command: %v", err)
	}
}

func TestSimilarCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "similar", input, "b", "-t", "0.3", "--no-cache"); err != nil {
		t.Fatalf("similar command: %v", err)
	}
}

func TestClustersCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "clusters", input, "--no-cache"); err != nil {
		t.Fatalf("clusters command: %v", err)
	}
}

func TestScoreCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "score", input, "a", "--no-cache"); err != nil {
		t.Fatalf("score command: %v", err)
	}
}

func TestScoreCommandUnknownRoot(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	input := writeTestGraph(t)

	c := newTestCLI()
	if err := run(t, c, "score", input, "ghost", "--no-cache"); err == nil {
		t.Fatal("expected error for unknown root")
	}
}

func TestGraphsCommandsNeedMongoURI(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := newTestCLI()
	if err := run(t, c, "graphs", "list"); err == nil {
		t.Fatal("expected error without mongo_uri configured")
	}
}
