package concept

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sampleGraph() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "ml", Title: "Machine Learning", Type: TypeField, Keywords: []string{"models", "data"}},
			{ID: "gd", Title: "Gradient Descent", Type: TypeAlgorithm, Position: &Point{X: 10, Y: 20}},
		},
		Edges: []Edge{
			{ID: "e1", Source: "ml", Target: "gd", Label: "uses"},
		},
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := sampleGraph()

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}

	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("round trip lost data: %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[1].Position == nil || got.Nodes[1].Position.X != 10 {
		t.Error("round trip lost position")
	}
	if got.Edges[0].Label != "uses" {
		t.Errorf("edge label = %q, want uses", got.Edges[0].Label)
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "ghost.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUnmarshalGraphInvalid(t *testing.T) {
	if _, err := UnmarshalGraph([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestMarshalGraphOmitsEmptyFields(t *testing.T) {
	data, err := MarshalGraph(Graph{Nodes: []Node{{ID: "a", Title: "Alpha"}}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "position") {
		t.Error("unpositioned node should omit position")
	}
	if strings.Contains(string(data), "keywords") {
		t.Error("empty keywords should be omitted")
	}
}

func TestNodeClone(t *testing.T) {
	n := Node{
		ID:       "a",
		Keywords: []string{"x"},
		Position: &Point{X: 1, Y: 2},
	}
	c := n.Clone()

	c.Keywords[0] = "mutated"
	c.Position.X = 99

	if n.Keywords[0] != "x" {
		t.Error("Clone shares the keywords slice")
	}
	if n.Position.X != 1 {
		t.Error("Clone shares the position pointer")
	}
}

func TestGraphClone(t *testing.T) {
	g := sampleGraph()
	c := g.Clone()

	c.Nodes[0].Title = "mutated"
	c.Edges[0].Label = "mutated"

	if g.Nodes[0].Title != "Machine Learning" {
		t.Error("Clone shares the node slice")
	}
	if g.Edges[0].Label != "uses" {
		t.Error("Clone shares the edge slice")
	}
}

func TestFindNode(t *testing.T) {
	g := sampleGraph()

	if n := g.FindNode("gd"); n == nil || n.Title != "Gradient Descent" {
		t.Errorf("FindNode(gd) = %+v", n)
	}
	if n := g.FindNode("ghost"); n != nil {
		t.Errorf("FindNode(ghost) = %+v, want nil", n)
	}

	// The pointer refers into the graph, so writes stick.
	g.FindNode("ml").Position = &Point{X: 5}
	if g.Nodes[0].Position == nil {
		t.Error("FindNode should return a pointer into the graph")
	}
}

func TestNodeIDs(t *testing.T) {
	ids := sampleGraph().NodeIDs()
	if len(ids) != 2 || ids[0] != "ml" || ids[1] != "gd" {
		t.Errorf("NodeIDs = %v", ids)
	}
}

func TestFilterNodes(t *testing.T) {
	now := time.Now()
	g := Graph{
		Nodes: []Node{
			{ID: "a", Type: TypeField, Difficulty: DifficultyBeginner, Keywords: []string{"Data"}},
			{ID: "b", Type: TypeAlgorithm, Difficulty: DifficultyAdvanced, CreatedAt: now, Resources: []string{"r"}},
			{ID: "c", Type: TypeAlgorithm, ImageURL: "http://example.com/c.png"},
		},
	}

	tests := []struct {
		name     string
		criteria FilterCriteria
		wantIDs  []string
	}{
		{"empty matches all", FilterCriteria{}, []string{"a", "b", "c"}},
		{"by type", FilterCriteria{Types: []Type{TypeAlgorithm}}, []string{"b", "c"}},
		{"by difficulty case-insensitive", FilterCriteria{Difficulties: []string{"ADVANCED"}}, []string{"b"}},
		{"by keyword case-insensitive", FilterCriteria{Keywords: []string{"data"}}, []string{"a"}},
		{"created after", FilterCriteria{CreatedAfter: now.Add(-time.Hour)}, []string{"b"}},
		{"has resources", FilterCriteria{HasResources: true}, []string{"b"}},
		{"has image", FilterCriteria{HasImage: true}, []string{"c"}},
		{"unknown type matches nothing", FilterCriteria{Types: []Type{"mystery"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterNodes(g, tt.criteria)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d nodes, want %d", len(got), len(tt.wantIDs))
			}
			for i, n := range got {
				if n.ID != tt.wantIDs[i] {
					t.Errorf("node[%d] = %s, want %s", i, n.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestSearchNodes(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "a", Title: "Machine Learning", Explanation: "statistical models"},
			{ID: "b", Title: "Compilers", Keywords: []string{"parsing", "machines"}},
			{ID: "c", Title: "machine"},
		},
	}

	tests := []struct {
		name    string
		query   string
		opts    SearchOptions
		wantIDs []string
	}{
		{"substring across fields", "machine", SearchOptions{}, []string{"a", "b", "c"}},
		{"explanation match", "statistical", SearchOptions{}, []string{"a"}},
		{"case sensitive", "machine", SearchOptions{CaseSensitive: true}, []string{"b", "c"}},
		{"exact match", "machine", SearchOptions{ExactMatch: true}, []string{"c"}},
		{"empty query", "", SearchOptions{}, nil},
		{"no match", "quantum", SearchOptions{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchNodes(g, tt.query, tt.opts)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d nodes, want %d", len(got), len(tt.wantIDs))
			}
			for i, n := range got {
				if n.ID != tt.wantIDs[i] {
					t.Errorf("node[%d] = %s, want %s", i, n.ID, tt.wantIDs[i])
				}
			}
		})
	}
}
