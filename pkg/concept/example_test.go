package concept_test

import (
	"fmt"
	"strings"

	"github.com/knomap/knomap/pkg/concept"
)

func ExampleReadGraph() {
	jsonData := `{
		"nodes": [
			{"id": "ml", "title": "Machine Learning", "type": "field"},
			{"id": "gd", "title": "Gradient Descent", "type": "algorithm"}
		],
		"edges": [
			{"id": "e1", "source": "ml", "target": "gd", "label": "uses"}
		]
	}`

	g, err := concept.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("%d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
	for _, n := range g.Nodes {
		fmt.Printf("%s (%s)\n", n.Title, n.Type)
	}
	// Output:
	// 2 nodes, 1 edges
	// Machine Learning (field)
	// Gradient Descent (algorithm)
}

func ExampleSearchNodes() {
	g := concept.Graph{
		Nodes: []concept.Node{
			{ID: "ml", Title: "Machine Learning", Keywords: []string{"models"}},
			{ID: "compilers", Title: "Compilers", Keywords: []string{"state machines"}},
			{ID: "stats", Title: "Statistics"},
		},
	}

	for _, n := range concept.SearchNodes(g, "machine", concept.SearchOptions{}) {
		fmt.Println(n.ID)
	}
	// Output:
	// ml
	// compilers
}

func ExampleFilterNodes() {
	g := concept.Graph{
		Nodes: []concept.Node{
			{ID: "ml", Type: concept.TypeField},
			{ID: "gd", Type: concept.TypeAlgorithm},
			{ID: "pytorch", Type: concept.TypeTool},
		},
	}

	criteria := concept.FilterCriteria{
		Types: []concept.Type{concept.TypeAlgorithm, concept.TypeTool},
	}
	for _, n := range concept.FilterNodes(g, criteria) {
		fmt.Println(n.ID)
	}
	// Output:
	// gd
	// pytorch
}
