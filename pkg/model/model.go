package model

import (
	"github.com/knomap/knomap/pkg/concept"
)

// Direction selects which adjacency lists a neighbor query consults.
type Direction int

const (
	// Outgoing follows edges from source to target.
	Outgoing Direction = 1 << iota
	// Incoming follows edges from target back to source.
	Incoming
	// Both follows edges in either direction. Traversal and layout use
	// this: concept edges are directed for bookkeeping but undirected in
	// meaning.
	Both = Outgoing | Incoming
)

// Model is the adjacency index over a concept-graph snapshot.
//
// A Model is built fresh for every query or layout call and holds no state
// beyond the indices derived from the snapshot it was given. It never
// mutates the snapshot. Edges whose source or target is not a known node ID
// are skipped during construction; they appear in Edges() lookups by ID but
// contribute nothing to adjacency.
//
// Construction is O(V+E). Model is safe for concurrent readers as long as
// the underlying snapshot is not concurrently mutated.
type Model struct {
	graph    concept.Graph
	nodes    map[string]*concept.Node
	edges    map[string]*concept.Edge
	outgoing map[string][]string // source ID -> target IDs
	incoming map[string][]string // target ID -> source IDs
}

// Build constructs the adjacency index for a graph snapshot.
// Every known node ID gets an entry in both adjacency maps, including
// isolated nodes (empty lists), so lookups never distinguish "no neighbors"
// from "unknown node" by map presence alone - use HasNode for that.
func Build(g concept.Graph) *Model {
	m := &Model{
		graph:    g,
		nodes:    make(map[string]*concept.Node, len(g.Nodes)),
		edges:    make(map[string]*concept.Edge, len(g.Edges)),
		outgoing: make(map[string][]string, len(g.Nodes)),
		incoming: make(map[string][]string, len(g.Nodes)),
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		m.nodes[n.ID] = n
		m.outgoing[n.ID] = []string{}
		m.incoming[n.ID] = []string{}
	}

	for i := range g.Edges {
		e := &g.Edges[i]
		m.edges[e.ID] = e
		// Dangling edge tolerance: both endpoints must exist.
		if _, ok := m.nodes[e.Source]; !ok {
			continue
		}
		if _, ok := m.nodes[e.Target]; !ok {
			continue
		}
		m.outgoing[e.Source] = append(m.outgoing[e.Source], e.Target)
		m.incoming[e.Target] = append(m.incoming[e.Target], e.Source)
	}

	return m
}

// Graph returns the snapshot this model was built from.
func (m *Model) Graph() concept.Graph { return m.graph }

// Node returns the node with the given ID and true, or nil and false.
func (m *Model) Node(id string) (*concept.Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID and true, or nil and false.
func (m *Model) Edge(id string) (*concept.Edge, bool) {
	e, ok := m.edges[id]
	return e, ok
}

// HasNode reports whether a node with the given ID exists.
func (m *Model) HasNode(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// NodeCount returns the number of nodes in the snapshot.
func (m *Model) NodeCount() int { return len(m.nodes) }

// EdgeCount returns the number of edges in the snapshot, dangling included.
func (m *Model) EdgeCount() int { return len(m.edges) }

// Outgoing returns the target IDs of edges leaving the node.
// The returned slice is a read-only view; do not modify it.
func (m *Model) Outgoing(id string) []string { return m.outgoing[id] }

// Incoming returns the source IDs of edges entering the node.
// The returned slice is a read-only view; do not modify it.
func (m *Model) Incoming(id string) []string { return m.incoming[id] }

// Neighbors returns the deduplicated neighbor IDs of a node per the
// direction mask, in adjacency insertion order (outgoing first for Both).
// Returns nil for an unknown node.
func (m *Model) Neighbors(id string, dir Direction) []string {
	if !m.HasNode(id) {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	if dir&Outgoing != 0 {
		for _, t := range m.outgoing[id] {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	if dir&Incoming != 0 {
		for _, s := range m.incoming[id] {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Degree returns the combined-adjacency degree of a node: the number of
// edge endpoints touching it, counting both directions without
// deduplication. Returns 0 for an unknown node.
func (m *Model) Degree(id string) int {
	return len(m.outgoing[id]) + len(m.incoming[id])
}

// MaxDegree returns the highest combined-adjacency degree in the graph,
// or 0 for an empty or edgeless graph.
func (m *Model) MaxDegree() int {
	max := 0
	for id := range m.nodes {
		if d := m.Degree(id); d > max {
			max = d
		}
	}
	return max
}

// EdgeBetween returns the first edge connecting a and b in either
// direction, or nil if no direct edge exists. Enumeration follows the edge
// order of the snapshot, so results are deterministic for a given input.
func (m *Model) EdgeBetween(a, b string) *concept.Edge {
	for i := range m.graph.Edges {
		e := &m.graph.Edges[i]
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return e
		}
	}
	return nil
}
