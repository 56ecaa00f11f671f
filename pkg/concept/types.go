package concept

import (
	"time"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Type classifies a concept node.
type Type string

// Concept types recognized by the scoring engine. An empty Type is valid and
// scored with a neutral compatibility weight.
const (
	TypeField     Type = "field"
	TypeTheory    Type = "theory"
	TypeAlgorithm Type = "algorithm"
	TypeTool      Type = "tool"
	TypePerson    Type = "person"
)

// Difficulty levels for concept nodes.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// ValidTypes is the set of recognized concept types.
var ValidTypes = map[Type]bool{
	TypeField:     true,
	TypeTheory:    true,
	TypeAlgorithm: true,
	TypeTool:      true,
	TypePerson:    true,
}

// =============================================================================
// Point - 2D Canvas Coordinate
// =============================================================================

// Point is a 2D canvas coordinate. Layout engines assign one to every node.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// =============================================================================
// Node - Concept Node
// =============================================================================

// Node is a unit of knowledge content. Identity, content and timestamps are
// owned by the caller; the engine reads them and only ever writes Position
// (on copies - see the layout package contract).
type Node struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Keywords    []string  `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Explanation string    `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Type        Type      `json:"type,omitempty" bson:"type,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	Position    *Point    `json:"position,omitempty" bson:"position,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	Resources   []string  `json:"resources,omitempty" bson:"resources,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

// Clone returns a deep copy of the node. Keyword and resource slices and the
// position are copied so mutations on the clone never alias the original.
func (n Node) Clone() Node {
	out := n
	if n.Keywords != nil {
		out.Keywords = make([]string, len(n.Keywords))
		copy(out.Keywords, n.Keywords)
	}
	if n.Resources != nil {
		out.Resources = make([]string, len(n.Resources))
		copy(out.Resources, n.Resources)
	}
	if n.Position != nil {
		p := *n.Position
		out.Position = &p
	}
	return out
}

// HasPosition reports whether the node has been positioned by a layout.
func (n *Node) HasPosition() bool { return n.Position != nil }

// =============================================================================
// Edge - Concept Relationship
// =============================================================================

// Edge connects two concept nodes. Edges are stored directed
// (Source → Target) but traversal and layout treat them as undirected.
// A non-empty Label marks an explicitly described relationship, which the
// scoring engine weighs higher than an unlabeled link.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
}

// =============================================================================
// Graph - Concept Graph Snapshot
// =============================================================================

// Graph is the canonical serialization format for concept graphs.
// Used for API requests, storage, caching, and CLI files.
//
// Node IDs must be unique; that invariant is owned by whatever produced the
// snapshot. Edges referencing unknown node IDs are tolerated everywhere in
// the engine - they are skipped during adjacency construction rather than
// rejected.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = n.Clone()
	}
	copy(out.Edges, g.Edges)
	return out
}

// NodeIDs returns the IDs of all nodes in input order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// FindNode returns a pointer to the node with the given ID, or nil.
// The pointer refers into the graph's node slice.
func (g *Graph) FindNode(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}
