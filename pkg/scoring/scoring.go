package scoring

import (
	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
	"github.com/knomap/knomap/pkg/similarity"
)

// UnreachableDistance is the directness sentinel for nodes with no path to
// the root. It deliberately dwarfs every reachable hop count so that the
// combined score pushes disconnected nodes to the outermost level.
const UnreachableDistance = 999

// MaxLevel caps ring assignments: level = min(MaxLevel, directness).
const MaxLevel = 4

// Edge-strength constants for the direct-link signal.
const (
	edgeStrengthLabeled   = 0.9
	edgeStrengthUnlabeled = 0.6
	edgeStrengthNone      = 0.1
)

// Weights of the combined score. Directness is a raw hop count, not
// normalized to [0,1] like the other signals, so distance dominates beyond
// a couple of hops. That asymmetry is intentional: it separates levels
// cleanly by hop distance.
const (
	weightDirectness = 0.3
	weightType       = 0.2
	weightKeywords   = 0.2
	weightEdge       = 0.2
	weightImportance = 0.1
)

// neutralTypeWeight is used when either node lacks a concept type.
const neutralTypeWeight = 0.5

// typeCompatibility holds pairwise weights between concept types.
// Values are symmetric; both orders are stored.
var typeCompatibility = buildCompatibility()

func buildCompatibility() map[concept.Type]map[concept.Type]float64 {
	pairs := []struct {
		a, b concept.Type
		w    float64
	}{
		{concept.TypeField, concept.TypeField, 0.9},
		{concept.TypeField, concept.TypeTheory, 0.8},
		{concept.TypeField, concept.TypeAlgorithm, 0.6},
		{concept.TypeField, concept.TypeTool, 0.5},
		{concept.TypeField, concept.TypePerson, 0.4},
		{concept.TypeTheory, concept.TypeTheory, 0.9},
		{concept.TypeTheory, concept.TypeAlgorithm, 0.7},
		{concept.TypeTheory, concept.TypeTool, 0.6},
		{concept.TypeTheory, concept.TypePerson, 0.5},
		{concept.TypeAlgorithm, concept.TypeAlgorithm, 0.9},
		{concept.TypeAlgorithm, concept.TypeTool, 0.8},
		{concept.TypeAlgorithm, concept.TypePerson, 0.6},
		{concept.TypeTool, concept.TypeTool, 0.9},
		{concept.TypeTool, concept.TypePerson, 0.7},
		{concept.TypePerson, concept.TypePerson, 0.9},
	}
	m := make(map[concept.Type]map[concept.Type]float64)
	set := func(a, b concept.Type, w float64) {
		if m[a] == nil {
			m[a] = make(map[concept.Type]float64)
		}
		m[a][b] = w
	}
	for _, p := range pairs {
		set(p.a, p.b, p.w)
		set(p.b, p.a, p.w)
	}
	return m
}

// Score ranks one node's relationship to a chosen root. Lower combined
// scores mean closer to the center.
type Score struct {
	NodeID string `json:"node_id"`
	// Directness is the shortest hop count from the root, or
	// UnreachableDistance.
	Directness int `json:"directness"`
	// Importance is the node's degree over the graph's max degree, in
	// [0,1].
	Importance float64 `json:"importance"`
	// TypeWeight is the concept-type compatibility with the root, in
	// [0,1].
	TypeWeight float64 `json:"type_weight"`
	// KeywordSimilarity is the Jaccard overlap with the root's keywords.
	KeywordSimilarity float64 `json:"keyword_similarity"`
	// Combined is the weighted sum of all signals; lower is closer.
	Combined float64 `json:"combined"`
	// Level is the ring assignment: min(4, Directness).
	Level int `json:"level"`
}

// Scorer computes relationship scores against a fixed root node.
// A Scorer is cheap to build and holds only derived per-run state
// (shortest-path distances from the root, the graph's max degree).
type Scorer struct {
	m         *model.Model
	root      *concept.Node
	distances map[string]int
	maxDegree int
}

// New builds a scorer rooted at rootID. Returns ok=false when the root is
// unknown, mirroring the engine-wide empty-result policy for missing IDs.
func New(m *model.Model, rootID string) (*Scorer, bool) {
	root, ok := m.Node(rootID)
	if !ok {
		return nil, false
	}
	return &Scorer{
		m:         m,
		root:      root,
		distances: distancesFrom(m, rootID),
		maxDegree: m.MaxDegree(),
	}, true
}

// Root returns the root node's ID.
func (s *Scorer) Root() string { return s.root.ID }

// ScoreNode computes the relationship score of target relative to the
// root. The root itself is always most central: directness 0, combined 0,
// importance 1. An unknown target scores as unreachable.
func (s *Scorer) ScoreNode(targetID string) Score {
	if targetID == s.root.ID {
		return Score{
			NodeID:            targetID,
			Directness:        0,
			Importance:        1.0,
			TypeWeight:        typeWeight(s.root.Type, s.root.Type),
			KeywordSimilarity: 1.0,
			Combined:          0,
			Level:             0,
		}
	}

	target, ok := s.m.Node(targetID)
	if !ok {
		return Score{
			NodeID:     targetID,
			Directness: UnreachableDistance,
			Combined:   weightDirectness * UnreachableDistance,
			Level:      MaxLevel,
		}
	}

	directness, ok := s.distances[targetID]
	if !ok {
		directness = UnreachableDistance
	}

	tw := typeWeight(s.root.Type, target.Type)
	kw := scoreKeywords(s.root.Keywords, target.Keywords)
	es := s.edgeStrength(targetID)
	imp := s.importance(targetID)

	combined := weightDirectness*float64(directness) +
		weightType*tw +
		weightKeywords*kw +
		weightEdge*es +
		weightImportance*imp

	level := directness
	if level > MaxLevel {
		level = MaxLevel
	}

	return Score{
		NodeID:            targetID,
		Directness:        directness,
		Importance:        imp,
		TypeWeight:        tw,
		KeywordSimilarity: kw,
		Combined:          combined,
		Level:             level,
	}
}

// ScoreAll scores every node in the graph, root included, in input order.
func (s *Scorer) ScoreAll() []Score {
	nodes := s.m.Graph().Nodes
	out := make([]Score, len(nodes))
	for i, n := range nodes {
		out[i] = s.ScoreNode(n.ID)
	}
	return out
}

// edgeStrength weighs a direct root-target link: labeled edges are
// strongest, unlabeled ones moderate, absence weakest.
func (s *Scorer) edgeStrength(targetID string) float64 {
	e := s.m.EdgeBetween(s.root.ID, targetID)
	switch {
	case e == nil:
		return edgeStrengthNone
	case e.Label != "":
		return edgeStrengthLabeled
	default:
		return edgeStrengthUnlabeled
	}
}

// importance is degree centrality normalized by the graph's max degree,
// 0.5 when the graph has no edges at all.
func (s *Scorer) importance(id string) float64 {
	if s.maxDegree == 0 {
		return 0.5
	}
	return float64(s.m.Degree(id)) / float64(s.maxDegree)
}

// =============================================================================
// Internal Helpers
// =============================================================================

func typeWeight(a, b concept.Type) float64 {
	if a == "" || b == "" {
		return neutralTypeWeight
	}
	if w, ok := typeCompatibility[a][b]; ok {
		return w
	}
	return neutralTypeWeight
}

// scoreKeywords applies the scorer's keyword policy: 0.5 when both sets
// are empty, 0.1 when exactly one is, Jaccard otherwise.
func scoreKeywords(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.5
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.1
	}
	return similarity.Keywords(a, b)
}

// distancesFrom computes BFS hop counts from the root over combined
// adjacency. Unreachable nodes are absent from the result.
func distancesFrom(m *model.Model, rootID string) map[string]int {
	dist := map[string]int{rootID: 0}
	queue := []string{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range m.Neighbors(cur, model.Both) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// Directness returns the shortest hop count from the scorer's root to id,
// or UnreachableDistance. Exposed for layouts that need raw distances.
func (s *Scorer) Directness(id string) int {
	if d, ok := s.distances[id]; ok {
		return d
	}
	return UnreachableDistance
}
