package similarity

import (
	"sort"
	"strings"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
)

// DefaultThreshold is the minimum combined similarity FindSimilarNodes
// keeps when the caller passes a non-positive threshold.
const DefaultThreshold = 0.7

// Weights for the combined node similarity score.
const (
	titleWeight   = 0.6
	keywordWeight = 0.4
)

// String returns the normalized edit-distance similarity of two strings:
// 1 - levenshtein(a,b)/max(len(a),len(b)), in [0,1]. Two empty strings are
// identical (1.0). The measure is symmetric and reflexive.
func String(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// Keywords returns the Jaccard similarity of two keyword lists compared as
// lower-cased sets. Two empty sets are treated as neutrally similar (0.5)
// rather than undefined; one empty set against a non-empty one scores 0.
func Keywords(a, b []string) float64 {
	sa, sb := toSet(a), toSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 0.5
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0.0
	}
	return jaccard(sa, sb)
}

// Match pairs a node with its similarity to the query node.
type Match struct {
	Node       concept.Node `json:"node"`
	Similarity float64      `json:"similarity"`
}

// FindSimilar scores every other node against the target node by
// 0.6*titleSimilarity + 0.4*keywordSimilarity and returns the matches at or
// above threshold, sorted descending by similarity. Ties keep the input
// node order. An unknown target yields an empty result; a non-positive
// threshold falls back to DefaultThreshold.
func FindSimilar(m *model.Model, targetID string, threshold float64) []Match {
	target, ok := m.Node(targetID)
	if !ok {
		return []Match{}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var matches []Match
	for _, n := range m.Graph().Nodes {
		if n.ID == targetID {
			continue
		}
		score := titleWeight*String(target.Title, n.Title) +
			keywordWeight*Keywords(target.Keywords, n.Keywords)
		if score >= threshold {
			matches = append(matches, Match{Node: n, Similarity: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if matches == nil {
		return []Match{}
	}
	return matches
}

// =============================================================================
// Internal Implementation
// =============================================================================

// levenshtein computes the edit distance with a two-row rolling table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(
				prev[j]+1,      // deletion
				cur[j-1]+1,     // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func jaccard(a, b map[string]bool) float64 {
	intersection := 0
	union := len(b)
	for k := range a {
		if b[k] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func toSet(keywords []string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			set[k] = true
		}
	}
	return set
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
