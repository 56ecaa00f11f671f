package concept

import (
	"strings"
	"time"
)

// =============================================================================
// Filter - Structured Node Filtering
// =============================================================================

// FilterCriteria selects nodes by structured attributes. Zero-value fields
// are ignored, so an empty criteria matches every node.
type FilterCriteria struct {
	Types        []Type    `json:"types,omitempty"`
	Difficulties []string  `json:"difficulties,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"` // node must carry at least one (case-insensitive)
	CreatedAfter time.Time `json:"created_after,omitempty"`
	CreatedUntil time.Time `json:"created_until,omitempty"`
	HasResources bool      `json:"has_resources,omitempty"`
	HasImage     bool      `json:"has_image,omitempty"`
}

// FilterNodes returns the nodes of g matching every set criterion,
// in input order. An unknown type or difficulty simply matches nothing.
func FilterNodes(g Graph, c FilterCriteria) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if matchesCriteria(n, c) {
			out = append(out, n)
		}
	}
	return out
}

func matchesCriteria(n Node, c FilterCriteria) bool {
	if len(c.Types) > 0 && !containsType(c.Types, n.Type) {
		return false
	}
	if len(c.Difficulties) > 0 && !containsFold(c.Difficulties, n.Difficulty) {
		return false
	}
	if len(c.Keywords) > 0 && !hasAnyKeyword(n.Keywords, c.Keywords) {
		return false
	}
	if !c.CreatedAfter.IsZero() && n.CreatedAt.Before(c.CreatedAfter) {
		return false
	}
	if !c.CreatedUntil.IsZero() && n.CreatedAt.After(c.CreatedUntil) {
		return false
	}
	if c.HasResources && len(n.Resources) == 0 {
		return false
	}
	if c.HasImage && n.ImageURL == "" {
		return false
	}
	return true
}

// =============================================================================
// Search - Free-Text Node Search
// =============================================================================

// SearchOptions configures free-text search over nodes.
type SearchOptions struct {
	CaseSensitive bool `json:"case_sensitive,omitempty"`
	// ExactMatch requires the query to equal a field instead of being
	// contained in it.
	ExactMatch bool `json:"exact_match,omitempty"`
}

// SearchNodes returns nodes whose title, explanation, or any keyword matches
// the query, in input order. An empty query matches nothing.
func SearchNodes(g Graph, query string, opts SearchOptions) []Node {
	if query == "" {
		return nil
	}
	if !opts.CaseSensitive {
		query = strings.ToLower(query)
	}

	var out []Node
	for _, n := range g.Nodes {
		fields := make([]string, 0, 2+len(n.Keywords))
		fields = append(fields, n.Title, n.Explanation)
		fields = append(fields, n.Keywords...)

		for _, f := range fields {
			if !opts.CaseSensitive {
				f = strings.ToLower(f)
			}
			if matchesQuery(f, query, opts.ExactMatch) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

func matchesQuery(field, query string, exact bool) bool {
	if exact {
		return field == query
	}
	return strings.Contains(field, query)
}

// =============================================================================
// Helpers
// =============================================================================

func containsType(types []Type, t Type) bool {
	for _, c := range types {
		if c == t {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, c := range values {
		if strings.EqualFold(c, v) {
			return true
		}
	}
	return false
}

func hasAnyKeyword(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, k := range have {
		set[strings.ToLower(k)] = true
	}
	for _, k := range want {
		if set[strings.ToLower(k)] {
			return true
		}
	}
	return false
}
