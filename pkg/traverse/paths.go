package traverse

import (
	"github.com/knomap/knomap/pkg/model"
)

// PathResult describes one path between two nodes.
type PathResult struct {
	// Path is the ordered node-ID sequence from source to target,
	// inclusive. Empty when Found is false.
	Path []string `json:"path"`
	// Distance is the hop count (len(Path)-1), or -1 when not found.
	Distance int `json:"distance"`
	// Found reports whether a path exists.
	Found bool `json:"found"`
}

func notFound() PathResult {
	return PathResult{Path: []string{}, Distance: -1, Found: false}
}

// ShortestPath returns the first shortest path from sourceID to targetID
// found by BFS over combined adjacency.
//
// Unknown or unreachable endpoints yield {Found:false, Distance:-1}.
// When source equals target the result is {Found:true, Distance:0,
// Path:[source]}. Ties between equal-length paths break by adjacency
// enumeration order, which follows the edge order of the input snapshot -
// deterministic for a given input, not claimed canonical.
func ShortestPath(m *model.Model, sourceID, targetID string) PathResult {
	if !m.HasNode(sourceID) || !m.HasNode(targetID) {
		return notFound()
	}
	if sourceID == targetID {
		return PathResult{Path: []string{sourceID}, Distance: 0, Found: true}
	}

	parent := map[string]string{sourceID: ""}
	queue := []string{sourceID}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range m.Neighbors(cur, model.Both) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			if next == targetID {
				return PathResult{
					Path:     reconstruct(parent, targetID),
					Distance: hopCount(parent, targetID),
					Found:    true,
				}
			}
			queue = append(queue, next)
		}
	}
	return notFound()
}

// AllPaths enumerates every simple path (no repeated node) from sourceID to
// targetID with at most maxDepth hops, by exhaustive depth-first search.
// This is exponential in dense graphs; non-positive maxDepth falls back to
// DefaultMaxDepth. Unknown endpoints yield an empty result.
func AllPaths(m *model.Model, sourceID, targetID string, maxDepth int) []PathResult {
	if !m.HasNode(sourceID) || !m.HasNode(targetID) {
		return []PathResult{}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var results []PathResult
	onPath := map[string]bool{sourceID: true}
	path := []string{sourceID}

	var explore func(cur string)
	explore = func(cur string) {
		if cur == targetID {
			found := make([]string, len(path))
			copy(found, path)
			results = append(results, PathResult{
				Path:     found,
				Distance: len(found) - 1,
				Found:    true,
			})
			return
		}
		if len(path)-1 >= maxDepth {
			return
		}
		for _, next := range m.Neighbors(cur, model.Both) {
			if onPath[next] {
				continue
			}
			onPath[next] = true
			path = append(path, next)
			explore(next)
			path = path[:len(path)-1]
			onPath[next] = false
		}
	}
	explore(sourceID)

	if results == nil {
		return []PathResult{}
	}
	return results
}

// reconstruct rebuilds the path from source to target using parent links.
func reconstruct(parent map[string]string, target string) []string {
	var rev []string
	for cur := target; cur != ""; cur = parent[cur] {
		rev = append(rev, cur)
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}

func hopCount(parent map[string]string, target string) int {
	hops := 0
	for cur := target; parent[cur] != ""; cur = parent[cur] {
		hops++
	}
	return hops
}
