package traverse

import (
	"github.com/knomap/knomap/pkg/model"
)

// Mode selects the traversal order.
type Mode string

const (
	// BFS visits nodes in breadth-first (hop-distance) order.
	BFS Mode = "bfs"
	// DFS visits nodes in depth-first order using an explicit stack.
	DFS Mode = "dfs"
)

// DefaultMaxDepth bounds traversals when the caller passes a non-positive
// depth. All-paths enumeration is exponential in dense graphs, so the bound
// is deliberately small.
const DefaultMaxDepth = 10

// Traverse walks the graph from startID over combined adjacency and returns
// the visited node IDs in discovery order. A non-positive maxDepth falls
// back to DefaultMaxDepth. The bound is inclusive: nodes at exactly
// maxDepth hops are visited, their neighbors are not. An unknown startID
// yields an empty result.
func Traverse(m *model.Model, startID string, mode Mode, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if mode == DFS {
		return Walk(m, startID, maxDepth)
	}
	return Visit(m, startID, maxDepth)
}

// Visit performs a breadth-first traversal from startID.
// Returns visited IDs in discovery order; empty for an unknown start.
// maxDepth is taken literally here: zero visits only the start node.
// Traverse applies the DefaultMaxDepth fallback.
func Visit(m *model.Model, startID string, maxDepth int) []string {
	if !m.HasNode(startID) {
		return []string{}
	}

	type item struct {
		id    string
		depth int
	}
	visited := map[string]bool{startID: true}
	order := []string{startID}
	queue := []item{{startID, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, next := range m.Neighbors(cur.id, model.Both) {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			queue = append(queue, item{next, cur.depth + 1})
		}
	}
	return order
}

// Walk performs a depth-first traversal from startID using an explicit
// stack, so deep graphs cannot exhaust the goroutine stack.
// Returns visited IDs in discovery order; empty for an unknown start.
// Like Visit, maxDepth is taken literally.
// A node already visited is never re-expanded, which makes the walk
// cycle-safe.
func Walk(m *model.Model, startID string, maxDepth int) []string {
	if !m.HasNode(startID) {
		return []string{}
	}

	type item struct {
		id    string
		depth int
	}
	visited := make(map[string]bool)
	var order []string
	stack := []item{{startID, 0}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		order = append(order, cur.id)
		if cur.depth >= maxDepth {
			continue
		}
		neighbors := m.Neighbors(cur.id, model.Both)
		// Push in reverse so the first neighbor is expanded first.
		for i := len(neighbors) - 1; i >= 0; i-- {
			if !visited[neighbors[i]] {
				stack = append(stack, item{neighbors[i], cur.depth + 1})
			}
		}
	}
	return order
}

// Connected returns the deduplicated direct neighbors of id per the
// inclusion flags. Both flags false yields an empty result, as does an
// unknown id.
func Connected(m *model.Model, id string, includeIncoming, includeOutgoing bool) []string {
	var dir model.Direction
	if includeIncoming {
		dir |= model.Incoming
	}
	if includeOutgoing {
		dir |= model.Outgoing
	}
	if dir == 0 {
		return []string{}
	}
	out := m.Neighbors(id, dir)
	if out == nil {
		return []string{}
	}
	return out
}
