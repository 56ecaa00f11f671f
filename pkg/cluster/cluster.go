package cluster

import (
	"sort"

	"github.com/google/uuid"

	"github.com/knomap/knomap/pkg/model"
)

// DefaultMinSize is the smallest component kept when the caller passes a
// non-positive minimum.
const DefaultMinSize = 2

// Result describes one connected component of the concept graph.
type Result struct {
	// ID is a fresh UUID for this analysis run; it is not stable across
	// runs.
	ID string `json:"id"`
	// NodeIDs are the component members in discovery order.
	NodeIDs []string `json:"node_ids"`
	// Centroid is the member with the highest intra-cluster degree
	// (first found wins on ties).
	Centroid string `json:"centroid"`
	// Cohesion is the intra-cluster directed edge density in [0,1]:
	// actual connections over n*(n-1) possible ones.
	Cohesion float64 `json:"cohesion"`
}

// Identify finds the connected components of the graph over combined
// adjacency, discards those smaller than minSize, and returns the rest
// sorted by cohesion descending. Components are discovered with an explicit
// stack, so deep graphs cannot exhaust the goroutine stack. A non-positive
// minSize falls back to DefaultMinSize.
func Identify(m *model.Model, minSize int) []Result {
	if minSize <= 0 {
		minSize = DefaultMinSize
	}

	visited := make(map[string]bool)
	var clusters []Result

	for _, id := range m.Graph().NodeIDs() {
		if visited[id] {
			continue
		}
		members := component(m, id, visited)
		if len(members) < minSize {
			continue
		}
		clusters = append(clusters, Result{
			ID:       uuid.NewString(),
			NodeIDs:  members,
			Centroid: centroid(m, members),
			Cohesion: cohesion(m, members),
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Cohesion > clusters[j].Cohesion
	})
	if clusters == nil {
		return []Result{}
	}
	return clusters
}

// component collects every node reachable from start, marking them visited.
func component(m *model.Model, start string, visited map[string]bool) []string {
	var members []string
	stack := []string{start}
	visited[start] = true

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, cur)
		for _, next := range m.Neighbors(cur, model.Both) {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return members
}

// cohesion counts directed intra-cluster adjacency entries against the
// n*(n-1) possible ones. Each undirected link contributes one directed
// entry per endpoint, so the doubling cancels with the directed
// denominator.
func cohesion(m *model.Model, members []string) float64 {
	n := len(members)
	if n < 2 {
		return 0.0
	}
	inCluster := make(map[string]bool, n)
	for _, id := range members {
		inCluster[id] = true
	}

	connections := 0
	for _, id := range members {
		for _, nb := range m.Outgoing(id) {
			if inCluster[nb] {
				connections++
			}
		}
		for _, nb := range m.Incoming(id) {
			if inCluster[nb] {
				connections++
			}
		}
	}
	density := float64(connections) / float64(n*(n-1))
	if density > 1.0 {
		density = 1.0
	}
	return density
}

// centroid picks the member with the most intra-cluster edge endpoints.
func centroid(m *model.Model, members []string) string {
	inCluster := make(map[string]bool, len(members))
	for _, id := range members {
		inCluster[id] = true
	}

	best := members[0]
	bestDegree := -1
	for _, id := range members {
		degree := 0
		for _, nb := range m.Outgoing(id) {
			if inCluster[nb] {
				degree++
			}
		}
		for _, nb := range m.Incoming(id) {
			if inCluster[nb] {
				degree++
			}
		}
		if degree > bestDegree {
			best = id
			bestDegree = degree
		}
	}
	return best
}
