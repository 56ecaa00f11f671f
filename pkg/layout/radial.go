package layout

import (
	"math"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
)

// unreachableRing is the ring index of nodes with no path to the root,
// placing them far outside every reachable ring.
const unreachableRing = 999

// ringSpacingFactor shrinks the nominal radius so consecutive rings sit
// slightly tighter than the configured spacing.
const ringSpacingFactor = 0.8

// radial places the root at the canvas center and every other node on a
// ring whose index is its BFS hop distance from the root. Ring d has
// radius d*Radius*0.8 and its members are evenly spaced by angle.
func radial(m *model.Model, nodes []concept.Node, rootID string, cfg Config) {
	dist := bfsDistances(m, rootID)
	centerX, centerY := cfg.Width/2, cfg.Height/2

	rings := make(map[int][]int)
	for i := range nodes {
		if nodes[i].ID == rootID {
			setPosition(&nodes[i], centerX, centerY)
			continue
		}
		d, ok := dist[nodes[i].ID]
		if !ok {
			d = unreachableRing
		}
		rings[d] = append(rings[d], i)
	}

	for d, members := range rings {
		radius := float64(d) * cfg.Radius * ringSpacingFactor
		step := 2 * math.Pi / float64(len(members))
		for k, i := range members {
			angle := step * float64(k)
			setPosition(&nodes[i],
				centerX+radius*math.Cos(angle),
				centerY+radius*math.Sin(angle))
		}
	}
}

// bfsDistances computes hop counts from rootID over combined adjacency.
// Unreachable nodes are absent from the result.
func bfsDistances(m *model.Model, rootID string) map[string]int {
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
