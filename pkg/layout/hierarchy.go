package layout

import (
	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
)

// levelSpacing is the vertical distance between hierarchy levels.
const levelSpacing = 120.0

// linearHierarchy arranges nodes in horizontal levels under a root,
// treating each edge's source as the parent of its target.
//
// Levels are assigned by BFS over the parent-child tree from rootID, or
// from every parentless node when rootID is empty, or from the first
// node when everything has a parent (a pure cycle). A node keeps the
// first parent that claims it. Within a level, sibling groups are
// centered under their parent's x; nodes whose parent is outside the
// tree are packed left to right. Nodes the BFS never reaches end up on
// one extra bottom row.
func linearHierarchy(m *model.Model, nodes []concept.Node, rootID string, cfg Config) {
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		idx[n.ID] = i
	}

	parentOf := make(map[string]string)
	children := make(map[string][]string)
	for _, e := range m.Graph().Edges {
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		if e.Source == e.Target {
			continue
		}
		if _, claimed := parentOf[e.Target]; claimed {
			continue
		}
		parentOf[e.Target] = e.Source
		children[e.Source] = append(children[e.Source], e.Target)
	}

	seeds := hierarchySeeds(nodes, parentOf, rootID)

	level := make(map[string]int, len(nodes))
	var order []string
	queue := append([]string(nil), seeds...)
	for _, s := range seeds {
		level[s] = 0
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, child := range children[cur] {
			if _, seen := level[child]; seen {
				continue
			}
			level[child] = level[cur] + 1
			queue = append(queue, child)
		}
	}

	// Disconnected leftovers form one extra bottom row.
	maxLevel := 0
	for _, l := range level {
		if l > maxLevel {
			maxLevel = l
		}
	}
	for _, n := range nodes {
		if _, seen := level[n.ID]; !seen {
			level[n.ID] = maxLevel + 1
			order = append(order, n.ID)
		}
	}

	byLevel := make(map[int][]string)
	for _, id := range order {
		byLevel[level[id]] = append(byLevel[level[id]], id)
	}
	deepest := 0
	for l := range byLevel {
		if l > deepest {
			deepest = l
		}
	}

	for l := 0; l <= deepest; l++ {
		placeLevel(nodes, idx, byLevel[l], parentOf, level, l, cfg)
	}
}

// hierarchySeeds picks the BFS starting set: the explicit root, else
// every parentless node, else the first node.
func hierarchySeeds(nodes []concept.Node, parentOf map[string]string, rootID string) []string {
	if rootID != "" {
		return []string{rootID}
	}
	var seeds []string
	for _, n := range nodes {
		if _, hasParent := parentOf[n.ID]; !hasParent {
			seeds = append(seeds, n.ID)
		}
	}
	if len(seeds) == 0 {
		seeds = []string{nodes[0].ID}
	}
	return seeds
}

// placeLevel positions one level's nodes. Sibling groups sit centered
// under their parent; groups without a positioned parent are packed left
// to right after them.
func placeLevel(nodes []concept.Node, idx map[string]int, members []string, parentOf map[string]string, level map[string]int, l int, cfg Config) {
	if len(members) == 0 {
		return
	}
	y := canvasMargin + float64(l)*levelSpacing

	if l == 0 {
		placeRow(nodes, idx, members, cfg.Width/2, y, cfg)
		return
	}

	// Group siblings by the parent that claimed them, preserving level
	// order. A parent on a different level than l-1 does not anchor a
	// group here.
	var groupOrder []string
	groups := make(map[string][]string)
	var orphans []string
	for _, id := range members {
		p, ok := parentOf[id]
		if !ok || level[p] != l-1 {
			orphans = append(orphans, id)
			continue
		}
		if _, seen := groups[p]; !seen {
			groupOrder = append(groupOrder, p)
		}
		groups[p] = append(groups[p], id)
	}

	for _, p := range groupOrder {
		parent := nodes[idx[p]]
		centerX := cfg.Width / 2
		if parent.HasPosition() {
			centerX = parent.Position.X
		}
		placeRow(nodes, idx, groups[p], centerX, y, cfg)
	}

	// Orphans pack left to right from the margin.
	x := canvasMargin
	for _, id := range orphans {
		i := idx[id]
		setPosition(&nodes[i], x, y)
		x += cfg.NodeSpacing + estimatedNodeWidth(nodes[i])
	}
}

// placeRow spreads members horizontally centered on centerX, with
// sibling spacing of NodeSpacing plus the estimated node width.
func placeRow(nodes []concept.Node, idx map[string]int, members []string, centerX, y float64, cfg Config) {
	slots := make([]float64, len(members))
	total := 0.0
	for k, id := range members {
		slots[k] = cfg.NodeSpacing + estimatedNodeWidth(nodes[idx[id]])
		total += slots[k]
	}
	// Walk slot centers so the row's overall center lands on centerX.
	x := centerX - total/2
	for k, id := range members {
		setPosition(&nodes[idx[id]], x+slots[k]/2, y)
		x += slots[k]
	}
}
