package layout

import (
	"math"
	"math/rand"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
)

// maxForce caps the per-iteration displacement magnitude so the
// simulation cannot diverge.
const maxForce = 10.0

// minSeparation substitutes for the distance of coincident nodes so
// repulsion never divides by zero.
const minSeparation = 0.01

// forceDirected runs a Fruchterman-Reingold style simulation over nodes,
// writing final positions in place.
//
// Every iteration computes pairwise repulsion proportional to
// nodeSpacing squared over distance, per-edge attraction proportional to
// distance, scales both by ForceStrength, clamps the resulting
// displacement to maxForce, and keeps nodes inside the padded canvas.
// The pairwise pass is O(n^2) per iteration, which is fine at the node
// counts concept graphs reach in practice.
func forceDirected(m *model.Model, nodes []concept.Node, cfg Config) {
	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	seedPositions(nodes, cfg, rng)

	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		idx[n.ID] = i
	}

	dispX := make([]float64, len(nodes))
	dispY := make([]float64, len(nodes))

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range dispX {
			dispX[i], dispY[i] = 0, 0
		}

		// Repulsion between every pair.
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				dx := nodes[i].Position.X - nodes[j].Position.X
				dy := nodes[i].Position.Y - nodes[j].Position.Y
				dist := math.Hypot(dx, dy)
				if dist < minSeparation {
					dist = minSeparation
					dx, dy = 1, 0
				}
				force := cfg.NodeSpacing * cfg.NodeSpacing / dist
				ux, uy := dx/dist, dy/dist
				dispX[i] += ux * force
				dispY[i] += uy * force
				dispX[j] -= ux * force
				dispY[j] -= uy * force
			}
		}

		// Attraction along edges, skipping dangling references.
		for _, e := range m.Graph().Edges {
			si, ok1 := idx[e.Source]
			ti, ok2 := idx[e.Target]
			if !ok1 || !ok2 || si == ti {
				continue
			}
			dx := nodes[ti].Position.X - nodes[si].Position.X
			dy := nodes[ti].Position.Y - nodes[si].Position.Y
			dist := math.Hypot(dx, dy)
			if dist < minSeparation {
				continue
			}
			ux, uy := dx/dist, dy/dist
			dispX[si] += ux * dist
			dispY[si] += uy * dist
			dispX[ti] -= ux * dist
			dispY[ti] -= uy * dist
		}

		for i := range nodes {
			fx := dispX[i] * cfg.ForceStrength
			fy := dispY[i] * cfg.ForceStrength
			mag := math.Hypot(fx, fy)
			if mag > maxForce {
				fx = fx / mag * maxForce
				fy = fy / mag * maxForce
			}
			x, y := clampToCanvas(nodes[i].Position.X+fx, nodes[i].Position.Y+fy, cfg)
			setPosition(&nodes[i], x, y)
		}
	}
}

// seedPositions gives every unpositioned node a uniform-random spot
// inside the padded canvas. Positioned nodes keep their coordinates so a
// re-layout refines rather than scrambles an existing arrangement.
func seedPositions(nodes []concept.Node, cfg Config, rng *rand.Rand) {
	for i := range nodes {
		if nodes[i].HasPosition() {
			continue
		}
		x := canvasMargin + rng.Float64()*(cfg.Width-2*canvasMargin)
		y := canvasMargin + rng.Float64()*(cfg.Height-2*canvasMargin)
		setPosition(&nodes[i], x, y)
	}
}
