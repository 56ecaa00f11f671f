package layout

import (
	"math"

	"github.com/knomap/knomap/pkg/concept"
)

// Overlap resolution and viewport fitting bounds.
const (
	maxOverlapPasses = 10
	viewPadding      = 100.0
	maxZoom          = 2.0
	minZoom          = 0.1
)

// ResolveOverlaps pushes overlapping nodes apart and returns a new node
// slice; the input is never mutated. Two nodes overlap when their
// centers sit closer than twice nodeRadius. Each pass pushes every
// overlapping pair apart symmetrically by half the overlap, and the loop
// stops early once a full pass finds no overlap, capped at ten passes.
// Unpositioned nodes are left alone.
func ResolveOverlaps(nodes []concept.Node, nodeRadius float64) []concept.Node {
	out := make([]concept.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	if nodeRadius <= 0 || len(out) < 2 {
		return out
	}
	minDist := 2 * nodeRadius

	for pass := 0; pass < maxOverlapPasses; pass++ {
		moved := false
		for i := 0; i < len(out); i++ {
			if !out[i].HasPosition() {
				continue
			}
			for j := i + 1; j < len(out); j++ {
				if !out[j].HasPosition() {
					continue
				}
				dx := out[j].Position.X - out[i].Position.X
				dy := out[j].Position.Y - out[i].Position.Y
				dist := math.Hypot(dx, dy)
				if dist >= minDist {
					continue
				}
				if dist == 0 {
					dx, dy, dist = 1, 0, 1
				}
				push := (minDist - dist) / 2
				ux, uy := dx/dist, dy/dist
				out[i].Position.X -= ux * push
				out[i].Position.Y -= uy * push
				out[j].Position.X += ux * push
				out[j].Position.Y += uy * push
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return out
}

// View describes a viewport transform fitting a layout onto a canvas.
type View struct {
	Zoom float64 `json:"zoom" bson:"zoom"`
	PanX float64 `json:"pan_x" bson:"pan_x"`
	PanY float64 `json:"pan_y" bson:"pan_y"`
}

// OptimalView fits the bounding box of all positioned nodes onto the
// canvas. Zoom is the tighter of the two axis fits with 100px padding,
// capped at 2.0 and floored at 0.1; pan recenters the bounding-box
// center onto the canvas center at that zoom. A graph with no
// positioned nodes yields the identity view.
func OptimalView(nodes []concept.Node, canvasWidth, canvasHeight float64) View {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	positioned := false
	for _, n := range nodes {
		if !n.HasPosition() {
			continue
		}
		positioned = true
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X)
		maxY = math.Max(maxY, n.Position.Y)
	}
	if !positioned {
		return View{Zoom: 1.0}
	}

	fitX := canvasWidth / (maxX - minX + 2*viewPadding)
	fitY := canvasHeight / (maxY - minY + 2*viewPadding)
	zoom := math.Min(math.Min(fitX, fitY), maxZoom)
	if zoom < minZoom {
		zoom = minZoom
	}

	centerX := (minX + maxX) / 2
	centerY := (minY + maxY) / 2
	return View{
		Zoom: zoom,
		PanX: canvasWidth/2 - centerX*zoom,
		PanY: canvasHeight/2 - centerY*zoom,
	}
}
