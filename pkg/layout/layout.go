package layout

import (
	"errors"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
)

// ErrRootRequired is returned when a root-anchored strategy is requested
// without a root ID and the caller has not opted into the first-node
// default. Silently guessing a root would silently change results.
var ErrRootRequired = errors.New("layout: root node required")

// Strategy selects a layout algorithm.
type Strategy string

const (
	// ForceDirected runs a Fruchterman-Reingold style physics simulation.
	ForceDirected Strategy = "force"
	// Radial arranges nodes on rings by BFS hop distance from a root.
	Radial Strategy = "radial"
	// IntelligentRadial arranges nodes on rings ordered by relationship
	// score against a root.
	IntelligentRadial Strategy = "intelligent"
	// LinearHierarchy arranges nodes in levels under a root, children
	// centered beneath their parent.
	LinearHierarchy Strategy = "hierarchy"
)

// ValidStrategies maps every recognized strategy name.
var ValidStrategies = map[Strategy]bool{
	ForceDirected:     true,
	Radial:            true,
	IntelligentRadial: true,
	LinearHierarchy:   true,
}

// ErrUnknownStrategy is returned by Apply for a strategy outside
// ValidStrategies.
var ErrUnknownStrategy = errors.New("layout: unknown strategy")

// Default configuration values, applied by Apply when the corresponding
// Config field is zero.
const (
	DefaultWidth         = 800.0
	DefaultHeight        = 600.0
	DefaultNodeSpacing   = 100.0
	DefaultIterations    = 50
	DefaultForceStrength = 0.1
	DefaultRadius        = 200.0
)

// canvasMargin keeps nodes away from the canvas edges.
const canvasMargin = 50.0

// Config carries canvas dimensions and per-strategy tuning knobs.
// Zero fields fall back to the package defaults.
type Config struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// NodeSpacing sets the ideal node separation, used by the
	// force-directed repulsion term and hierarchy sibling spacing.
	NodeSpacing float64 `json:"node_spacing,omitempty" bson:"node_spacing,omitempty"`

	// Iterations and ForceStrength tune the force-directed simulation.
	Iterations    int     `json:"iterations,omitempty" bson:"iterations,omitempty"`
	ForceStrength float64 `json:"force_strength,omitempty" bson:"force_strength,omitempty"`

	// Radius is the ring spacing of the radial strategy.
	Radius float64 `json:"radius,omitempty" bson:"radius,omitempty"`

	// RootID anchors the radial, intelligent and hierarchy strategies.
	RootID string `json:"root_id,omitempty" bson:"root_id,omitempty"`

	// AllowDefaultRoot opts into using the first node when RootID is
	// empty instead of failing with ErrRootRequired.
	AllowDefaultRoot bool `json:"allow_default_root,omitempty" bson:"allow_default_root,omitempty"`

	// Seed drives the pseudo-random placement used for force seeding and
	// radial jitter, making runs reproducible.
	Seed uint64 `json:"seed,omitempty" bson:"seed,omitempty"`
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.NodeSpacing <= 0 {
		c.NodeSpacing = DefaultNodeSpacing
	}
	if c.Iterations <= 0 {
		c.Iterations = DefaultIterations
	}
	if c.ForceStrength <= 0 {
		c.ForceStrength = DefaultForceStrength
	}
	if c.Radius <= 0 {
		c.Radius = DefaultRadius
	}
	return c
}

// Apply runs the selected strategy over a snapshot of g and returns a new
// graph with every node positioned. The input graph is never mutated. An
// empty graph yields an empty graph for every strategy.
//
// Root resolution for the root-anchored strategies: an explicit RootID
// that exists in the graph wins; an explicit RootID that does not exist
// returns the graph unchanged (unknown-id policy); an empty RootID is
// ErrRootRequired unless AllowDefaultRoot picks the first node.
func Apply(g concept.Graph, strategy Strategy, cfg Config) (concept.Graph, error) {
	if !ValidStrategies[strategy] {
		return concept.Graph{}, ErrUnknownStrategy
	}

	cfg = cfg.withDefaults()
	out := g.Clone()
	if len(out.Nodes) == 0 {
		return out, nil
	}

	m := model.Build(out)

	switch strategy {
	case ForceDirected:
		forceDirected(m, out.Nodes, cfg)
		return out, nil
	case Radial, IntelligentRadial:
		rootID, ok, err := resolveRoot(m, out.Nodes, cfg)
		if err != nil {
			return concept.Graph{}, err
		}
		if !ok {
			return out, nil
		}
		if strategy == Radial {
			radial(m, out.Nodes, rootID, cfg)
		} else {
			intelligentRadial(m, out.Nodes, rootID, cfg)
		}
		return out, nil
	case LinearHierarchy:
		// The hierarchy default root is not the first node but the set
		// of parentless nodes, so resolution happens inside the engine.
		if cfg.RootID != "" && !m.HasNode(cfg.RootID) {
			return out, nil
		}
		if cfg.RootID == "" && !cfg.AllowDefaultRoot {
			return concept.Graph{}, ErrRootRequired
		}
		linearHierarchy(m, out.Nodes, cfg.RootID, cfg)
		return out, nil
	}
	return concept.Graph{}, ErrUnknownStrategy
}

// resolveRoot applies the root policy. ok=false means "leave the graph
// untouched" (explicit root that does not exist).
func resolveRoot(m *model.Model, nodes []concept.Node, cfg Config) (string, bool, error) {
	if cfg.RootID != "" {
		if m.HasNode(cfg.RootID) {
			return cfg.RootID, true, nil
		}
		return "", false, nil
	}
	if !cfg.AllowDefaultRoot {
		return "", false, ErrRootRequired
	}
	return nodes[0].ID, true, nil
}

// Linear places nodes in a single horizontal row: all y-coordinates at
// height/2, consecutive x-coordinates exactly spacing apart, the row
// centered on the canvas. It returns a positioned copy of the nodes.
func Linear(nodes []concept.Node, width, height, spacing float64) []concept.Node {
	out := make([]concept.Node, len(nodes))
	if len(nodes) == 0 {
		return out
	}
	rowWidth := spacing * float64(len(nodes)-1)
	startX := width/2 - rowWidth/2
	for i, n := range nodes {
		out[i] = n.Clone()
		out[i].Position = &concept.Point{
			X: startX + float64(i)*spacing,
			Y: height / 2,
		}
	}
	return out
}

// =============================================================================
// Shared Placement Helpers
// =============================================================================

// setPosition overwrites a node's position in place.
func setPosition(n *concept.Node, x, y float64) {
	n.Position = &concept.Point{X: x, Y: y}
}

// clampToCanvas pulls a coordinate pair inside the padded canvas.
func clampToCanvas(x, y float64, cfg Config) (float64, float64) {
	return clamp(x, canvasMargin, cfg.Width-canvasMargin),
		clamp(y, canvasMargin, cfg.Height-canvasMargin)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// estimatedNodeWidth approximates a node's rendered width from its title
// length, bounded to keep spacing sane for empty or very long titles.
func estimatedNodeWidth(n concept.Node) float64 {
	w := float64(len([]rune(n.Title))) * 8.0
	if w < 80 {
		return 80
	}
	if w > 200 {
		return 200
	}
	return w
}
