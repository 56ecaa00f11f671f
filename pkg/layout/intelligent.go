package layout

import (
	"math"
	"math/rand"
	"sort"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/model"
	"github.com/knomap/knomap/pkg/scoring"
)

// Ring radii as fractions of the smaller canvas dimension.
const (
	baseRadiusFraction = 0.15
	maxRadiusFraction  = 0.40
)

// maxRingLevels caps the ring count, root level included.
const maxRingLevels = 5

// jitterFraction bounds the random positional jitter relative to the
// ring radius.
const jitterFraction = 0.05

// intelligentRadial places the root at the center and distributes the
// remaining nodes over up to four rings ordered by relationship score,
// closest relationships innermost.
//
// Non-root nodes are sorted ascending by combined score and split into
// roughly equal slices, one per ring. Ring radii interpolate linearly
// from 15% to 40% of the smaller canvas dimension. Within a ring, nodes
// are placed by importance descending, evenly spaced by angle with a
// half-step offset on alternating rings so ring members do not line up
// radially, plus a bounded jitter for visual variety.
func intelligentRadial(m *model.Model, nodes []concept.Node, rootID string, cfg Config) {
	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	centerX, centerY := cfg.Width/2, cfg.Height/2
	minDim := math.Min(cfg.Width, cfg.Height)

	scorer, ok := scoring.New(m, rootID)
	if !ok {
		return
	}

	type scored struct {
		idx   int
		score scoring.Score
	}
	rest := make([]scored, 0, len(nodes))
	for i := range nodes {
		if nodes[i].ID == rootID {
			setPosition(&nodes[i], centerX, centerY)
			continue
		}
		rest = append(rest, scored{idx: i, score: scorer.ScoreNode(nodes[i].ID)})
	}
	if len(rest) == 0 {
		return
	}

	sort.SliceStable(rest, func(a, b int) bool {
		return rest[a].score.Combined < rest[b].score.Combined
	})

	levels := int(math.Ceil(math.Sqrt(float64(len(rest))))) + 1
	if levels > maxRingLevels {
		levels = maxRingLevels
	}
	rings := levels - 1
	if rings < 1 {
		rings = 1
	}
	sliceSize := (len(rest) + rings - 1) / rings

	baseRadius := minDim * baseRadiusFraction
	maxRadius := minDim * maxRadiusFraction

	for ring := 1; ring <= rings; ring++ {
		lo := (ring - 1) * sliceSize
		if lo >= len(rest) {
			break
		}
		hi := lo + sliceSize
		if hi > len(rest) {
			hi = len(rest)
		}
		members := rest[lo:hi]

		// Important nodes claim the earliest angles on their ring.
		sort.SliceStable(members, func(a, b int) bool {
			return members[a].score.Importance > members[b].score.Importance
		})

		radius := baseRadius
		if rings > 1 {
			radius += (maxRadius - baseRadius) * float64(ring-1) / float64(rings-1)
		}

		step := 2 * math.Pi / float64(len(members))
		offset := 0.0
		if ring%2 == 0 {
			offset = step / 2
		}

		for k, s := range members {
			angle := offset + step*float64(k)
			jx := (rng.Float64()*2 - 1) * radius * jitterFraction
			jy := (rng.Float64()*2 - 1) * radius * jitterFraction
			x, y := clampToCanvas(
				centerX+radius*math.Cos(angle)+jx,
				centerY+radius*math.Sin(angle)+jy,
				cfg)
			setPosition(&nodes[s.idx], x, y)
		}
	}
}
