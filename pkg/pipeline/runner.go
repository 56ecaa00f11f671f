package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/knomap/knomap/pkg/cache"
	"github.com/knomap/knomap/pkg/cluster"
	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/layout"
	"github.com/knomap/knomap/pkg/model"
	"github.com/knomap/knomap/pkg/observability"
	"github.com/knomap/knomap/pkg/scoring"
	"github.com/knomap/knomap/pkg/similarity"
	"github.com/knomap/knomap/pkg/traverse"
)

// Runner encapsulates engine execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ApplyLayout runs the selected layout strategy over the graph with
// caching. A cache hit skips the computation entirely; a miss computes
// the layout, resolves overlaps, and stores the positioned graph.
func (r *Runner) ApplyLayout(ctx context.Context, g concept.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Stats: Stats{
			NodeCount: len(g.Nodes),
			EdgeCount: len(g.Edges),
		},
	}

	graphData, err := concept.MarshalGraph(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "serialize graph for cache key")
	}
	result.GraphHash = cache.Hash(graphData)
	cacheKey := r.Keyer.LayoutKey(result.GraphHash, opts.LayoutKeyOpts())

	layoutStart := time.Now()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := concept.UnmarshalGraph(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Graph = cached
				result.View = layout.OptimalView(cached.Nodes, opts.Width, opts.Height)
				result.Stats.LayoutTime = time.Since(layoutStart)
				result.CacheInfo.LayoutHit = true
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Engine().OnLayoutStart(ctx, opts.Strategy, len(g.Nodes))

	positioned, err := layout.Apply(g, layout.Strategy(opts.Strategy), opts.LayoutConfig())
	if err != nil {
		observability.Engine().OnLayoutComplete(ctx, opts.Strategy, time.Since(layoutStart), err)
		return nil, translateLayoutErr(err)
	}
	if !opts.SkipOverlaps {
		positioned.Nodes = layout.ResolveOverlaps(positioned.Nodes, opts.NodeRadius)
	}

	result.Graph = positioned
	result.View = layout.OptimalView(positioned.Nodes, opts.Width, opts.Height)
	result.Stats.LayoutTime = time.Since(layoutStart)

	observability.Engine().OnLayoutComplete(ctx, opts.Strategy, result.Stats.LayoutTime, nil)
	opts.Logger.Info("computed layout",
		"strategy", opts.Strategy,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.LayoutTime)

	// Cache the positioned graph
	if data, err := concept.MarshalGraph(positioned); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return result, nil
}

// ShortestPath computes the shortest path between two nodes with query
// caching.
func (r *Runner) ShortestPath(ctx context.Context, g concept.Graph, source, target string) (traverse.PathResult, error) {
	var out traverse.PathResult
	err := r.cachedQuery(ctx, g, "shortest_path", &out,
		func(m *model.Model) (any, int) {
			res := traverse.ShortestPath(m, source, target)
			return res, len(res.Path)
		}, source, target)
	return out, err
}

// AllPaths enumerates simple paths between two nodes with query caching.
// A non-positive maxDepth uses the engine default.
func (r *Runner) AllPaths(ctx context.Context, g concept.Graph, source, target string, maxDepth int) ([]traverse.PathResult, error) {
	var out []traverse.PathResult
	err := r.cachedQuery(ctx, g, "all_paths", &out,
		func(m *model.Model) (any, int) {
			paths := traverse.AllPaths(m, source, target, maxDepth)
			return paths, len(paths)
		}, source, target, maxDepth)
	return out, err
}

// FindSimilar locates nodes textually similar to a target with query
// caching. A non-positive threshold uses the engine default.
func (r *Runner) FindSimilar(ctx context.Context, g concept.Graph, targetID string, threshold float64) ([]similarity.Match, error) {
	var out []similarity.Match
	err := r.cachedQuery(ctx, g, "similar", &out,
		func(m *model.Model) (any, int) {
			matches := similarity.FindSimilar(m, targetID, threshold)
			return matches, len(matches)
		}, targetID, threshold)
	return out, err
}

// Clusters identifies connected components with query caching.
func (r *Runner) Clusters(ctx context.Context, g concept.Graph, minSize int) ([]cluster.Result, error) {
	var out []cluster.Result
	err := r.cachedQuery(ctx, g, "clusters", &out,
		func(m *model.Model) (any, int) {
			clusters := cluster.Identify(m, minSize)
			return clusters, len(clusters)
		}, minSize)
	return out, err
}

// Scores ranks every node against a root with query caching. An unknown
// root yields an empty result.
func (r *Runner) Scores(ctx context.Context, g concept.Graph, rootID string) ([]scoring.Score, error) {
	var out []scoring.Score
	err := r.cachedQuery(ctx, g, "scores", &out,
		func(m *model.Model) (any, int) {
			s, ok := scoring.New(m, rootID)
			if !ok {
				return []scoring.Score{}, 0
			}
			scores := s.ScoreAll()
			return scores, len(scores)
		}, rootID)
	return out, err
}

// cachedQuery runs one query operation with caching and hooks. The
// compute callback returns the result value (JSON-serializable) and its
// result count; out must be a pointer the cached JSON unmarshals into.
func (r *Runner) cachedQuery(ctx context.Context, g concept.Graph, kind string, out any, compute func(*model.Model) (any, int), params ...any) error {
	graphData, err := concept.MarshalGraph(g)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "serialize graph for cache key")
	}
	cacheKey := r.Keyer.QueryKey(cache.Hash(graphData), kind, params...)

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if err := json.Unmarshal(data, out); err == nil {
			observability.Cache().OnCacheHit(ctx, kind)
			return nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	observability.Engine().OnQueryStart(ctx, kind)
	queryStart := time.Now()

	value, count := compute(model.Build(g))
	observability.Engine().OnQueryComplete(ctx, kind, count, time.Since(queryStart), nil)

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "serialize %s result", kind)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "decode %s result", kind)
	}

	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLQuery)
	observability.Cache().OnCacheSet(ctx, kind, len(data))
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// translateLayoutErr maps engine sentinel errors onto structured codes.
func translateLayoutErr(err error) error {
	switch {
	case err == nil:
		return nil
	case err == layout.ErrRootRequired:
		return errors.Wrap(errors.ErrCodeRootRequired, err, "root node required for this strategy")
	case err == layout.ErrUnknownStrategy:
		return errors.Wrap(errors.ErrCodeInvalidStrategy, err, "unknown layout strategy")
	default:
		return fmt.Errorf("layout: %w", err)
	}
}
