// Package pipeline provides the cached execution layer for Knomap.
//
// This package wraps the engine packages (layout, traverse, similarity,
// cluster, scoring) with caching, logging, and observability so that CLI
// and API entry points share one code path instead of duplicating it.
//
// # Architecture
//
// A Runner owns a cache backend and a keyer. Layout runs are keyed by a
// content hash of the graph snapshot plus every layout option, so a
// repeated request short-circuits to the cached result. Query operations
// (paths, similarity, clusters, scoring) are keyed the same way with
// their own TTL.
//
// # Usage
//
// Create a Runner and apply a layout:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Strategy: "radial",
//	    RootID:   "machine-learning",
//	}
//	result, err := runner.ApplyLayout(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positioned := result.Graph
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/knomap/knomap/pkg/cache"
	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
	"github.com/knomap/knomap/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStrategy is the layout strategy used when none is given.
	DefaultStrategy = string(layout.ForceDirected)

	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = layout.DefaultHeight

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultNodeRadius is the node radius assumed by overlap resolution.
	DefaultNodeRadius = 40.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a layout run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Strategy         string  `json:"strategy,omitempty"`
	Width            float64 `json:"width,omitempty"`
	Height           float64 `json:"height,omitempty"`
	NodeSpacing      float64 `json:"node_spacing,omitempty"`
	Iterations       int     `json:"iterations,omitempty"`
	ForceStrength    float64 `json:"force_strength,omitempty"`
	Radius           float64 `json:"radius,omitempty"`
	RootID           string  `json:"root_id,omitempty"`
	AllowDefaultRoot bool    `json:"allow_default_root,omitempty"`
	Seed             uint64  `json:"seed,omitempty"`

	// NodeRadius tunes overlap resolution; SkipOverlaps disables it.
	NodeRadius   float64 `json:"node_radius,omitempty"`
	SkipOverlaps bool    `json:"skip_overlaps,omitempty"`

	// Refresh bypasses the cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a layout run.
type Result struct {
	// Graph is the laid out graph with every node positioned.
	Graph concept.Graph

	// GraphHash is the content hash of the input graph snapshot.
	GraphHash string

	// View is the viewport fitting the laid out graph onto the canvas.
	View layout.View

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the run hit the cache.
	CacheInfo CacheInfo
}

// Stats contains layout execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	LayoutHit bool // Whether the layout result came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateStrategy checks that a layout strategy is valid.
func ValidateStrategy(strategy string) error {
	if !layout.ValidStrategies[layout.Strategy(strategy)] {
		return errors.New(errors.ErrCodeInvalidStrategy,
			"invalid strategy: %q (must be one of: force, radial, intelligent, hierarchy)", strategy)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.NodeRadius == 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutConfig converts the options to an engine layout configuration.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		Width:            o.Width,
		Height:           o.Height,
		NodeSpacing:      o.NodeSpacing,
		Iterations:       o.Iterations,
		ForceStrength:    o.ForceStrength,
		Radius:           o.Radius,
		RootID:           o.RootID,
		AllowDefaultRoot: o.AllowDefaultRoot,
		Seed:             o.Seed,
	}
}

// LayoutKeyOpts returns cache key options for the layout run.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:         o.Strategy,
		Width:            o.Width,
		Height:           o.Height,
		NodeSpacing:      o.NodeSpacing,
		Iterations:       o.Iterations,
		ForceStrength:    o.ForceStrength,
		Radius:           o.Radius,
		RootID:           o.RootID,
		AllowDefaultRoot: o.AllowDefaultRoot,
		Seed:             o.Seed,
	}
}
