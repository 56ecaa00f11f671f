// Package cache provides caching for graph documents, layout results, and
// query results.
//
// Two concerns are separated:
//   - Cache: byte-level storage with TTL (file, redis, null backends)
//   - Keyer: deterministic cache key construction
//
// Keys embed a SHA-256 content hash of their inputs, so two identical
// graph snapshots with identical options always share a cache entry and
// any change to either produces a distinct key.
package cache

import (
	"context"
	"time"
)

// Default TTLs per key type. Layout results are expensive and fully
// determined by their key, so they live longest.
const (
	TTLGraph  = 24 * time.Hour
	TTLLayout = 7 * 24 * time.Hour
	TTLQuery  = 24 * time.Hour
)

// Cache is the byte-level storage interface implemented by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A non-positive TTL stores forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures every layout input that affects the result.
type LayoutKeyOpts struct {
	Strategy         string
	Width            float64
	Height           float64
	NodeSpacing      float64
	Iterations       int
	ForceStrength    float64
	Radius           float64
	RootID           string
	AllowDefaultRoot bool
	Seed             uint64
}

// Keyer constructs cache keys.
type Keyer interface {
	// GraphKey generates a key for a stored graph document.
	GraphKey(name string) string

	// LayoutKey generates a key for a layout result over the graph
	// snapshot identified by graphHash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// QueryKey generates a key for a query result (paths, similarity,
	// clusters, scoring) over the graph snapshot identified by
	// graphHash. kind names the query; params are its arguments.
	QueryKey(graphHash, kind string, params ...any) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a stored graph document.
func (k *DefaultKeyer) GraphKey(name string) string {
	return "graph:" + name
}

// LayoutKey generates a key for a layout result.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// QueryKey generates a key for a query result.
func (k *DefaultKeyer) QueryKey(graphHash, kind string, params ...any) string {
	return hashKey("query:"+kind, graphHash, params)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
