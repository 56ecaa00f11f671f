package store

import (
	"context"
	"time"

	"github.com/knomap/knomap/pkg/concept"
	"github.com/knomap/knomap/pkg/errors"
)

// Record is a named graph document with bookkeeping timestamps.
type Record struct {
	Name      string        `json:"name" bson:"_id"`
	Graph     concept.Graph `json:"graph" bson:"graph"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Store persists named concept graphs. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save stores a graph under a name, creating or replacing it.
	Save(ctx context.Context, name string, g concept.Graph) error

	// Load retrieves a graph by name. A missing name is a
	// GRAPH_NOT_FOUND error.
	Load(ctx context.Context, name string) (Record, error)

	// List returns the stored graph names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a graph. Deleting a missing name is a
	// GRAPH_NOT_FOUND error.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// validateGraphContent checks the outbound links a graph carries before
// it is persisted. Image and resource URLs come back out as clickable
// content for whoever loads the graph, so only http(s) gets through.
func validateGraphContent(g concept.Graph) error {
	for _, n := range g.Nodes {
		if n.ImageURL != "" {
			if err := errors.ValidateURL(n.ImageURL); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s image url", n.ID)
			}
		}
		for _, res := range n.Resources {
			if err := errors.ValidateURL(res); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s resource", n.ID)
			}
		}
	}
	return nil
}
