// Package model builds the adjacency index every other engine package
// queries.
//
// The index is rebuilt from the concept-graph snapshot on each call rather
// than cached across calls. That trades a little rebuild work (node counts
// are bounded in the hundreds) for the guarantee that no query can ever see
// a stale graph.
//
// # Usage
//
//	m := model.Build(g)
//	neighbors := m.Neighbors("sorting", model.Both)
//	degree := m.Degree("sorting")
//
// Edges referencing unknown node IDs are tolerated: they are indexed by
// edge ID but excluded from adjacency, matching the engine-wide
// dangling-edge policy.
package model
