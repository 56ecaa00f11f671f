// Package layout computes 2D node positions for concept graphs.
//
// # Strategies
//
// Four interchangeable strategies are selected through Apply:
//
//   - ForceDirected: Fruchterman-Reingold style physics simulation with
//     bounded iterations and displacement clamping.
//   - Radial: concentric rings by BFS hop distance from a root.
//   - IntelligentRadial: rings ordered by relationship score (path
//     distance, type compatibility, keyword overlap, edge strength,
//     centrality) against a root.
//   - LinearHierarchy: top-down levels with children centered under
//     their parent.
//
// Every strategy is pure: Apply clones the input graph and returns a new
// value with positions set, so a snapshot shared across calls is safe.
//
// # Root resolution
//
// The radial and hierarchy strategies need a root. An explicit unknown
// root returns the graph unchanged, matching the engine-wide policy of
// empty results for unknown IDs. A missing root is ErrRootRequired
// unless Config.AllowDefaultRoot opts into the fallback (first node for
// the radial strategies, parentless nodes for the hierarchy).
//
// # Post-processing
//
// ResolveOverlaps pushes overlapping nodes apart, OptimalView fits a
// viewport around the result, and Animate interpolates between two
// layouts with a cancellable handle.
package layout
