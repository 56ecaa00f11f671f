// Package traverse implements graph traversal and path queries over a
// concept-graph model.
//
// All operations expand neighbors over combined (incoming + outgoing)
// adjacency, because concept edges are undirected in meaning. Unknown node
// IDs are never errors: every entry point returns an empty result instead,
// so callers in hot loops need no error handling for missing data.
//
//	m := model.Build(g)
//	order := traverse.Visit(m, "root", 3)          // BFS, depth ≤ 3
//	sp := traverse.ShortestPath(m, "a", "b")       // first BFS path
//	all := traverse.AllPaths(m, "a", "b", 10)      // simple paths, bounded
package traverse
