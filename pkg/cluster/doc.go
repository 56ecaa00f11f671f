// Package cluster detects connected components of a concept graph and
// ranks them by internal density.
//
// Components are found over combined adjacency with an iterative stack
// walk. Each retained component reports a centroid (the member with the
// most intra-cluster connections) and a cohesion score in [0,1], and the
// result list is ordered densest first.
package cluster
