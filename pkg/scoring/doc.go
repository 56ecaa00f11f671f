// Package scoring ranks nodes by their relationship to a chosen root.
//
// A Scorer blends five signals into one combined score per node: hop
// distance from the root (unnormalized, so it dominates), concept-type
// compatibility, keyword overlap, direct edge strength, and degree
// centrality. Lower combined scores mean closer to the center, and each
// score carries a ring level in [0,4] for radial placement.
//
// Nodes with no path to the root receive a sentinel distance of 999,
// which lands them on the outermost ring.
package scoring
