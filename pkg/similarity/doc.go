// Package similarity measures textual closeness between concept nodes.
//
// Two primitives are exposed - normalized Levenshtein similarity over
// strings and Jaccard similarity over lower-cased keyword sets - plus
// FindSimilar, which combines them (0.6 title, 0.4 keywords) to locate
// near-duplicate nodes.
//
// Edge cases carry explicit policies instead of being undefined: two empty
// strings are identical (1.0), two empty keyword sets are neutrally similar
// (0.5), and one empty set against a non-empty one scores 0.
package similarity
