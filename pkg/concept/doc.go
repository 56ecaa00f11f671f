// Package concept defines the concept-graph data model and its JSON
// serialization format.
//
// A concept graph is a set of knowledge nodes (title, keywords, explanation,
// optional type and difficulty) connected by optionally labeled edges. This
// package is the boundary between the engine and its callers: everything the
// engine consumes or returns is expressed in these plain data types.
//
// # Serialization
//
// Graphs round-trip through JSON with full fidelity:
//
//	g, err := concept.ReadGraphFile("graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := concept.MarshalGraph(g)
//
// BSON tags are carried on all serialization types so graphs can be stored
// as documents without a parallel type hierarchy.
//
// # Filtering and search
//
// FilterNodes selects nodes by structured attributes (type, difficulty,
// keywords, creation dates, resource/image presence); SearchNodes performs
// free-text matching over titles, explanations and keywords:
//
//	hits := concept.SearchNodes(g, "sorting", concept.SearchOptions{})
//
// Both return results in the input node order and never error: an empty or
// unmatched query yields an empty slice.
package concept
