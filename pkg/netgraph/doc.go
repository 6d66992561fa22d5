// Package netgraph provides the in-memory network graph consumed by the layout,
// render and analysis engines.
//
// # Overview
//
// A [Graph] is an ordered set of nodes and an ordered set of edges plus a
// directedness flag fixed at construction. Iteration always follows insertion
// order, which makes every downstream computation (layout, trace batching,
// adjacency matrices) deterministic.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode] and edges with
// [Graph.AddEdge]. Node IDs must be unique and edges may only reference
// existing nodes:
//
//	g := netgraph.New(true)
//	g.AddNode(netgraph.Node{ID: "ana", Label: "Ana"})
//	g.AddNode(netgraph.Node{ID: "bo", Label: "Bo"})
//	g.AddEdge(netgraph.Edge{From: "ana", To: "bo"})
//
// In a directed graph (u,v) and (v,u) are distinct and may coexist; such a
// pair is called reciprocal and is reported by [Graph.HasReciprocal]. In an
// undirected graph both orientations name the same edge.
//
// # Attributes
//
// Nodes carry typed core fields (Label, Color, Pos) and an open [Attrs] map
// for ancillary values such as popularity or computed centrality. Attrs maps
// are never nil after a node or edge is added.
//
// # Errors
//
// Malformed input fails fast: [ErrInvalidNodeID], [ErrDuplicateNodeID],
// [ErrInvalidReference] and [ErrDuplicateEdge] are returned wrapped with the
// offending IDs; match them with errors.Is.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Concurrent reads are safe.
package netgraph
