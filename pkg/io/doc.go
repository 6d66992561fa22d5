// Package io reads and writes network graphs as GML and node-link JSON.
//
// # Overview
//
// Both formats load into a [netgraph.Graph]. Node coordinates found in a file
// are not applied as layout positions; they are stored as the node
// attributes "x" and "y" so the caller can adopt them with
// layout.FromAttributes or ignore them and compute a fresh layout. Colors
// default to white nodes and black edges when a file does not specify them.
//
// # GML
//
// The GML reader understands the subset produced by common network tools:
//
//	graph [
//	  directed 1
//	  node [ id 0 label "Alice" x 10.5 y 3 ]
//	  node [ id 1 label "Bob" ]
//	  edge [ source 0 target 1 label "knows" ]
//	]
//
// Node IDs are taken from the integer id field, or from a string name field
// when present. Other scalar fields become attributes; nested lists such as
// graphics [...] are skipped. [WriteGML] emits the same subset and writes the
// node ID as name whenever it is not the node's index, so files round-trip.
//
// # JSON
//
//	{
//	  "directed": true,
//	  "nodes": [
//	    {"id": "alice", "label": "Alice", "color": "#ff0000", "x": 0.2, "y": 0.8},
//	    {"id": "bob", "attrs": {"club": "A"}}
//	  ],
//	  "edges": [
//	    {"from": "alice", "to": "bob", "label": "knows"}
//	  ]
//	}
//
// Colors are written as hex and accepted as hex or rgb(r, g, b).
//
// # Errors
//
// Readers return structured errors from the errors package: malformed input
// is INVALID_FORMAT, an edge naming an unknown node is INVALID_REFERENCE and
// wraps [netgraph.ErrInvalidReference], a repeated node ID is DUPLICATE_NODE.
package io
