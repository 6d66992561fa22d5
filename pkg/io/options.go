package io

import "github.com/matzehuels/socnet/pkg/netgraph"

// Option configures the readers.
type Option func(*readOptions)

type readOptions struct {
	nodeColor netgraph.Color
	edgeColor netgraph.Color
}

// WithColors sets the colors given to nodes and edges whose input carries
// none. Without it they are white and black.
func WithColors(node, edge netgraph.Color) Option {
	return func(o *readOptions) {
		o.nodeColor, o.edgeColor = node, edge
	}
}

func newReadOptions(opts []Option) readOptions {
	o := readOptions{
		nodeColor: netgraph.DefaultNodeColor,
		edgeColor: netgraph.DefaultEdgeColor,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
