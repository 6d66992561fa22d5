// Package analysis computes graph metrics and writes per-node results back
// onto the graph as attributes.
//
// Per-node metrics are stored under fixed attribute keys ([AttrCloseness],
// [AttrBetweenness], [AttrShortestNeighbors]) so renderers and exporters can
// pick them up without knowing which analysis produced them. Scalar metrics
// return a value plus a defined flag: a clustering coefficient of a graph
// with no connected triads is undefined, which is different from 0.
package analysis
