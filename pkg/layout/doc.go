// Package layout computes 2D node positions for a [netgraph.Graph].
//
// Every layout writes positions directly onto the graph's nodes and then
// normalizes them per axis into the unit square: the smallest coordinate on
// each axis maps to 0 and the largest to 1. Aspect ratio is not preserved, so
// a layout always fills the whole drawing area. An axis on which all nodes
// share one coordinate collapses to 0.
//
// The [Engine] holds the two injected dependencies layouts need: an
// [algo.Algorithms] implementation for force-directed placement and a seeded
// random source. Two engines built with the same seed produce identical
// positions for identical graphs.
//
//	eng := layout.New(algo.Native{}, algo.NewRand(42))
//	eng.Circular(g)
//	for range 20 {
//	    eng.Update(g, "", 1)
//	}
//
// [Random] is the one exception to normalization: it draws raw uniform
// coordinates and leaves them as they are.
package layout
