// Package algo defines the graph-algorithm capability used by the layout and
// analysis engines, with two interchangeable implementations.
//
// [Native] implements everything from scratch (breadth-first search,
// Brandes betweenness, predecessor-DAG path enumeration and
// Fruchterman-Reingold force-directed placement). [Gonum] delegates the
// path and centrality work to gonum.org/v1/gonum/graph. Both return the same
// results for unweighted graphs, so engines can swap them without changing
// their contract.
//
// All methods treat edges as unit length and ignore self-loops for path
// computations. Node order in every result follows graph insertion order.
package algo

import (
	"math/rand/v2"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Algorithms is the capability set the engines call into.
type Algorithms interface {
	// Distances returns hop counts from source to every node it reaches,
	// including source itself at distance 0.
	Distances(g *netgraph.Graph, source string) (map[string]int, error)

	// AllShortestPaths enumerates every shortest path from source to target.
	// It returns nil without error when target is unreachable.
	AllShortestPaths(g *netgraph.Graph, source, target string) ([][]string, error)

	// Closeness returns Wasserman-Faust closeness centrality. Directed graphs
	// use inward distance. Nodes nobody reaches score 0.
	Closeness(g *netgraph.Graph) map[string]float64

	// Betweenness returns Brandes betweenness centrality normalized by
	// (n-1)(n-2) when the graph has more than two nodes.
	Betweenness(g *netgraph.Graph) map[string]float64

	// Components returns weakly connected components. Each component lists
	// nodes in insertion order and components are ordered by their first node.
	Components(g *netgraph.Graph) [][]string

	// Spring runs force-directed placement starting from init. Nodes missing
	// from init start at random positions drawn from opts.Rand.
	Spring(g *netgraph.Graph, init map[string]netgraph.Point, opts SpringOptions) map[string]netgraph.Point
}

// SpringOptions configures [Algorithms.Spring].
type SpringOptions struct {
	// Iterations is the number of relaxation steps. Default: 50.
	Iterations int

	// Weight names a numeric edge attribute used as attraction strength.
	// Empty means every edge has weight 1; edges lacking the attribute also
	// count as 1.
	Weight string

	// Threshold stops the relaxation early once the mean displacement per
	// node drops below it. Default: 1e-4.
	Threshold float64

	// Rand supplies initial positions for nodes missing from init.
	// Default: a PCG source seeded with DefaultSeed.
	Rand *rand.Rand
}

// Spring defaults.
const (
	DefaultIterations = 50
	DefaultThreshold  = 1e-4
	DefaultSeed       = uint64(42)
)

// NewRand returns the PCG-backed source used throughout the engine.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func (o SpringOptions) withDefaults() SpringOptions {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Rand == nil {
		o.Rand = NewRand(DefaultSeed)
	}
	return o
}

// wassermanFaust scales classic closeness by the reachable fraction so that
// nodes in small components do not receive inflated scores.
func wassermanFaust(n int, dist map[string]int) float64 {
	total := 0
	for _, d := range dist {
		total += d
	}
	if total == 0 || n <= 1 {
		return 0
	}
	reach := float64(len(dist) - 1)
	return (reach / float64(total)) * (reach / float64(n-1))
}

// normalizeBetweenness rescales raw pair-dependency sums in place.
func normalizeBetweenness(cb map[string]float64, n int) {
	if n <= 2 {
		return
	}
	scale := 1 / float64((n-1)*(n-2))
	for id := range cb {
		cb[id] *= scale
	}
}
