package algo

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Gonum implements [Algorithms] on top of gonum's graph packages.
// Node IDs map to gonum node IDs by insertion index.
//
// Force-directed placement has no gonum counterpart with matching
// semantics, so Spring delegates to [Native].
type Gonum struct{}

var _ Algorithms = Gonum{}

// directed converts g into a gonum directed graph. Undirected edges become
// two arcs so centrality measures see the same pair structure as [Native].
func directed(g *netgraph.Graph) *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for i := range g.NodeCount() {
		dg.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges() {
		u, _ := g.Index(e.From)
		v, _ := g.Index(e.To)
		if u == v {
			continue // gonum panics on self-loops
		}
		dg.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
		if !g.Directed() {
			dg.SetEdge(simple.Edge{F: simple.Node(v), T: simple.Node(u)})
		}
	}
	return dg
}

func undirected(g *netgraph.Graph) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for i := range g.NodeCount() {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges() {
		u, _ := g.Index(e.From)
		v, _ := g.Index(e.To)
		if u != v {
			ug.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
		}
	}
	return ug
}

func (Gonum) Distances(g *netgraph.Graph, source string) (map[string]int, error) {
	s, ok := g.Index(source)
	if !ok {
		return nil, fmt.Errorf("distances from %q: %w", source, netgraph.ErrInvalidReference)
	}
	return dijkstraHops(g, directed(g), s), nil
}

func dijkstraHops(g *netgraph.Graph, dg *simple.DirectedGraph, s int) map[string]int {
	ids := g.NodeIDs()
	sp := path.DijkstraFrom(simple.Node(s), dg)
	dist := make(map[string]int)
	for i, id := range ids {
		if w := sp.WeightTo(int64(i)); !math.IsInf(w, 1) {
			dist[id] = int(w)
		}
	}
	return dist
}

func (Gonum) AllShortestPaths(g *netgraph.Graph, source, target string) ([][]string, error) {
	s, ok := g.Index(source)
	if !ok {
		return nil, fmt.Errorf("shortest paths %q->%q: unknown node %q: %w", source, target, source, netgraph.ErrInvalidReference)
	}
	t, ok := g.Index(target)
	if !ok {
		return nil, fmt.Errorf("shortest paths %q->%q: unknown node %q: %w", source, target, target, netgraph.ErrInvalidReference)
	}
	if s == t {
		return [][]string{{source}}, nil
	}

	all := path.DijkstraAllPaths(directed(g))
	found, _ := all.AllBetween(int64(s), int64(t))
	if len(found) == 0 {
		return nil, nil
	}
	ids := g.NodeIDs()
	paths := make([][]string, 0, len(found))
	for _, p := range found {
		ps := make([]string, len(p))
		for i, n := range p {
			ps[i] = ids[n.ID()]
		}
		paths = append(paths, ps)
	}
	return paths, nil
}

func (Gonum) Closeness(g *netgraph.Graph) map[string]float64 {
	src := g
	if g.Directed() {
		src = g.Reverse()
	}
	dg := directed(src)
	out := make(map[string]float64, g.NodeCount())
	for i, id := range g.NodeIDs() {
		out[id] = wassermanFaust(g.NodeCount(), dijkstraHops(src, dg, i))
	}
	return out
}

func (Gonum) Betweenness(g *netgraph.Graph) map[string]float64 {
	raw := network.Betweenness(directed(g))
	ids := g.NodeIDs()
	cb := make(map[string]float64, len(ids))
	for i, id := range ids {
		cb[id] = raw[int64(i)]
	}
	normalizeBetweenness(cb, len(ids))
	return cb
}

func (Gonum) Components(g *netgraph.Graph) [][]string {
	ids := g.NodeIDs()
	raw := topo.ConnectedComponents(undirected(g))
	comps := make([][]string, 0, len(raw))
	for _, c := range raw {
		idx := make([]int64, len(c))
		for i, n := range c {
			idx[i] = n.ID()
		}
		slices.Sort(idx)
		comp := make([]string, len(idx))
		for i, x := range idx {
			comp[i] = ids[x]
		}
		comps = append(comps, comp)
	}
	slices.SortFunc(comps, func(a, b []string) int {
		i, _ := g.Index(a[0])
		j, _ := g.Index(b[0])
		return i - j
	})
	return comps
}

func (Gonum) Spring(g *netgraph.Graph, init map[string]netgraph.Point, opts SpringOptions) map[string]netgraph.Point {
	return Native{}.Spring(g, init, opts)
}
