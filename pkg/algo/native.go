package algo

import (
	"fmt"
	"slices"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Native implements [Algorithms] without external graph libraries.
type Native struct{}

var _ Algorithms = Native{}

// Distances runs a breadth-first search along outgoing edges.
func (Native) Distances(g *netgraph.Graph, source string) (map[string]int, error) {
	if _, ok := g.Node(source); !ok {
		return nil, fmt.Errorf("distances from %q: %w", source, netgraph.ErrInvalidReference)
	}
	dist, _, _ := bfs(g, source)
	return dist, nil
}

// bfs returns distances, predecessor lists on shortest paths and the visit order.
func bfs(g *netgraph.Graph, s string) (map[string]int, map[string][]string, []string) {
	dist := map[string]int{s: 0}
	pred := make(map[string][]string)
	order := []string{s}

	for i := 0; i < len(order); i++ {
		v := order[i]
		for _, w := range g.Successors(v) {
			if w == v {
				continue
			}
			d, seen := dist[w]
			if !seen {
				dist[w] = dist[v] + 1
				order = append(order, w)
				d = dist[w]
			}
			if d == dist[v]+1 {
				pred[w] = append(pred[w], v)
			}
		}
	}
	return dist, pred, order
}

// AllShortestPaths walks the BFS predecessor DAG back from target.
func (Native) AllShortestPaths(g *netgraph.Graph, source, target string) ([][]string, error) {
	for _, id := range []string{source, target} {
		if _, ok := g.Node(id); !ok {
			return nil, fmt.Errorf("shortest paths %q->%q: unknown node %q: %w", source, target, id, netgraph.ErrInvalidReference)
		}
	}

	dist, pred, _ := bfs(g, source)
	if _, ok := dist[target]; !ok {
		return nil, nil
	}

	var paths [][]string
	stack := []string{target}
	var walk func(v string)
	walk = func(v string) {
		if v == source {
			p := slices.Clone(stack)
			slices.Reverse(p)
			paths = append(paths, p)
			return
		}
		for _, u := range pred[v] {
			stack = append(stack, u)
			walk(u)
			stack = stack[:len(stack)-1]
		}
	}
	walk(target)
	return paths, nil
}

// Closeness uses inward distances for directed graphs.
func (n Native) Closeness(g *netgraph.Graph) map[string]float64 {
	src := g
	if g.Directed() {
		src = g.Reverse()
	}
	out := make(map[string]float64, g.NodeCount())
	for _, id := range src.NodeIDs() {
		dist, _, _ := bfs(src, id)
		out[id] = wassermanFaust(g.NodeCount(), dist)
	}
	return out
}

// Betweenness implements Brandes' algorithm: one BFS per source followed by
// back-propagation of pair dependencies in reverse visit order.
func (Native) Betweenness(g *netgraph.Graph) map[string]float64 {
	cb := make(map[string]float64, g.NodeCount())
	ids := g.NodeIDs()
	for _, id := range ids {
		cb[id] = 0
	}

	for _, s := range ids {
		_, pred, order := bfs(g, s)
		sigma := map[string]float64{s: 1}
		for _, w := range order[1:] {
			for _, v := range pred[w] {
				sigma[w] += sigma[v]
			}
		}

		delta := make(map[string]float64, len(order))
		for i := len(order) - 1; i >= 0; i-- {
			w := order[i]
			for _, v := range pred[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	normalizeBetweenness(cb, len(ids))
	return cb
}

// Components follows edges in both directions.
func (Native) Components(g *netgraph.Graph) [][]string {
	seen := make(map[string]bool, g.NodeCount())
	var comps [][]string
	for _, start := range g.NodeIDs() {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []string{start}
		for i := 0; i < len(comp); i++ {
			for _, w := range g.Neighbors(comp[i]) {
				if !seen[w] {
					seen[w] = true
					comp = append(comp, w)
				}
			}
		}
		sortByIndex(g, comp)
		comps = append(comps, comp)
	}
	return comps
}

func sortByIndex(g *netgraph.Graph, ids []string) {
	slices.SortFunc(ids, func(a, b string) int {
		i, _ := g.Index(a)
		j, _ := g.Index(b)
		return i - j
	})
}
