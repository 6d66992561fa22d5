package analysis

import (
	"cmp"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/socnet/pkg/algo"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Node attribute keys written by the engine.
const (
	AttrCloseness         = "closeness"
	AttrBetweenness       = "betweenness"
	AttrShortestNeighbors = "shortest_neighbors"
)

// Engine runs analyses with an injected algorithm set.
type Engine struct {
	algos algo.Algorithms
}

// New creates an engine. A nil algos uses [algo.Native].
func New(algos algo.Algorithms) *Engine {
	if algos == nil {
		algos = algo.Native{}
	}
	return &Engine{algos: algos}
}

// Closeness stores Wasserman-Faust closeness on every node and returns it.
// Directed graphs use inward distance.
func (e *Engine) Closeness(g *netgraph.Graph) map[string]float64 {
	cc := e.algos.Closeness(g)
	store(g, AttrCloseness, cc)
	return cc
}

// Betweenness stores normalized betweenness on every node and returns it.
func (e *Engine) Betweenness(g *netgraph.Graph) map[string]float64 {
	cb := e.algos.Betweenness(g)
	store(g, AttrBetweenness, cb)
	return cb
}

func store(g *netgraph.Graph, key string, values map[string]float64) {
	for _, n := range g.Nodes() {
		n.Attrs[key] = values[n.ID]
	}
}

// ShortestNeighbors enumerates every shortest path from s to t and records,
// for each node, the sorted IDs of the nodes it steps to on any of them.
// Nodes off every path get an empty list, as do all nodes when t is
// unreachable. Lists follow numeric order for integer IDs and insertion
// order otherwise.
func (e *Engine) ShortestNeighbors(g *netgraph.Graph, s, t string) error {
	paths, err := e.algos.AllShortestPaths(g, s, t)
	if err != nil {
		return err
	}

	next := make(map[string][]string, g.NodeCount())
	for _, p := range paths {
		for i := 0; i+1 < len(p); i++ {
			if !slices.Contains(next[p[i]], p[i+1]) {
				next[p[i]] = append(next[p[i]], p[i+1])
			}
		}
	}
	for _, n := range g.Nodes() {
		ids := next[n.ID]
		if ids == nil {
			ids = []string{}
		}
		slices.SortFunc(ids, func(a, b string) int { return compareIDs(g, a, b) })
		n.Attrs[AttrShortestNeighbors] = ids
	}
	return nil
}

func compareIDs(g *netgraph.Graph, a, b string) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmp.Compare(x, y)
	}
	i, _ := g.Index(a)
	j, _ := g.Index(b)
	return cmp.Compare(i, j)
}

// GlobalClustering returns the transitivity of g: closed triads over triads
// with at least two edges, each counted with multiplicity three. An edge
// exists between two nodes if either direction is present. Defined is false
// when there are no such triads.
func (e *Engine) GlobalClustering(g *netgraph.Graph) (value float64, defined bool) {
	adj := undirectedView(g)
	var closed, triads int
	for _, v := range g.NodeIDs() {
		c, w := wedges(adj, v)
		closed += c
		triads += w
	}
	if triads == 0 {
		return 0, false
	}
	return float64(closed) / float64(triads), true
}

// AverageClustering returns the mean local clustering coefficient over the
// undirected view of g. Nodes with fewer than two neighbors count as 0.
// Defined is false for an empty graph.
func (e *Engine) AverageClustering(g *netgraph.Graph) (value float64, defined bool) {
	ids := g.NodeIDs()
	if len(ids) == 0 {
		return 0, false
	}
	adj := undirectedView(g)
	var sum float64
	for _, v := range ids {
		if c, w := wedges(adj, v); w > 0 {
			sum += float64(c) / float64(w)
		}
	}
	return sum / float64(len(ids)), true
}

// wedges counts the neighbor pairs of v (paths of length two centered on v)
// and how many of them are closed by an edge.
func wedges(adj map[string]map[string]bool, v string) (closed, total int) {
	nbrs := make([]string, 0, len(adj[v]))
	for u := range adj[v] {
		nbrs = append(nbrs, u)
	}
	for i := range nbrs {
		for j := i + 1; j < len(nbrs); j++ {
			total++
			if adj[nbrs[i]][nbrs[j]] {
				closed++
			}
		}
	}
	return closed, total
}

// undirectedView returns symmetric adjacency sets without self-loops.
func undirectedView(g *netgraph.Graph) map[string]map[string]bool {
	adj := make(map[string]map[string]bool, g.NodeCount())
	for _, id := range g.NodeIDs() {
		adj[id] = map[string]bool{}
	}
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		adj[e.From][e.To] = true
		adj[e.To][e.From] = true
	}
	return adj
}

// AverageDistance returns the mean shortest-path length over all ordered
// pairs of distinct nodes. Defined is false for an empty graph and for graphs
// that are not (strongly) connected.
func (e *Engine) AverageDistance(g *netgraph.Graph) (value float64, defined bool) {
	ids := g.NodeIDs()
	n := len(ids)
	switch n {
	case 0:
		return 0, false
	case 1:
		return 0, true
	}

	total := 0
	for _, s := range ids {
		dist, err := e.algos.Distances(g, s)
		if err != nil || len(dist) < n {
			return 0, false
		}
		for _, d := range dist {
			total += d
		}
	}
	return float64(total) / float64(n*(n-1)), true
}

// LargestComponent returns a copy of the largest weakly connected component.
// Ties go to the component containing the earliest-inserted node.
func (e *Engine) LargestComponent(g *netgraph.Graph) (*netgraph.Graph, error) {
	var best []string
	for _, c := range e.algos.Components(g) {
		if len(c) > len(best) {
			best = c
		}
	}
	return g.Subgraph(best)
}

// AdjacencyMatrix returns the n×n 0/1 adjacency matrix in node insertion
// order. Undirected graphs yield a symmetric matrix.
func AdjacencyMatrix(g *netgraph.Graph) *mat.Dense {
	n := g.NodeCount()
	if n == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(n, n, nil)
	for _, e := range g.Edges() {
		i, _ := g.Index(e.From)
		j, _ := g.Index(e.To)
		m.Set(i, j, 1)
		if !g.Directed() {
			m.Set(j, i, 1)
		}
	}
	return m
}
