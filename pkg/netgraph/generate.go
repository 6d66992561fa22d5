package netgraph

import "strconv"

// Empty returns an undirected graph with n isolated nodes labelled "0".."n-1"
// and colored DefaultNodeColor.
func Empty(n int) *Graph {
	g := New(false)
	for i := range n {
		id := strconv.Itoa(i)
		_ = g.AddNode(Node{ID: id, Label: id, Color: DefaultNodeColor})
	}
	return g
}

// Complete returns the undirected complete graph on n nodes. Edges are added
// in lexicographic index order and colored DefaultEdgeColor.
func Complete(n int) *Graph {
	g := Empty(n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			_ = g.AddEdge(Edge{From: strconv.Itoa(i), To: strconv.Itoa(j), Color: DefaultEdgeColor})
		}
	}
	return g
}
