package netgraph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidReference is returned when an edge or a query names a node
	// that does not exist in the graph.
	ErrInvalidReference = errors.New("invalid node reference")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the edge already
	// exists. In undirected graphs (u,v) and (v,u) are the same edge.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Point is a 2D position or displacement.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Node is a vertex of the graph.
//
// Pos lies in [0,1]×[0,1] once a layout has been applied.
type Node struct {
	ID    string // Unique, stable identifier
	Label string // Display string (defaults to ID, see DisplayLabel)
	Color Color
	Pos   Point
	Attrs Attrs // Never nil after AddNode
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects two nodes. The pair is ordered in directed graphs.
type Edge struct {
	From  string
	To    string
	Label string
	Color Color
	Attrs Attrs // Never nil after AddEdge
}

type edgeKey struct{ from, to string }

// Graph is an attributed network graph with insertion-ordered nodes and edges.
//
// The zero value is not usable - use New to create a valid Graph.
type Graph struct {
	directed bool
	nodes    []*Node
	index    map[string]int
	edges    []*Edge
	edgeIdx  map[edgeKey]int
	out      map[string][]string // nodeID -> successor IDs (neighbors if undirected)
	in       map[string][]string // nodeID -> predecessor IDs (neighbors if undirected)
}

// New creates an empty graph. Directedness cannot be changed afterwards.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		index:    make(map[string]int),
		edgeIdx:  make(map[edgeKey]int),
		out:      make(map[string][]string),
		in:       make(map[string][]string),
	}
}

// Directed reports whether edges are ordered pairs.
func (g *Graph) Directed() bool { return g.directed }

// AddNode appends a node. Its Attrs map is initialized if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("node %q: %w", n.ID, ErrDuplicateNodeID)
	}
	if n.Attrs == nil {
		n.Attrs = Attrs{}
	}
	node := &n
	g.index[node.ID] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return nil
}

// AddEdge appends an edge between two existing nodes.
// Returns ErrInvalidReference if either endpoint is unknown and
// ErrDuplicateEdge if the edge is already present.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return fmt.Errorf("edge %s->%s: unknown source %q: %w", e.From, e.To, e.From, ErrInvalidReference)
	}
	if _, ok := g.index[e.To]; !ok {
		return fmt.Errorf("edge %s->%s: unknown target %q: %w", e.From, e.To, e.To, ErrInvalidReference)
	}
	if g.HasEdge(e.From, e.To) {
		return fmt.Errorf("edge %s->%s: %w", e.From, e.To, ErrDuplicateEdge)
	}
	if e.Attrs == nil {
		e.Attrs = Attrs{}
	}
	edge := &e
	i := len(g.edges)
	g.edges = append(g.edges, edge)
	g.edgeIdx[edgeKey{e.From, e.To}] = i
	g.out[e.From] = append(g.out[e.From], e.To)
	g.in[e.To] = append(g.in[e.To], e.From)
	if !g.directed && e.From != e.To {
		g.edgeIdx[edgeKey{e.To, e.From}] = i
		g.out[e.To] = append(g.out[e.To], e.From)
		g.in[e.From] = append(g.in[e.From], e.To)
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not found.
// The returned pointer refers to the node stored in the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Index returns the insertion position of the node.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Edge returns the edge u->v. In undirected graphs the orientation is ignored.
func (g *Graph) Edge(u, v string) (*Edge, bool) {
	i, ok := g.edgeIdx[edgeKey{u, v}]
	if !ok {
		return nil, false
	}
	return g.edges[i], true
}

// HasEdge reports whether the edge u->v exists.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.edgeIdx[edgeKey{u, v}]
	return ok
}

// HasReciprocal reports whether the reverse edge v->u of a directed edge u->v
// exists. It is always false for undirected graphs.
func (g *Graph) HasReciprocal(u, v string) bool {
	return g.directed && g.HasEdge(v, u)
}

// Nodes returns the nodes in insertion order. The slice is a copy but the
// pointers refer to the stored nodes.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns the edges in insertion order. The slice is a copy but the
// pointers refer to the stored edges.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeIDs returns the node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs reachable over one outgoing edge, in edge
// insertion order. For undirected graphs this equals Neighbors.
// The returned slice should not be modified.
func (g *Graph) Successors(id string) []string { return g.out[id] }

// Predecessors returns the IDs with an edge into id.
// The returned slice should not be modified.
func (g *Graph) Predecessors(id string) []string { return g.in[id] }

// Neighbors returns the union of successors and predecessors without duplicates.
func (g *Graph) Neighbors(id string) []string {
	if !g.directed {
		return g.out[id]
	}
	seen := make(map[string]bool, len(g.out[id])+len(g.in[id]))
	var result []string
	for _, list := range [][]string{g.out[id], g.in[id]} {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				result = append(result, v)
			}
		}
	}
	return result
}

// ResetNodeColors assigns c to every node.
func (g *Graph) ResetNodeColors(c Color) {
	for _, n := range g.nodes {
		n.Color = c
	}
}

// ResetEdgeColors assigns c to every edge.
func (g *Graph) ResetEdgeColors(c Color) {
	for _, e := range g.edges {
		e.Color = c
	}
}

// Clone returns an independent copy of the graph. Attribute maps are copied
// one level deep.
func (g *Graph) Clone() *Graph {
	c := New(g.directed)
	for _, n := range g.nodes {
		cp := *n
		cp.Attrs = n.Attrs.Clone()
		_ = c.AddNode(cp)
	}
	for _, e := range g.edges {
		cp := *e
		cp.Attrs = e.Attrs.Clone()
		_ = c.AddEdge(cp)
	}
	return c
}

// Reverse returns a copy with every directed edge flipped.
// For undirected graphs it is equivalent to Clone.
func (g *Graph) Reverse() *Graph {
	if !g.directed {
		return g.Clone()
	}
	r := New(true)
	for _, n := range g.nodes {
		cp := *n
		cp.Attrs = n.Attrs.Clone()
		_ = r.AddNode(cp)
	}
	for _, e := range g.edges {
		cp := *e
		cp.From, cp.To = e.To, e.From
		cp.Attrs = e.Attrs.Clone()
		_ = r.AddEdge(cp)
	}
	return r
}

// Subgraph returns a copy induced by the given node IDs. Node and edge order
// follow the original graph. Unknown IDs fail with ErrInvalidReference.
func (g *Graph) Subgraph(ids []string) (*Graph, error) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := g.index[id]; !ok {
			return nil, fmt.Errorf("subgraph node %q: %w", id, ErrInvalidReference)
		}
		keep[id] = true
	}
	s := New(g.directed)
	for _, n := range g.nodes {
		if keep[n.ID] {
			cp := *n
			cp.Attrs = n.Attrs.Clone()
			_ = s.AddNode(cp)
		}
	}
	for _, e := range g.edges {
		if keep[e.From] && keep[e.To] {
			cp := *e
			cp.Attrs = e.Attrs.Clone()
			_ = s.AddEdge(cp)
		}
	}
	return s, nil
}

// Positions returns a snapshot of every node position keyed by ID.
func (g *Graph) Positions() map[string]Point {
	pos := make(map[string]Point, len(g.nodes))
	for _, n := range g.nodes {
		pos[n.ID] = n.Pos
	}
	return pos
}
