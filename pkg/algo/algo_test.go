package algo

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

var impls = []struct {
	name string
	algo Algorithms
}{
	{"native", Native{}},
	{"gonum", Gonum{}},
}

func build(t *testing.T, directed bool, ids string, edges ...string) *netgraph.Graph {
	t.Helper()
	g := netgraph.New(directed)
	for _, id := range strings.Fields(ids) {
		if err := g.AddNode(netgraph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		from, to, _ := strings.Cut(e, "-")
		if err := g.AddEdge(netgraph.Edge{From: from, To: to}); err != nil {
			t.Fatalf("AddEdge(%s): %v", e, err)
		}
	}
	return g
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDistances(t *testing.T) {
	g := build(t, true, "a b c d", "a-b", "b-c", "c-a")
	want := map[string]int{"a": 0, "b": 1, "c": 2}

	for _, impl := range impls {
		t.Run(impl.name, func(t *testing.T) {
			got, err := impl.algo.Distances(g, "a")
			if err != nil {
				t.Fatalf("Distances: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("Distances = %v, want %v", got, want)
			}
			for id, d := range want {
				if got[id] != d {
					t.Errorf("dist[%s] = %d, want %d", id, got[id], d)
				}
			}
			if _, err := impl.algo.Distances(g, "zz"); !errors.Is(err, netgraph.ErrInvalidReference) {
				t.Errorf("unknown source: err = %v, want ErrInvalidReference", err)
			}
		})
	}
}

func TestAllShortestPaths(t *testing.T) {
	square := build(t, false, "a b c d", "a-b", "b-c", "c-d", "d-a")
	chain := build(t, true, "a b c", "a-b", "b-c")

	tests := []struct {
		name string
		g    *netgraph.Graph
		s, t string
		want []string
	}{
		{"two routes", square, "a", "c", []string{"a b c", "a d c"}},
		{"adjacent", square, "a", "b", []string{"a b"}},
		{"self", square, "a", "a", []string{"a"}},
		{"directed forward", chain, "a", "c", []string{"a b c"}},
		{"directed unreachable", chain, "c", "a", nil},
	}

	for _, impl := range impls {
		for _, tt := range tests {
			t.Run(impl.name+"/"+tt.name, func(t *testing.T) {
				paths, err := impl.algo.AllShortestPaths(tt.g, tt.s, tt.t)
				if err != nil {
					t.Fatalf("AllShortestPaths: %v", err)
				}
				var got []string
				for _, p := range paths {
					got = append(got, strings.Join(p, " "))
				}
				slices.Sort(got)
				if !slices.Equal(got, tt.want) {
					t.Errorf("paths = %q, want %q", got, tt.want)
				}
			})
		}
	}
}

func TestAllShortestPathsUnknownNode(t *testing.T) {
	g := build(t, false, "a b", "a-b")
	for _, impl := range impls {
		if _, err := impl.algo.AllShortestPaths(g, "a", "x"); !errors.Is(err, netgraph.ErrInvalidReference) {
			t.Errorf("%s: err = %v, want ErrInvalidReference", impl.name, err)
		}
	}
}

func TestCentrality(t *testing.T) {
	tests := []struct {
		name      string
		g         *netgraph.Graph
		closeness map[string]float64
		between   map[string]float64
	}{
		{
			name:      "undirected path",
			g:         build(t, false, "a b c", "a-b", "b-c"),
			closeness: map[string]float64{"a": 2.0 / 3, "b": 1, "c": 2.0 / 3},
			between:   map[string]float64{"a": 0, "b": 1, "c": 0},
		},
		{
			name:      "directed path",
			g:         build(t, true, "a b c", "a-b", "b-c"),
			closeness: map[string]float64{"a": 0, "b": 0.5, "c": 2.0 / 3},
			between:   map[string]float64{"a": 0, "b": 0.5, "c": 0},
		},
		{
			name:      "isolated node",
			g:         build(t, false, "a b c", "a-b"),
			closeness: map[string]float64{"a": 0.5, "b": 0.5, "c": 0},
			between:   map[string]float64{"a": 0, "b": 0, "c": 0},
		},
		{
			name:      "two nodes",
			g:         build(t, false, "a b", "a-b"),
			closeness: map[string]float64{"a": 1, "b": 1},
			between:   map[string]float64{"a": 0, "b": 0},
		},
	}

	for _, impl := range impls {
		for _, tt := range tests {
			t.Run(impl.name+"/"+tt.name, func(t *testing.T) {
				cc := impl.algo.Closeness(tt.g)
				for id, want := range tt.closeness {
					if !approx(cc[id], want) {
						t.Errorf("closeness[%s] = %v, want %v", id, cc[id], want)
					}
				}
				cb := impl.algo.Betweenness(tt.g)
				if len(cb) != tt.g.NodeCount() {
					t.Errorf("betweenness has %d entries, want %d", len(cb), tt.g.NodeCount())
				}
				for id, want := range tt.between {
					if !approx(cb[id], want) {
						t.Errorf("betweenness[%s] = %v, want %v", id, cb[id], want)
					}
				}
			})
		}
	}
}

func TestImplementationsAgree(t *testing.T) {
	g := build(t, true, "a b c d e f",
		"a-b", "b-c", "c-a", "c-d", "d-e", "e-d", "b-e", "f-a")

	nc, gc := Native{}.Closeness(g), Gonum{}.Closeness(g)
	nb, gb := Native{}.Betweenness(g), Gonum{}.Betweenness(g)
	for _, id := range g.NodeIDs() {
		if !approx(nc[id], gc[id]) {
			t.Errorf("closeness[%s]: native %v, gonum %v", id, nc[id], gc[id])
		}
		if !approx(nb[id], gb[id]) {
			t.Errorf("betweenness[%s]: native %v, gonum %v", id, nb[id], gb[id])
		}
	}
}

func TestComponents(t *testing.T) {
	g := build(t, true, "a b c d e", "b-a", "e-d")
	want := [][]string{{"a", "b"}, {"c"}, {"d", "e"}}

	for _, impl := range impls {
		got := impl.algo.Components(g)
		if !slices.EqualFunc(got, want, slices.Equal) {
			t.Errorf("%s: Components = %v, want %v", impl.name, got, want)
		}
	}
}

func TestSpring(t *testing.T) {
	g := netgraph.Complete(5)

	a := Native{}.Spring(g, nil, SpringOptions{Rand: NewRand(7)})
	b := Native{}.Spring(g, nil, SpringOptions{Rand: NewRand(7)})
	if len(a) != 5 {
		t.Fatalf("got %d positions, want 5", len(a))
	}
	for id, p := range a {
		if b[id] != p {
			t.Errorf("same seed diverged at %s: %v vs %v", id, p, b[id])
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("position %s is NaN", id)
		}
	}

	seen := map[netgraph.Point]bool{}
	for _, p := range a {
		if seen[p] {
			t.Errorf("two nodes share position %v", p)
		}
		seen[p] = true
	}
}

func TestSpringKeepsSeedPositions(t *testing.T) {
	g := netgraph.Empty(1)
	init := map[string]netgraph.Point{"0": {X: 3, Y: 4}}

	got := Native{}.Spring(g, init, SpringOptions{})
	if got["0"] != init["0"] {
		t.Errorf("single node moved: %v", got["0"])
	}

	if got := (Native{}).Spring(netgraph.New(false), nil, SpringOptions{}); len(got) != 0 {
		t.Errorf("empty graph: %v", got)
	}
}

func TestSpringAttraction(t *testing.T) {
	// Connected pairs end up closer than unconnected ones.
	g := build(t, false, "a b c d", "a-b", "c-d")
	init := map[string]netgraph.Point{
		"a": {X: 0, Y: 0}, "b": {X: 1, Y: 0},
		"c": {X: 0, Y: 1}, "d": {X: 1, Y: 1},
	}
	pos := Gonum{}.Spring(g, init, SpringOptions{Iterations: 100})

	dist := func(u, v string) float64 {
		d := pos[u].Sub(pos[v])
		return math.Hypot(d.X, d.Y)
	}
	if dist("a", "b") >= dist("a", "c") {
		t.Errorf("d(a,b) = %v not shorter than d(a,c) = %v", dist("a", "b"), dist("a", "c"))
	}
}
