package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/socnet/pkg/algo"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func assertUnitSquare(t *testing.T, g *netgraph.Graph) {
	t.Helper()
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range g.Nodes() {
		if math.IsNaN(n.Pos.X) || math.IsNaN(n.Pos.Y) {
			t.Fatalf("node %s has NaN position", n.ID)
		}
		minX, maxX = math.Min(minX, n.Pos.X), math.Max(maxX, n.Pos.X)
		minY, maxY = math.Min(minY, n.Pos.Y), math.Max(maxY, n.Pos.Y)
	}
	if !near(minX, 0) || !near(maxX, 1) || !near(minY, 0) || !near(maxY, 1) {
		t.Errorf("extent x[%v,%v] y[%v,%v], want [0,1] on both axes", minX, maxX, minY, maxY)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []netgraph.Point
		want []netgraph.Point
	}{
		{
			name: "stretches both axes",
			in:   []netgraph.Point{{X: -2, Y: 10}, {X: 2, Y: 20}, {X: 0, Y: 15}},
			want: []netgraph.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}},
		},
		{
			name: "degenerate y axis",
			in:   []netgraph.Point{{X: 1, Y: 3}, {X: 5, Y: 3}},
			want: []netgraph.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
		},
		{
			name: "single node",
			in:   []netgraph.Point{{X: 7, Y: -7}},
			want: []netgraph.Point{{X: 0, Y: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := netgraph.Empty(len(tt.in))
			for i, n := range g.Nodes() {
				n.Pos = tt.in[i]
			}
			Normalize(g)
			for i, n := range g.Nodes() {
				if !near(n.Pos.X, tt.want[i].X) || !near(n.Pos.Y, tt.want[i].Y) {
					t.Errorf("node %d = %v, want %v", i, n.Pos, tt.want[i])
				}
			}
		})
	}

	Normalize(netgraph.New(false)) // empty graph is a no-op
}

func TestCircular(t *testing.T) {
	g := netgraph.Empty(4)
	New(nil, nil).Circular(g)

	want := []netgraph.Point{{X: 1, Y: 0.5}, {X: 0.5, Y: 1}, {X: 0, Y: 0.5}, {X: 0.5, Y: 0}}
	for i, n := range g.Nodes() {
		if math.Abs(n.Pos.X-want[i].X) > 1e-6 || math.Abs(n.Pos.Y-want[i].Y) > 1e-6 {
			t.Errorf("node %d = %v, want %v", i, n.Pos, want[i])
		}
	}
	assertUnitSquare(t, g)
}

func TestSpringDeterministic(t *testing.T) {
	run := func() *netgraph.Graph {
		g := netgraph.Complete(6)
		New(algo.Native{}, algo.NewRand(11)).Spring(g)
		return g
	}
	a, b := run(), run()
	assertUnitSquare(t, a)
	for i, n := range a.Nodes() {
		if m := b.Nodes()[i]; m.Pos != n.Pos {
			t.Errorf("node %s: %v vs %v", n.ID, n.Pos, m.Pos)
		}
	}
}

func TestUpdate(t *testing.T) {
	g := netgraph.Complete(5)
	eng := New(algo.Gonum{}, algo.NewRand(3))
	eng.Circular(g)

	for range 3 {
		if err := eng.Update(g, "", 1); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	assertUnitSquare(t, g)

	if err := eng.Update(g, "", 0); !errors.Is(err, ErrInvalidIterations) {
		t.Errorf("zero iterations: err = %v, want ErrInvalidIterations", err)
	}
}

func TestUpdateWeighted(t *testing.T) {
	g := netgraph.New(false)
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(netgraph.Node{ID: id})
	}
	_ = g.AddEdge(netgraph.Edge{From: "a", To: "b", Attrs: netgraph.Attrs{"w": 5.0}})
	_ = g.AddEdge(netgraph.Edge{From: "b", To: "c", Attrs: netgraph.Attrs{"w": "heavy"}})
	_ = Apply(g, map[string]netgraph.Point{"a": {X: 0, Y: 0}, "b": {X: 1, Y: 0.3}, "c": {X: 0.5, Y: 1}})

	if err := New(nil, nil).Update(g, "w", 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	assertUnitSquare(t, g)
}

func TestRandom(t *testing.T) {
	g := netgraph.Empty(50)
	New(nil, algo.NewRand(1)).Random(g)
	for _, n := range g.Nodes() {
		if n.Pos.X < 0 || n.Pos.X >= 1 || n.Pos.Y < 0 || n.Pos.Y >= 1 {
			t.Errorf("node %s at %v outside [0,1)", n.ID, n.Pos)
		}
	}
}

func TestApply(t *testing.T) {
	g := netgraph.Empty(2)
	err := Apply(g, map[string]netgraph.Point{"0": {X: 2, Y: 2}, "1": {X: 4, Y: 6}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	assertUnitSquare(t, g)

	if err := Apply(g, map[string]netgraph.Point{"nope": {}}); !errors.Is(err, netgraph.ErrInvalidReference) {
		t.Errorf("unknown node: err = %v, want ErrInvalidReference", err)
	}
}

func TestFromAttributes(t *testing.T) {
	g := netgraph.New(false)
	_ = g.AddNode(netgraph.Node{ID: "a", Attrs: netgraph.Attrs{"x": 10.0, "y": 0, "club": "A"}})
	_ = g.AddNode(netgraph.Node{ID: "b", Attrs: netgraph.Attrs{"x": 20, "y": 5.0}})

	if err := FromAttributes(g, "x", "y"); err != nil {
		t.Fatalf("FromAttributes: %v", err)
	}
	a, _ := g.Node("a")
	b, _ := g.Node("b")
	if a.Pos != (netgraph.Point{X: 0, Y: 0}) || b.Pos != (netgraph.Point{X: 1, Y: 1}) {
		t.Errorf("positions a=%v b=%v", a.Pos, b.Pos)
	}
	if _, ok := a.Attrs["x"]; ok {
		t.Error("x attribute should be removed")
	}
	if a.Attrs["club"] != "A" {
		t.Error("other attributes should be kept")
	}

	_ = g.AddNode(netgraph.Node{ID: "c"})
	if err := FromAttributes(g, "x", "y"); !errors.Is(err, ErrMissingPosition) {
		t.Errorf("missing coords: err = %v, want ErrMissingPosition", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"circular", "Spring", " random ", "external", "keep"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("ParseKind(%q): %v", s, err)
		}
	}
	if _, err := ParseKind("tower"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(tower): err = %v, want ErrUnknownKind", err)
	}
}

func TestRun(t *testing.T) {
	eng := New(nil, nil)
	for _, k := range []Kind{KindCircular, KindSpring, KindKeep} {
		g := netgraph.Complete(4)
		eng.Circular(g)
		if err := eng.Run(g, k); err != nil {
			t.Errorf("Run(%s): %v", k, err)
		}
		assertUnitSquare(t, g)
	}
	if err := eng.Run(netgraph.Empty(1), KindExternal); !errors.Is(err, ErrMissingPosition) {
		t.Errorf("Run(external) without coords: err = %v", err)
	}
}
