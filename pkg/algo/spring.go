package algo

import (
	"math"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Spring runs Fruchterman-Reingold placement on a dense adjacency matrix.
//
// The optimal pairwise distance is 1/sqrt(n). The initial temperature is a
// tenth of the larger extent of the starting positions and cools linearly to
// zero over the iteration budget.
func (Native) Spring(g *netgraph.Graph, init map[string]netgraph.Point, opts SpringOptions) map[string]netgraph.Point {
	opts = opts.withDefaults()
	ids := g.NodeIDs()
	n := len(ids)
	out := make(map[string]netgraph.Point, n)
	if n == 0 {
		return out
	}

	pos := make([]netgraph.Point, n)
	for i, id := range ids {
		if p, ok := init[id]; ok {
			pos[i] = p
		} else {
			pos[i] = netgraph.Point{X: opts.Rand.Float64(), Y: opts.Rand.Float64()}
		}
	}
	if n == 1 {
		out[ids[0]] = pos[0]
		return out
	}

	adj := springAdjacency(g, opts.Weight)
	k := math.Sqrt(1 / float64(n))
	t := 0.1 * maxExtent(pos)
	dt := t / float64(opts.Iterations+1)

	disp := make([]netgraph.Point, n)
	for range opts.Iterations {
		for i := range disp {
			disp[i] = netgraph.Point{}
		}
		for i := range n {
			for j := range n {
				if i == j {
					continue
				}
				d := pos[i].Sub(pos[j])
				dist := math.Max(math.Hypot(d.X, d.Y), 0.01)
				f := k*k/(dist*dist) - adj[i*n+j]*dist/k
				disp[i] = disp[i].Add(d.Mul(f))
			}
		}

		var moved float64
		for i := range n {
			l := math.Hypot(disp[i].X, disp[i].Y)
			if l < 0.01 {
				l = 0.1
			}
			step := disp[i].Mul(t / l)
			pos[i] = pos[i].Add(step)
			moved += step.X*step.X + step.Y*step.Y
		}
		t -= dt
		if math.Sqrt(moved)/float64(n) < opts.Threshold {
			break
		}
	}

	for i, id := range ids {
		out[id] = pos[i]
	}
	return out
}

// springAdjacency returns a row-major n*n matrix of attraction weights.
func springAdjacency(g *netgraph.Graph, weight string) []float64 {
	n := g.NodeCount()
	adj := make([]float64, n*n)
	for _, e := range g.Edges() {
		i, _ := g.Index(e.From)
		j, _ := g.Index(e.To)
		w := 1.0
		if weight != "" {
			if v, ok := e.Attrs.Float(weight); ok {
				w = v
			}
		}
		adj[i*n+j] = w
		if !g.Directed() {
			adj[j*n+i] = w
		}
	}
	return adj
}

func maxExtent(pos []netgraph.Point) float64 {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pos {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return math.Max(maxX-minX, maxY-minY)
}
