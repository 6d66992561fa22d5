package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/socnet/pkg/algo"
	"github.com/matzehuels/socnet/pkg/layout"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

// NewLayoutEngine builds the layout engine selected by opts.
func NewLayoutEngine(opts Options) (*layout.Engine, error) {
	algos, err := NewAlgorithms(opts.Algorithms)
	if err != nil {
		return nil, err
	}
	return layout.New(algos, algo.NewRand(opts.Seed)), nil
}

// ComputeLayout positions the nodes of g in place.
//
// A weighted spring layout starts from random positions and relaxes them
// with the weight attribute as attraction strength.
func ComputeLayout(g *netgraph.Graph, opts Options) error {
	kind, err := layout.ParseKind(opts.Layout)
	if err != nil {
		return err
	}
	eng, err := NewLayoutEngine(opts)
	if err != nil {
		return err
	}
	if kind == layout.KindSpring && opts.Weight != "" {
		eng.Random(g)
		return eng.Update(g, opts.Weight, algo.DefaultIterations)
	}
	return eng.Run(g, kind)
}

// positions is the cached form of a layout.
type positions map[string][2]float64

func snapshot(g *netgraph.Graph) positions {
	out := make(positions, g.NodeCount())
	for _, n := range g.Nodes() {
		out[n.ID] = [2]float64{n.Pos.X, n.Pos.Y}
	}
	return out
}

func marshalPositions(g *netgraph.Graph) ([]byte, error) {
	return json.Marshal(snapshot(g))
}

// restorePositions applies cached positions verbatim. It fails unless the
// cache covers exactly the nodes of g.
func restorePositions(g *netgraph.Graph, data []byte) error {
	var pos positions
	if err := json.Unmarshal(data, &pos); err != nil {
		return err
	}
	if len(pos) != g.NodeCount() {
		return fmt.Errorf("cached layout has %d nodes, graph has %d", len(pos), g.NodeCount())
	}
	for _, n := range g.Nodes() {
		p, ok := pos[n.ID]
		if !ok {
			return fmt.Errorf("cached layout lacks node %q", n.ID)
		}
		n.Pos = netgraph.Point{X: p[0], Y: p[1]}
	}
	return nil
}
