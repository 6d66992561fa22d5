package layout

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/socnet/pkg/algo"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

var (
	// ErrMissingPosition is returned by [FromAttributes] when a node lacks a
	// numeric coordinate attribute.
	ErrMissingPosition = errors.New("node has no position")

	// ErrInvalidIterations is returned by [Engine.Update] for a non-positive
	// iteration count.
	ErrInvalidIterations = errors.New("iterations must be positive")

	// ErrUnknownKind is returned by [ParseKind].
	ErrUnknownKind = errors.New("unknown layout kind")
)

// Kind selects how initial positions are produced.
type Kind string

const (
	KindCircular Kind = "circular"
	KindSpring   Kind = "spring"
	KindRandom   Kind = "random"
	KindExternal Kind = "external" // coordinates supplied as node attributes
	KindKeep     Kind = "keep"     // positions already on the graph
)

// Kinds lists the accepted layout kinds in display order.
var Kinds = []Kind{KindCircular, KindSpring, KindRandom, KindExternal, KindKeep}

// ParseKind parses a case-insensitive layout name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Engine computes layouts with an injected algorithm set and random source.
type Engine struct {
	algos algo.Algorithms
	rng   *rand.Rand
}

// New creates an engine. A nil algos uses [algo.Native]; a nil rng uses a
// PCG source seeded with [algo.DefaultSeed].
func New(algos algo.Algorithms, rng *rand.Rand) *Engine {
	if algos == nil {
		algos = algo.Native{}
	}
	if rng == nil {
		rng = algo.NewRand(algo.DefaultSeed)
	}
	return &Engine{algos: algos, rng: rng}
}

// Circular places node i of n at angle 2πi/n on the unit circle in insertion
// order, then normalizes.
func (e *Engine) Circular(g *netgraph.Graph) {
	nodes := g.Nodes()
	n := float64(len(nodes))
	for i, node := range nodes {
		theta := 2 * math.Pi * float64(i) / n
		node.Pos = netgraph.Point{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	Normalize(g)
}

// Spring runs force-directed placement from random initial positions, then
// normalizes.
func (e *Engine) Spring(g *netgraph.Graph) {
	pos := e.algos.Spring(g, nil, algo.SpringOptions{Rand: e.rng})
	setPositions(g, pos)
	Normalize(g)
}

// Update relaxes the current positions by the given number of force-directed
// iterations, then normalizes. weight names a numeric edge attribute used as
// attraction strength; empty means unweighted.
func (e *Engine) Update(g *netgraph.Graph, weight string, iterations int) error {
	if iterations < 1 {
		return fmt.Errorf("update with %d iterations: %w", iterations, ErrInvalidIterations)
	}
	pos := e.algos.Spring(g, g.Positions(), algo.SpringOptions{
		Iterations: iterations,
		Weight:     weight,
		Rand:       e.rng,
	})
	setPositions(g, pos)
	Normalize(g)
	return nil
}

// Random assigns independent uniform [0,1) coordinates. The result is not
// normalized.
func (e *Engine) Random(g *netgraph.Graph) {
	for _, n := range g.Nodes() {
		n.Pos = netgraph.Point{X: e.rng.Float64(), Y: e.rng.Float64()}
	}
}

// Run dispatches on kind. KindExternal reads the "x" and "y" attributes.
func (e *Engine) Run(g *netgraph.Graph, kind Kind) error {
	switch kind {
	case KindCircular:
		e.Circular(g)
	case KindSpring:
		e.Spring(g)
	case KindRandom:
		e.Random(g)
	case KindExternal:
		return FromAttributes(g, "x", "y")
	case KindKeep:
		Normalize(g)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil
}

// Apply sets positions from an arbitrary source and normalizes. Nodes absent
// from positions keep their current coordinates.
func Apply(g *netgraph.Graph, positions map[string]netgraph.Point) error {
	for id := range positions {
		if _, ok := g.Node(id); !ok {
			return fmt.Errorf("apply position for %q: %w", id, netgraph.ErrInvalidReference)
		}
	}
	setPositions(g, positions)
	Normalize(g)
	return nil
}

// FromAttributes moves numeric coordinates from node attributes into
// positions, deleting the attributes, and normalizes. Nothing is modified if
// any node lacks either attribute.
func FromAttributes(g *netgraph.Graph, xKey, yKey string) error {
	nodes := g.Nodes()
	pos := make([]netgraph.Point, len(nodes))
	for i, n := range nodes {
		x, okx := n.Attrs.Float(xKey)
		y, oky := n.Attrs.Float(yKey)
		if !okx || !oky {
			return fmt.Errorf("node %q: %w", n.ID, ErrMissingPosition)
		}
		pos[i] = netgraph.Point{X: x, Y: y}
	}
	for i, n := range nodes {
		n.Pos = pos[i]
		delete(n.Attrs, xKey)
		delete(n.Attrs, yKey)
	}
	Normalize(g)
	return nil
}

// Normalize rescales positions per axis so the minimum maps to 0 and the
// maximum to 1. A zero-extent axis maps to 0.
func Normalize(g *netgraph.Graph) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		minX, maxX = math.Min(minX, n.Pos.X), math.Max(maxX, n.Pos.X)
		minY, maxY = math.Min(minY, n.Pos.Y), math.Max(maxY, n.Pos.Y)
	}
	for _, n := range nodes {
		n.Pos = netgraph.Point{
			X: unit(n.Pos.X, minX, maxX),
			Y: unit(n.Pos.Y, minY, maxY),
		}
	}
}

func unit(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

func setPositions(g *netgraph.Graph, pos map[string]netgraph.Point) {
	for id, p := range pos {
		if n, ok := g.Node(id); ok {
			n.Pos = p
		}
	}
}
