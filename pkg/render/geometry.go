package render

import (
	"math"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Canvas is the pixel size of the plot area that the unit square maps onto.
type Canvas struct {
	W, H float64
}

// Scale returns s such that the vector (s·d.X·W, s·d.Y·H) is size pixels
// long. A zero vector scales by 0.
func Scale(d netgraph.Point, c Canvas, size float64) float64 {
	x := d.X * c.W
	y := d.Y * c.H
	den := x*x + y*y
	if den == 0 {
		return 0
	}
	return math.Sqrt(size * size / den)
}

// Rotate turns d by angle in pixel space, counter-clockwise when counter is
// set and clockwise otherwise, and returns it in normalized units.
func Rotate(d netgraph.Point, c Canvas, angle float64, counter bool) netgraph.Point {
	if !counter {
		angle = -angle
	}
	x := d.X * c.W
	y := d.Y * c.H
	sin, cos := math.Sincos(angle)
	return netgraph.Point{
		X: (x*cos - y*sin) / c.W,
		Y: (x*sin + y*cos) / c.H,
	}
}

// Segment is a straight stroke between two points.
type Segment struct {
	From, To netgraph.Point
}

// EdgeGeometry holds the strokes for one edge. Segments[0] is the edge body;
// any further segments are arrow wings.
type EdgeGeometry struct {
	Segments []Segment
	Label    netgraph.Point
}

// Edge computes the strokes for the edge u->v at the current node positions.
func Edge(g *netgraph.Graph, e *netgraph.Edge, cfg Config) EdgeGeometry {
	u, _ := g.Node(e.From)
	v, _ := g.Node(e.To)
	p0, p1 := u.Pos, v.Pos
	canvas := cfg.Canvas()

	// Left-hand normal of the edge direction.
	normal := netgraph.Point{X: p0.Y - p1.Y, Y: p1.X - p0.X}

	reciprocal := g.HasReciprocal(e.From, e.To)
	if reciprocal {
		off := normal.Mul(Scale(normal, canvas, cfg.ReciprocalOffset))
		p0, p1 = p0.Add(off), p1.Add(off)
	}

	geo := EdgeGeometry{Segments: []Segment{{From: p0, To: p1}}}

	mid := p0.Add(p1).Mul(0.5)
	geo.Label = mid.Add(normal.Mul(Scale(normal, canvas, cfg.EdgeLabelDistance)))

	if !g.Directed() {
		return geo
	}

	r := cfg.NodeSize / 2
	d := p0.Sub(p1)
	tip := p1.Add(d.Mul(Scale(d, canvas, r)))

	wing := func(counter bool) Segment {
		w := Rotate(d, canvas, cfg.HeadAngle, counter)
		return Segment{From: tip, To: tip.Add(w.Mul(Scale(w, canvas, r)))}
	}
	if !reciprocal {
		geo.Segments = append(geo.Segments, wing(true))
	}
	geo.Segments = append(geo.Segments, wing(false))
	return geo
}
