package render

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Trace modes.
const (
	ModeMarkers     = "markers"
	ModeMarkersText = "markers+text"
	ModeLines       = "lines"
	ModeText        = "text"
)

// TraceKind tells node, edge and label traces apart. It is not serialized.
type TraceKind int

const (
	KindEdge TraceKind = iota
	KindNode
	KindLabel
)

// Coords is a coordinate array in which NaN marks a gap between strokes.
// Gaps serialize as JSON null.
type Coords []float64

// Gap is the in-memory gap sentinel.
var Gap = math.NaN()

// MarshalJSON encodes NaN entries as null.
func (c Coords) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	out := make([]*float64, len(c))
	for i := range c {
		if !math.IsNaN(c[i]) {
			out[i] = &c[i]
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes null entries as NaN.
func (c *Coords) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Coords, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = Gap
		} else {
			out[i] = *v
		}
	}
	*c = out
	return nil
}

// Trace is one drawable series.
type Trace struct {
	Kind TraceKind `json:"-"`

	X    Coords   `json:"x"`
	Y    Coords   `json:"y"`
	Text []string `json:"text,omitempty"`

	Mode         string `json:"mode"`
	TextPosition string `json:"textposition,omitempty"`
	HoverInfo    string `json:"hoverinfo"`

	Marker   *Marker `json:"marker,omitempty"`
	Line     *Line   `json:"line,omitempty"`
	TextFont *Font   `json:"textfont,omitempty"`

	UID string `json:"uid,omitempty"`
}

// Marker styles node markers.
type Marker struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Line  *Line   `json:"line,omitempty"`
}

// Line styles strokes and marker outlines.
type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// Font styles text.
type Font struct {
	Color string `json:"color"`
}

// MarshalJSON writes text on every node and label trace, as an empty array
// when labels are off, so consumers can append to it. Line traces carry
// none.
func (t Trace) MarshalJSON() ([]byte, error) {
	type plain Trace
	if t.Mode == ModeLines {
		return json.Marshal(plain(t))
	}
	text := t.Text
	if text == nil {
		text = []string{}
	}
	return json.Marshal(struct {
		plain
		Text []string `json:"text"`
	}{plain(t), text})
}

func (t *Trace) addPoint(p netgraph.Point) {
	t.X = append(t.X, p.X)
	t.Y = append(t.Y, p.Y)
}

func (t *Trace) addSegment(s Segment) {
	t.X = append(t.X, s.From.X, s.To.X, Gap)
	t.Y = append(t.Y, s.From.Y, s.To.Y, Gap)
}

// Segments splits a line trace back into strokes at the gaps.
func (t Trace) Segments() []Segment {
	var segs []Segment
	var run []netgraph.Point
	flush := func() {
		for i := 0; i+1 < len(run); i++ {
			segs = append(segs, Segment{From: run[i], To: run[i+1]})
		}
		run = run[:0]
	}
	for i := range t.X {
		if math.IsNaN(t.X[i]) || math.IsNaN(t.Y[i]) {
			flush()
			continue
		}
		run = append(run, netgraph.Point{X: t.X[i], Y: t.Y[i]})
	}
	flush()
	return segs
}
