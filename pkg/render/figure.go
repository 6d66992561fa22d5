package render

import (
	"github.com/google/uuid"

	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Options selects optional trace content.
type Options struct {
	NodeLabels bool // add node labels as trace text
	EdgeLabels bool // add a label trace with one anchor per edge
}

// Figure is a complete chart: traces, layout and, for animations, frames.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

// Frame is the trace set for one animation step.
type Frame struct {
	Name int     `json:"name"`
	Data []Trace `json:"data"`
}

// Layout is the chart layout.
type Layout struct {
	ShowLegend  bool         `json:"showlegend"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Margin      Margin       `json:"margin"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
	Sliders     []Slider     `json:"sliders,omitempty"`
}

type Margin struct {
	B float64 `json:"b"`
	L float64 `json:"l"`
	R float64 `json:"r"`
	T float64 `json:"t"`
}

type Axis struct {
	ShowGrid       bool `json:"showgrid"`
	ZeroLine       bool `json:"zeroline"`
	ShowTickLabels bool `json:"showticklabels"`
}

// UpdateMenu is a row of chart buttons.
type UpdateMenu struct {
	Buttons    []Button `json:"buttons"`
	ShowActive bool     `json:"showactive"`
	Type       string   `json:"type"`
}

// Button triggers Method with Args when clicked.
type Button struct {
	Args   []any  `json:"args"`
	Label  string `json:"label"`
	Method string `json:"method"`
}

// Slider steps through animation frames.
type Slider struct {
	CurrentValue CurrentValue `json:"currentvalue"`
	Steps        []Button     `json:"steps"`
}

type CurrentValue struct {
	Visible bool `json:"visible"`
}

// ChartLayout returns a legend-free layout with bare axes and no margins.
func ChartLayout(width, height float64) Layout {
	bare := Axis{}
	return Layout{
		Width:  width,
		Height: height,
		XAxis:  bare,
		YAxis:  bare,
	}
}

// BuildFigure renders g with one trace per distinct node or edge color, in
// order of first appearance. Edge traces come first so markers paint over
// edge ends, then node traces, then the label trace if requested.
func BuildFigure(g *netgraph.Graph, cfg Config, opts Options) Figure {
	var (
		edgeTraces []*Trace
		nodeTraces []*Trace
		byEdge     = map[netgraph.Color]*Trace{}
		byNode     = map[netgraph.Color]*Trace{}
		labels     *Trace
	)
	if opts.EdgeLabels {
		labels = labelTrace()
	}

	for _, e := range g.Edges() {
		t, ok := byEdge[e.Color]
		if !ok {
			t = edgeTrace(e.Color, cfg)
			byEdge[e.Color] = t
			edgeTraces = append(edgeTraces, t)
		}
		addEdge(g, e, cfg, t, labels)
	}
	for _, n := range g.Nodes() {
		t, ok := byNode[n.Color]
		if !ok {
			t = nodeTrace(n.Color, cfg)
			byNode[n.Color] = t
			nodeTraces = append(nodeTraces, t)
		}
		addNode(n, t, opts.NodeLabels)
	}

	return Figure{
		Data:   collect(edgeTraces, nodeTraces, labels),
		Layout: ChartLayout(cfg.Width, cfg.Height),
	}
}

// BuildFrame renders g with one trace per element. Each trace carries a uid
// derived from its element so traces match across frames of the same graph.
func BuildFrame(g *netgraph.Graph, cfg Config, opts Options) Frame {
	var labels *Trace
	if opts.EdgeLabels {
		labels = labelTrace()
		labels.UID = TraceUID("label", "")
	}

	edges := make([]*Trace, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		t := edgeTrace(e.Color, cfg)
		t.UID = TraceUID("edge", e.From+"\x00"+e.To)
		addEdge(g, e, cfg, t, labels)
		edges = append(edges, t)
	}
	nodes := make([]*Trace, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		t := nodeTrace(n.Color, cfg)
		t.UID = TraceUID("node", n.ID)
		addNode(n, t, opts.NodeLabels)
		nodes = append(nodes, t)
	}

	return Frame{Data: collect(edges, nodes, labels)}
}

// TraceUID returns a name-based UUID for an element of the given kind.
func TraceUID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("socnet/"+kind+"/"+key)).String()
}

func collect(edges, nodes []*Trace, labels *Trace) []Trace {
	data := make([]Trace, 0, len(edges)+len(nodes)+1)
	for _, t := range edges {
		data = append(data, *t)
	}
	for _, t := range nodes {
		data = append(data, *t)
	}
	if labels != nil {
		data = append(data, *labels)
	}
	return data
}

func addNode(n *netgraph.Node, t *Trace, withLabel bool) {
	t.addPoint(n.Pos)
	if withLabel {
		t.Text = append(t.Text, n.DisplayLabel())
	}
}

func addEdge(g *netgraph.Graph, e *netgraph.Edge, cfg Config, t, labels *Trace) {
	geo := Edge(g, e, cfg)
	for _, s := range geo.Segments {
		t.addSegment(s)
	}
	if labels != nil {
		labels.addPoint(geo.Label)
		labels.Text = append(labels.Text, e.Label)
	}
}

func nodeTrace(c netgraph.Color, cfg Config) *Trace {
	t := &Trace{
		Kind:         KindNode,
		X:            Coords{},
		Y:            Coords{},
		Mode:         ModeMarkersText,
		TextPosition: cfg.NodeLabelPosition,
		HoverInfo:    "none",
		Marker: &Marker{
			Size:  cfg.NodeSize,
			Color: c.String(),
			Line:  &Line{Width: cfg.EdgeWidth, Color: netgraph.Black.String()},
		},
		TextFont: &Font{Color: LabelColor(c, cfg.NodeLabelPosition).String()},
	}
	if cfg.NodeLabelPosition == LabelHover {
		t.Mode = ModeMarkers
		t.HoverInfo = "text"
		t.TextPosition = LabelMiddleCenter
	}
	return t
}

// LabelColor picks white text for labels drawn inside dark markers.
func LabelColor(fill netgraph.Color, position string) netgraph.Color {
	if position == LabelMiddleCenter && fill.Luminance() < 128 {
		return netgraph.White
	}
	return netgraph.Black
}

func edgeTrace(c netgraph.Color, cfg Config) *Trace {
	return &Trace{
		Kind:      KindEdge,
		X:         Coords{},
		Y:         Coords{},
		Mode:      ModeLines,
		HoverInfo: "none",
		Line:      &Line{Width: cfg.EdgeWidth, Color: c.String()},
	}
}

func labelTrace() *Trace {
	return &Trace{
		Kind:         KindLabel,
		X:            Coords{},
		Y:            Coords{},
		Mode:         ModeText,
		TextPosition: LabelMiddleCenter,
		HoverInfo:    "none",
		TextFont:     &Font{Color: netgraph.Black.String()},
	}
}
