package render

import (
	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Label positions with special handling.
const (
	// LabelMiddleCenter draws node labels inside the marker.
	LabelMiddleCenter = "middle center"

	// LabelHover shows node labels only as hover text.
	LabelHover = "hover"
)

// Config holds the drawing parameters. Sizes are in pixels.
type Config struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`

	NodeSize  float64 `toml:"node_size" json:"node_size"`
	EdgeWidth float64 `toml:"edge_width" json:"edge_width"`

	// NodeColor and EdgeColor fill nodes and edges that carry no color of
	// their own. Nil means white nodes and black edges.
	NodeColor *netgraph.Color `toml:"node_color" json:"node_color,omitempty"`
	EdgeColor *netgraph.Color `toml:"edge_color" json:"edge_color,omitempty"`

	// NodeLabelPosition is a chart text position such as "top center", or
	// LabelHover.
	NodeLabelPosition string `toml:"node_label_position" json:"node_label_position"`

	// EdgeLabelDistance is how far edge labels sit from the edge midpoint.
	EdgeLabelDistance float64 `toml:"edge_label_distance" json:"edge_label_distance"`

	// ReciprocalOffset is how far each edge of a reciprocal pair is shifted
	// away from the center line.
	ReciprocalOffset float64 `toml:"reciprocal_offset" json:"reciprocal_offset"`

	// HeadAngle is the angle between an arrow wing and its edge, in radians.
	HeadAngle float64 `toml:"head_angle" json:"head_angle"`
}

// DefaultConfig returns the standard 800x450 configuration.
func DefaultConfig() Config {
	return Config{
		Width:             800,
		Height:            450,
		NodeSize:          20,
		EdgeWidth:         2,
		NodeColor:         colorRef(netgraph.DefaultNodeColor),
		EdgeColor:         colorRef(netgraph.DefaultEdgeColor),
		NodeLabelPosition: LabelMiddleCenter,
		EdgeLabelDistance: 10,
		ReciprocalOffset:  2,
		HeadAngle:         0.5,
	}
}

func colorRef(c netgraph.Color) *netgraph.Color { return &c }

// Colors returns the fallback node and edge colors.
func (c Config) Colors() (node, edge netgraph.Color) {
	node, edge = netgraph.DefaultNodeColor, netgraph.DefaultEdgeColor
	if c.NodeColor != nil {
		node = *c.NodeColor
	}
	if c.EdgeColor != nil {
		edge = *c.EdgeColor
	}
	return node, edge
}

// SetDefaults fills zero-valued numeric and string fields and unset colors.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.NodeColor == nil {
		c.NodeColor = d.NodeColor
	}
	if c.EdgeColor == nil {
		c.EdgeColor = d.EdgeColor
	}
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.NodeSize == 0 {
		c.NodeSize = d.NodeSize
	}
	if c.EdgeWidth == 0 {
		c.EdgeWidth = d.EdgeWidth
	}
	if c.NodeLabelPosition == "" {
		c.NodeLabelPosition = d.NodeLabelPosition
	}
	if c.EdgeLabelDistance == 0 {
		c.EdgeLabelDistance = d.EdgeLabelDistance
	}
	if c.ReciprocalOffset == 0 {
		c.ReciprocalOffset = d.ReciprocalOffset
	}
	if c.HeadAngle == 0 {
		c.HeadAngle = d.HeadAngle
	}
}

// Validate checks that the plot area and all sizes are positive.
func (c Config) Validate() error {
	canvas := c.Canvas()
	if err := errors.ValidateDimensions(canvas.W, canvas.H); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"node_size", c.NodeSize},
		{"edge_width", c.EdgeWidth},
		{"edge_label_distance", c.EdgeLabelDistance},
		{"reciprocal_offset", c.ReciprocalOffset},
		{"head_angle", c.HeadAngle},
	} {
		if err := errors.ValidatePositive(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Canvas estimates the plot area inside a chart of the configured size,
// excluding the chart's own padding.
func (c Config) Canvas() Canvas {
	return Canvas{W: 0.9*c.Width - 24, H: 0.9*c.Height - 24}
}
