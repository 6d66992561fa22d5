package netgraph

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with 8 bits per channel.
type Color struct {
	R, G, B uint8
}

// Default colors applied by loaders and generators.
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}

	DefaultNodeColor = White
	DefaultEdgeColor = Black
)

// String formats the color the way chart consumers expect: "rgb(r, g, b)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Luminance returns the relative luminance on the 0-255 scale using the
// Rec. 709 channel weights.
func (c Color) Luminance() float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// ParseColor accepts "#rgb", "#rrggbb" or "rgb(r, g, b)".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if inner, ok := strings.CutPrefix(s, "rgb("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return Color{}, fmt.Errorf("parse color %q: missing closing parenthesis", s)
		}
		var r, g, b int
		if _, err := fmt.Sscanf(strings.ReplaceAll(inner, " ", ""), "%d,%d,%d", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		for _, v := range []int{r, g, b} {
			if v < 0 || v > 255 {
				return Color{}, fmt.Errorf("parse color %q: channel %d out of range", s, v)
			}
		}
		return Color{uint8(r), uint8(g), uint8(b)}, nil
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}, nil
}

// MarshalText encodes the color as "#rrggbb" for JSON and TOML.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes any format accepted by ParseColor.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
