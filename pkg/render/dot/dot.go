package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/render"
)

// Options configures DOT generation.
type Options struct {
	NodeLabels bool
	EdgeLabels bool
}

// pointsPerInch converts pixel sizes to Graphviz node widths.
const pointsPerInch = 72.0

// ToDOT converts a graph with normalized positions to DOT source. Positions
// are mapped onto cfg's canvas in points with y pointing up.
func ToDOT(g *netgraph.Graph, cfg render.Config, opts Options) string {
	canvas := cfg.Canvas()
	kind, arrow := "graph", "--"
	if g.Directed() {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, penwidth=%s, color=%q, fontsize=10];\n",
		num(cfg.NodeSize/pointsPerInch), num(cfg.EdgeWidth), netgraph.Black.Hex())
	fmt.Fprintf(&buf, "  edge [penwidth=%s, arrowsize=0.6];\n", num(cfg.EdgeWidth))
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{
			fmt.Sprintf("pos=\"%s,%s!\"", num(n.Pos.X*canvas.W), num(n.Pos.Y*canvas.H)),
			fmt.Sprintf("fillcolor=%q", n.Color.Hex()),
			fmt.Sprintf("label=%q", nodeLabel(n, opts.NodeLabels)),
		}
		if opts.NodeLabels {
			attrs = append(attrs, fmt.Sprintf("fontcolor=%q", render.LabelColor(n.Color, cfg.NodeLabelPosition).Hex()))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("color=%q", e.Color.Hex())}
		if opts.EdgeLabels && e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", e.From, arrow, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *netgraph.Node, show bool) string {
	if !show {
		return ""
	}
	return n.DisplayLabel()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// RenderSVG renders DOT source with the neato engine, keeping pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag with one whose width and
// height match the viewBox, so the image scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
