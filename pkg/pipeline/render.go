package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/socnet/pkg/io"
	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/render"
	"github.com/matzehuels/socnet/pkg/render/dot"
)

// Render produces every format in opts.Formats from a positioned graph.
func Render(ctx context.Context, g *netgraph.Graph, opts Options) (map[string][]byte, error) {
	r := renderer{g: g, opts: opts}
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.format(ctx, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

// renderer memoizes the DOT source and SVG shared by several formats.
type renderer struct {
	g    *netgraph.Graph
	opts Options
	dot  string
	svg  []byte
}

func (r *renderer) format(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.Marshal(render.BuildFigure(r.g, r.opts.Render, r.opts.renderOptions()))
	case FormatDOT:
		return []byte(r.dotSource()), nil
	case FormatSVG:
		return r.svgBytes(ctx)
	case FormatPNG:
		svg, err := r.svgBytes(ctx)
		if err != nil {
			return nil, err
		}
		return dot.ToPNG(ctx, svg, r.opts.PNGScale)
	case FormatPDF:
		svg, err := r.svgBytes(ctx)
		if err != nil {
			return nil, err
		}
		return dot.ToPDF(ctx, svg)
	case FormatGraph:
		var buf bytes.Buffer
		err := io.WriteJSON(r.g, &buf)
		return buf.Bytes(), err
	case FormatGML:
		var buf bytes.Buffer
		err := io.WriteGML(r.g, &buf)
		return buf.Bytes(), err
	}
	return nil, ValidateFormat(format)
}

func (r *renderer) dotSource() string {
	if r.dot == "" {
		r.dot = dot.ToDOT(r.g, r.opts.Render, dot.Options{
			NodeLabels: r.opts.NodeLabels,
			EdgeLabels: r.opts.EdgeLabels,
		})
	}
	return r.dot
}

func (r *renderer) svgBytes(ctx context.Context) ([]byte, error) {
	if r.svg == nil {
		svg, err := dot.RenderSVG(ctx, r.dotSource())
		if err != nil {
			return nil, err
		}
		r.svg = svg
	}
	return r.svg, nil
}
