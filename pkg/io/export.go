package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

type graph struct {
	Directed bool   `json:"directed"`
	Nodes    []node `json:"nodes"`
	Edges    []edge `json:"edges"`
}

type node struct {
	ID    string          `json:"id"`
	Label string          `json:"label,omitempty"`
	Color *netgraph.Color `json:"color,omitempty"`
	X     *float64        `json:"x,omitempty"`
	Y     *float64        `json:"y,omitempty"`
	Attrs netgraph.Attrs  `json:"attrs,omitempty"`
}

type edge struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Label string          `json:"label,omitempty"`
	Color *netgraph.Color `json:"color,omitempty"`
	Attrs netgraph.Attrs  `json:"attrs,omitempty"`
}

// WriteJSON encodes g as node-link JSON. Node positions are written as x and
// y; coordinate attributes not yet adopted as positions are not repeated.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *netgraph.Graph, w io.Writer) error {
	out := graph{
		Directed: g.Directed(),
		Nodes:    make([]node, 0, g.NodeCount()),
		Edges:    make([]edge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		x, y, c := n.Pos.X, n.Pos.Y, n.Color
		attrs := n.Attrs.Clone()
		delete(attrs, AttrX)
		delete(attrs, AttrY)
		if len(attrs) == 0 {
			attrs = nil
		}
		out.Nodes = append(out.Nodes, node{ID: n.ID, Label: n.Label, Color: &c, X: &x, Y: &y, Attrs: attrs})
	}
	for _, e := range g.Edges() {
		c := e.Color
		attrs := e.Attrs
		if len(attrs) == 0 {
			attrs = nil
		}
		out.Edges = append(out.Edges, edge{From: e.From, To: e.To, Label: e.Label, Color: &c, Attrs: attrs})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file.
func ExportJSON(g *netgraph.Graph, path string) error {
	return exportWith(g, path, WriteJSON)
}

// ExportGML writes g to a GML file.
func ExportGML(g *netgraph.Graph, path string) error {
	return exportWith(g, path, WriteGML)
}

// ExportFile writes g in the format matching the file extension.
func ExportFile(g *netgraph.Graph, path string) error {
	if err := errors.ValidateGraphPath(path); err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".gml") {
		return ExportGML(g, path)
	}
	return ExportJSON(g, path)
}

func exportWith(g *netgraph.Graph, path string, write func(*netgraph.Graph, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
