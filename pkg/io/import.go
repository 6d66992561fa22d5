package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

// Coordinate attribute keys filled by the readers.
const (
	AttrX = "x"
	AttrY = "y"
)

// ReadJSON decodes a node-link JSON graph from r.
//
// Each node needs an "id"; "label", "color", "x", "y" and "attrs" are
// optional. Each edge needs "from" and "to" naming existing nodes.
// ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...Option) (*netgraph.Graph, error) {
	ro := newReadOptions(opts)
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON graph")
	}

	g := netgraph.New(data.Directed)
	for _, n := range data.Nodes {
		nd := netgraph.Node{
			ID:    n.ID,
			Label: n.Label,
			Color: ro.nodeColor,
			Attrs: n.Attrs,
		}
		if n.Color != nil {
			nd.Color = *n.Color
		}
		if n.X != nil || n.Y != nil {
			if nd.Attrs == nil {
				nd.Attrs = netgraph.Attrs{}
			}
			if n.X != nil {
				nd.Attrs[AttrX] = *n.X
			}
			if n.Y != nil {
				nd.Attrs[AttrY] = *n.Y
			}
		}
		if err := addNode(g, nd); err != nil {
			return nil, err
		}
	}
	for _, e := range data.Edges {
		ed := netgraph.Edge{
			From:  e.From,
			To:    e.To,
			Label: e.Label,
			Color: ro.edgeColor,
			Attrs: e.Attrs,
		}
		if e.Color != nil {
			ed.Color = *e.Color
		}
		if err := addEdge(g, ed); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func addNode(g *netgraph.Graph, n netgraph.Node) error {
	if err := errors.ValidateNodeID(n.ID); err != nil {
		return err
	}
	if err := g.AddNode(n); err != nil {
		if stderrors.Is(err, netgraph.ErrDuplicateNodeID) {
			return errors.Wrap(errors.ErrCodeDuplicateNode, err, "node %q", n.ID)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", n.ID)
	}
	return nil
}

func addEdge(g *netgraph.Graph, e netgraph.Edge) error {
	if err := g.AddEdge(e); err != nil {
		if stderrors.Is(err, netgraph.ErrInvalidReference) {
			return errors.Wrap(errors.ErrCodeInvalidReference, err, "edge %s->%s", e.From, e.To)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %s->%s", e.From, e.To)
	}
	return nil
}

// ImportJSON reads a JSON graph file.
func ImportJSON(path string, opts ...Option) (*netgraph.Graph, error) {
	return importWith(path, ReadJSON, opts)
}

// ImportGML reads a GML graph file.
func ImportGML(path string, opts ...Option) (*netgraph.Graph, error) {
	return importWith(path, ReadGML, opts)
}

// ImportFile reads a graph file, choosing the format by extension
// (.gml or .json).
func ImportFile(path string, opts ...Option) (*netgraph.Graph, error) {
	if err := errors.ValidateGraphPath(path); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gml":
		return ImportGML(path, opts...)
	default:
		return ImportJSON(path, opts...)
	}
}

func importWith(path string, read func(io.Reader, ...Option) (*netgraph.Graph, error), opts []Option) (*netgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return read(f, opts...)
}
