package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/socnet/pkg/analysis"
	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/netgraph"
)

// analysisResult is what the analysis stage adds to a graph, in a form
// that can be cached and written back.
type analysisResult struct {
	Report      analysis.Report     `json:"report"`
	Closeness   map[string]float64  `json:"closeness"`
	Betweenness map[string]float64  `json:"betweenness"`
	Neighbors   map[string][]string `json:"neighbors,omitempty"`
}

// Analyze computes centrality attributes on g in place and returns the
// scalar report. When opts names a source and target, shortest-path
// neighbor sets are recorded too.
func Analyze(g *netgraph.Graph, opts Options) (analysis.Report, error) {
	res, err := analyze(g, opts)
	if err != nil {
		return analysis.Report{}, err
	}
	return res.Report, nil
}

func analyze(g *netgraph.Graph, opts Options) (analysisResult, error) {
	algos, err := NewAlgorithms(opts.Algorithms)
	if err != nil {
		return analysisResult{}, err
	}
	eng := analysis.New(algos)

	res := analysisResult{
		Closeness:   eng.Closeness(g),
		Betweenness: eng.Betweenness(g),
		Report:      eng.Report(g),
	}
	if opts.Source != "" {
		if err := eng.ShortestNeighbors(g, opts.Source, opts.Target); err != nil {
			return analysisResult{}, errors.Wrap(errors.ErrCodeInvalidReference, err,
				"shortest paths %s -> %s", opts.Source, opts.Target)
		}
		res.Neighbors = make(map[string][]string, g.NodeCount())
		for _, n := range g.Nodes() {
			res.Neighbors[n.ID], _ = n.Attrs.Strings(analysis.AttrShortestNeighbors)
		}
	}
	return res, nil
}

// apply writes cached analysis attributes onto g.
func (r analysisResult) apply(g *netgraph.Graph) {
	for _, n := range g.Nodes() {
		n.Attrs[analysis.AttrCloseness] = r.Closeness[n.ID]
		n.Attrs[analysis.AttrBetweenness] = r.Betweenness[n.ID]
		if r.Neighbors != nil {
			ids := r.Neighbors[n.ID]
			if ids == nil {
				ids = []string{}
			}
			n.Attrs[analysis.AttrShortestNeighbors] = ids
		}
	}
}

func decodeAnalysis(g *netgraph.Graph, data []byte) (analysisResult, error) {
	var r analysisResult
	if err := json.Unmarshal(data, &r); err != nil {
		return r, err
	}
	if len(r.Closeness) != g.NodeCount() {
		return r, fmt.Errorf("cached analysis covers %d nodes, graph has %d", len(r.Closeness), g.NodeCount())
	}
	return r, nil
}
