package analysis

import "github.com/matzehuels/socnet/pkg/netgraph"

// Report bundles the scalar metrics of a graph. Undefined metrics are nil.
type Report struct {
	Nodes             int      `json:"nodes"`
	Edges             int      `json:"edges"`
	Directed          bool     `json:"directed"`
	Components        int      `json:"components"`
	LargestComponent  int      `json:"largest_component"`
	GlobalClustering  *float64 `json:"global_clustering"`
	AverageClustering *float64 `json:"average_clustering"`
	AverageDistance   *float64 `json:"average_distance"`
}

// Report computes every scalar metric. It does not modify g.
func (e *Engine) Report(g *netgraph.Graph) Report {
	r := Report{
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
		Directed: g.Directed(),
	}
	comps := e.algos.Components(g)
	r.Components = len(comps)
	for _, c := range comps {
		r.LargestComponent = max(r.LargestComponent, len(c))
	}
	r.GlobalClustering = optional(e.GlobalClustering(g))
	r.AverageClustering = optional(e.AverageClustering(g))
	r.AverageDistance = optional(e.AverageDistance(g))
	return r
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
