// Package pkg provides the libraries behind socnet, a tool that lays out,
// draws and analyzes social network graphs.
//
// # Overview
//
// socnet reads attributed graphs from GML or node-link JSON, places every
// node in the unit square, and turns the result into chart figures: marker
// and edge traces with arrowheads for directed graphs, offset curves for
// reciprocal edges and optional labels. Alongside the drawing it computes
// centrality, clustering and shortest-path metrics.
//
// # Architecture
//
// The typical data flow:
//
//	GML / JSON file
//	       ↓
//	  [io] package (import into a netgraph.Graph)
//	       ↓
//	  [layout] package (spring, circular, random or file positions)
//	       ↓
//	  [analysis] package (optional centrality attributes)
//	       ↓
//	  [render] package (chart figure) and [render/dot] (SVG/PNG/PDF)
//
// [pipeline] chains these stages with caching and is what the CLI calls.
//
// # Quick Start
//
//	g, _ := io.ImportFile("karate.gml")
//
//	eng := layout.New(algo.Native{}, nil)
//	_ = eng.Run(g, layout.KindSpring)
//
//	fig := render.BuildFigure(g, render.DefaultConfig(), render.Options{NodeLabels: true})
//	data, _ := json.Marshal(fig)
//
// # Main Packages
//
// ## Graph Model
//
// [netgraph] - Attributed graph with insertion-ordered nodes and edges,
// colors and normalized positions.
//
// [io] - GML and node-link JSON import and export.
//
// ## Algorithms
//
// [algo] - Breadth-first search, spring layout, components, all shortest
// paths and centrality. Two interchangeable sets: a native implementation
// and one backed by gonum.
//
// [layout] - Layout engine on top of [algo] with normalization to the unit
// square.
//
// [analysis] - Closeness, betweenness, shortest-path neighbors and the
// scalar report (clustering, components, average distance).
//
// ## Visualization
//
// [render] - Chart figures: traces, arrowheads, reciprocal offsets, labels.
//
// [render/dot] - Graphviz export with pinned positions and SVG/PNG/PDF
// previews.
//
// [animation] - Frame sequences of a relaxing spring layout.
//
// ## Infrastructure
//
// [pipeline] - Load, layout, analyze and render with per-stage caching.
//
// [cache] - Content-addressed cache with file, Redis and MongoDB backends.
//
// [observability] - Hooks for pipeline stages and cache traffic.
//
// [errors] - Error codes shared by all packages.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/algo/...     # Specific package
//	go test -run Example ./... # Examples only
//
// [netgraph]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/netgraph
// [io]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/io
// [algo]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/algo
// [layout]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/layout
// [analysis]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/analysis
// [render]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/render/dot
// [animation]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/animation
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/socnet/pkg/errors
package pkg
