// Package dot renders a laid-out graph as a static picture using Graphviz.
//
// [ToDOT] writes DOT source in which every node is pinned at its layout
// position, scaled to the configured canvas. [RenderSVG] runs the neato
// engine in-process (github.com/goccy/go-graphviz) so the pinned positions are
// kept as they are rather than recomputed:
//
//	src := dot.ToDOT(g, cfg, dot.Options{NodeLabels: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// PDF and PNG conversion shells out to rsvg-convert from librsvg.
package dot
