// Package render turns a laid-out graph into chart traces.
//
// # Overview
//
// The output of this package is plain data: [Trace] values with parallel x/y
// coordinate arrays in the unit square, plus a chart [Layout]. The field
// names match what browser charting libraries such as plotly.js expect, so a
// [Figure] marshaled to JSON can be handed to a front end as is. Nothing here
// draws pixels; [dot] provides a static SVG preview for that.
//
// # Geometry
//
// Positions live in normalized coordinates while sizes (marker radius, edge
// width, label distance) are given in pixels. [Scale] bridges the two: it
// returns the multiplier that stretches a direction vector to a given pixel
// length on the estimated plot area ([Config.Canvas]). Because the two axes
// are scaled independently, every direction needs its own multiplier.
//
// For directed graphs each edge gets an arrowhead at its target: two short
// wing strokes starting where the edge meets the target marker. When both
// (u,v) and (v,u) exist the two edges are shifted apart along their normal so
// they do not overlap, and each keeps only its clockwise wing, giving the pair
// a half-arrow look.
//
// # Batching
//
// [BuildFigure] merges elements of the same color into one trace, which keeps
// static figures small. [BuildFrame] emits one trace per element, each with a
// stable uid, so consecutive animation frames line up trace by trace.
//
//	cfg := render.DefaultConfig()
//	fig := render.BuildFigure(g, cfg, render.Options{NodeLabels: true})
//	data, _ := json.Marshal(fig)
//
// [dot]: github.com/matzehuels/socnet/pkg/render/dot
package render
