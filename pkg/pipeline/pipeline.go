// Package pipeline chains the socnet stages behind one entry point used by
// the CLI.
//
// # Stages
//
//  1. Load: read a GML or JSON graph file
//  2. Layout: compute normalized node positions
//  3. Analyze: centrality attributes and the scalar report (optional)
//  4. Render: chart figure JSON, DOT, SVG, PNG, PDF or positioned graph files
//
// Layout, analysis and render results are cached by content hash, so
// re-running with the same file and options only pays for loading.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "karate.gml",
//	    Layout:  "spring",
//	    Formats: []string{"json", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	figure := result.Artifacts["json"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/socnet/pkg/algo"
	"github.com/matzehuels/socnet/pkg/analysis"
	"github.com/matzehuels/socnet/pkg/cache"
	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/layout"
	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/render"
)

const (
	DefaultLayout     = layout.KindSpring
	DefaultSeed       = algo.DefaultSeed
	DefaultAlgorithms = AlgorithmsNative
	DefaultSteps      = 20
)

// Algorithm set names.
const (
	AlgorithmsNative = "native"
	AlgorithmsGonum  = "gonum"
)

// Output formats.
const (
	FormatJSON  = "json"  // chart figure
	FormatDOT   = "dot"   // Graphviz source with pinned positions
	FormatSVG   = "svg"   // static preview rendered by Graphviz
	FormatPNG   = "png"   // SVG rasterized with rsvg-convert
	FormatPDF   = "pdf"   // SVG converted with rsvg-convert
	FormatGraph = "graph" // node-link JSON with positions and attributes
	FormatGML   = "gml"   // GML with positions and attributes
)

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatGraph, FormatGML}

// Extension returns the file extension written for format. The JSON
// formats get a qualifier so they never overwrite a JSON input graph.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".figure.json"
	case FormatGraph:
		return ".graph.json"
	}
	return "." + format
}

// Options configures a pipeline run. The zero value plus an Input is valid
// once SetDefaults has run.
type Options struct {
	Input string `json:"input"`

	Layout     string `json:"layout,omitempty"`
	Seed       uint64 `json:"seed,omitempty"`
	Algorithms string `json:"algorithms,omitempty"`
	// Weight names a numeric edge attribute used by spring layouts.
	Weight string `json:"weight,omitempty"`

	Analyze bool `json:"analyze,omitempty"`
	// Source and Target select the node pair whose shortest-path
	// neighbors are marked. Both or neither must be set.
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`

	Formats    []string      `json:"formats,omitempty"`
	Render     render.Config `json:"render"`
	NodeLabels bool          `json:"node_labels,omitempty"`
	EdgeLabels bool          `json:"edge_labels,omitempty"`
	// PNGScale multiplies the SVG size when rasterizing.
	PNGScale float64 `json:"png_scale,omitempty"`

	// Steps is the number of relaxation frames for animations.
	Steps int `json:"steps,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Layout == "" {
		o.Layout = string(DefaultLayout)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Algorithms == "" {
		o.Algorithms = DefaultAlgorithms
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Render == (render.Config{}) {
		o.Render = render.DefaultConfig()
	}
	o.Render.SetDefaults()
	if o.PNGScale == 0 {
		o.PNGScale = 2
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options after defaults have been applied.
func (o *Options) Validate() error {
	if _, err := layout.ParseKind(o.Layout); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLayout, err, "layout")
	}
	if _, err := NewAlgorithms(o.Algorithms); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if (o.Source == "") != (o.Target == "") {
		return errors.New(errors.ErrCodeInvalidConfig, "source and target must be given together")
	}
	if o.Steps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "steps must not be negative")
	}
	if err := errors.ValidatePositive("png_scale", o.PNGScale); err != nil {
		return err
	}
	if err := o.Render.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render config")
	}
	return nil
}

// ValidateFormat checks that format is supported. Matching is exact.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: %v)", format, Formats)
	}
	return nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// NewAlgorithms returns the algorithm set registered under name.
func NewAlgorithms(name string) (algo.Algorithms, error) {
	switch name {
	case AlgorithmsNative, "":
		return algo.Native{}, nil
	case AlgorithmsGonum:
		return algo.Gonum{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown algorithms %q (must be native or gonum)", name)
}

func (o *Options) layoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Kind:       o.Layout,
		Seed:       o.Seed,
		Algorithms: o.Algorithms,
		Weight:     o.Weight,
	}
}

func (o *Options) analysisKeyOpts() cache.AnalysisKeyOpts {
	return cache.AnalysisKeyOpts{
		Algorithms: o.Algorithms,
		Source:     o.Source,
		Target:     o.Target,
	}
}

func (o *Options) figureKeyOpts(format string) (cache.FigureKeyOpts, error) {
	cfgHash, err := cache.HashJSON(o.Render)
	if err != nil {
		return cache.FigureKeyOpts{}, fmt.Errorf("hash render config: %w", err)
	}
	k := cache.FigureKeyOpts{
		ConfigHash: cfgHash,
		NodeLabels: o.NodeLabels,
		EdgeLabels: o.EdgeLabels,
		Format:     format,
	}
	if format == FormatPNG {
		k.Format = fmt.Sprintf("%s@%g", format, o.PNGScale)
	}
	return k, nil
}

func (o *Options) renderOptions() render.Options {
	return render.Options{NodeLabels: o.NodeLabels, EdgeLabels: o.EdgeLabels}
}

// Result holds the outputs of [Runner.Execute].
type Result struct {
	// Graph carries the computed positions and, when analysis ran, the
	// centrality attributes.
	Graph     *netgraph.Graph
	GraphHash string

	Report    *analysis.Report
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records sizes and stage timings.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	AnalysisTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo records which stages were served from cache.
type CacheInfo struct {
	LayoutHit   bool
	AnalysisHit bool
	RenderHit   bool // every requested format was cached
}
