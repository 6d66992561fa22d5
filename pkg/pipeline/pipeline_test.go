package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/socnet/pkg/analysis"
	"github.com/matzehuels/socnet/pkg/cache"
	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/observability"
	"github.com/matzehuels/socnet/pkg/render"
)

const triangleWithTail = `{
  "directed": false,
  "nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
  "edges": [
    {"from": "a", "to": "b"},
    {"from": "b", "to": "c"},
    {"from": "c", "to": "a"},
    {"from": "c", "to": "d"}
  ]
}`

func writeGraph(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"graph", false},
		{"gml", false},
		{"JSON", true},
		{"html", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats: %v", err)
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()

	if o.Layout != "spring" || o.Seed != 42 || o.Algorithms != "native" {
		t.Errorf("layout defaults = %q %d %q", o.Layout, o.Seed, o.Algorithms)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v", o.Formats)
	}
	want, _ := json.Marshal(render.DefaultConfig())
	if got, _ := json.Marshal(o.Render); !bytes.Equal(got, want) {
		t.Errorf("Render = %s, want %s", got, want)
	}
	if o.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if err := o.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}

	// Explicit values survive.
	o = Options{Layout: "circular", Seed: 7, Render: render.Config{Width: 1000}}
	o.SetDefaults()
	if o.Layout != "circular" || o.Seed != 7 || o.Render.Width != 1000 || o.Render.Height != 450 {
		t.Errorf("explicit values overwritten: %+v", o)
	}
	if node, edge := o.Render.Colors(); node != netgraph.DefaultNodeColor || edge != netgraph.DefaultEdgeColor {
		t.Errorf("partial render config colors = %v, %v", node, edge)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"unknown layout", func(o *Options) { o.Layout = "hierarchical" }, errors.ErrCodeInvalidLayout},
		{"unknown algorithms", func(o *Options) { o.Algorithms = "igraph" }, errors.ErrCodeInvalidConfig},
		{"bad format", func(o *Options) { o.Formats = []string{"bmp"} }, errors.ErrCodeInvalidFormat},
		{"source only", func(o *Options) { o.Source = "a" }, errors.ErrCodeInvalidConfig},
		{"negative steps", func(o *Options) { o.Steps = -1 }, errors.ErrCodeInvalidConfig},
		{"tiny canvas", func(o *Options) { o.Render.Width = 10 }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Options
			o.SetDefaults()
			tt.modify(&o)
			err := o.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(FormatGraph); got != ".graph.json" {
		t.Errorf("graph extension = %q", got)
	}
	if got := Extension(FormatJSON); got != ".figure.json" {
		t.Errorf("json extension = %q", got)
	}
	if got := Extension(FormatSVG); got != ".svg" {
		t.Errorf("svg extension = %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeGraph(t, "socnet.toml", `
[layout]
kind = "circular"
seed = 7
algorithms = "gonum"

[render]
width = 1024
node_color = "#ff0000"

[cache]
backend = "redis"
url = "redis://cache:6379/1"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.Kind != "circular" || cfg.Layout.Seed != 7 || cfg.Layout.Algorithms != "gonum" {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Render.Width != 1024 || cfg.Render.Height != 450 {
		t.Errorf("render size = %gx%g", cfg.Render.Width, cfg.Render.Height)
	}
	if node, edge := cfg.Render.Colors(); node != (netgraph.Color{R: 255}) || edge != netgraph.DefaultEdgeColor {
		t.Errorf("colors = %v, %v", node, edge)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.URL != "redis://cache:6379/1" {
		t.Errorf("cache = %+v", cfg.Cache)
	}

	var o Options
	cfg.Apply(&o)
	if o.Layout != "circular" || o.Seed != 7 || o.Render.Width != 1024 {
		t.Errorf("Apply = %+v", o)
	}
	o = Options{Layout: "random"}
	cfg.Apply(&o)
	if o.Layout != "random" {
		t.Errorf("Apply overrode explicit layout: %q", o.Layout)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file: %v", err)
	}
	bad := writeGraph(t, "bad.toml", "[render\nwidth = ")
	if _, err := LoadConfig(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad toml: %v", err)
	}
}

func TestComputeLayoutNormalized(t *testing.T) {
	for _, kind := range []string{"circular", "spring", "random"} {
		t.Run(kind, func(t *testing.T) {
			path := writeGraph(t, "g.json", triangleWithTail)
			r := NewRunner(nil, nil, nil)
			g, _, err := r.Load(context.Background(), Options{Input: path})
			if err != nil {
				t.Fatal(err)
			}
			opts := Options{Layout: kind}
			opts.SetDefaults()
			if err := ComputeLayout(g, opts); err != nil {
				t.Fatal(err)
			}
			for _, n := range g.Nodes() {
				if n.Pos.X < 0 || n.Pos.X > 1 || n.Pos.Y < 0 || n.Pos.Y > 1 {
					t.Errorf("%s at %v outside unit square", n.ID, n.Pos)
				}
			}
		})
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	ctx := context.Background()
	path := writeGraph(t, "g.json", triangleWithTail)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	opts := Options{
		Input:   path,
		Analyze: true,
		Formats: []string{FormatJSON, FormatDOT, FormatGraph, FormatGML},
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.AnalysisHit || first.CacheInfo.RenderHit {
		t.Errorf("cold run reported hits: %+v", first.CacheInfo)
	}
	if first.Stats.NodeCount != 4 || first.Stats.EdgeCount != 4 {
		t.Errorf("stats = %+v", first.Stats)
	}
	if first.Report == nil || first.Report.Components != 1 {
		t.Fatalf("report = %+v", first.Report)
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("format %s empty", f)
		}
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.AnalysisHit || !second.CacheInfo.RenderHit {
		t.Errorf("warm run missed: %+v", second.CacheInfo)
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("format %s differs between runs", f)
		}
	}
	for _, n := range second.Graph.Nodes() {
		want, _ := first.Graph.Node(n.ID)
		if n.Pos != want.Pos {
			t.Errorf("%s position %v, want %v", n.ID, n.Pos, want.Pos)
		}
		if _, ok := n.Attrs.Float(analysis.AttrBetweenness); !ok {
			t.Errorf("%s lacks betweenness after cache hit", n.ID)
		}
	}

	third, err := r.Execute(ctx, Options{Input: path, Seed: 99, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("different seed reused the cached layout")
	}
}

func TestRunnerFigureJSON(t *testing.T) {
	path := writeGraph(t, "g.json", triangleWithTail)
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Input: path, NodeLabels: true})
	if err != nil {
		t.Fatal(err)
	}
	var fig render.Figure
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &fig); err != nil {
		t.Fatal(err)
	}
	if len(fig.Data) == 0 {
		t.Fatal("figure has no traces")
	}
	if fig.Layout.Width != 800 || fig.Layout.Height != 450 {
		t.Errorf("layout size = %gx%g", fig.Layout.Width, fig.Layout.Height)
	}
}

func TestRunnerConfiguredColors(t *testing.T) {
	path := writeGraph(t, "pair.gml", `graph [
  directed 1
  node [ id 0 ]
  node [ id 1 color "#00ff00" ]
  edge [ source 0 target 1 ]
]`)
	red, blue := netgraph.Color{R: 255}, netgraph.Color{B: 255}
	cfg := render.DefaultConfig()
	cfg.NodeColor, cfg.EdgeColor = &red, &blue

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Input: path, Layout: "circular", Render: cfg})
	if err != nil {
		t.Fatal(err)
	}

	var fig render.Figure
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &fig); err != nil {
		t.Fatal(err)
	}
	markers := map[string]bool{}
	lines := map[string]bool{}
	for _, tr := range fig.Data {
		if tr.Marker != nil {
			markers[tr.Marker.Color] = true
		}
		if tr.Line != nil {
			lines[tr.Line.Color] = true
		}
	}
	for _, c := range []string{red.String(), "rgb(0, 255, 0)"} {
		if !markers[c] {
			t.Errorf("no node trace colored %s; got %v", c, markers)
		}
	}
	if markers[netgraph.White.String()] {
		t.Error("uncolored node kept the white default")
	}
	if !lines[blue.String()] {
		t.Errorf("no edge trace colored %s; got %v", blue, lines)
	}
}

func TestRunnerShortestNeighbors(t *testing.T) {
	path := writeGraph(t, "g.json", triangleWithTail)
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:   path,
		Analyze: true,
		Source:  "a",
		Target:  "d",
	})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := res.Graph.Node("a")
	got, _ := a.Attrs.Strings(analysis.AttrShortestNeighbors)
	if len(got) != 1 || got[0] != "c" {
		t.Errorf("a neighbors = %v, want [c]", got)
	}

	_, err = r.Execute(context.Background(), Options{Input: path, Analyze: true, Source: "a", Target: "zz"})
	if !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("unknown target: %v", err)
	}
}

func TestRunnerExternalLayout(t *testing.T) {
	path := writeGraph(t, "g.json", `{
  "directed": true,
  "nodes": [{"id": "a", "x": 0, "y": 10}, {"id": "b", "x": 5, "y": 0}],
  "edges": [{"from": "a", "to": "b"}]
}`)
	fc, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(fc, nil, nil)
	for i := 0; i < 2; i++ {
		res, err := r.Execute(context.Background(), Options{Input: path, Layout: "external"})
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.LayoutHit {
			t.Error("external layout should not be cached")
		}
		b, _ := res.Graph.Node("b")
		if b.Pos != (netgraph.Point{X: 1, Y: 0}) {
			t.Errorf("b at %v", b.Pos)
		}
	}
}

func TestRunnerLoadErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "none.gml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
	_, err = r.Execute(context.Background(), Options{Input: "graph.csv"})
	if err == nil {
		t.Error("unsupported extension accepted")
	}
}

func TestAnimate(t *testing.T) {
	path := writeGraph(t, "g.json", triangleWithTail)
	r := NewRunner(nil, nil, nil)
	fig, err := r.Animate(context.Background(), Options{Input: path, Layout: "random", Steps: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Frames) != 6 {
		t.Errorf("frames = %d, want 6", len(fig.Frames))
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.events = append(h.events, "load") }
func (h *recordingHooks) OnLayoutStart(_ context.Context, kind string, _ int) {
	h.events = append(h.events, "layout:"+kind)
}
func (h *recordingHooks) OnAnalysisStart(context.Context, string, int) {
	h.events = append(h.events, "analysis")
}
func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	h.events = append(h.events, "render:"+strings.Join(formats, ","))
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	path := writeGraph(t, "g.json", triangleWithTail)
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Input: path, Analyze: true, Layout: "circular"}); err != nil {
		t.Fatal(err)
	}
	want := "load layout:circular analysis render:json"
	if got := strings.Join(hooks.events, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}
