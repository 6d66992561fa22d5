package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/socnet/pkg/analysis"
	"github.com/matzehuels/socnet/pkg/cache"
	"github.com/matzehuels/socnet/pkg/errors"
	sio "github.com/matzehuels/socnet/pkg/io"
	"github.com/matzehuels/socnet/pkg/layout"
	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/observability"
	"github.com/matzehuels/socnet/pkg/render"
)

// Cache key types reported to the observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeAnalysis = "analysis"
	keyTypeFigure   = "figure"
)

// Runner executes pipeline stages against a cache. It holds no per-run
// state, so one Runner can serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → analyze (if requested) → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	result := &Result{}

	start := time.Now()
	g, hash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph, result.GraphHash = g, hash
	result.Stats.LoadTime = time.Since(start)
	result.Stats.NodeCount, result.Stats.EdgeCount = g.NodeCount(), g.EdgeCount()

	start = time.Now()
	if result.CacheInfo.LayoutHit, err = r.Layout(ctx, g, hash, opts); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(start)

	if opts.Analyze {
		start = time.Now()
		report, hit, err := r.Analyze(ctx, g, hash, opts)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		result.Report, result.CacheInfo.AnalysisHit = &report, hit
		result.Stats.AnalysisTime = time.Since(start)
	}

	start = time.Now()
	if result.Artifacts, result.CacheInfo.RenderHit, err = r.Render(ctx, g, opts); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(start)

	return result, nil
}

// Load reads the graph file opts.Input and returns it with the hash of the
// file contents. Nodes and edges without a color of their own get the
// render config's colors.
func (r *Runner) Load(ctx context.Context, opts Options) (*netgraph.Graph, string, error) {
	path := opts.Input
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	g, err := sio.ImportFile(path, sio.WithColors(opts.Render.Colors()))
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, "", err
	}
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		hooks.OnLoadComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	hooks.OnLoadComplete(ctx, path, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	r.Logger.Info("loaded graph",
		"path", path,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"directed", g.Directed(),
		"duration", time.Since(start))
	return g, cache.Hash(raw), nil
}

// Layout positions g in place, reusing a cached layout when graphHash and
// the layout options match. External and keep layouts are cheap and never
// cached.
func (r *Runner) Layout(ctx context.Context, g *netgraph.Graph, graphHash string, opts Options) (hit bool, err error) {
	if err := r.prepare(&opts); err != nil {
		return false, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Layout, g.NodeCount())
	start := time.Now()
	defer func() { hooks.OnLayoutComplete(ctx, opts.Layout, time.Since(start), err) }()

	cacheable := graphHash != "" &&
		opts.Layout != string(layout.KindExternal) &&
		opts.Layout != string(layout.KindKeep)
	key := r.Keyer.LayoutKey(graphHash, opts.layoutKeyOpts())

	if cacheable && !opts.Refresh {
		if data, ok, err := cache.Lookup(ctx, r.Cache, keyTypeLayout, key); err == nil && ok {
			if err := restorePositions(g, data); err == nil {
				opts.Logger.Debug("layout cache hit", "kind", opts.Layout)
				return true, nil
			}
			opts.Logger.Warn("discarding cached layout", "key", key)
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
	}

	if err := ComputeLayout(g, opts); err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidLayout, err, "%s layout", opts.Layout)
	}
	opts.Logger.Info("computed layout", "kind", opts.Layout, "algorithms", opts.Algorithms, "duration", time.Since(start))

	if cacheable {
		if data, err := marshalPositions(g); err == nil {
			r.store(ctx, keyTypeLayout, key, data, cache.TTLLayout)
		}
	}
	return false, nil
}

// Analyze writes centrality attributes onto g and returns the scalar
// report, reusing a cached analysis when possible.
func (r *Runner) Analyze(ctx context.Context, g *netgraph.Graph, graphHash string, opts Options) (report analysis.Report, hit bool, err error) {
	if err := r.prepare(&opts); err != nil {
		return analysis.Report{}, false, err
	}
	const metric = "report"
	hooks := observability.Pipeline()
	hooks.OnAnalysisStart(ctx, metric, g.NodeCount())
	start := time.Now()
	defer func() { hooks.OnAnalysisComplete(ctx, metric, time.Since(start), err) }()

	key := r.Keyer.AnalysisKey(graphHash, opts.analysisKeyOpts())
	if graphHash != "" && !opts.Refresh {
		if data, ok, err := cache.Lookup(ctx, r.Cache, keyTypeAnalysis, key); err == nil && ok {
			if res, err := decodeAnalysis(g, data); err == nil {
				res.apply(g)
				return res.Report, true, nil
			}
		}
	}

	res, err := analyze(g, opts)
	if err != nil {
		return analysis.Report{}, false, err
	}
	opts.Logger.Info("analyzed graph",
		"components", res.Report.Components,
		"largest", res.Report.LargestComponent,
		"duration", time.Since(start))

	if graphHash != "" {
		if data, err := json.Marshal(res); err == nil {
			r.store(ctx, keyTypeAnalysis, key, data, cache.TTLAnalysis)
		}
	}
	return res.Report, false, nil
}

// Render produces opts.Formats for the positioned graph g. Each format is
// cached under the hash of the graph as laid out.
func (r *Runner) Render(ctx context.Context, g *netgraph.Graph, opts Options) (artifacts map[string][]byte, allHit bool, err error) {
	if err := r.prepare(&opts); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	var buf bytes.Buffer
	if err := sio.WriteJSON(g, &buf); err != nil {
		return nil, false, fmt.Errorf("hash positioned graph: %w", err)
	}
	layoutHash := cache.Hash(buf.Bytes())

	artifacts = make(map[string][]byte, len(opts.Formats))
	keys := make(map[string]string, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		k, err := opts.figureKeyOpts(format)
		if err != nil {
			return nil, false, err
		}
		keys[format] = r.Keyer.FigureKey(layoutHash, k)
		if !opts.Refresh {
			if data, ok, err := cache.Lookup(ctx, r.Cache, keyTypeFigure, keys[format]); err == nil && ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, g, sub)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		r.store(ctx, keyTypeFigure, keys[format], data, cache.TTLFigure)
	}
	opts.Logger.Info("rendered outputs", "formats", missing, "duration", time.Since(start))
	return artifacts, false, nil
}

// Animate loads, lays out and relaxes the graph, returning the animated
// figure.
func (r *Runner) Animate(ctx context.Context, opts Options) (render.Figure, error) {
	if err := r.prepare(&opts); err != nil {
		return render.Figure{}, err
	}
	g, hash, err := r.Load(ctx, opts)
	if err != nil {
		return render.Figure{}, err
	}
	if _, err := r.Layout(ctx, g, hash, opts); err != nil {
		return render.Figure{}, fmt.Errorf("layout: %w", err)
	}

	start := time.Now()
	fig, err := Animate(g, opts)
	if err != nil {
		return render.Figure{}, err
	}
	opts.Logger.Info("animated layout", "frames", len(fig.Frames), "duration", time.Since(start))
	return fig, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	return opts.Validate()
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := cache.Store(ctx, r.Cache, keyType, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
	}
}
