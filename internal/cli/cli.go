// Package cli implements the socnet command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/socnet/pkg/cache"
	"github.com/matzehuels/socnet/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "socnet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a CLI whose logger writes to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// config loads the file named by --config, or socnet.toml when present.
func (c *CLI) config() (pipeline.FileConfig, error) {
	cfg, err := pipeline.LoadConfig(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg pipeline.FileConfig, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context, cfg cache.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if cfg.Dir == "" {
			dir, err := cacheDir()
			if err != nil {
				c.Logger.Warn("no cache directory, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
			cfg.Dir = dir
		}
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	return store, nil
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/socnet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated format list. Empty means the
// chart figure only.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath strips the graph extension from input, or returns output when
// given.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// graphFormat picks GML for a .gml path and node-link JSON otherwise.
func graphFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".gml") {
		return pipeline.FormatGML
	}
	return pipeline.FormatGraph
}

// layoutFlags are shared by every command that positions nodes.
type layoutFlags struct {
	kind       string
	seed       uint64
	algorithms string
	weight     string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "layout", "l", "", "layout: spring (default), circular, random, external, keep")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default 42)")
	cmd.Flags().StringVar(&f.algorithms, "algorithms", "", "algorithm set: native (default), gonum")
	cmd.Flags().StringVar(&f.weight, "weight", "", "numeric edge attribute used as spring strength")
	_ = cmd.RegisterFlagCompletionFunc("layout", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"spring", "circular", "random", "external", "keep"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("algorithms", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.AlgorithmsNative, pipeline.AlgorithmsGonum}, cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *layoutFlags) apply(opts *pipeline.Options) {
	opts.Layout = f.kind
	opts.Seed = f.seed
	opts.Algorithms = f.algorithms
	opts.Weight = f.weight
}

// renderFlags are shared by commands that draw the graph.
type renderFlags struct {
	width, height float64
	nodeSize      float64
	edgeWidth     float64
	labelPosition string
	nodeLabels    bool
	edgeLabels    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "chart width in pixels (default 800)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "chart height in pixels (default 450)")
	cmd.Flags().Float64Var(&f.nodeSize, "node-size", 0, "marker diameter in pixels (default 20)")
	cmd.Flags().Float64Var(&f.edgeWidth, "edge-width", 0, "edge stroke in pixels (default 2)")
	cmd.Flags().StringVar(&f.labelPosition, "label-position", "", `node label position, e.g. "top center" or "hover"`)
	cmd.Flags().BoolVar(&f.nodeLabels, "node-labels", false, "draw node labels")
	cmd.Flags().BoolVar(&f.edgeLabels, "edge-labels", false, "draw edge labels")
}

// apply copies the render flags the user set over the file configuration.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed
	if set("width") {
		opts.Render.Width = f.width
	}
	if set("height") {
		opts.Render.Height = f.height
	}
	if set("node-size") {
		opts.Render.NodeSize = f.nodeSize
	}
	if set("edge-width") {
		opts.Render.EdgeWidth = f.edgeWidth
	}
	if set("label-position") {
		opts.Render.NodeLabelPosition = f.labelPosition
	}
	opts.NodeLabels = f.nodeLabels
	opts.EdgeLabels = f.edgeLabels
}

// buildOptions merges flags over the config file and applies defaults.
func buildOptions(cfg pipeline.FileConfig, build func(*pipeline.Options)) pipeline.Options {
	var opts pipeline.Options
	opts.Render = cfg.Render
	build(&opts)
	cfg.Apply(&opts)
	opts.SetDefaults()
	return opts
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
