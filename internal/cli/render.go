package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socnet/pkg/pipeline"
)

// renderCommand creates the render command for producing chart figures and
// static previews.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		refresh    bool
		analyze    bool
		lf         layoutFlags
		rf         renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.gml|graph.json]",
		Short: "Lay out a graph and render it",
		Long: `Lay out a graph and render it.

Formats:
  json   chart figure (traces and layout) for plotly-compatible viewers
  dot    Graphviz source with pinned positions
  svg    static preview rendered with Graphviz
  png    SVG rasterized with rsvg-convert
  pdf    SVG converted with rsvg-convert
  graph  positioned node-link JSON
  gml    positioned GML

With --analyze, closeness and betweenness are stored on every node before
rendering, so graph and gml outputs carry them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := buildOptions(cfg, func(o *pipeline.Options) {
				lf.apply(o)
				rf.apply(cmd, o)
				o.Input = args[0]
				o.Formats = formats
				o.Analyze = analyze
				o.Refresh = refresh
			})
			return c.runRender(cmd.Context(), cfg, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png, pdf, graph, gml (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "store centrality attributes before rendering")
	lf.register(cmd)
	rf.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cfg pipeline.FileConfig, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Input, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	if result.Report != nil {
		printNewline()
		printReport(*result.Report)
	}
	return nil
}

// writeArtifacts writes one file per format. A single format goes to
// output verbatim; several formats share output's base name.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := output
		if path == "" || len(formats) > 1 {
			path = basePath(output, input) + pipeline.Extension(format)
		}
		if err := writeFile(path, artifacts[format]); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
