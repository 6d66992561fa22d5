package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socnet/pkg/pipeline"
)

// layoutCommand creates the layout command, which writes the graph back out
// with computed positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		lf      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.gml|graph.json]",
		Short: "Compute node positions and write the positioned graph",
		Long: `Compute node positions and write the positioned graph.

Positions are normalized to the unit square. The output format follows the
output extension: .gml writes GML, anything else node-link JSON. The result
can be fed back with --layout keep.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := buildOptions(cfg, func(o *pipeline.Options) {
				lf.apply(o)
				o.Input = args[0]
				o.Refresh = refresh
			})
			return c.runLayout(cmd.Context(), cfg, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")
	lf.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, cfg pipeline.FileConfig, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	format := graphFormat(output)
	opts.Formats = []string{format}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Layout))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := output
	if path == "" {
		path = basePath("", opts.Input) + pipeline.Extension(format)
	}
	if err := writeFile(path, result.Artifacts[format]); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" render --layout keep "+path)
	return nil
}
