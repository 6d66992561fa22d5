package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socnet/pkg/analysis"
	sio "github.com/matzehuels/socnet/pkg/io"
	"github.com/matzehuels/socnet/pkg/layout"
	"github.com/matzehuels/socnet/pkg/netgraph"
	"github.com/matzehuels/socnet/pkg/pipeline"
)

// analyzeCommand creates the analyze command, which prints the scalar
// metrics and optionally writes the graph with centrality attributes.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output     string
		source     string
		target     string
		algorithms string
		asJSON     bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [graph.gml|graph.json]",
		Short: "Compute centrality, clustering and distance metrics",
		Long: `Compute centrality, clustering and distance metrics.

Prints component counts, global and average clustering and the average
shortest-path distance. Metrics that are undefined for the graph (for
example the distance of a disconnected graph) are shown as "n/a" and
encoded as null with --json.

With --output, the graph is written with closeness and betweenness stored on
every node; with --source and --target also the shortest_neighbors lists.
Node positions come from the input's x and y values. When any node lacks
them, the graph is laid out with the configured layout (spring by default).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := buildOptions(cfg, func(o *pipeline.Options) {
				o.Input = args[0]
				o.Algorithms = algorithms
				o.Source, o.Target = source, target
			})
			return c.runAnalyze(cmd.Context(), cfg, opts, output, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the annotated graph (.gml or .json)")
	cmd.Flags().StringVar(&source, "source", "", "source node for shortest-path neighbors")
	cmd.Flags().StringVar(&target, "target", "", "target node for shortest-path neighbors")
	cmd.Flags().StringVar(&algorithms, "algorithms", "", "algorithm set: native (default), gonum")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, cfg pipeline.FileConfig, opts pipeline.Options, output string, asJSON, noCache bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	g, hash, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	report, hit, err := runner.Analyze(ctx, g, hash, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d nodes", g.NodeCount()))

	if output != "" {
		if err := c.positionAnnotated(ctx, runner, g, hash, opts); err != nil {
			return err
		}
		format := graphFormat(output)
		opts.Formats = []string{format}
		artifacts, err := pipeline.Render(ctx, g, opts)
		if err != nil {
			return err
		}
		if err := writeFile(output, artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printSuccess("Analysis complete")
	if output != "" {
		printFile(output)
	}
	printStats(report.Nodes, report.Edges, hit)
	printNewline()
	printReport(report)
	if opts.Source != "" {
		printNewline()
		printNeighbors(g, opts.Source)
	}
	return nil
}

// positionAnnotated adopts the input coordinates, or computes a layout when
// the input has none.
func (c *CLI) positionAnnotated(ctx context.Context, runner *pipeline.Runner, g *netgraph.Graph, hash string, opts pipeline.Options) error {
	err := layout.FromAttributes(g, sio.AttrX, sio.AttrY)
	if err == nil || !stderrors.Is(err, layout.ErrMissingPosition) {
		return err
	}
	c.Logger.Debug("input has no positions, computing layout", "layout", opts.Layout, "reason", err)
	if opts.Layout == string(layout.KindExternal) || opts.Layout == string(layout.KindKeep) {
		opts.Layout = string(pipeline.DefaultLayout)
	}
	if _, err := runner.Layout(ctx, g, hash, opts); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

func formatMetric(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}

// printReport prints the scalar metrics as aligned key-value lines.
func printReport(r analysis.Report) {
	kind := "undirected"
	if r.Directed {
		kind = "directed"
	}
	printKeyValue("graph", fmt.Sprintf("%s, %d nodes, %d edges", kind, r.Nodes, r.Edges))
	printKeyValue("components", fmt.Sprintf("%d (largest %d)", r.Components, r.LargestComponent))
	printKeyValue("clustering", formatMetric(r.GlobalClustering))
	printKeyValue("avg clust.", formatMetric(r.AverageClustering))
	printKeyValue("avg dist.", formatMetric(r.AverageDistance))
}
