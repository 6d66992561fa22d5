package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/socnet/pkg/pipeline"
)

// animateCommand creates the animate command, which records a spring
// relaxation as an animated chart figure.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		output  string
		steps   int
		noCache bool
		lf      layoutFlags
		rf      renderFlags
	)

	cmd := &cobra.Command{
		Use:   "animate [graph.gml|graph.json]",
		Short: "Record a spring relaxation as an animated figure",
		Long: `Record a spring relaxation as an animated figure.

Frame 0 shows the layout chosen with --layout. Each following frame runs
one spring iteration from there, so --layout random or --layout circular
shows the graph settling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			opts := buildOptions(cfg, func(o *pipeline.Options) {
				lf.apply(o)
				rf.apply(cmd, o)
				o.Input = args[0]
				o.Steps = steps
			})
			return c.runAnimate(cmd.Context(), cfg, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.animation.json)")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of relaxation frames (default 20)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, cfg pipeline.FileConfig, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Animating %d steps...", opts.Steps))
	spinner.Start()
	fig, err := runner.Animate(ctx, opts)
	if err != nil {
		spinner.StopWithError("Animation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode animation: %w", err)
	}
	path := output
	if path == "" {
		path = basePath("", opts.Input) + ".animation.json"
	}
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Animated %d frames", len(fig.Frames))
	printFile(path)
	return nil
}
