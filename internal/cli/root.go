package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/socnet/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "socnet lays out, draws and analyzes social network graphs",
		Long: `socnet reads GML or node-link JSON graphs, computes 2D layouts, turns them
into chart figures with edge arrowheads and labels, and measures centrality,
clustering and shortest-path structure.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./socnet.toml when present)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
