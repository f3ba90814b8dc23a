package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The configuration file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bstviz draws binary search trees as TikZ, Graphviz and JSON diagrams",
		Long: `bstviz builds unbalanced binary search trees from key records and renders
them as TikZ pictures, Graphviz diagrams (DOT, SVG, PDF, PNG) or JSON.

Records are whitespace separated: 5 plain key, 5:label labelled node,
5@red coloured node. A ";" token starts a new tree.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bstviz/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.walkCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
