package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/errors"
	bstio "github.com/matzehuels/bstviz/pkg/io"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// exportCommand writes the logical tree structure as JSON. The files load
// back through --from-json on walk, query, delete and explore.
func (c *CLI) exportCommand() *cobra.Command {
	var output, delimiter string

	cmd := &cobra.Command{
		Use:   "export [keys...]",
		Short: "Export trees as JSON for later --from-json use",
		Example: `  bstviz export 5:root 3@red 8 -o tree.json
  bstviz walk --from-json tree.json --order pre`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trees, err := c.readTrees(cmd, args, delimiter, "")
			if err != nil {
				return err
			}
			if output == "" {
				for _, t := range trees {
					if err := bstio.WriteJSON(t, cmd.OutOrStdout()); err != nil {
						return err
					}
				}
				return nil
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}

			paths := outputPaths(output, len(trees), []string{pipeline.FormatJSON})
			for i, t := range trees {
				if err := bstio.ExportJSON(t, paths[i]); err != nil {
					return fmt.Errorf("export tree %d: %w", i, err)
				}
			}
			printSuccess("Exported %s", plural(len(trees), "tree"))
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or base path for several trees; stdout if empty")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "token separating trees")
	return cmd
}
