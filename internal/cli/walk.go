package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

// walkCommand prints the keys of every tree in the requested traversal order,
// one line per tree.
func (c *CLI) walkCommand() *cobra.Command {
	var order, delimiter, fromJSON string

	cmd := &cobra.Command{
		Use:     "walk [keys...]",
		Short:   "Print tree keys in pre-, in- or post-order",
		Example: "  bstviz walk 5 3 8 1 4 --order pre",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := bst.ParseOrder(order)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "order")
			}
			trees, err := c.readTrees(cmd, args, delimiter, fromJSON)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, t := range trees {
				fmt.Fprintln(w, joinInts(t.Values(o)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&order, "order", "in", "traversal order: pre, in, post")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "token separating trees")
	cmd.Flags().StringVar(&fromJSON, "from-json", "", "read the tree from a file written by export")
	_ = cmd.RegisterFlagCompletionFunc("order", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"pre", "in", "post"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
