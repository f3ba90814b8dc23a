package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/errors"
)

// deleteCommand removes keys from every tree and renders the result.
// Absent keys are reported as warnings, not errors.
func (c *CLI) deleteCommand() *cobra.Command {
	var (
		keys     []int
		fromJSON string
		flags    renderFlags
	)

	cmd := &cobra.Command{
		Use:   "delete [keys...] --key N",
		Short: "Delete keys and render the resulting trees",
		Example: `  bstviz delete 5 3 8 1 4 --key 3
  bstviz delete 5 3 8 --key 5 --key 8 -f dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(keys) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no keys to delete (use --key)")
			}
			opts := flags.options(cmd, c.Config)
			trees, err := c.readTrees(cmd, args, opts.Delimiter, fromJSON)
			if err != nil {
				return err
			}
			for _, t := range trees {
				removed := 0
				for _, k := range keys {
					if t.Delete(k) {
						removed++
					}
				}
				loggerFromContext(cmd.Context()).Debug("deleted keys", "requested", len(keys), "removed", removed, "nodes", t.Len())
			}
			return c.renderTrees(cmd, trees, &flags)
		},
	}

	cmd.Flags().IntSliceVarP(&keys, "key", "k", nil, "key to delete (repeatable)")
	cmd.Flags().StringVar(&fromJSON, "from-json", "", "read the tree from a file written by export")
	flags.register(cmd)
	return cmd
}
