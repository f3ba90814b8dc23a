package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
)

type queryFlags struct {
	min, max    bool
	search      []int
	successor   []int
	predecessor []int
	delimiter   string
	fromJSON    string
}

func (f *queryFlags) empty() bool {
	return !f.min && !f.max && len(f.search) == 0 && len(f.successor) == 0 && len(f.predecessor) == 0
}

// queryCommand answers ordered-set queries. Without query flags it prints a
// summary of each tree.
func (c *CLI) queryCommand() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "query [keys...]",
		Short: "Search trees and look up min, max, successors and predecessors",
		Example: `  bstviz query 5 3 8 1 4 --min --max
  bstviz query 5 3 8 1 4 --search 4 --successor 4 --predecessor 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trees, err := c.readTrees(cmd, args, flags.delimiter, flags.fromJSON)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, t := range trees {
				if len(trees) > 1 {
					fmt.Fprintf(w, "tree %d\n", i)
				}
				if flags.empty() {
					writeSummary(w, t)
					continue
				}
				writeQueries(w, t, &flags)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&flags.min, "min", false, "print the smallest key")
	fl.BoolVar(&flags.max, "max", false, "print the largest key")
	fl.IntSliceVar(&flags.search, "search", nil, "report whether keys are present")
	fl.IntSliceVar(&flags.successor, "successor", nil, "print the in-order successor of keys")
	fl.IntSliceVar(&flags.predecessor, "predecessor", nil, "print the in-order predecessor of keys")
	fl.StringVar(&flags.delimiter, "delimiter", "", "token separating trees")
	fl.StringVar(&flags.fromJSON, "from-json", "", "read the tree from a file written by export")
	return cmd
}

func writeSummary(w io.Writer, t *bst.Tree) {
	fmt.Fprintf(w, "nodes: %d\n", t.Len())
	fmt.Fprintf(w, "height: %d\n", t.Height())
	fmt.Fprintf(w, "min: %s\n", optional(t.MinValue()))
	fmt.Fprintf(w, "max: %s\n", optional(t.MaxValue()))
}

func writeQueries(w io.Writer, t *bst.Tree, f *queryFlags) {
	if f.min {
		fmt.Fprintf(w, "min: %s\n", optional(t.MinValue()))
	}
	if f.max {
		fmt.Fprintf(w, "max: %s\n", optional(t.MaxValue()))
	}
	for _, k := range f.search {
		found := "not found"
		if t.Search(k) != nil {
			found = "found"
		}
		fmt.Fprintf(w, "search %d: %s\n", k, found)
	}
	for _, k := range f.successor {
		fmt.Fprintf(w, "successor %d: %s\n", k, optional(t.SuccessorValue(k)))
	}
	for _, k := range f.predecessor {
		fmt.Fprintf(w, "predecessor %d: %s\n", k, optional(t.PredecessorValue(k)))
	}
}

func optional(v int, ok bool) string {
	if !ok {
		return "none"
	}
	return strconv.Itoa(v)
}
