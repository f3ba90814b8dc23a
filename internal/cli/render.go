package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by commands that render.
// Values left unset fall back to the config file.
type renderFlags struct {
	formats    string  // comma-separated output formats
	output     string  // output file, or base path for several artifacts
	scale      float64 // distance scale factor
	base       float64 // distance base offset
	max        float64 // distance cap, 0 for none
	standalone bool    // wrap TikZ output in a complete document
	delimiter  string  // tree separator token
	noCache    bool    // bypass the artifact cache
	refresh    bool    // re-render and overwrite cached artifacts
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	fl.StringVarP(&f.output, "output", "o", "", "output file (single artifact) or base path (several); stdout if empty")
	fl.Float64Var(&f.scale, "distance-scale", 0, "sibling distance scale factor")
	fl.Float64Var(&f.base, "distance-base", 0, "sibling distance base offset")
	fl.Float64Var(&f.max, "distance-max", 0, "maximum sibling distance (0 for no cap)")
	fl.BoolVar(&f.standalone, "standalone", false, "emit a complete LaTeX document for tikz")
	fl.StringVar(&f.delimiter, "delimiter", "", "token separating trees (default \";\")")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts and render again")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// options merges flags over the loaded config: flags > file > defaults.
func (f *renderFlags) options(cmd *cobra.Command, cfg Config) pipeline.Options {
	fl := cmd.Flags()
	opts := pipeline.Options{
		Formats:    parseFormats(cfg.Render.Format),
		Layout:     cfg.Layout,
		Standalone: cfg.Render.Standalone,
		Delimiter:  cfg.Render.Delimiter,
		Refresh:    f.refresh,
	}
	if fl.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fl.Changed("distance-scale") {
		opts.Layout.SetScale(f.scale)
	}
	if fl.Changed("distance-base") {
		opts.Layout.SetBase(f.base)
	}
	if fl.Changed("distance-max") {
		opts.Layout.SetMax(f.max)
	}
	if fl.Changed("standalone") {
		opts.Standalone = f.standalone
	}
	if fl.Changed("delimiter") {
		opts.Delimiter = f.delimiter
	}
	return opts
}

// renderCommand creates the render command.
//
// With no output path the artifacts are written to stdout, which for the
// default tikz format is a tikzpicture ready for \input.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [keys...]",
		Short: "Render binary search trees",
		Long: `Render builds one tree per ";"-separated group of records and renders it.

Records are read from the arguments, or from stdin when no arguments or a
single "-" are given.`,
		Example: `  bstviz render 5 3 8 1 4
  bstviz render 5:root 3@red 8@black --format tikz --standalone -o tree.tex
  echo "2 1 3 ; 10 20" | bstviz render -f svg,png -o trees`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), input, opts)
			if err != nil {
				return err
			}
			return c.writeResult(cmd, res, opts.Formats, flags.output)
		},
	}

	flags.register(cmd)
	return cmd
}

// renderTrees renders already built trees, used after in-place edits.
func (c *CLI) renderTrees(cmd *cobra.Command, trees []*bst.Tree, flags *renderFlags) error {
	ctx := cmd.Context()
	opts := flags.options(cmd, c.Config)
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.ExecuteTrees(ctx, trees, opts)
	if err != nil {
		return err
	}
	return c.writeResult(cmd, res, opts.Formats, flags.output)
}

// writeResult writes every artifact, to stdout when output is empty.
func (c *CLI) writeResult(cmd *cobra.Command, res *pipeline.Result, formats []string, output string) error {
	if output == "" {
		return writeArtifacts(cmd.OutOrStdout(), res, formats)
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(cmd.Context()))
	paths := outputPaths(output, len(res.Trees), formats)
	spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Writing %d files...", len(paths)))
	spinner.Start()

	written := make([]string, 0, len(paths))
	for _, tr := range res.Trees {
		for _, f := range formats {
			path := paths[len(written)]
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					spinner.StopWithError("Write failed")
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			if err := os.WriteFile(path, tr.Artifacts[f], 0o644); err != nil {
				spinner.StopWithError("Write failed")
				return fmt.Errorf("write %s: %w", path, err)
			}
			written = append(written, path)
		}
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d trees", res.Stats.Trees))

	printSuccess("Rendered %d artifacts", len(written))
	printStats(res)
	for _, p := range written {
		printFile(p)
	}
	for _, p := range written {
		if strings.HasSuffix(p, ".tex") {
			printNextStep("Compile", "pdflatex "+p)
			break
		}
	}
	return nil
}

// writeArtifacts streams artifacts tree by tree in format order.
func writeArtifacts(w io.Writer, res *pipeline.Result, formats []string) error {
	for _, tr := range res.Trees {
		for _, f := range formats {
			if _, err := w.Write(tr.Artifacts[f]); err != nil {
				return err
			}
		}
	}
	return nil
}

// outputPaths derives one path per artifact. A single artifact is written
// to output as given; otherwise the format extension is stripped from output
// and the tree index and format extension are appended:
//
//	out.tex, 1 tree,  [tikz]      -> out.tex
//	out.tex, 1 tree,  [tikz svg]  -> out.tex, out.svg
//	out,     2 trees, [svg]       -> out_0.svg, out_1.svg
func outputPaths(output string, trees int, formats []string) []string {
	if trees == 1 && len(formats) == 1 {
		return []string{output}
	}
	base := basePath(output)
	paths := make([]string, 0, trees*len(formats))
	for i := 0; i < trees; i++ {
		for _, f := range formats {
			name := base
			if trees > 1 {
				name = fmt.Sprintf("%s_%d", base, i)
			}
			paths = append(paths, name+pipeline.Extension(f))
		}
	}
	return paths
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	for _, f := range pipeline.FormatNames() {
		if pipeline.Extension(f) == ext {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
