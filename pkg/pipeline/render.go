package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/render"
	"github.com/matzehuels/bstviz/pkg/render/sink"
)

// treeRenderer renders one tree into several formats. Each pass over the
// tree would repeat the colour warnings, so only the first pass reports
// them. DOT source is shared by the Graphviz based formats.
type treeRenderer struct {
	tree   *bst.Tree
	opts   Options
	stats  render.Stats
	passes int
	dot    string
	hasDOT bool
}

func newTreeRenderer(t *bst.Tree, opts Options) *treeRenderer {
	return &treeRenderer{tree: t, opts: opts}
}

func (r *treeRenderer) renderOpts() []render.Option {
	ro := []render.Option{render.WithLayout(r.opts.Layout)}
	if r.passes > 0 {
		ro = append(ro, render.WithDiagnostics(bst.Discard))
	}
	r.passes++
	return ro
}

func (r *treeRenderer) record(s render.Stats) {
	if r.passes == 1 {
		r.stats = s
	}
}

func (r *treeRenderer) dotSource() string {
	if !r.hasDOT {
		var s render.Stats
		r.dot, s = sink.ToDOT(r.tree, r.renderOpts()...)
		r.record(s)
		r.hasDOT = true
	}
	return r.dot
}

// Render produces the artifact for one format.
func (r *treeRenderer) Render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatTikZ:
		var tikzOpts []sink.TikZOption
		if r.opts.Standalone {
			tikzOpts = append(tikzOpts, sink.WithStandalone())
		}
		data, s, err := sink.RenderTikZ(r.tree, r.renderOpts(), tikzOpts...)
		r.record(s)
		return data, err
	case FormatDOT:
		return []byte(r.dotSource()), nil
	case FormatSVG:
		return sink.RenderSVG(ctx, r.dotSource())
	case FormatPDF:
		return sink.RenderPDF(ctx, r.dotSource())
	case FormatPNG:
		return sink.RenderPNG(ctx, r.dotSource(), r.opts.PNGScale)
	case FormatJSON:
		data, s, err := sink.RenderJSON(r.tree, r.renderOpts()...)
		r.record(s)
		return data, err
	case FormatEvents:
		rec := sink.NewRecorder()
		s := render.Render(r.tree, rec, r.renderOpts()...)
		r.record(s)
		return []byte(rec.String() + "\n"), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Diagnose runs a pass without output when no format was rendered, so that
// artifacts served from the cache still report the colour warnings.
func (r *treeRenderer) Diagnose() {
	if r.passes > 0 {
		return
	}
	r.record(render.Render(r.tree, render.Discard, r.renderOpts()...))
}

// Stats returns the statistics of the first render pass.
func (r *treeRenderer) Stats() render.Stats { return r.stats }

// RenderTree renders t in every format of opts without caching.
func RenderTree(ctx context.Context, t *bst.Tree, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	tr := newTreeRenderer(t, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := tr.Render(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}
