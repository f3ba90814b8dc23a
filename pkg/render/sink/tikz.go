package sink

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/render"
)

// TikZOption configures a TikZ sink.
type TikZOption func(*TikZ)

// WithStandalone wraps the picture in a compilable standalone LaTeX document.
func WithStandalone() TikZOption { return func(t *TikZ) { t.standalone = true } }

// WithNodeStyle replaces the default "circle,draw" node style.
func WithNodeStyle(style string) TikZOption { return func(t *TikZ) { t.nodeStyle = style } }

// TikZ writes a LaTeX TikZ tree picture. Sibling distances are emitted in
// millimetres and empty child slots become "child [missing]" so that a lone
// child keeps its left or right position.
//
// Write errors are sticky: the first one is kept and reported by Err, and
// later events are dropped.
type TikZ struct {
	w          io.Writer
	err        error
	standalone bool
	nodeStyle  string
	atRoot     bool
}

// NewTikZ returns a TikZ sink writing to w.
func NewTikZ(w io.Writer, opts ...TikZOption) *TikZ {
	t := &TikZ{w: w, nodeStyle: "circle,draw"}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Err returns the first write error, if any.
func (t *TikZ) Err() error { return t.err }

func (t *TikZ) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *TikZ) BeginRoot(hasSpacing bool, spacing float64) {
	if t.standalone {
		t.printf("\\documentclass[tikz,border=2mm]{standalone}\n\\begin{document}\n")
	} else {
		t.printf("\\centering\n")
	}
	t.printf("\\begin{tikzpicture}")
	if hasSpacing {
		t.printf("[every node/.style={%s}, sibling distance=%fmm]\n", t.nodeStyle, spacing)
	}
	t.atRoot = true
}

func (t *TikZ) Label(text string, style render.Style) {
	if t.atRoot {
		t.printf("\\node%s {%s}\n", tikzOptions(style), escapeTeX(text))
		t.atRoot = false
		return
	}
	t.printf("node%s {%s} ", tikzOptions(style), escapeTeX(text))
}

func (t *TikZ) BeginChild(spacing float64) {
	t.printf("child {[anchor=north,sibling distance=%fmm]\n", spacing)
}

func (t *TikZ) EndChild()     { t.printf("}\n") }
func (t *TikZ) MissingChild() { t.printf(" child [missing] ") }

func (t *TikZ) EndRoot() {
	t.printf(";\\end{tikzpicture}\n")
	if t.standalone {
		t.printf("\\end{document}\n")
	}
}

func tikzOptions(s render.Style) string {
	switch s {
	case render.StyleBoxed:
		return "[rectangle,draw]"
	case render.StyleFilledDark:
		return "[fill=black,text=white]"
	case render.StyleFilledLight:
		return "[fill=red!50]"
	case render.StyleFilledWarning:
		return "[fill=yellow]"
	default:
		return ""
	}
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeTeX(s string) string { return texEscaper.Replace(s) }

// RenderTikZ renders t as a TikZ picture.
func RenderTikZ(t *bst.Tree, opts []render.Option, tikzOpts ...TikZOption) ([]byte, render.Stats, error) {
	var buf bytes.Buffer
	s := NewTikZ(&buf, tikzOpts...)
	stats := render.Render(t, s, opts...)
	return buf.Bytes(), stats, s.Err()
}

var _ render.Sink = (*TikZ)(nil)
