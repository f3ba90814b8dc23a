package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/render"
)

// mmPerInch converts sibling distances (millimetres) to Graphviz inches.
const mmPerInch = 25.4

// DOT builds a Graphviz digraph from the render events. Missing children are
// drawn as invisible placeholder nodes so that Graphviz keeps a lone child on
// its side, and the root sibling distance drives nodesep.
type DOT struct {
	buf   bytes.Buffer
	stack []string
	next  int
}

// NewDOT returns an empty DOT sink.
func NewDOT() *DOT { return &DOT{} }

func (d *DOT) id() string {
	id := "n" + strconv.Itoa(d.next)
	d.next++
	return id
}

func (d *DOT) BeginRoot(hasSpacing bool, spacing float64) {
	d.buf.Reset()
	d.stack = d.stack[:0]
	d.next = 0

	nodesep := 0.25
	if hasSpacing && spacing > 0 {
		nodesep = max(nodesep, spacing/mmPerInch/4)
	}
	d.buf.WriteString("digraph T {\n")
	d.buf.WriteString("  bgcolor=\"transparent\";\n")
	d.buf.WriteString("  ordering=out;\n")
	fmt.Fprintf(&d.buf, "  nodesep=%.3f;\n", nodesep)
	d.buf.WriteString("  ranksep=0.4;\n")
	d.buf.WriteString("  node [shape=circle, fontsize=14, fixedsize=false];\n")
	d.buf.WriteString("  edge [arrowhead=none];\n")
	d.buf.WriteString("\n")

	d.stack = append(d.stack, d.id())
}

func (d *DOT) current() string { return d.stack[len(d.stack)-1] }

func (d *DOT) Label(text string, style render.Style) {
	attrs := append([]string{"label=" + dotQuote(text)}, dotAttrs(style)...)
	fmt.Fprintf(&d.buf, "  %s [%s];\n", d.current(), strings.Join(attrs, ", "))
}

func (d *DOT) BeginChild(spacing float64) {
	parent := d.current()
	child := d.id()
	fmt.Fprintf(&d.buf, "  %s -> %s [comment=\"sibling distance %.2fmm\"];\n", parent, child, spacing)
	d.stack = append(d.stack, child)
}

func (d *DOT) EndChild() { d.stack = d.stack[:len(d.stack)-1] }

func (d *DOT) MissingChild() {
	id := d.id()
	fmt.Fprintf(&d.buf, "  %s [label=\"\", style=invis, width=0.1];\n", id)
	fmt.Fprintf(&d.buf, "  %s -> %s [style=invis];\n", d.current(), id)
}

func (d *DOT) EndRoot() { d.buf.WriteString("}\n") }

// String returns the DOT source. It is only complete after EndRoot.
func (d *DOT) String() string { return d.buf.String() }

// dotQuote quotes text as a DOT string. Backslashes are doubled so that
// Graphviz does not read \N, \G or \l as escapes, a newline becomes the \n
// line break, and other control characters turn into spaces.
func dotQuote(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('"')
	for _, r := range text {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func dotAttrs(s render.Style) []string {
	switch s {
	case render.StyleBoxed:
		return []string{"shape=box"}
	case render.StyleFilledDark:
		return []string{"style=filled", "fillcolor=black", "fontcolor=white"}
	case render.StyleFilledLight:
		return []string{"style=filled", "fillcolor=\"#ff8080\""}
	case render.StyleFilledWarning:
		return []string{"style=filled", "fillcolor=yellow"}
	default:
		return nil
	}
}

// ToDOT renders t as Graphviz DOT source.
func ToDOT(t *bst.Tree, opts ...render.Option) (string, render.Stats) {
	d := NewDOT()
	stats := render.Render(t, d, opts...)
	return d.String(), stats
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// viewBox so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

var _ render.Sink = (*DOT)(nil)
