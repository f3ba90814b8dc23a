package sink

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/render"
	"github.com/matzehuels/bstviz/pkg/render/layout"
)

var testLayout = []render.Option{render.WithLayout(layout.New(layout.WithScale(2), layout.WithBase(10)))}

func TestTikZBalanced(t *testing.T) {
	out, stats, err := RenderTikZ(bst.FromValues([]int{2, 1, 3}), testLayout)
	if err != nil {
		t.Fatal(err)
	}

	want := "\\centering\n" +
		"\\begin{tikzpicture}[every node/.style={circle,draw}, sibling distance=20.000000mm]\n" +
		"\\node {2}\n" +
		"child {[anchor=north,sibling distance=0.000000mm]\n" +
		"node {1}  child [missing]  child [missing] }\n" +
		"child {[anchor=north,sibling distance=0.000000mm]\n" +
		"node {3}  child [missing]  child [missing] }\n" +
		";\\end{tikzpicture}\n"
	if string(out) != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", out, want)
	}
	if stats.Nodes != 3 || stats.Missing != 4 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestTikZEmpty(t *testing.T) {
	out, _, err := RenderTikZ(bst.New(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "\\centering\n\\begin{tikzpicture};\\end{tikzpicture}\n"
	if string(out) != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestTikZStandalone(t *testing.T) {
	out, _, err := RenderTikZ(bst.FromValues([]int{1}), testLayout, WithStandalone())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "\\documentclass[tikz,border=2mm]{standalone}\n\\begin{document}\n") {
		t.Errorf("missing preamble:\n%s", s)
	}
	if !strings.HasSuffix(s, ";\\end{tikzpicture}\n\\end{document}\n") {
		t.Errorf("missing document end:\n%s", s)
	}
	if strings.Contains(s, "\\centering") {
		t.Error("standalone output should not be centered")
	}
}

func TestTikZStyles(t *testing.T) {
	tr := bst.New()
	tr.InsertWithColor(10, bst.Black)
	tr.InsertWithColor(5, bst.Red)
	tr.InsertWithMetadata(15, "10_1")
	tr.InsertWithColorTag(20, "purple")

	out, _, err := RenderTikZ(tr, nil, WithNodeStyle("circle,draw,thick"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{
		"every node/.style={circle,draw,thick}",
		"\\node[fill=black,text=white] {10}",
		"node[fill=red!50] {5}",
		"node[rectangle,draw] {10\\_1}",
		"node[fill=yellow] {20}",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestEscapeTeX(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a_b", `a\_b`},
		{"50%", `50\%`},
		{`\x`, `\textbackslash{}x`},
		{"{x}", `\{x\}`},
	}
	for _, tt := range tests {
		if got := escapeTeX(tt.in); got != tt.want {
			t.Errorf("escapeTeX(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("disk full")
}

func TestTikZStickyError(t *testing.T) {
	w := &failingWriter{}
	s := NewTikZ(w)
	render.Render(bst.FromValues([]int{2, 1, 3}), s)

	if s.Err() == nil {
		t.Fatal("expected write error")
	}
	if w.n != 1 {
		t.Errorf("writer called %d times after failure, want 1", w.n)
	}
}

func TestTikZReusesWriter(t *testing.T) {
	var buf bytes.Buffer
	s := NewTikZ(&buf)
	render.Render(bst.FromValues([]int{1}), s)
	render.Render(bst.FromValues([]int{2}), s)
	if got := strings.Count(buf.String(), "\\begin{tikzpicture}"); got != 2 {
		t.Errorf("got %d pictures, want 2", got)
	}
}
