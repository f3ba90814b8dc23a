package render

import (
	"strconv"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/render/layout"
)

// Style is the visual treatment of a node label.
type Style int

const (
	StylePlain Style = iota
	StyleBoxed
	StyleFilledDark
	StyleFilledLight
	StyleFilledWarning
)

var styleNames = map[Style]string{
	StylePlain:         "plain",
	StyleBoxed:         "boxed",
	StyleFilledDark:    "filled_dark",
	StyleFilledLight:   "filled_light",
	StyleFilledWarning: "filled_warning",
}

// String returns the snake_case style name used in JSON output.
func (s Style) String() string { return styleNames[s] }

// Sink receives the diagram description of a tree as a stream of events.
//
// For a non-empty tree the sequence is:
//
//	BeginRoot(true, rootSpacing)
//	Label(root)
//	  for each child slot, left then right:
//	    MissingChild()                    if the slot is empty
//	    BeginChild(spacing) Label(...) <child slots> EndChild()   otherwise
//	EndRoot()
//
// An empty tree produces BeginRoot(false, 0) followed by EndRoot().
type Sink interface {
	BeginRoot(hasSpacing bool, spacing float64)
	Label(text string, style Style)
	BeginChild(spacing float64)
	EndChild()
	MissingChild()
	EndRoot()
}

type discard struct{}

func (discard) BeginRoot(bool, float64) {}
func (discard) Label(string, Style)     {}
func (discard) BeginChild(float64)      {}
func (discard) EndChild()               {}
func (discard) MissingChild()           {}
func (discard) EndRoot()                {}

// Discard is a Sink that drops every event. Rendering into it still raises
// the colour warnings.
var Discard Sink = discard{}

// Warning messages emitted while rendering coloured trees.
const (
	MsgUnknownColor = "unknown color"
	MsgRedRoot      = "root should be colored BLACK"
	MsgRedParent    = "red node must not have a red parent"
)

// Option configures Render.
type Option func(*renderer)

// WithLayout sets the distance configuration used for the layout pass.
func WithLayout(cfg layout.Config) Option { return func(r *renderer) { r.layout = cfg } }

// WithDiagnostics routes rendering warnings to d instead of the tree's own
// reporter.
func WithDiagnostics(d bst.Diagnostics) Option {
	return func(r *renderer) {
		if d != nil {
			r.diag = d
		}
	}
}

// Stats summarizes one Render call.
type Stats struct {
	Nodes    int     // nodes emitted
	Missing  int     // empty child slots emitted
	Warnings int     // diagnostics raised while rendering
	Spacing  float64 // root sibling distance
}

type renderer struct {
	layout layout.Config
	diag   bst.Diagnostics
	sink   Sink
	stats  Stats
}

// Render computes the layout of t in place and then drives s with the
// diagram description of the annotated tree. Colour warnings are advisory
// and never stop the walk.
func Render(t *bst.Tree, s Sink, opts ...Option) Stats {
	r := renderer{layout: layout.DefaultConfig(), diag: t.Diagnostics(), sink: s}
	for _, opt := range opts {
		opt(&r)
	}

	root := t.Root()
	layout.Compute(root, r.layout)

	if root == nil {
		s.BeginRoot(false, 0)
		s.EndRoot()
		return r.stats
	}

	r.stats.Spacing = root.Metric
	s.BeginRoot(true, root.Metric)
	r.label(root)
	r.children(root)
	s.EndRoot()
	return r.stats
}

func (r *renderer) children(n *bst.Node) {
	for _, c := range [2]*bst.Node{n.Left(), n.Right()} {
		if c == nil {
			r.stats.Missing++
			r.sink.MissingChild()
			continue
		}
		r.sink.BeginChild(c.Metric)
		r.label(c)
		r.children(c)
		r.sink.EndChild()
	}
}

func (r *renderer) label(n *bst.Node) {
	r.stats.Nodes++
	text, style := r.resolve(n)
	r.sink.Label(text, style)
}

// resolve maps a node's display content to label text and style, raising
// the colour diagnostics on the way.
func (r *renderer) resolve(n *bst.Node) (string, Style) {
	d := n.Display()
	switch d.Kind {
	case bst.DisplayLabeled:
		if d.Boxed {
			return d.Text, StyleBoxed
		}
		return d.Text, StylePlain
	case bst.DisplayColored:
		text := strconv.Itoa(d.Value)
		switch d.Color {
		case bst.Black:
			return text, StyleFilledDark
		case bst.Red:
			r.checkRed(n)
			return text, StyleFilledLight
		default:
			r.warn(MsgUnknownColor, "value", d.Value, "color", d.Tag)
			return text, StyleFilledWarning
		}
	default:
		return strconv.Itoa(d.Value), StylePlain
	}
}

// checkRed reports red adjacency problems. It does not verify black height
// and is not a red-black tree validator.
func (r *renderer) checkRed(n *bst.Node) {
	p := n.Parent()
	switch {
	case p == nil:
		r.warn(MsgRedRoot, "value", n.Value)
	case p.Color() == bst.Red:
		r.warn(MsgRedParent, "value", n.Value, "parent", p.Value)
	}
}

func (r *renderer) warn(msg string, keyvals ...any) {
	r.stats.Warnings++
	r.diag.Warn(msg, keyvals...)
}
