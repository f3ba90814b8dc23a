// Package render turns a binary search tree into a coordinate-free diagram
// description.
//
// # Overview
//
// Rendering is a two-pass process:
//
//  1. [layout.Compute] walks the tree bottom-up and stores a sibling distance
//     on every internal node.
//  2. [Render] walks the annotated tree top-down and emits one label per node,
//     an explicit missing-child marker for every empty child slot, and the
//     sibling distances, through a [Sink].
//
// Sinks decide the concrete syntax. The [sink] subpackage provides TikZ,
// Graphviz DOT (and SVG/PDF/PNG through it), JSON and an in-memory recorder.
//
//	t := bst.FromValues([]int{4, 2, 6})
//	var buf bytes.Buffer
//	render.Render(t, sink.NewTikZ(&buf), render.WithLayout(layout.DefaultConfig()))
//
// # Labels
//
// A node's label follows [bst.Node.Display]: metadata labels are boxed
// (or plain when they start with [bst.LabelSentinel]), black nodes are filled
// dark, red nodes filled light and unknown colours use a warning fill.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG output using the external rsvg-convert tool
// (from librsvg).
//
// [layout.Compute]: github.com/matzehuels/bstviz/pkg/render/layout.Compute
// [sink]: github.com/matzehuels/bstviz/pkg/render/sink
package render
