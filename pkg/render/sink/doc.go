// Package sink provides output formats for rendered trees.
//
// # Overview
//
// A sink receives the event stream produced by [render.Render] and turns it
// into a concrete format:
//
//   - [TikZ]: LaTeX TikZ tree picture (optionally a standalone document)
//   - [DOT]: Graphviz digraph, convertible to SVG, PDF and PNG
//   - [JSON]: nested diagram document for external tools
//   - [Recorder]: in-memory event log, mostly for tests and debugging
//
// Basic usage:
//
//	var buf bytes.Buffer
//	tikz := sink.NewTikZ(&buf, sink.WithStandalone())
//	render.Render(tree, tikz)
//	if err := tikz.Err(); err != nil { ... }
//
// The RenderTikZ, ToDOT and RenderJSON helpers wrap the two steps.
//
// # SVG, PDF and PNG
//
// [RenderSVG] lays out DOT source with Graphviz (goccy/go-graphviz, no
// system install needed). [RenderPDF] and [RenderPNG] convert that SVG with
// rsvg-convert, which requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.Render]: github.com/matzehuels/bstviz/pkg/render.Render
package sink
