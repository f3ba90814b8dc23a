// Package pkg provides the core libraries for bstviz binary search tree
// visualization.
//
// # Overview
//
// bstviz builds unbalanced binary search trees from key records and draws
// them so that sibling subtrees never overlap. The pkg directory is organized
// as follows:
//
//  1. [bst] - The tree itself (insert, search, delete, traversals, neighbours)
//  2. [io] - Record parsing and JSON import/export
//  3. [render] - Layout and diagram emission through sinks
//  4. [pipeline] - Orchestration (parse → layout → render → cache)
//  5. [cache] - Artifact caches (file, Redis, null)
//
// # Architecture
//
// The typical data flow through bstviz:
//
//	Key records ("5 3 8 1:x 4@red ; 9")
//	         ↓
//	    [io] package (parse records, one tree per group)
//	         ↓
//	    [bst] package (unbalanced search tree)
//	         ↓
//	    [render/layout] package (bottom-up sibling distances)
//	         ↓
//	    [render/sink] package (TikZ, DOT, JSON, recorder)
//	         ↓
//	    TikZ/DOT/SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	import (
//	    "os"
//	    "github.com/matzehuels/bstviz/pkg/bst"
//	    "github.com/matzehuels/bstviz/pkg/render"
//	    "github.com/matzehuels/bstviz/pkg/render/layout"
//	    "github.com/matzehuels/bstviz/pkg/render/sink"
//	)
//
//	t := bst.FromValues([]int{5, 3, 8, 1, 4})
//	render.Render(t, sink.NewTikZ(os.Stdout), render.WithLayout(layout.DefaultConfig()))
//
// # Main Packages
//
// [errors] - Coded errors (INVALID_INPUT, INVALID_CONFIG, ...) shared by the
// CLI and the HTTP service.
//
// [observability] - Hooks for pipeline and HTTP events. The default hooks do
// nothing; [observability.NewLogHooks] reports through a charm logger.
//
// [buildinfo] - Version information injected at build time.
//
// [bst]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/bst
// [io]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/render
// [render/layout]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/render/layout
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/observability
// [observability.NewLogHooks]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/observability#NewLogHooks
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bstviz/pkg/buildinfo
package pkg
