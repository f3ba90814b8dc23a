// Package io reads search trees from record streams and converts trees to and
// from JSON.
//
// # Records
//
// Input is a whitespace-separated list of records:
//
//	KEY          plain key, e.g. 42
//	KEY:LABEL    key with a display label, e.g. 5:0101 (boxed) or 5:#x (unboxed)
//	KEY@COLOR    key with a colour tag, e.g. 7@black, 3@r
//
// A token equal to the delimiter (";" by default) closes the current tree
// and starts a new one:
//
//	trees, err := io.ReadTrees(os.Stdin, io.ReadOptions{Diagnostics: logger})
//
// Keys that are not decimal integers are rejected with an INVALID_INPUT
// error from [github.com/matzehuels/bstviz/pkg/errors].
//
// # JSON Format
//
// [WriteJSON] exports the logical tree, not the rendered diagram:
//
//	{
//	  "size": 3,
//	  "height": 2,
//	  "root": {
//	    "value": 2,
//	    "color": "black",
//	    "left": {"value": 1, "left": null, "right": null},
//	    "right": {"value": 3, "metadata": "11", "left": null, "right": null}
//	  }
//	}
//
// [ReadJSON] rebuilds the same tree. For the diagram with computed sibling
// distances use the JSON sink in pkg/render/sink.
package io
