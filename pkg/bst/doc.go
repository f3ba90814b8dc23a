// Package bst provides an unbalanced binary search tree of integer keys built
// for rendering.
//
// # Overview
//
// Keys smaller than a node go to its left subtree; equal or greater keys go
// to its right subtree. Duplicates are allowed and reported through the
// tree's [Diagnostics] reporter. The tree never rotates, so its shape is
// exactly the shape implied by the insertion order.
//
// Nodes may carry a metadata label (for example a Huffman code) or a colour
// tag. [Node.Display] resolves which of the two, if any, a renderer should
// draw.
//
// # Usage
//
//	t := bst.New(bst.WithDiagnostics(logger))
//	for _, v := range []int{4, 3, 2, 1, 6, 5, 7} {
//	    t.Insert(v)
//	}
//	next, _ := t.SuccessorValue(4) // 5
//	t.Delete(4)
//	fmt.Println(t.Values(bst.InOrder)) // [1 2 3 5 6 7]
//
// # Deletion
//
// A node with at most one child is unlinked and its child takes its place.
// A node with two children copies the key, label and colour of its in-order
// successor, and the successor (which has no left child) is unlinked instead.
//
// # Concurrency
//
// A Tree is owned by a single goroutine. Independent trees may be built and
// rendered in parallel.
package bst
