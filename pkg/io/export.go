package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/bstviz/pkg/bst"
)

type treeDoc struct {
	Size   int      `json:"size"`
	Height int      `json:"height"`
	Root   *nodeDoc `json:"root"`
}

type nodeDoc struct {
	Value    int      `json:"value"`
	Metadata *string  `json:"metadata,omitempty"`
	Color    string   `json:"color,omitempty"`
	Left     *nodeDoc `json:"left"`
	Right    *nodeDoc `json:"right"`
}

func toDoc(n *bst.Node) *nodeDoc {
	if n == nil {
		return nil
	}
	d := &nodeDoc{Value: n.Value, Color: n.ColorTag(), Left: toDoc(n.Left()), Right: toDoc(n.Right())}
	if m, ok := n.Metadata(); ok {
		d.Metadata = &m
	}
	return d
}

// WriteJSON encodes the tree structure (keys, labels and colour tags, not
// the rendered diagram) as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(t *bst.Tree, w io.Writer) error {
	out := treeDoc{Size: t.Len(), Height: t.Height(), Root: toDoc(t.Root())}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a tree to a JSON file at path.
func ExportJSON(t *bst.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, f)
}
