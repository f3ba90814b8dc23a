package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

// DefaultDelimiter separates independent trees in a record stream.
const DefaultDelimiter = ";"

// Record is one parsed input token.
type Record struct {
	Key      int
	Label    string
	HasLabel bool
	Color    string
	HasColor bool
}

// Insert adds the record to t and returns the new node.
func (r Record) Insert(t *bst.Tree) *bst.Node {
	switch {
	case r.HasLabel:
		return t.InsertWithMetadata(r.Key, r.Label)
	case r.HasColor:
		return t.InsertWithColorTag(r.Key, r.Color)
	default:
		return t.Insert(r.Key)
	}
}

func (r Record) String() string {
	switch {
	case r.HasLabel:
		return strconv.Itoa(r.Key) + ":" + r.Label
	case r.HasColor:
		return strconv.Itoa(r.Key) + "@" + r.Color
	default:
		return strconv.Itoa(r.Key)
	}
}

// ParseRecord parses a single token of the form KEY, KEY:LABEL or KEY@COLOR.
// The key must be a decimal integer. Everything after the first ':' is the
// label, so labels may themselves contain ':' or '@'.
func ParseRecord(token string) (Record, error) {
	i := strings.IndexAny(token, ":@")
	keyPart := token
	if i >= 0 {
		keyPart = token[:i]
	}

	key, err := strconv.Atoi(keyPart)
	if err != nil {
		return Record{}, errors.New(errors.ErrCodeInvalidInput, "invalid key in record %q", token)
	}
	rec := Record{Key: key}
	if i < 0 {
		return rec, nil
	}

	rest := token[i+1:]
	if token[i] == ':' {
		if err := errors.ValidateLabel(rest); err != nil {
			return Record{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "record %q", token)
		}
		rec.Label, rec.HasLabel = rest, true
		return rec, nil
	}

	if rest == "" {
		return Record{}, errors.New(errors.ErrCodeInvalidInput, "empty color in record %q", token)
	}
	rec.Color, rec.HasColor = rest, true
	return rec, nil
}

// ReadOptions configures ReadTrees.
type ReadOptions struct {
	// Delimiter is the token that separates trees. Defaults to ";".
	Delimiter string
	// Diagnostics receives the warnings of the built trees.
	Diagnostics bst.Diagnostics
}

// ReadTrees reads whitespace-separated records from r and builds one tree per
// delimiter-separated group. Empty groups are skipped, but input without any
// record yields a single empty tree so callers always have something to
// render.
func ReadTrees(r io.Reader, opts ReadOptions) ([]*bst.Tree, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	if err := errors.ValidateDelimiter(delim); err != nil {
		return nil, err
	}

	var treeOpts []bst.Option
	if opts.Diagnostics != nil {
		treeOpts = append(treeOpts, bst.WithDiagnostics(opts.Diagnostics))
	}

	var (
		trees []*bst.Tree
		cur   *bst.Tree
	)
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		tok := sc.Text()
		if tok == delim {
			cur = nil
			continue
		}
		rec, err := ParseRecord(tok)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			cur = bst.New(treeOpts...)
			trees = append(trees, cur)
		}
		rec.Insert(cur)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	if len(trees) == 0 {
		trees = append(trees, bst.New(treeOpts...))
	}
	return trees, nil
}

// ParseArgs builds trees from command-line arguments, each argument being
// one record or the delimiter.
func ParseArgs(args []string, opts ReadOptions) ([]*bst.Tree, error) {
	return ReadTrees(strings.NewReader(strings.Join(args, " ")), opts)
}

// ReadJSON decodes a tree written by [WriteJSON]. Nodes are re-inserted in
// pre-order, which rebuilds the exact shape of any well-formed search tree.
// A document whose nesting breaks the ordering rule is rejected.
func ReadJSON(r io.Reader, opts ...bst.Option) (*bst.Tree, error) {
	var doc treeDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tree")
	}

	t := bst.New(opts...)
	if err := insertDoc(t, doc.Root, nil, nil); err != nil {
		return nil, err
	}
	return t, nil
}

// insertDoc inserts n and its subtrees. Keys must satisfy lo <= key < hi.
func insertDoc(t *bst.Tree, n *nodeDoc, lo, hi *int) error {
	if n == nil {
		return nil
	}
	if (lo != nil && n.Value < *lo) || (hi != nil && n.Value >= *hi) {
		return errors.New(errors.ErrCodeInvalidInput, "node %d violates search tree order", n.Value)
	}

	node := t.Insert(n.Value)
	if n.Metadata != nil {
		node.SetMetadata(*n.Metadata)
	} else if n.Color != "" {
		node.SetColorTag(n.Color)
	}

	v := n.Value
	if err := insertDoc(t, n.Left, lo, &v); err != nil {
		return err
	}
	return insertDoc(t, n.Right, &v, hi)
}

// ImportJSON reads a JSON tree file at path.
func ImportJSON(path string, opts ...bst.Option) (*bst.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}
