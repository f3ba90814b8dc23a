package bst

// Diagnostics receives advisory warnings (duplicate keys, deletes of absent
// keys, colour problems). *log.Logger from charmbracelet/log satisfies it.
type Diagnostics interface {
	Warn(msg any, keyvals ...any)
}

type discard struct{}

func (discard) Warn(any, ...any) {}

// Discard is a Diagnostics that drops every warning.
var Discard Diagnostics = discard{}

// Warning messages emitted on the diagnostics channel.
const (
	MsgDuplicateKey = "inserting a duplicated value"
	MsgDeleteEmpty  = "delete on an empty tree"
	MsgKeyNotFound  = "value not found"
)

// Tree is a handle to a possibly empty, unbalanced binary search tree.
// Keys in a node's left subtree are smaller than its key; keys in its right
// subtree are greater or equal.
//
// The zero value is an empty tree that discards diagnostics. A Tree is not
// safe for concurrent use.
type Tree struct {
	root *Node
	size int
	diag Diagnostics
}

// Option configures a Tree.
type Option func(*Tree)

// WithDiagnostics routes warnings to d.
func WithDiagnostics(d Diagnostics) Option {
	return func(t *Tree) {
		if d != nil {
			t.diag = d
		}
	}
}

// New returns an empty tree. No nodes are allocated.
func New(opts ...Option) *Tree {
	t := &Tree{diag: Discard}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromValues builds a tree by inserting values in order.
func FromValues(values []int, opts ...Option) *Tree {
	t := New(opts...)
	for _, v := range values {
		t.Insert(v)
	}
	return t
}

// Diagnostics returns the tree's warning reporter.
func (t *Tree) Diagnostics() Diagnostics {
	if t.diag == nil {
		return Discard
	}
	return t.diag
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// IsEmpty reports whether the tree holds no nodes.
func (t *Tree) IsEmpty() bool { return t.root == nil }

// Len returns the number of nodes.
func (t *Tree) Len() int { return t.size }

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int { return height(t.root) }

// Insert adds value and returns the new node so that callers can attach a
// label or colour. Duplicates are inserted to the right of their equal and
// reported once per call.
func (t *Tree) Insert(value int) *Node {
	var prev *Node
	dup := false
	for cur := t.root; cur != nil; {
		prev = cur
		if value == cur.Value {
			dup = true
		}
		if value < cur.Value {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	if dup {
		t.Diagnostics().Warn(MsgDuplicateKey, "value", value)
	}

	n := &Node{Value: value, parent: prev}
	switch {
	case prev == nil:
		t.root = n
	case value < prev.Value:
		prev.left = n
	default:
		prev.right = n
	}
	t.size++
	return n
}

// InsertWithMetadata inserts value and labels the new node with text.
func (t *Tree) InsertWithMetadata(value int, text string) *Node {
	n := t.Insert(value)
	n.SetMetadata(text)
	return n
}

// InsertWithColor inserts value and tags the new node with c.
func (t *Tree) InsertWithColor(value int, c Color) *Node {
	n := t.Insert(value)
	n.SetColor(c)
	return n
}

// InsertWithColorTag inserts value and tags the new node with the parsed
// colour, keeping the raw tag for diagnostics.
func (t *Tree) InsertWithColorTag(value int, tag string) *Node {
	n := t.Insert(value)
	n.SetColorTag(tag)
	return n
}

// Search returns the first node on the descent path holding value, or nil.
func (t *Tree) Search(value int) *Node {
	cur := t.root
	for cur != nil && cur.Value != value {
		if value < cur.Value {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return cur
}

// Min returns the node with the smallest key, or nil for an empty tree.
func (t *Tree) Min() *Node { return Min(t.root) }

// Max returns the node with the largest key, or nil for an empty tree.
func (t *Tree) Max() *Node { return Max(t.root) }

// MinValue returns the smallest key.
func (t *Tree) MinValue() (int, bool) { return value(t.Min()) }

// MaxValue returns the largest key.
func (t *Tree) MaxValue() (int, bool) { return value(t.Max()) }

// SuccessorValue returns the key following value in order. It reports false
// if value is absent or is the largest key.
func (t *Tree) SuccessorValue(v int) (int, bool) {
	n := t.Search(v)
	if n == nil {
		return 0, false
	}
	return value(Successor(n))
}

// PredecessorValue returns the key preceding value in order. It reports false
// if value is absent or is the smallest key.
func (t *Tree) PredecessorValue(v int) (int, bool) {
	n := t.Search(v)
	if n == nil {
		return 0, false
	}
	return value(Predecessor(n))
}

func value(n *Node) (int, bool) {
	if n == nil {
		return 0, false
	}
	return n.Value, true
}

// Delete removes one node holding value and reports whether it did. A node
// with two children takes over the key, label and colour of its successor,
// which is unlinked instead. Deleting from an empty tree or deleting an
// absent key only emits a warning.
func (t *Tree) Delete(value int) bool {
	if t.root == nil {
		t.Diagnostics().Warn(MsgDeleteEmpty, "value", value)
		return false
	}
	n := t.Search(value)
	if n == nil {
		t.Diagnostics().Warn(MsgKeyNotFound, "value", value)
		return false
	}
	return t.DeleteNode(n)
}

// DeleteNode removes n itself rather than the first node found by key, which
// matters once duplicate keys carry different labels or colours. It reports
// false when n is nil or belongs to another tree.
func (t *Tree) DeleteNode(n *Node) bool {
	if n == nil || !t.owns(n) {
		return false
	}

	victim := n
	if n.left != nil && n.right != nil {
		victim = Successor(n)
	}

	child := victim.left
	if child == nil {
		child = victim.right
	}
	if child != nil {
		child.parent = victim.parent
	}
	t.replace(victim.parent, victim, child)

	if victim != n {
		n.copyPayload(victim)
	}
	victim.parent, victim.left, victim.right = nil, nil, nil
	t.size--
	return true
}

func (t *Tree) owns(n *Node) bool {
	for n.parent != nil {
		n = n.parent
	}
	return n == t.root
}

// replace puts repl into old's slot under parent, or makes it the root when
// parent is nil.
func (t *Tree) replace(parent, old, repl *Node) {
	switch {
	case parent == nil:
		t.root = repl
	case parent.left == old:
		parent.left = repl
	default:
		parent.right = repl
	}
}

// Teardown releases every node children-first and resets the tree to empty.
// Calling it on an empty tree does nothing.
func (t *Tree) Teardown() {
	teardown(t.root)
	t.root = nil
	t.size = 0
}

func teardown(n *Node) {
	if n == nil {
		return
	}
	teardown(n.left)
	teardown(n.right)
	n.left, n.right, n.parent = nil, nil, nil
}
