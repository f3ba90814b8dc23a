package bst

import "strings"

// Color is an optional classification attached to a node. It only affects
// rendering and the advisory red/black checks; the tree never rebalances.
type Color int

const (
	// Uncolored is the zero value and means no colour semantics were requested.
	Uncolored Color = iota
	// Black renders as a filled dark node.
	Black
	// Red renders as a filled light node and triggers the red adjacency checks.
	Red
	// Unknown marks a colour tag that could not be recognized.
	Unknown
)

var colorNames = map[Color]string{
	Uncolored: "uncolored",
	Black:     "black",
	Red:       "red",
	Unknown:   "unknown",
}

// String returns the lowercase colour name.
func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseColor maps a textual colour tag to a Color. Matching is case-insensitive
// and accepts the single-letter forms "b" and "r". An empty tag yields
// Uncolored; any other unrecognized tag yields Unknown.
func ParseColor(tag string) Color {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "":
		return Uncolored
	case "black", "b":
		return Black
	case "red", "r":
		return Red
	default:
		return Unknown
	}
}

// LabelSentinel marks a metadata label that is rendered without a box. The
// sentinel itself is not displayed.
const LabelSentinel = '#'

// Node is a single vertex of the tree. Children are owned by their parent;
// the parent pointer is a plain back reference used for successor and
// predecessor walks and for re-linking during deletion.
//
// Metric is the transient sibling distance written by the layout pass before
// every render. It is not part of the logical tree state.
type Node struct {
	Value  int
	Metric float64

	left, right, parent *Node

	metadata    string
	hasMetadata bool
	color       Color
	colorTag    string
}

// Left returns the left child, or nil.
func (n *Node) Left() *Node { return n.left }

// Right returns the right child, or nil.
func (n *Node) Right() *Node { return n.right }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.left == nil && n.right == nil }

// Metadata returns the node's label and whether one was set.
func (n *Node) Metadata() (string, bool) { return n.metadata, n.hasMetadata }

// SetMetadata attaches a free-form label that takes display priority over the
// numeric key.
func (n *Node) SetMetadata(text string) {
	n.metadata = text
	n.hasMetadata = true
}

// ClearMetadata removes the label.
func (n *Node) ClearMetadata() {
	n.metadata = ""
	n.hasMetadata = false
}

// Color returns the node's colour tag.
func (n *Node) Color() Color { return n.color }

// ColorTag returns the raw tag the colour was parsed from. For colours set
// through SetColor it is the colour's name.
func (n *Node) ColorTag() string { return n.colorTag }

// SetColor sets the colour tag.
func (n *Node) SetColor(c Color) {
	n.color = c
	n.colorTag = c.String()
	if c == Uncolored {
		n.colorTag = ""
	}
}

// SetColorTag parses tag with ParseColor and keeps the raw text so that
// unknown tags can be reported verbatim.
func (n *Node) SetColorTag(tag string) {
	n.color = ParseColor(tag)
	n.colorTag = tag
}

// copyPayload moves the key, label and colour of src onto n. Structure links
// are left untouched.
func (n *Node) copyPayload(src *Node) {
	n.Value = src.Value
	n.metadata, n.hasMetadata = src.metadata, src.hasMetadata
	n.color, n.colorTag = src.color, src.colorTag
}

// DisplayKind selects which representation a node is drawn with.
type DisplayKind int

const (
	DisplayPlain DisplayKind = iota
	DisplayLabeled
	DisplayColored
)

// Display is the resolved visual content of a node. Exactly one of the
// variants applies, selected by Kind:
//
//   - DisplayPlain: Value
//   - DisplayLabeled: Text, Boxed
//   - DisplayColored: Value, Color, Tag
type Display struct {
	Kind  DisplayKind
	Value int
	Text  string
	Boxed bool
	Color Color
	Tag   string
}

// Display resolves the node's content with the precedence
// metadata > colour > plain value. Labels starting with LabelSentinel are
// unboxed and have the sentinel stripped.
func (n *Node) Display() Display {
	if n.hasMetadata {
		if text, ok := strings.CutPrefix(n.metadata, string(LabelSentinel)); ok {
			return Display{Kind: DisplayLabeled, Value: n.Value, Text: text}
		}
		return Display{Kind: DisplayLabeled, Value: n.Value, Text: n.metadata, Boxed: true}
	}
	if n.color != Uncolored {
		return Display{Kind: DisplayColored, Value: n.Value, Color: n.color, Tag: n.colorTag}
	}
	return Display{Kind: DisplayPlain, Value: n.Value}
}

// Min returns the leftmost node of the subtree rooted at n, or nil if n is nil.
func Min(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// Max returns the rightmost node of the subtree rooted at n, or nil if n is nil.
func Max(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// Successor returns the in-order successor of n, or nil if n holds the
// largest key.
func Successor(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.right != nil {
		return Min(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n, p = p, p.parent
	}
	return p
}

// Predecessor returns the in-order predecessor of n, or nil if n holds the
// smallest key.
func Predecessor(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.left != nil {
		return Max(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n, p = p, p.parent
	}
	return p
}

// height returns the number of nodes on the longest root-to-leaf path.
func height(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}
