package bst

import "fmt"

// Order is a depth-first traversal order.
type Order int

const (
	InOrder Order = iota
	PreOrder
	PostOrder
)

var orderNames = map[Order]string{
	InOrder:   "in",
	PreOrder:  "pre",
	PostOrder: "post",
}

// String returns the short order name used on the command line.
func (o Order) String() string { return orderNames[o] }

// ParseOrder accepts "pre", "in" and "post" as well as the long forms
// "preorder", "inorder" and "postorder".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "in", "inorder", "in-order":
		return InOrder, nil
	case "pre", "preorder", "pre-order":
		return PreOrder, nil
	case "post", "postorder", "post-order":
		return PostOrder, nil
	}
	return 0, fmt.Errorf("unknown walk order %q (must be pre, in or post)", s)
}

// Walk visits every node in the given order before returning.
func (t *Tree) Walk(order Order, visit func(*Node)) {
	walk(t.root, order, visit)
}

func walk(n *Node, order Order, visit func(*Node)) {
	if n == nil {
		return
	}
	if order == PreOrder {
		visit(n)
	}
	walk(n.left, order, visit)
	if order == InOrder {
		visit(n)
	}
	walk(n.right, order, visit)
	if order == PostOrder {
		visit(n)
	}
}

// Values returns the keys in the given order.
func (t *Tree) Values(order Order) []int {
	out := make([]int, 0, t.size)
	t.Walk(order, func(n *Node) { out = append(out, n.Value) })
	return out
}
