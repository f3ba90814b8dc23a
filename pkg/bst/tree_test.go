package bst

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

type recorder struct {
	msgs []string
}

func (r *recorder) Warn(msg any, _ ...any) { r.msgs = append(r.msgs, fmt.Sprint(msg)) }

func (r *recorder) count(msg string) int {
	n := 0
	for _, m := range r.msgs {
		if m == msg {
			n++
		}
	}
	return n
}

// checkLinks verifies the ordering invariant and parent pointers below n.
func checkLinks(t *testing.T, n *Node) {
	t.Helper()
	if n == nil {
		return
	}
	if l := n.left; l != nil {
		if l.parent != n {
			t.Errorf("node %d: left child %d has wrong parent", n.Value, l.Value)
		}
		if Max(l).Value >= n.Value {
			t.Errorf("node %d: left subtree holds %d", n.Value, Max(l).Value)
		}
	}
	if r := n.right; r != nil {
		if r.parent != n {
			t.Errorf("node %d: right child %d has wrong parent", n.Value, r.Value)
		}
		if Min(r).Value < n.Value {
			t.Errorf("node %d: right subtree holds %d", n.Value, Min(r).Value)
		}
	}
	checkLinks(t, n.left)
	checkLinks(t, n.right)
}

func TestNewIsEmpty(t *testing.T) {
	tr := New()
	if !tr.IsEmpty() || tr.Len() != 0 || tr.Root() != nil {
		t.Fatalf("New() not empty: len=%d", tr.Len())
	}
	if tr.Min() != nil || tr.Max() != nil {
		t.Error("Min/Max of empty tree should be nil")
	}
	if _, ok := tr.MinValue(); ok {
		t.Error("MinValue of empty tree should report false")
	}
	if tr.Height() != 0 {
		t.Errorf("Height() = %d, want 0", tr.Height())
	}
}

func TestZeroValueTree(t *testing.T) {
	var tr Tree
	tr.Insert(1)
	tr.Insert(1)
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
	tr.Delete(9)
}

func TestInsertOrderingInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		n := rng.IntN(64)
		values := make([]int, n)
		for i := range values {
			values[i] = rng.IntN(40) - 20
		}

		tr := FromValues(values)
		got := tr.Values(InOrder)
		if !slices.IsSorted(got) {
			t.Fatalf("round %d: in-order walk not sorted: %v", round, got)
		}
		if len(got) != n || tr.Len() != n {
			t.Fatalf("round %d: got %d values, Len()=%d, want %d", round, len(got), tr.Len(), n)
		}
		checkLinks(t, tr.Root())
	}
}

func TestInsertShape(t *testing.T) {
	tr := FromValues([]int{4, 3, 2, 1, 6, 5, 7})
	root := tr.Root()
	if root.Value != 4 || root.Parent() != nil {
		t.Fatalf("root = %d", root.Value)
	}
	if root.Left().Value != 3 || root.Right().Value != 6 {
		t.Errorf("children = %d, %d", root.Left().Value, root.Right().Value)
	}
	if got := tr.Values(PreOrder); !slices.Equal(got, []int{4, 3, 2, 1, 6, 5, 7}) {
		t.Errorf("pre-order = %v", got)
	}
	if got := tr.Values(PostOrder); !slices.Equal(got, []int{1, 2, 3, 5, 7, 6, 4}) {
		t.Errorf("post-order = %v", got)
	}
	if tr.Height() != 4 {
		t.Errorf("Height() = %d, want 4", tr.Height())
	}
}

func TestInsertDuplicate(t *testing.T) {
	rec := &recorder{}
	tr := New(WithDiagnostics(rec))
	tr.Insert(4)
	tr.Insert(2)
	dup := tr.Insert(4)

	if got := rec.count(MsgDuplicateKey); got != 1 {
		t.Errorf("duplicate warnings = %d, want 1", got)
	}
	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
	if tr.Root().Right() != dup {
		t.Error("duplicate should be linked as right child of its equal")
	}

	tr.Insert(4)
	if got := rec.count(MsgDuplicateKey); got != 2 {
		t.Errorf("duplicate warnings after third insert = %d, want 2", got)
	}
}

func TestSearch(t *testing.T) {
	tr := FromValues([]int{5, 3, 8, 1, 4, 7, 9})
	for _, v := range []int{5, 3, 8, 1, 4, 7, 9} {
		n := tr.Search(v)
		if n == nil || n.Value != v {
			t.Errorf("Search(%d) = %v", v, n)
		}
	}
	for _, v := range []int{0, 2, 6, 10} {
		if n := tr.Search(v); n != nil {
			t.Errorf("Search(%d) = %d, want nil", v, n.Value)
		}
	}
}

func TestSuccessorPredecessor(t *testing.T) {
	tr := FromValues([]int{4, 3, 2, 1, 6, 5, 7})

	tests := []struct {
		value  int
		succ   int
		succOK bool
		pred   int
		predOK bool
	}{
		{value: 4, succ: 5, succOK: true, pred: 3, predOK: true},
		{value: 1, succ: 2, succOK: true},
		{value: 7, pred: 6, predOK: true},
		{value: 3, succ: 4, succOK: true, pred: 2, predOK: true},
		{value: 5, succ: 6, succOK: true, pred: 4, predOK: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.value), func(t *testing.T) {
			s, ok := tr.SuccessorValue(tt.value)
			if ok != tt.succOK || (ok && s != tt.succ) {
				t.Errorf("SuccessorValue(%d) = %d, %v; want %d, %v", tt.value, s, ok, tt.succ, tt.succOK)
			}
			p, ok := tr.PredecessorValue(tt.value)
			if ok != tt.predOK || (ok && p != tt.pred) {
				t.Errorf("PredecessorValue(%d) = %d, %v; want %d, %v", tt.value, p, ok, tt.pred, tt.predOK)
			}
		})
	}

	if Successor(tr.Max()) != nil {
		t.Error("Successor(max) should be nil")
	}
	if Predecessor(tr.Min()) != nil {
		t.Error("Predecessor(min) should be nil")
	}
	if _, ok := tr.SuccessorValue(42); ok {
		t.Error("SuccessorValue of absent key should report false")
	}
}

func TestSuccessorChainMatchesInOrder(t *testing.T) {
	tr := FromValues([]int{50, 30, 70, 20, 40, 60, 80, 35, 45, 65})
	var chain []int
	for n := tr.Min(); n != nil; n = Successor(n) {
		chain = append(chain, n.Value)
	}
	if want := tr.Values(InOrder); !slices.Equal(chain, want) {
		t.Errorf("successor chain = %v, want %v", chain, want)
	}

	var back []int
	for n := tr.Max(); n != nil; n = Predecessor(n) {
		back = append(back, n.Value)
	}
	slices.Reverse(back)
	if want := tr.Values(InOrder); !slices.Equal(back, want) {
		t.Errorf("predecessor chain = %v, want %v", back, want)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		del    int
		want   []int
		root   int
	}{
		{"root with two children", []int{5, 3, 8, 1, 4, 7, 9}, 5, []int{1, 3, 4, 7, 8, 9}, 7},
		{"leaf", []int{5, 3, 8}, 3, []int{5, 8}, 5},
		{"single right child", []int{5, 3, 8, 9}, 8, []int{3, 5, 9}, 5},
		{"single left child", []int{5, 3, 8, 1}, 3, []int{1, 5, 8}, 5},
		{"root with one child", []int{5, 8, 7}, 5, []int{7, 8}, 8},
		{"inner two children", []int{5, 3, 8, 1, 4, 7, 9, 6}, 8, []int{1, 3, 4, 5, 6, 7, 9}, 5},
		{"successor with right child", []int{10, 5, 20, 15, 30, 17}, 10, []int{5, 15, 17, 20, 30}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FromValues(tt.values)
			if !tr.Delete(tt.del) {
				t.Fatalf("Delete(%d) = false", tt.del)
			}
			if got := tr.Values(InOrder); !slices.Equal(got, tt.want) {
				t.Errorf("in-order = %v, want %v", got, tt.want)
			}
			if tr.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", tr.Len(), len(tt.want))
			}
			if tr.Root().Value != tt.root {
				t.Errorf("root = %d, want %d", tr.Root().Value, tt.root)
			}
			if tr.Root().Parent() != nil {
				t.Error("root has a parent")
			}
			checkLinks(t, tr.Root())
		})
	}
}

func TestDeleteLastNode(t *testing.T) {
	tr := FromValues([]int{1})
	if !tr.Delete(1) {
		t.Fatal("Delete(1) = false")
	}
	if !tr.IsEmpty() || tr.Len() != 0 {
		t.Error("tree should be empty")
	}
}

func TestDeleteCopiesPayload(t *testing.T) {
	tr := New()
	tr.Insert(5)
	tr.Insert(3)
	tr.InsertWithMetadata(8, "eight")
	tr.InsertWithColor(7, Red)

	tr.Delete(5)
	root := tr.Root()
	if root.Value != 7 || root.Color() != Red {
		t.Errorf("root = %d (%v), want 7 (red)", root.Value, root.Color())
	}
	if _, ok := root.Metadata(); ok {
		t.Error("root should not carry metadata")
	}

	tr.Delete(7)
	root = tr.Root()
	if text, _ := root.Metadata(); root.Value != 8 || text != "eight" {
		t.Errorf("root = %d %q, want 8 \"eight\"", root.Value, text)
	}
}

func TestDeleteDiagnostics(t *testing.T) {
	rec := &recorder{}
	tr := New(WithDiagnostics(rec))
	if tr.Delete(1) {
		t.Error("Delete on empty tree = true")
	}
	tr.Insert(2)
	if tr.Delete(1) {
		t.Error("Delete of absent key = true")
	}
	if rec.count(MsgDeleteEmpty) != 1 || rec.count(MsgKeyNotFound) != 1 {
		t.Errorf("warnings = %v", rec.msgs)
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestDeleteNodeDuplicate(t *testing.T) {
	tr := New()
	tr.Insert(5)
	second := tr.InsertWithMetadata(5, "second")

	if !tr.DeleteNode(second) {
		t.Fatal("DeleteNode() = false")
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}
	root := tr.Root()
	if root.Value != 5 || root.Right() != nil {
		t.Fatalf("root = %d with right child %v", root.Value, root.Right())
	}
	if text, ok := root.Metadata(); ok {
		t.Errorf("remaining node carries label %q, want the unlabelled copy", text)
	}
}

func TestDeleteNodeRejectsForeign(t *testing.T) {
	a := FromValues([]int{2, 1, 3})
	b := FromValues([]int{2, 1, 3})

	if a.DeleteNode(nil) {
		t.Error("DeleteNode(nil) = true")
	}
	if a.DeleteNode(b.Search(1)) {
		t.Error("DeleteNode() removed a node of another tree")
	}
	if a.Len() != 3 || b.Len() != 3 {
		t.Errorf("Len() = %d, %d, want 3, 3", a.Len(), b.Len())
	}
}

func TestDeleteAll(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	values := rng.Perm(100)
	tr := FromValues(values)
	for i, v := range rng.Perm(100) {
		if !tr.Delete(v) {
			t.Fatalf("Delete(%d) = false", v)
		}
		if tr.Len() != 99-i {
			t.Fatalf("Len() = %d, want %d", tr.Len(), 99-i)
		}
		if !slices.IsSorted(tr.Values(InOrder)) {
			t.Fatalf("not sorted after deleting %d", v)
		}
		checkLinks(t, tr.Root())
	}
	if !tr.IsEmpty() {
		t.Error("tree should be empty")
	}
}

func TestTeardownIdempotent(t *testing.T) {
	tr := FromValues([]int{5, 3, 8, 1, 4})
	root := tr.Root()
	tr.Teardown()
	if !tr.IsEmpty() || tr.Len() != 0 {
		t.Fatal("tree not empty after Teardown")
	}
	if root.Left() != nil || root.Right() != nil {
		t.Error("Teardown should unlink nodes")
	}
	tr.Teardown()
	if !tr.IsEmpty() {
		t.Fatal("tree not empty after second Teardown")
	}
	tr.Insert(1)
	if tr.Len() != 1 {
		t.Errorf("Len() = %d after reuse", tr.Len())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		tag  string
		want Color
	}{
		{"", Uncolored},
		{"black", Black},
		{"BLACK", Black},
		{"b", Black},
		{"red", Red},
		{"R", Red},
		{"purple", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseColor(tt.tag); got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestDisplayPrecedence(t *testing.T) {
	tr := New()
	plain := tr.Insert(1)
	boxed := tr.InsertWithMetadata(2, "01")
	unboxed := tr.InsertWithMetadata(3, "#f:3")
	colored := tr.InsertWithColor(4, Black)
	both := tr.InsertWithColorTag(5, "purple")
	both.SetMetadata("label")

	tests := []struct {
		name string
		node *Node
		want Display
	}{
		{"plain", plain, Display{Kind: DisplayPlain, Value: 1}},
		{"boxed", boxed, Display{Kind: DisplayLabeled, Value: 2, Text: "01", Boxed: true}},
		{"sentinel", unboxed, Display{Kind: DisplayLabeled, Value: 3, Text: "f:3"}},
		{"colored", colored, Display{Kind: DisplayColored, Value: 4, Color: Black, Tag: "black"}},
		{"metadata wins", both, Display{Kind: DisplayLabeled, Value: 5, Text: "label", Boxed: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Display(); got != tt.want {
				t.Errorf("Display() = %+v, want %+v", got, tt.want)
			}
		})
	}

	both.ClearMetadata()
	if d := both.Display(); d.Kind != DisplayColored || d.Color != Unknown || d.Tag != "purple" {
		t.Errorf("Display() after ClearMetadata = %+v", d)
	}
}

func TestParseOrder(t *testing.T) {
	for _, s := range []string{"pre", "in", "post", "inorder", "post-order"} {
		if _, err := ParseOrder(s); err != nil {
			t.Errorf("ParseOrder(%q) error: %v", s, err)
		}
	}
	if _, err := ParseOrder("level"); err == nil {
		t.Error("ParseOrder(level) should fail")
	}
}
