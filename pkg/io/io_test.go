package io

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		token   string
		want    Record
		wantErr bool
	}{
		{"42", Record{Key: 42}, false},
		{"-7", Record{Key: -7}, false},
		{"5:0101", Record{Key: 5, Label: "0101", HasLabel: true}, false},
		{"5:#a:b@c", Record{Key: 5, Label: "#a:b@c", HasLabel: true}, false},
		{"5:", Record{Key: 5, HasLabel: true}, false},
		{"3@black", Record{Key: 3, Color: "black", HasColor: true}, false},
		{"3@purple", Record{Key: 3, Color: "purple", HasColor: true}, false},

		{"", Record{}, true},
		{"abc", Record{}, true},
		{"12abc", Record{}, true},
		{":x", Record{}, true},
		{"3@", Record{}, true},
		{"4:a\x01", Record{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseRecord(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRecord(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseRecord(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestRecordString(t *testing.T) {
	for _, tok := range []string{"1", "2:ab", "3@red"} {
		rec, err := ParseRecord(tok)
		if err != nil {
			t.Fatal(err)
		}
		if rec.String() != tok {
			t.Errorf("String() = %q, want %q", rec.String(), tok)
		}
	}
}

func TestReadTrees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim string
		want  [][]int
	}{
		{"single", "5 3 8", "", [][]int{{5, 3, 8}}},
		{"multi", "5 3 ; 1 2\n;\t9", "", [][]int{{5, 3}, {1, 2}, {9}}},
		{"empty groups skipped", "; ; 1 ;", "", [][]int{{1}}},
		{"custom delimiter", "1 2 -- 3", "--", [][]int{{1, 2}, {3}}},
		{"empty input", "", "", [][]int{{}}},
		{"whitespace only", "  \n ", "", [][]int{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trees, err := ReadTrees(strings.NewReader(tt.input), ReadOptions{Delimiter: tt.delim})
			if err != nil {
				t.Fatal(err)
			}
			if len(trees) != len(tt.want) {
				t.Fatalf("got %d trees, want %d", len(trees), len(tt.want))
			}
			for i, tr := range trees {
				if got := tr.Values(bst.PreOrder); !reflect.DeepEqual(got, tt.want[i]) {
					t.Errorf("tree %d pre-order = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestReadTreesErrors(t *testing.T) {
	if _, err := ReadTrees(strings.NewReader("1 x 2"), ReadOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed key: err = %v", err)
	}
	if _, err := ReadTrees(strings.NewReader("1"), ReadOptions{Delimiter: "a b"}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad delimiter: err = %v", err)
	}
}

type recorder struct{ msgs []string }

func (r *recorder) Warn(msg any, _ ...any) { r.msgs = append(r.msgs, fmt.Sprint(msg)) }

func TestReadTreesDiagnostics(t *testing.T) {
	rec := &recorder{}
	trees, err := ReadTrees(strings.NewReader("4 4 ; 2"), ReadOptions{Diagnostics: rec})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.msgs) != 1 || rec.msgs[0] != bst.MsgDuplicateKey {
		t.Errorf("warnings = %v", rec.msgs)
	}
	if trees[1].Diagnostics() != rec {
		t.Error("second tree does not use the configured diagnostics")
	}
}

func TestReadTreesRecords(t *testing.T) {
	trees, err := ParseArgs([]string{"10@b", "5:0101", "15@r", "12:#x"}, ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	tr := trees[0]
	if c := tr.Search(10).Color(); c != bst.Black {
		t.Errorf("10 color = %v", c)
	}
	if c := tr.Search(15).Color(); c != bst.Red {
		t.Errorf("15 color = %v", c)
	}
	if m, ok := tr.Search(5).Metadata(); !ok || m != "0101" {
		t.Errorf("5 metadata = %q, %v", m, ok)
	}
	if d := tr.Search(12).Display(); d.Text != "x" || d.Boxed {
		t.Errorf("12 display = %+v", d)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	trees, err := ParseArgs([]string{"8@black", "4", "12:110", "2@red", "6", "12@purple", "10"}, ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	orig := trees[0]

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v\n%s", err, buf.String())
	}

	if !reflect.DeepEqual(back.Values(bst.PreOrder), orig.Values(bst.PreOrder)) {
		t.Errorf("pre-order = %v, want %v", back.Values(bst.PreOrder), orig.Values(bst.PreOrder))
	}
	var got, want []bst.Display
	back.Walk(bst.PreOrder, func(n *bst.Node) { got = append(got, n.Display()) })
	orig.Walk(bst.PreOrder, func(n *bst.Node) { want = append(want, n.Display()) })
	if !reflect.DeepEqual(got, want) {
		t.Errorf("displays = %+v, want %+v", got, want)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(bst.New(), &buf); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"size\": 0,\n  \"height\": 0,\n  \"root\": null\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestReadJSONRejectsDisorder(t *testing.T) {
	doc := `{"root": {"value": 5, "left": {"value": 7, "left": null, "right": null}, "right": null}}`
	if _, err := ReadJSON(strings.NewReader(doc)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
	if _, err := ReadJSON(strings.NewReader("{")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed: err = %v", err)
	}
}

func TestExportImportJSON(t *testing.T) {
	orig := bst.New()
	orig.Insert(5)
	orig.InsertWithMetadata(3, "three")
	orig.InsertWithColor(8, bst.Red)
	orig.Insert(5)

	path := filepath.Join(t.TempDir(), "tree.json")
	if err := ExportJSON(orig, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got, want := back.Values(bst.PreOrder), orig.Values(bst.PreOrder); !reflect.DeepEqual(got, want) {
		t.Errorf("pre-order = %v, want %v", got, want)
	}
	if text, ok := back.Search(3).Metadata(); !ok || text != "three" {
		t.Errorf("3 metadata = %q, %v", text, ok)
	}
	if back.Search(8).Color() != bst.Red {
		t.Errorf("8 color = %v, want red", back.Search(8).Color())
	}
}

func TestImportJSONErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ImportJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ImportJSON of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("[1, 2]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportJSON(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}

	if err := ExportJSON(bst.New(), filepath.Join(dir, "no", "such", "dir.json")); err == nil {
		t.Error("ExportJSON into a missing directory should fail")
	}
}
