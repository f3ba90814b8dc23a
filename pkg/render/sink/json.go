package sink

import (
	"encoding/json"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/render"
)

// Diagram is the JSON form of a rendered tree. Missing children are null.
type Diagram struct {
	Spacing *float64     `json:"spacing,omitempty"`
	Root    *DiagramNode `json:"root"`
}

// DiagramNode is one labelled node of a Diagram.
type DiagramNode struct {
	Label   string       `json:"label"`
	Style   string       `json:"style"`
	Spacing float64      `json:"spacing"`
	Left    *DiagramNode `json:"left"`
	Right   *DiagramNode `json:"right"`

	slots int
}

// attach puts c (possibly nil) into the next free child slot.
func (n *DiagramNode) attach(c *DiagramNode) {
	if n.slots == 0 {
		n.Left = c
	} else {
		n.Right = c
	}
	n.slots++
}

// JSON assembles a Diagram from the render events.
type JSON struct {
	doc   Diagram
	stack []*DiagramNode
}

// NewJSON returns an empty JSON sink.
func NewJSON() *JSON { return &JSON{} }

func (j *JSON) BeginRoot(hasSpacing bool, spacing float64) {
	j.doc = Diagram{}
	j.stack = j.stack[:0]
	if hasSpacing {
		j.doc.Spacing = &spacing
		j.doc.Root = &DiagramNode{Spacing: spacing}
		j.stack = append(j.stack, j.doc.Root)
	}
}

func (j *JSON) top() *DiagramNode {
	if len(j.stack) == 0 {
		return nil
	}
	return j.stack[len(j.stack)-1]
}

func (j *JSON) Label(text string, style render.Style) {
	if n := j.top(); n != nil {
		n.Label = text
		n.Style = style.String()
	}
}

func (j *JSON) BeginChild(spacing float64) {
	c := &DiagramNode{Spacing: spacing}
	if p := j.top(); p != nil {
		p.attach(c)
	}
	j.stack = append(j.stack, c)
}

func (j *JSON) EndChild() {
	if len(j.stack) > 1 {
		j.stack = j.stack[:len(j.stack)-1]
	}
}

func (j *JSON) MissingChild() {
	if p := j.top(); p != nil {
		p.attach(nil)
	}
}

func (j *JSON) EndRoot() {}

// Diagram returns the assembled document.
func (j *JSON) Diagram() Diagram { return j.doc }

// Bytes returns the document as indented JSON.
func (j *JSON) Bytes() ([]byte, error) {
	return json.MarshalIndent(j.doc, "", "  ")
}

// RenderJSON renders t as an indented JSON diagram.
func RenderJSON(t *bst.Tree, opts ...render.Option) ([]byte, render.Stats, error) {
	j := NewJSON()
	stats := render.Render(t, j, opts...)
	data, err := j.Bytes()
	return data, stats, err
}

var _ render.Sink = (*JSON)(nil)
