package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/bstviz/pkg/render"
)

// EventKind identifies a Sink call.
type EventKind int

const (
	EventBeginRoot EventKind = iota
	EventLabel
	EventBeginChild
	EventEndChild
	EventMissingChild
	EventEndRoot
)

var eventNames = map[EventKind]string{
	EventBeginRoot:    "begin_root",
	EventLabel:        "label",
	EventBeginChild:   "begin_child",
	EventEndChild:     "end_child",
	EventMissingChild: "missing_child",
	EventEndRoot:      "end_root",
}

func (k EventKind) String() string { return eventNames[k] }

// Event is one recorded Sink call. Fields not used by the kind are zero.
type Event struct {
	Kind       EventKind    `json:"kind"`
	HasSpacing bool         `json:"has_spacing,omitempty"`
	Spacing    float64      `json:"spacing,omitempty"`
	Text       string       `json:"text,omitempty"`
	Style      render.Style `json:"-"`
}

// Recorder is a Sink that keeps every event in memory.
type Recorder struct {
	events []Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) BeginRoot(hasSpacing bool, spacing float64) {
	r.events = append(r.events, Event{Kind: EventBeginRoot, HasSpacing: hasSpacing, Spacing: spacing})
}

func (r *Recorder) Label(text string, style render.Style) {
	r.events = append(r.events, Event{Kind: EventLabel, Text: text, Style: style})
}

func (r *Recorder) BeginChild(spacing float64) {
	r.events = append(r.events, Event{Kind: EventBeginChild, Spacing: spacing})
}

func (r *Recorder) EndChild()     { r.events = append(r.events, Event{Kind: EventEndChild}) }
func (r *Recorder) MissingChild() { r.events = append(r.events, Event{Kind: EventMissingChild}) }
func (r *Recorder) EndRoot()      { r.events = append(r.events, Event{Kind: EventEndRoot}) }

// Events returns the recorded events in call order.
func (r *Recorder) Events() []Event { return r.events }

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Labels returns the label events in order.
func (r *Recorder) Labels() []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == EventLabel {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() { r.events = r.events[:0] }

// String returns a compact one-line trace, e.g.
//
//	root(20) 2 (0 1 _ _) (0 3 _ _) .
func (r *Recorder) String() string {
	var b strings.Builder
	for i, e := range r.events {
		if i > 0 && e.Kind != EventEndChild {
			b.WriteByte(' ')
		}
		switch e.Kind {
		case EventBeginRoot:
			if e.HasSpacing {
				fmt.Fprintf(&b, "root(%g)", e.Spacing)
			} else {
				b.WriteString("root")
			}
		case EventLabel:
			if e.Style == render.StylePlain {
				b.WriteString(e.Text)
			} else {
				fmt.Fprintf(&b, "%s[%s]", e.Text, e.Style)
			}
		case EventBeginChild:
			fmt.Fprintf(&b, "(%g", e.Spacing)
		case EventEndChild:
			b.WriteByte(')')
		case EventMissingChild:
			b.WriteByte('_')
		case EventEndRoot:
			b.WriteByte('.')
		}
	}
	return b.String()
}

var _ render.Sink = (*Recorder)(nil)
