package diagram

import (
	"maps"
	"slices"
)

// Attrs is a set of Graphviz attributes. Serialization always emits keys in
// sorted order, so map iteration order never leaks into the output.
type Attrs map[string]string

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Merge returns a new set with the entries of a overlaid by each of others.
func (a Attrs) Merge(others ...Attrs) Attrs {
	out := make(Attrs, len(a))
	maps.Copy(out, a)
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Attr is a single attribute, passed to [Builder.Node], [Builder.Edge] and
// [Builder.BeginCluster].
type Attr struct {
	Key   string
	Value string
}

// A returns an arbitrary attribute.
func A(key, value string) Attr { return Attr{Key: key, Value: value} }

// Label sets the label text. Newlines are kept and rendered as line breaks.
func Label(s string) Attr { return Attr{"label", s} }

// Color sets the line colour.
func Color(c string) Attr { return Attr{"color", c} }

// FontColor sets the text colour.
func FontColor(c string) Attr { return Attr{"fontcolor", c} }

// FillColor sets the fill colour of nodes.
func FillColor(c string) Attr { return Attr{"fillcolor", c} }

// Shape overrides the node shape chosen by the category.
func Shape(s string) Attr { return Attr{"shape", s} }

// Dashed draws the edge or outline dashed.
func Dashed() Attr { return Attr{"style", "dashed"} }

// Dotted draws the edge or outline dotted.
func Dotted() Attr { return Attr{"style", "dotted"} }

// Bold draws the edge or outline bold.
func Bold() Attr { return Attr{"style", "bold"} }

// Dir sets the edge direction markers: forward, back, both or none.
func Dir(d string) Attr { return Attr{"dir", d} }

// ArrowHead sets the arrowhead shape (normal, crow, none, ...).
func ArrowHead(s string) Attr { return Attr{"arrowhead", s} }

// ArrowTail sets the arrowtail shape.
func ArrowTail(s string) Attr { return Attr{"arrowtail", s} }

// PenWidth sets the line width.
func PenWidth(w string) Attr { return Attr{"penwidth", w} }

func collect(attrs []Attr) Attrs {
	out := make(Attrs, len(attrs))
	for _, a := range attrs {
		if a.Key == "" {
			continue
		}
		out[a.Key] = a.Value
	}
	return out
}
