package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/errors"
)

const indent = "  "

// Serialize converts a diagram to DOT.
func Serialize(d *diagram.Diagram) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", Quote(d.Name()))
	writeStmt(&buf, indent, "graph", d.GraphAttrs())
	writeStmt(&buf, indent, "node", d.NodeAttrs())
	writeStmt(&buf, indent, "edge", d.EdgeAttrs())
	buf.WriteString("\n")

	writeMembers(&buf, d, indent, d.Members())

	var top []diagram.Edge
	for _, e := range d.Edges() {
		if !scoped(d, e) {
			top = append(top, e)
		}
	}
	if len(top) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range top {
		writeEdge(&buf, indent, e)
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

func writeMembers(buf *bytes.Buffer, d *diagram.Diagram, prefix string, members []diagram.Member) {
	for _, m := range members {
		switch {
		case m.Node != nil:
			fmt.Fprintf(buf, "%s%s %s;\n", prefix, m.Node.ID, List(nodeAttrs(m.Node)))
		case m.Cluster != nil:
			fmt.Fprintf(buf, "%ssubgraph %s {\n", prefix, Quote("cluster_"+m.Cluster.ID))
			writeStmt(buf, prefix+indent, "graph", clusterAttrs(m.Cluster))
			writeMembers(buf, d, prefix+indent, m.Cluster.Members())
			fmt.Fprintf(buf, "%s}\n", prefix)
		case m.Edge != nil && scoped(d, *m.Edge):
			writeEdge(buf, prefix, *m.Edge)
		}
	}
}

// scoped reports whether e is written inside its cluster's subgraph. An edge
// statement pulls both endpoints into the enclosing subgraph, so edges that
// leave the cluster are written at the top level.
func scoped(d *diagram.Diagram, e diagram.Edge) bool {
	if e.Cluster == nil {
		return false
	}
	from, ok := d.Node(e.From)
	if !ok {
		return false
	}
	to, ok := d.Node(e.To)
	if !ok {
		return false
	}
	return e.Cluster.Contains(from) && e.Cluster.Contains(to)
}

func writeEdge(buf *bytes.Buffer, prefix string, e diagram.Edge) {
	fmt.Fprintf(buf, "%s%s -> %s", prefix, e.From, e.To)
	if len(e.Attrs) > 0 {
		buf.WriteString(" ")
		buf.WriteString(List(e.Attrs))
	}
	buf.WriteString(";\n")
}

func nodeAttrs(n *diagram.Node) diagram.Attrs {
	return n.Category.Style().Attrs().Merge(diagram.Attrs{"label": n.Label}, n.Attrs)
}

func clusterAttrs(c *diagram.Cluster) diagram.Attrs {
	bg := diagram.ClusterBackgrounds[c.Depth%len(diagram.ClusterBackgrounds)]
	return diagram.DefaultClusterAttrs.Merge(diagram.Attrs{"label": c.Label, "bgcolor": bg}, c.Attrs)
}

func writeStmt(buf *bytes.Buffer, prefix, kind string, attrs diagram.Attrs) {
	if len(attrs) == 0 {
		return
	}
	fmt.Fprintf(buf, "%s%s %s;\n", prefix, kind, List(attrs))
}

// List formats an attribute set as a bracketed DOT attribute list with keys
// in sorted order.
func List(attrs diagram.Attrs) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range attrs.Keys() {
		parts = append(parts, k+"="+Value(attrs[k]))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Value formats a plain attribute value as a quoted DOT string.
func Value(v string) string {
	return Quote(v)
}

// HTMLLabel is markup for an HTML-like label. It prints with the enclosing
// angle brackets and is never quoted.
type HTMLLabel string

// HTML marks markup as an HTML-like label value.
func HTML(markup string) HTMLLabel {
	return HTMLLabel(markup)
}

func (h HTMLLabel) String() string {
	return "<" + string(h) + ">"
}

// graphvizEscapes are the backslash sequences Graphviz expands inside
// quoted labels.
const graphvizEscapes = "nlrNGEHTL"

// Quote returns s as a DOT double-quoted string. Double quotes are escaped,
// newlines become \n line breaks and Graphviz escapes (\l, \r, \N, ...) are
// kept. Any other backslash is doubled, so it prints literally.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				continue
			}
			b.WriteString(`\n`)
		case '\\':
			if i+1 < len(s) && strings.IndexByte(graphvizEscapes, s[i+1]) >= 0 {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
				continue
			}
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Validate parses ir with Graphviz's own grammar. It reports malformed IR
// without producing an image.
func Validate(ctx context.Context, ir []byte) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(ir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	return g.Close()
}
