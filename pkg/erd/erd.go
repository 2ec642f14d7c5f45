// Package erd builds entity-relationship diagrams as a single, explicitly
// serialized DOT document.
//
// Unlike builder-based diagrams, a [Schema] is written out in one pass by
// [Schema.DOT]: every table becomes an HTML-like table label with key markers
// and column types, relations become crow's-foot edges, and an optional legend
// is pinned to the bottom rank.
package erd

import (
	"bytes"
	"fmt"
	"html"

	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/dot"
	"github.com/rafiki18/archviz/pkg/errors"
)

// KeyKind marks a column as part of a key.
type KeyKind int

const (
	KeyNone KeyKind = iota
	KeyPrimary
	KeyForeign
)

// Marker returns the glyph shown in front of a key column.
func (k KeyKind) Marker() string {
	switch k {
	case KeyPrimary:
		return "🔑"
	case KeyForeign:
		return "🔗"
	}
	return ""
}

// Column is one table column.
type Column struct {
	Name string
	Type string
	Key  KeyKind
}

// PK returns a primary key column.
func PK(name, typ string) Column { return Column{Name: name, Type: typ, Key: KeyPrimary} }

// FK returns a foreign key (or indexed reference) column.
func FK(name, typ string) Column { return Column{Name: name, Type: typ, Key: KeyForeign} }

// Col returns a plain column.
func Col(name, typ string) Column { return Column{Name: name, Type: typ} }

// Table is one entity.
type Table struct {
	Name        string
	HeaderColor string
	BodyColor   string
	Columns     []Column
}

// Cardinality is the multiplicity of a relation, read From -> To.
type Cardinality int

const (
	OneToMany Cardinality = iota
	ManyToOne
)

// Relation connects two tables.
type Relation struct {
	From        string
	To          string
	Label       string
	Cardinality Cardinality
	// Logical relations (no database-level foreign key) are drawn dashed.
	Logical bool
}

// LegendEntry explains one symbol.
type LegendEntry struct {
	Symbol  string
	Meaning string
}

// Schema is a complete ER diagram.
type Schema struct {
	Name       string
	GraphAttrs diagram.Attrs
	Tables     []Table
	Relations  []Relation
	Legend     []LegendEntry
}

// legendID is the node ID reserved for the legend.
const legendID = "legend"

// Default attribute sets for ER documents.
var (
	DefaultGraphAttrs = diagram.Attrs{
		"rankdir":  "TB",
		"bgcolor":  "white",
		"fontname": "Helvetica",
		"fontsize": "14",
		"pad":      "0.5",
		"nodesep":  "0.8",
		"ranksep":  "1.0",
		"splines":  "ortho",
	}

	DefaultNodeAttrs = diagram.Attrs{
		"shape":    "none",
		"fontname": "Helvetica",
		"fontsize": "11",
	}

	DefaultEdgeAttrs = diagram.Attrs{
		"fontname": "Helvetica",
		"fontsize": "9",
		"color":    "#333333",
	}
)

// DOT writes the schema as a DOT document. It fails if two tables share a
// name or a relation references an undeclared table.
func (s Schema) DOT() ([]byte, error) {
	declared := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if t.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "table name must not be empty")
		}
		if declared[t.Name] || (t.Name == legendID && len(s.Legend) > 0) {
			return nil, errors.New(errors.ErrCodeDuplicateNode, "table %q declared twice", t.Name)
		}
		declared[t.Name] = true
	}
	for _, r := range s.Relations {
		if !declared[r.From] {
			return nil, errors.New(errors.ErrCodeUnknownNode, "relation source %q is not a declared table", r.From)
		}
		if !declared[r.To] {
			return nil, errors.New(errors.ErrCodeUnknownNode, "relation target %q is not a declared table", r.To)
		}
	}

	var buf bytes.Buffer
	name := s.Name
	if name == "" {
		name = "ER"
	}
	fmt.Fprintf(&buf, "digraph %s {\n", dot.Quote(name))
	fmt.Fprintf(&buf, "  graph %s;\n", dot.List(DefaultGraphAttrs.Merge(s.GraphAttrs)))
	fmt.Fprintf(&buf, "  node %s;\n", dot.List(DefaultNodeAttrs))
	fmt.Fprintf(&buf, "  edge %s;\n", dot.List(DefaultEdgeAttrs))

	for _, t := range s.Tables {
		fmt.Fprintf(&buf, "\n  %s [label=%s];\n", dot.Quote(t.Name), dot.HTML(tableMarkup(t)))
	}

	if len(s.Relations) > 0 {
		buf.WriteString("\n")
	}
	for _, r := range s.Relations {
		fmt.Fprintf(&buf, "  %s -> %s %s;\n", dot.Quote(r.From), dot.Quote(r.To), dot.List(relationAttrs(r)))
	}

	if len(s.Legend) > 0 {
		fmt.Fprintf(&buf, "\n  %s [label=%s];\n", legendID, dot.HTML(legendMarkup(s.Legend)))
		fmt.Fprintf(&buf, "  { rank=sink; %s; }\n", legendID)
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func relationAttrs(r Relation) diagram.Attrs {
	attrs := diagram.Attrs{"label": r.Label, "dir": "both"}
	switch r.Cardinality {
	case OneToMany:
		attrs["taillabel"], attrs["headlabel"] = "1", "*"
		attrs["arrowtail"], attrs["arrowhead"] = "none", "crow"
	case ManyToOne:
		attrs["taillabel"], attrs["headlabel"] = "*", "1"
		attrs["arrowtail"], attrs["arrowhead"] = "crow", "none"
	}
	if r.Logical {
		attrs["style"] = "dashed"
	}
	return attrs
}

func tableMarkup(t Table) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, `<TABLE BORDER="1" CELLBORDER="0" CELLSPACING="0" CELLPADDING="8" BGCOLOR="%s">`, html.EscapeString(t.BodyColor))
	fmt.Fprintf(&b, `<TR><TD COLSPAN="3" BGCOLOR="%s"><FONT COLOR="white"><B>%s</B></FONT></TD></TR>`,
		html.EscapeString(t.HeaderColor), html.EscapeString(t.Name))
	for _, c := range t.Columns {
		name := html.EscapeString(c.Name)
		if c.Key != KeyNone {
			name = "<B>" + name + "</B>"
		}
		fmt.Fprintf(&b, `<TR><TD ALIGN="LEFT">%s</TD><TD ALIGN="LEFT">%s</TD><TD ALIGN="LEFT">%s</TD></TR>`,
			c.Key.Marker(), name, html.EscapeString(c.Type))
	}
	b.WriteString("</TABLE>")
	return b.String()
}

func legendMarkup(entries []LegendEntry) string {
	var b bytes.Buffer
	b.WriteString(`<TABLE BORDER="1" CELLBORDER="0" CELLSPACING="0" CELLPADDING="6" BGCOLOR="#FAFAFA">`)
	b.WriteString(`<TR><TD COLSPAN="2" BGCOLOR="#424242"><FONT COLOR="white"><B>Legend</B></FONT></TD></TR>`)
	for _, e := range entries {
		fmt.Fprintf(&b, `<TR><TD ALIGN="LEFT">%s</TD><TD ALIGN="LEFT">%s</TD></TR>`,
			html.EscapeString(e.Symbol), html.EscapeString(e.Meaning))
	}
	b.WriteString("</TABLE>")
	return b.String()
}
