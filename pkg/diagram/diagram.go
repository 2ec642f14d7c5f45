package diagram

import (
	"strings"

	"github.com/rafiki18/archviz/pkg/errors"
)

var (
	// ErrUnknownNode is returned by [Builder.Edge] when an endpoint was not
	// created by the same builder.
	ErrUnknownNode = errors.New(errors.ErrCodeUnknownNode, "unknown node")

	// ErrDuplicateNode matches errors for a table or node name declared
	// twice in a hand-built document. Builder IDs are generated and never
	// collide.
	ErrDuplicateNode = errors.New(errors.ErrCodeDuplicateNode, "duplicate node ID")

	// ErrUnbalancedCluster is returned by [Builder.EndCluster] when no cluster
	// is open, and by [Builder.Diagram] when clusters are still open.
	ErrUnbalancedCluster = errors.New(errors.ErrCodeUnbalancedCluster, "unbalanced cluster scope")

	// ErrFinalized is returned by any builder mutation after [Builder.Diagram].
	ErrFinalized = errors.New(errors.ErrCodeFinalized, "diagram already finalized")
)

// Direction is the rank direction of the layout.
type Direction string

const (
	TopToBottom Direction = "TB"
	LeftToRight Direction = "LR"
	BottomToTop Direction = "BT"
	RightToLeft Direction = "RL"
)

// Valid reports whether d is a known rank direction.
func (d Direction) Valid() bool {
	switch d {
	case TopToBottom, LeftToRight, BottomToTop, RightToLeft:
		return true
	}
	return false
}

// Options describes a diagram before any node is declared.
type Options struct {
	// Name is the diagram title, rendered as the graph label.
	Name string
	// Filename is the output file stem. Derived from Name when empty.
	Filename string
	// Direction defaults to TopToBottom.
	Direction Direction

	GraphAttrs Attrs
	NodeAttrs  Attrs
	EdgeAttrs  Attrs
}

// Default attribute sets. Caller attributes in [Options] override these.
var (
	DefaultGraphAttrs = Attrs{
		"pad":       "2.0",
		"splines":   "ortho",
		"nodesep":   "0.60",
		"ranksep":   "0.75",
		"fontname":  "Sans-Serif",
		"fontsize":  "15",
		"fontcolor": defaultFontColor,
		"labelloc":  "t",
	}

	DefaultNodeAttrs = Attrs{
		"fontname": "Sans-Serif",
		"fontsize": "13",
		"margin":   "0.2,0.1",
		"penwidth": "1.2",
	}

	DefaultEdgeAttrs = Attrs{
		"color":    "#7B8894",
		"fontname": "Sans-Serif",
		"fontsize": "11",
	}

	// DefaultClusterAttrs apply to every cluster; bgcolor cycles by depth
	// through ClusterBackgrounds.
	DefaultClusterAttrs = Attrs{
		"style":     "rounded",
		"labeljust": "l",
		"pencolor":  "#AEB6BE",
		"fontname":  "Sans-Serif",
		"fontsize":  "12",
	}

	ClusterBackgrounds = []string{"#E5F5FD", "#EBF3E7", "#ECE8F6", "#FDF7E3"}
)

// Node is a declared vertex. Nodes are immutable once created.
type Node struct {
	ID       string
	Label    string
	Category Category
	Attrs    Attrs
	// Cluster is the innermost enclosing cluster, nil at the top level.
	Cluster *Cluster
}

// Cluster is a labelled, nestable container.
type Cluster struct {
	ID     string
	Label  string
	Attrs  Attrs
	Parent *Cluster
	Depth  int

	members []Member
}

// Members returns the nodes, child clusters and edges declared inside c,
// in order.
func (c *Cluster) Members() []Member { return c.members }

// Contains reports whether n sits in c or in one of its descendants.
func (c *Cluster) Contains(n *Node) bool {
	for p := n.Cluster; p != nil; p = p.Parent {
		if p == c {
			return true
		}
	}
	return false
}

// Member is one entry of a scope: exactly one of Node, Cluster and Edge is set.
type Member struct {
	Node    *Node
	Cluster *Cluster
	Edge    *Edge
}

// Edge is a directed connection between two declared nodes.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
	// Cluster is the innermost cluster open when the edge was declared,
	// nil at the top level.
	Cluster *Cluster
}

// Diagram is a fully populated, finalized graph. It is read-only.
type Diagram struct {
	name      string
	filename  string
	direction Direction
	graph     Attrs
	node      Attrs
	edge      Attrs

	nodes    []*Node
	byID     map[string]*Node
	clusters []*Cluster
	edges    []Edge
	root     []Member
}

// Name returns the diagram title.
func (d *Diagram) Name() string { return d.name }

// Filename returns the output file stem.
func (d *Diagram) Filename() string { return d.filename }

// Direction returns the rank direction.
func (d *Diagram) Direction() Direction { return d.direction }

// GraphAttrs returns the graph-level attributes with defaults applied.
func (d *Diagram) GraphAttrs() Attrs { return d.graph }

// NodeAttrs returns the default node attributes.
func (d *Diagram) NodeAttrs() Attrs { return d.node }

// EdgeAttrs returns the default edge attributes.
func (d *Diagram) EdgeAttrs() Attrs { return d.edge }

// Nodes returns all nodes in declaration order.
func (d *Diagram) Nodes() []*Node { return d.nodes }

// Node returns the node with the given ID.
func (d *Diagram) Node(id string) (*Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// Clusters returns all clusters in declaration order, parents before children.
func (d *Diagram) Clusters() []*Cluster { return d.clusters }

// Edges returns all edges in declaration order.
func (d *Diagram) Edges() []Edge { return d.edges }

// Members returns the top-level nodes and clusters in declaration order.
// Top-level edges are only listed by [Diagram.Edges].
func (d *Diagram) Members() []Member { return d.root }

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Slug turns a diagram title into a file stem: "DivTracker - Data Flow" becomes
// "divtracker_data_flow".
func Slug(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
		default:
			sep = true
		}
	}
	return b.String()
}
