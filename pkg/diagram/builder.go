package diagram

import (
	"fmt"
	"sync/atomic"

	"github.com/rafiki18/archviz/pkg/errors"
)

// builderSeq gives every builder a distinct identity so node references
// cannot cross diagrams.
var builderSeq atomic.Uint64

// NodeRef identifies a node inside the builder that created it.
// The zero value refers to no node.
type NodeRef struct {
	owner uint64
	id    string
}

// ID returns the node ID the reference points at.
func (r NodeRef) ID() string { return r.id }

// IsZero reports whether r is the zero reference.
func (r NodeRef) IsZero() bool { return r.owner == 0 && r.id == "" }

// Builder populates one [Diagram]. It is not safe for concurrent use; each
// generator owns its own builder.
type Builder struct {
	owner uint64
	d     *Diagram
	stack []*Cluster

	nextNode    int
	nextCluster int

	err  error
	done bool
}

// New starts a diagram with the given options.
// An invalid direction is reported by [Builder.Diagram].
func New(opts Options) *Builder {
	b := &Builder{owner: builderSeq.Add(1)}

	dir := opts.Direction
	if dir == "" {
		dir = TopToBottom
	}
	if !dir.Valid() {
		b.fail(errors.New(errors.ErrCodeInvalidInput, "invalid direction %q (must be TB, LR, BT or RL)", dir))
	}

	filename := opts.Filename
	if filename == "" {
		filename = Slug(opts.Name)
	}

	b.d = &Diagram{
		name:      opts.Name,
		filename:  filename,
		direction: dir,
		graph:     DefaultGraphAttrs.Merge(Attrs{"label": opts.Name, "rankdir": string(dir)}, opts.GraphAttrs),
		node:      DefaultNodeAttrs.Merge(opts.NodeAttrs),
		edge:      DefaultEdgeAttrs.Merge(opts.EdgeAttrs),
		byID:      make(map[string]*Node),
	}
	return b
}

// Node declares a node inside the innermost open cluster and returns a
// reference to it. Node IDs are assigned in declaration order (n1, n2, ...).
func (b *Builder) Node(label string, category Category, attrs ...Attr) NodeRef {
	if b.done {
		b.fail(ErrFinalized)
		return NodeRef{}
	}

	b.nextNode++
	n := &Node{
		ID:       fmt.Sprintf("n%d", b.nextNode),
		Label:    label,
		Category: category,
		Attrs:    collect(attrs),
		Cluster:  b.current(),
	}
	b.d.nodes = append(b.d.nodes, n)
	b.d.byID[n.ID] = n
	b.appendMember(Member{Node: n})
	return NodeRef{owner: b.owner, id: n.ID}
}

// BeginCluster opens a cluster nested in the current one.
func (b *Builder) BeginCluster(label string, attrs ...Attr) error {
	if b.done {
		return b.fail(ErrFinalized)
	}

	b.nextCluster++
	parent := b.current()
	c := &Cluster{
		ID:     fmt.Sprintf("c%d", b.nextCluster),
		Label:  label,
		Attrs:  collect(attrs),
		Parent: parent,
		Depth:  len(b.stack),
	}
	b.appendMember(Member{Cluster: c})
	b.d.clusters = append(b.d.clusters, c)
	b.stack = append(b.stack, c)
	return nil
}

// EndCluster closes the innermost open cluster.
func (b *Builder) EndCluster() error {
	if b.done {
		return b.fail(ErrFinalized)
	}
	if len(b.stack) == 0 {
		return b.fail(errors.New(errors.ErrCodeUnbalancedCluster, "EndCluster called with no open cluster"))
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

// Cluster runs fn inside a new cluster and closes it afterwards. It fails
// with [ErrUnbalancedCluster] if fn leaves clusters of its own open.
func (b *Builder) Cluster(label string, fn func(), attrs ...Attr) error {
	if err := b.BeginCluster(label, attrs...); err != nil {
		return err
	}
	depth := len(b.stack)
	fn()
	if len(b.stack) != depth {
		return b.fail(errors.New(errors.ErrCodeUnbalancedCluster,
			"cluster %q closed at depth %d, opened at depth %d", label, len(b.stack), depth))
	}
	return b.EndCluster()
}

// Depth returns the number of open clusters.
func (b *Builder) Depth() int { return len(b.stack) }

// Edge connects two nodes declared by this builder. The edge belongs to the
// innermost open cluster. Multiple edges between the same pair are allowed.
func (b *Builder) Edge(from, to NodeRef, attrs ...Attr) error {
	if b.done {
		return b.fail(ErrFinalized)
	}
	if !b.owns(from) {
		return b.fail(errors.New(errors.ErrCodeUnknownNode, "edge source %q is not declared in diagram %q", from.id, b.d.name))
	}
	if !b.owns(to) {
		return b.fail(errors.New(errors.ErrCodeUnknownNode, "edge target %q is not declared in diagram %q", to.id, b.d.name))
	}
	e := Edge{From: from.id, To: to.id, Attrs: collect(attrs), Cluster: b.current()}
	b.d.edges = append(b.d.edges, e)
	if e.Cluster != nil {
		e.Cluster.members = append(e.Cluster.members, Member{Edge: &e})
	}
	return nil
}

// Chain connects each ref to the next with plain edges: Chain(a, b, c)
// declares a -> b and b -> c.
func (b *Builder) Chain(refs ...NodeRef) error {
	return b.Path(nil, refs...)
}

// Path is Chain with the same attributes applied to every edge.
func (b *Builder) Path(attrs []Attr, refs ...NodeRef) error {
	for i := 1; i < len(refs); i++ {
		if err := b.Edge(refs[i-1], refs[i], attrs...); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error { return b.err }

// Diagram finalizes the builder and returns the populated diagram, or the
// first error recorded while building it. Open clusters are an error.
func (b *Builder) Diagram() (*Diagram, error) {
	if !b.done {
		b.done = true
		if n := len(b.stack); n > 0 {
			b.fail(errors.New(errors.ErrCodeUnbalancedCluster, "%d cluster(s) still open", n))
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return b.d, nil
}

func (b *Builder) owns(r NodeRef) bool {
	if r.owner != b.owner {
		return false
	}
	_, ok := b.d.byID[r.id]
	return ok
}

func (b *Builder) current() *Cluster {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) appendMember(m Member) {
	if c := b.current(); c != nil {
		c.members = append(c.members, m)
		return
	}
	b.d.root = append(b.d.root, m)
}

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return err
}
