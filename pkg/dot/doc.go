// Package dot serializes a [diagram.Diagram] into Graphviz DOT, the textual
// intermediate representation consumed by the renderers.
//
// # Determinism
//
// [Serialize] is a pure function of the diagram's content and declaration
// order. Attribute sets are written in sorted key order, nodes and clusters in
// the order they were declared, and edges last, in declaration order. Running
// it twice on the same diagram yields byte-identical output, which keeps
// documentation builds reproducible.
//
// # Layout
//
//	digraph "DivTracker - Data Flow" {
//	  graph [fontsize="18", label="DivTracker - Data Flow", rankdir="LR", ...];
//	  node [fontname="Sans-Serif", ...];
//	  edge [color="#7B8894", ...];
//
//	  n1 [fillcolor="#E1BEE7", label="Finnhub API", shape="component", ...];
//	  subgraph "cluster_c1" {
//	    graph [bgcolor="#E5F5FD", label="Backend Processing", ...];
//	    n2 [...];
//	  }
//
//	  n1 -> n2 [color="blue", label="1. Trade events\n(webhook)"];
//	}
//
// Edges declared inside a cluster are written in that cluster's subgraph when
// both endpoints live in it; edges that cross the cluster boundary are written
// after the top-level members.
//
// Attribute values are always quoted with [Quote]. HTML-like labels are a
// separate type, [HTMLLabel], built with [HTML].
package dot
