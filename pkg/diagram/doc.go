// Package diagram provides the in-memory graph model behind every archviz
// diagram: typed nodes, nested clusters and styled edges, recorded in
// declaration order.
//
// # Overview
//
// A [Diagram] is built through an explicit [Builder]. There is no ambient
// "current diagram": each generator owns its builder, so several diagrams can
// be populated side by side (for example when the orchestrator runs
// generators in parallel).
//
//	b := diagram.New(diagram.Options{Name: "DivTracker - Data Flow", Direction: diagram.LeftToRight})
//	api := b.Node("Finnhub API", diagram.CategoryExternalAPI)
//	b.BeginCluster("Backend")
//	hook := b.Node("Webhook\nController", diagram.CategoryFramework)
//	b.EndCluster()
//	b.Edge(api, hook, diagram.Label("trade events"), diagram.Color("blue"))
//	d, err := b.Diagram()
//
// # Clusters
//
// Cluster membership follows lexical nesting: a node or edge declared while a
// cluster is open belongs to the innermost open cluster. Clusters close in strict
// stack order; [Builder.EndCluster] with nothing open fails with
// [ErrUnbalancedCluster]. [Builder.Cluster] wraps a function in a balanced
// begin/end pair.
//
// # Errors
//
// Builder methods return their error and also remember the first one, so a
// definition may ignore individual return values and check only
// [Builder.Diagram], the way a bufio.Writer defers write errors to Flush.
// Edges must reference nodes created by the same builder; anything else fails
// with [ErrUnknownNode], even when a node with the same ID exists in another
// diagram.
//
// # Categories
//
// [Category] is a closed set of node kinds. Each maps to a [Style] through an
// explicit table; the category carries no behaviour beyond styling.
package diagram
