// Package pkg provides the core libraries for archviz architecture diagrams.
//
// # Overview
//
// archviz declares architecture diagrams in Go and renders each one to a PNG
// image with Graphviz. The pkg directory is organized as follows:
//
//  1. [diagram] - Graph model and the builder used to declare nodes, clusters and edges
//  2. [dot] - Serialization of a diagram to DOT text (the intermediate representation)
//  3. [erd] - Entity-relationship documents written as explicit DOT
//  4. [render] - Renderers: in-process go-graphviz and the external dot binary
//  5. [generator] - One generator per image, built on the packages above
//  6. [pipeline] - Batch runner with per-diagram failure isolation
//
// # Architecture
//
// The data flow of one generator:
//
//	Builder calls / erd.Schema
//	         ↓
//	    [diagram] package (populated Diagram)
//	         ↓
//	    [dot] package (DOT text)
//	         ↓
//	    [render] package (Graphviz)
//	         ↓
//	    PNG file
//
// The [pipeline] package runs many generators and reports which of them
// succeeded; a failure in one never prevents the others.
//
// # Quick Start
//
//	b := diagram.New(diagram.Options{Name: "Checkout", Direction: diagram.LeftToRight})
//	web := b.Node("Web", diagram.CategoryUsers)
//	api := b.Node("API", diagram.CategoryCompute)
//	_ = b.Edge(web, api, diagram.Label("HTTPS"))
//
//	d, err := b.Diagram()
//	if err != nil {
//	    return err
//	}
//	err = render.NewGraphviz().Render(ctx, dot.Serialize(d), "checkout.png")
//
// # Error Handling
//
// All packages return [errors.Error] values carrying a machine-readable code.
// Render failures keep the renderer's stderr, available through [render.Stderr].
package pkg
