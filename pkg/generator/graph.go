package generator

import (
	"context"

	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/dot"
	"github.com/rafiki18/archviz/pkg/render"
)

// Graph is a generator declared through the diagram builder.
type Graph struct {
	ID      string
	Options diagram.Options

	// Build declares nodes, clusters and edges on b. Builder errors are
	// sticky, so Build may return nil and leave them to b.Diagram.
	Build func(b *diagram.Builder) error
}

// Name returns the generator ID.
func (g *Graph) Name() string { return g.ID }

// Output returns the PNG file name derived from the diagram options.
func (g *Graph) Output() string {
	stem := g.Options.Filename
	if stem == "" {
		stem = diagram.Slug(g.Options.Name)
	}
	return stem + "." + render.FormatPNG
}

// Diagram runs Build and returns the finalized diagram.
func (g *Graph) Diagram() (*diagram.Diagram, error) {
	b := diagram.New(g.Options)
	if g.Build != nil {
		if err := g.Build(b); err != nil {
			return nil, err
		}
	}
	return b.Diagram()
}

// IR returns the serialized diagram.
func (g *Graph) IR() ([]byte, error) {
	d, err := g.Diagram()
	if err != nil {
		return nil, err
	}
	return dot.Serialize(d), nil
}

// Generate builds the diagram and renders it once with env.Renderer.
func (g *Graph) Generate(ctx context.Context, env Env) error {
	d, err := g.Diagram()
	if err != nil {
		return wrap(g.ID, err)
	}
	env.logger().Debug("diagram built", "diagram", g.ID, "nodes", d.NodeCount(), "edges", d.EdgeCount(), "clusters", len(d.Clusters()))
	return renderIR(ctx, env, env.Renderer, g.ID, dot.Serialize(d), g.Output())
}
