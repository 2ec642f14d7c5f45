package generator

import (
	"context"

	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/render"
)

// Document is a generator that emits explicit DOT text.
type Document struct {
	ID string
	// Filename is the output file stem. Defaults to ID.
	Filename string
	Source   func() ([]byte, error)
}

func (d *Document) Name() string { return d.ID }

func (d *Document) Output() string {
	stem := d.Filename
	if stem == "" {
		stem = d.ID
	}
	return stem + "." + render.FormatPNG
}

func (d *Document) IR() ([]byte, error) {
	if d.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: no source", d.ID)
	}
	return d.Source()
}

// Generate renders the document with env.IRRenderer, or env.Renderer when no
// separate IR renderer is configured.
func (d *Document) Generate(ctx context.Context, env Env) error {
	ir, err := d.IR()
	if err != nil {
		return wrap(d.ID, err)
	}
	r := env.IRRenderer
	if r == nil {
		r = env.Renderer
	}
	return renderIR(ctx, env, r, d.ID, ir, d.Output())
}
