// Package generator defines the unit of work of an archviz run: one generator
// produces exactly one image.
//
// Two kinds are provided. [Graph] declares a diagram through a
// [diagram.Builder], serializes it with [dot.Serialize] and hands the IR to
// [Env.Renderer]. [Document] returns hand-written DOT text (the ER diagram
// needs HTML-like table labels) and hands it to [Env.IRRenderer], the
// external Graphviz process.
//
// Generators do not catch their own failures; build and render errors are
// returned wrapped with the generator name so the runner can record them.
package generator

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/observability"
	"github.com/rafiki18/archviz/pkg/render"
)

// Generator produces one named image.
type Generator interface {
	// Name identifies the generator in logs and on the command line.
	Name() string
	// Output is the image file name, relative to Env.OutDir.
	Output() string
	// Generate builds and renders the image.
	Generate(ctx context.Context, env Env) error
}

// Source is implemented by generators whose IR can be produced without
// rendering it.
type Source interface {
	IR() ([]byte, error)
}

// Env is the environment a generator runs in.
type Env struct {
	// OutDir is the directory images are written to. Empty means the
	// working directory.
	OutDir string

	// Renderer renders builder-based diagrams.
	Renderer render.Renderer

	// IRRenderer renders explicit DOT documents. Falls back to Renderer.
	IRRenderer render.Renderer

	Logger *log.Logger

	// Hooks receives render events. Defaults to the globally registered hooks.
	Hooks observability.GeneratorHooks
}

// Path returns the absolute-or-relative path an output file is written to.
func (e Env) Path(output string) string {
	if e.OutDir == "" {
		return output
	}
	return filepath.Join(e.OutDir, output)
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return e.Logger
}

func (e Env) hooks() observability.GeneratorHooks {
	if e.Hooks == nil {
		return observability.Generator()
	}
	return e.Hooks
}

// IR returns the DOT text g would render, without rendering it.
func IR(ctx context.Context, g Generator) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, ok := g.(Source)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: generator does not expose its IR", g.Name())
	}
	ir, err := src.IR()
	if err != nil {
		return nil, wrap(g.Name(), err)
	}
	return ir, nil
}

// renderIR invokes r once and reports the call to the hooks.
func renderIR(ctx context.Context, env Env, r render.Renderer, name string, ir []byte, output string) error {
	if r == nil {
		return errors.New(errors.ErrCodeRendererMissing, "%s: no renderer configured", name)
	}
	if err := errors.ValidateOutputFilename(output); err != nil {
		return wrap(name, err)
	}
	path := env.Path(output)
	hooks := env.hooks()

	hooks.OnRenderStart(ctx, name, path)
	start := time.Now()
	err := r.Render(ctx, ir, path)
	hooks.OnRenderComplete(ctx, name, path, time.Since(start), err)

	if err != nil {
		return wrap(name, err)
	}
	env.logger().Debug("image written", "diagram", name, "path", path)
	return nil
}

// wrap prefixes err with the generator name. Codes and details stay
// reachable through the chain.
func wrap(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}
