package render

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/rafiki18/archviz/pkg/errors"
)

// wasmMu serializes in-process renders; the parser state of go-graphviz is
// package-global.
var wasmMu sync.Mutex

// Graphviz renders in-process with go-graphviz. Calls are serialized across
// all instances, so parallel batches gain nothing from this engine.
type Graphviz struct {
	cfg config
}

// NewGraphviz creates an in-process renderer. [WithBinary] and [WithKeepIR]
// have no effect on it.
func NewGraphviz(opts ...Option) *Graphviz {
	return &Graphviz{cfg: newConfig(opts)}
}

type result struct {
	data []byte
	err  error
}

// Render lays out ir with the dot engine and writes a PNG to outPath.
func (r *Graphviz) Render(ctx context.Context, ir []byte, outPath string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.timeout)
	defer cancel()

	start := time.Now()
	r.cfg.logger.Debug("rendering in-process", "output", outPath, "ir", describe(ir))

	// The WebAssembly module does not observe ctx on every path, so the
	// render runs on its own goroutine and owns every graphviz handle.
	done := make(chan result, 1)
	go func() {
		data, err := renderPNG(ctx, ir)
		done <- result{data, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return contextFailure(ctx, r.cfg.timeout, outPath, "")
	case res = <-done:
	}
	if res.err != nil {
		return res.err
	}

	if err := writeAtomic(outPath, res.data); err != nil {
		return err
	}
	r.cfg.logger.Debug("rendered", "output", outPath, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func renderPNG(ctx context.Context, ir []byte) ([]byte, error) {
	wasmMu.Lock()
	defer wasmMu.Unlock()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(ir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT").WithDetail(err.Error())
	}
	defer g.Close()

	gv.SetLayout(graphviz.DOT)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render").WithDetail(err.Error())
	}
	return buf.Bytes(), nil
}
