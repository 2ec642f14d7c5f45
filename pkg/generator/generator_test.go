package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/render"
)

type call struct {
	ir   string
	path string
}

// recorder is a fake renderer that writes the IR as the image.
type recorder struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (r *recorder) Render(_ context.Context, ir []byte, outPath string) error {
	r.mu.Lock()
	r.calls = append(r.calls, call{string(ir), outPath})
	r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(outPath, ir, 0o644)
}

func sampleGraph() *Graph {
	return &Graph{
		ID:      "sample",
		Options: diagram.Options{Name: "Sample Flow", Filename: "sample"},
		Build: func(b *diagram.Builder) error {
			api := b.Node("API", diagram.CategoryCompute)
			db := b.Node("DB", diagram.CategoryDatabase)
			return b.Edge(api, db)
		},
	}
}

func TestGraphGenerate(t *testing.T) {
	dir := t.TempDir()
	r := &recorder{}
	g := sampleGraph()

	require.NoError(t, g.Generate(context.Background(), Env{OutDir: dir, Renderer: r}))

	require.Len(t, r.calls, 1, "renderer must be invoked exactly once")
	assert.Equal(t, filepath.Join(dir, "sample.png"), r.calls[0].path)
	assert.Contains(t, r.calls[0].ir, `digraph "Sample Flow"`)
	assert.FileExists(t, filepath.Join(dir, "sample.png"))
}

func TestGraphOutput(t *testing.T) {
	tests := []struct {
		opts diagram.Options
		want string
	}{
		{diagram.Options{Name: "DivTracker - Data Flow"}, "divtracker_data_flow.png"},
		{diagram.Options{Name: "Anything", Filename: "aws_architecture"}, "aws_architecture.png"},
	}
	for _, tt := range tests {
		g := &Graph{ID: "x", Options: tt.opts}
		assert.Equal(t, tt.want, g.Output())
	}
}

func TestGraphBuildErrorSkipsRender(t *testing.T) {
	other := diagram.New(diagram.Options{Name: "other"}).Node("stray", diagram.CategoryGeneric)

	tests := []struct {
		name  string
		build func(b *diagram.Builder) error
		code  errors.Code
	}{
		{
			name: "foreign node",
			build: func(b *diagram.Builder) error {
				return b.Edge(b.Node("a", diagram.CategoryGeneric), other)
			},
			code: errors.ErrCodeUnknownNode,
		},
		{
			name: "open cluster",
			build: func(b *diagram.Builder) error {
				return b.BeginCluster("never closed")
			},
			code: errors.ErrCodeUnbalancedCluster,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			g := &Graph{ID: "broken", Options: diagram.Options{Name: "Broken"}, Build: tt.build}

			err := g.Generate(context.Background(), Env{OutDir: t.TempDir(), Renderer: r})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			assert.Contains(t, err.Error(), "broken")
			assert.Empty(t, r.calls)
		})
	}
}

func TestGraphRenderFailure(t *testing.T) {
	r := &recorder{err: errors.New(errors.ErrCodeRenderFailed, "dot exited").WithDetail("syntax error")}

	err := sampleGraph().Generate(context.Background(), Env{OutDir: t.TempDir(), Renderer: r})
	require.Error(t, err)
	assert.True(t, render.IsFailure(err))
	assert.Equal(t, "syntax error", render.Stderr(err))
}

func TestGraphNoRenderer(t *testing.T) {
	err := sampleGraph().Generate(context.Background(), Env{OutDir: t.TempDir()})
	assert.True(t, errors.Is(err, errors.ErrCodeRendererMissing))
}

func TestGenerateRejectsPathInFilename(t *testing.T) {
	r := &recorder{}
	doc := &Document{ID: "er", Filename: "../escape", Source: func() ([]byte, error) { return []byte("digraph {}"), nil }}

	err := doc.Generate(context.Background(), Env{OutDir: t.TempDir(), Renderer: r})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
	assert.Empty(t, r.calls)
}

func TestDocumentUsesIRRenderer(t *testing.T) {
	dir := t.TempDir()
	primary, ir := &recorder{}, &recorder{}
	doc := &Document{ID: "entity_relationship", Source: func() ([]byte, error) {
		return []byte("digraph er {}"), nil
	}}

	require.NoError(t, doc.Generate(context.Background(), Env{OutDir: dir, Renderer: primary, IRRenderer: ir}))

	assert.Empty(t, primary.calls)
	require.Len(t, ir.calls, 1)
	assert.Equal(t, "digraph er {}", ir.calls[0].ir)
	assert.Equal(t, filepath.Join(dir, "entity_relationship.png"), ir.calls[0].path)
}

func TestDocumentFallsBackToRenderer(t *testing.T) {
	primary := &recorder{}
	doc := &Document{ID: "er", Filename: "schema", Source: func() ([]byte, error) { return []byte("digraph {}"), nil }}

	require.NoError(t, doc.Generate(context.Background(), Env{OutDir: t.TempDir(), Renderer: primary}))
	require.Len(t, primary.calls, 1)
	assert.Equal(t, "schema.png", filepath.Base(primary.calls[0].path))
}

func TestDocumentSourceError(t *testing.T) {
	r := &recorder{}
	doc := &Document{ID: "er", Source: func() ([]byte, error) {
		return nil, errors.New(errors.ErrCodeDuplicateNode, "table users declared twice")
	}}

	err := doc.Generate(context.Background(), Env{Renderer: r})
	assert.True(t, errors.Is(err, errors.ErrCodeDuplicateNode))
	assert.Empty(t, r.calls)
}

func TestIR(t *testing.T) {
	ir, err := IR(context.Background(), sampleGraph())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(ir, []byte("digraph")))

	_, err = IR(context.Background(), opaque{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestRenderHooks(t *testing.T) {
	hooks := &hookRecorder{}
	require.NoError(t, sampleGraph().Generate(context.Background(), Env{
		OutDir:   t.TempDir(),
		Renderer: &recorder{},
		Hooks:    hooks,
	}))
	assert.Equal(t, []string{"render start sample", "render complete sample"}, hooks.events)
}

type opaque struct{}

func (opaque) Name() string                        { return "opaque" }
func (opaque) Output() string                      { return "opaque.png" }
func (opaque) Generate(context.Context, Env) error { return nil }

type hookRecorder struct {
	mu     sync.Mutex
	events []string
}

func (h *hookRecorder) add(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, s)
}

func (h *hookRecorder) OnGenerateStart(_ context.Context, name string) {
	h.add("generate start " + name)
}

func (h *hookRecorder) OnGenerateComplete(_ context.Context, name string, _ time.Duration, _ error) {
	h.add("generate complete " + name)
}

func (h *hookRecorder) OnRenderStart(_ context.Context, name, _ string) {
	h.add("render start " + name)
}

func (h *hookRecorder) OnRenderComplete(_ context.Context, name, _ string, _ time.Duration, _ error) {
	h.add("render complete " + name)
}
