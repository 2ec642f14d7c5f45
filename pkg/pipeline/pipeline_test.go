package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/generator"
	"github.com/rafiki18/archviz/pkg/render"
)

// fakeGen writes a one-byte image, fails, or panics.
type fakeGen struct {
	name  string
	err   error
	panic any
	delay time.Duration
	runs  atomic.Int32
}

func (f *fakeGen) Name() string   { return f.name }
func (f *fakeGen) Output() string { return f.name + ".png" }

func (f *fakeGen) Generate(_ context.Context, env generator.Env) error {
	f.runs.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panic != nil {
		panic(f.panic)
	}
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(env.Path(f.Output()), []byte("x"), 0o644)
}

func gens(fs ...*fakeGen) []generator.Generator {
	out := make([]generator.Generator, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

func TestRunAllSucceeds(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(generator.Env{OutDir: dir})

	report := r.RunAll(context.Background(), gens(&fakeGen{name: "a"}, &fakeGen{name: "b"}, &fakeGen{name: "c"}))

	assert.NotEqual(t, uuid.Nil, report.RunID)
	assert.Equal(t, 3, report.Attempted())
	assert.Equal(t, 3, report.Succeeded())
	assert.True(t, report.OK())
	for _, res := range report.Results {
		assert.Equal(t, StateSucceeded, res.State, res.Name)
		assert.Empty(t, res.Message)
		assert.FileExists(t, res.Output)
	}
}

func TestRunAllFailureIsolation(t *testing.T) {
	renderErr := errors.New(errors.ErrCodeRenderFailed, "dot exited with an error").
		WithDetail("Error: syntax error in line 3")

	tests := []struct {
		name    string
		workers int
	}{
		{"sequential", 1},
		{"parallel", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			list := gens(
				&fakeGen{name: "aws_architecture"},
				&fakeGen{name: "backend_components", err: renderErr},
				&fakeGen{name: "data_flow"},
				&fakeGen{name: "fcm_flow", panic: "nil map write"},
				&fakeGen{name: "entity_relationship"},
			)

			report := NewRunner(generator.Env{OutDir: dir}, WithWorkers(tt.workers)).RunAll(context.Background(), list)

			assert.Equal(t, 5, report.Attempted())
			assert.Equal(t, 3, report.Succeeded())
			assert.Equal(t, 2, report.Failed())
			assert.False(t, report.OK())
			assert.Equal(t, Names(list), resultNames(report), "results keep declaration order")

			failed := report.Results[1]
			assert.Equal(t, StateFailed, failed.State)
			assert.Equal(t, "Error: syntax error in line 3", failed.Message)
			assert.True(t, render.IsFailure(failed.Err))
			assert.NoFileExists(t, filepath.Join(dir, "backend_components.png"))

			panicked := report.Results[3]
			assert.Equal(t, StateFailed, panicked.State)
			assert.True(t, errors.Is(panicked.Err, errors.ErrCodeInternal))
			assert.Contains(t, panicked.Message, "nil map write")

			for _, i := range []int{0, 2, 4} {
				assert.FileExists(t, report.Results[i].Output)
			}
		})
	}
}

func TestRunAllOrderIndependence(t *testing.T) {
	outcome := func(workers int, reverse bool) []string {
		list := gens(
			&fakeGen{name: "a", delay: 5 * time.Millisecond},
			&fakeGen{name: "b", err: stderrors.New("broken")},
			&fakeGen{name: "c"},
			&fakeGen{name: "d", delay: time.Millisecond},
		)
		if reverse {
			for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
				list[i], list[j] = list[j], list[i]
			}
		}
		report := NewRunner(generator.Env{OutDir: t.TempDir()}, WithWorkers(workers)).RunAll(context.Background(), list)

		var ok []string
		for _, res := range report.Results {
			if res.OK() {
				ok = append(ok, res.Name)
			}
		}
		sort.Strings(ok)
		return ok
	}

	want := []string{"a", "c", "d"}
	assert.Equal(t, want, outcome(1, false))
	assert.Equal(t, want, outcome(1, true))
	assert.Equal(t, want, outcome(4, false))
	assert.Equal(t, want, outcome(4, true))
}

func TestRunAllRunsEachGeneratorOnce(t *testing.T) {
	fs := []*fakeGen{{name: "a"}, {name: "b", err: stderrors.New("x")}, {name: "c"}}
	NewRunner(generator.Env{OutDir: t.TempDir()}, WithWorkers(2)).RunAll(context.Background(), gens(fs...))
	for _, f := range fs {
		assert.Equal(t, int32(1), f.runs.Load(), f.name)
	}
}

func TestRunAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeGen{name: "a"}
	report := NewRunner(generator.Env{OutDir: t.TempDir()}).RunAll(ctx, gens(f))

	require.Len(t, report.Results, 1)
	assert.Equal(t, StateFailed, report.Results[0].State)
	assert.ErrorIs(t, report.Results[0].Err, context.Canceled)
	assert.Zero(t, f.runs.Load())
}

func TestRunAllEmpty(t *testing.T) {
	report := NewRunner(generator.Env{}).RunAll(context.Background(), nil)
	assert.Zero(t, report.Attempted())
	assert.True(t, report.OK())
}

// flakyRenderer fails for one output until fixed.
type flakyRenderer struct {
	mu     sync.Mutex
	broken string
}

func (f *flakyRenderer) fix() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken = ""
}

func (f *flakyRenderer) Render(_ context.Context, ir []byte, outPath string) error {
	f.mu.Lock()
	broken := f.broken
	f.mu.Unlock()
	if filepath.Base(outPath) == broken {
		return errors.New(errors.ErrCodeRenderFailed, "render %s", broken).WithDetail("Error: bad label")
	}
	return os.WriteFile(outPath, ir, 0o644)
}

func TestRerunAfterFix(t *testing.T) {
	dir := t.TempDir()
	rr := &flakyRenderer{broken: "second.png"}

	graph := func(id string) generator.Generator {
		return &generator.Graph{
			ID:      id,
			Options: diagram.Options{Name: id, Filename: id},
			Build: func(b *diagram.Builder) error {
				return b.Chain(b.Node("in", diagram.CategoryUsers), b.Node("out", diagram.CategoryCompute))
			},
		}
	}
	list := []generator.Generator{graph("first"), graph("second"), graph("third")}
	runner := NewRunner(generator.Env{OutDir: dir, Renderer: rr})

	report := runner.RunAll(context.Background(), list)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, "Error: bad label", report.Results[1].Message)
	assert.NoFileExists(t, filepath.Join(dir, "second.png"))
	assert.FileExists(t, filepath.Join(dir, "first.png"))
	assert.FileExists(t, filepath.Join(dir, "third.png"))

	rr.fix()
	report = runner.RunAll(context.Background(), list)
	assert.True(t, report.OK())
	assert.FileExists(t, filepath.Join(dir, "second.png"))
}

func TestRunAllHooks(t *testing.T) {
	hooks := &countingHooks{}
	dir := t.TempDir()
	rr := render.Func(func(_ context.Context, ir []byte, outPath string) error {
		return os.WriteFile(outPath, ir, 0o644)
	})
	list := []generator.Generator{
		&generator.Graph{ID: "g", Options: diagram.Options{Name: "g"}},
		&fakeGen{name: "f", err: stderrors.New("x")},
	}

	NewRunner(generator.Env{OutDir: dir, Renderer: rr}, WithHooks(hooks)).RunAll(context.Background(), list)

	assert.Equal(t, int32(2), hooks.generateStart.Load())
	assert.Equal(t, int32(2), hooks.generateComplete.Load())
	assert.Equal(t, int32(1), hooks.generateFailed.Load())
	assert.Equal(t, int32(1), hooks.render.Load())
}

func TestStateAdvanceIsForwardOnly(t *testing.T) {
	res := Result{State: StatePending}
	res.advance(StateRunning)
	res.advance(StateSucceeded)
	res.advance(StateRunning)
	res.advance(StateFailed)
	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, "succeeded", res.State.String())
}

func TestSelect(t *testing.T) {
	list := gens(&fakeGen{name: "a"}, &fakeGen{name: "b"}, &fakeGen{name: "c"})

	all, err := Select(list, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	sub, err := Select(list, []string{"c", "a", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, Names(sub), "registry order, no duplicates")

	_, err = Select(list, []string{"a", "zzz"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownDiagram))
	assert.Contains(t, err.Error(), "zzz")
	assert.Contains(t, err.Error(), "available: a, b, c")
}

func TestFind(t *testing.T) {
	list := gens(&fakeGen{name: "a"}, &fakeGen{name: "b"})

	g, err := Find(list, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", g.Name())

	_, err = Find(list, "x")
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownDiagram))
}

func resultNames(r Report) []string {
	out := make([]string, len(r.Results))
	for i, res := range r.Results {
		out[i] = res.Name
	}
	return out
}

type countingHooks struct {
	generateStart, generateComplete, generateFailed, render atomic.Int32
}

func (h *countingHooks) OnGenerateStart(context.Context, string) { h.generateStart.Add(1) }

func (h *countingHooks) OnGenerateComplete(_ context.Context, _ string, _ time.Duration, err error) {
	h.generateComplete.Add(1)
	if err != nil {
		h.generateFailed.Add(1)
	}
}

func (h *countingHooks) OnRenderStart(context.Context, string, string) {}

func (h *countingHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
	h.render.Add(1)
}
