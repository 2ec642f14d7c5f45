package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/generator"
	"github.com/rafiki18/archviz/pkg/observability"
)

// Runner executes generators against a shared environment.
//
// The Runner holds no per-run state; RunAll may be called repeatedly and
// from multiple goroutines.
type Runner struct {
	Env     generator.Env
	Workers int
	Logger  *log.Logger
	Hooks   observability.GeneratorHooks
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets how many generators run at once. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.Workers = n }
}

// WithLogger sets the run logger. It is also passed to generators unless the
// environment already carries one.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.Logger = l
		}
	}
}

// WithHooks overrides the globally registered observability hooks.
func WithHooks(h observability.GeneratorHooks) Option {
	return func(r *Runner) {
		if h != nil {
			r.Hooks = h
		}
	}
}

// NewRunner creates a runner for env.
func NewRunner(env generator.Env, opts ...Option) *Runner {
	r := &Runner{
		Env:     env,
		Workers: 1,
		Logger:  log.NewWithOptions(io.Discard, log.Options{}),
		Hooks:   observability.Generator(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.Workers < 1 {
		r.Workers = 1
	}
	return r
}

// RunAll runs every generator once and reports the outcome of each.
//
// A failing generator never stops the batch. If ctx is cancelled, generators
// that have not started are marked Failed with the context error.
func (r *Runner) RunAll(ctx context.Context, gens []generator.Generator) Report {
	report := Report{
		RunID:   uuid.New(),
		Results: make([]Result, len(gens)),
	}
	env := r.Env
	for i, g := range gens {
		report.Results[i] = Result{Name: g.Name(), Output: env.Path(g.Output()), State: StatePending}
	}

	logger := r.logger().With("run", shortID(report.RunID))
	if env.Logger == nil {
		env.Logger = logger
	}
	if env.Hooks == nil {
		env.Hooks = r.hooks()
	}

	start := time.Now()
	logger.Debug("run started", "diagrams", len(gens), "workers", r.workers(len(gens)))

	if r.workers(len(gens)) == 1 {
		for i, g := range gens {
			r.runOne(ctx, env, logger, g, &report.Results[i])
		}
	} else {
		var eg errgroup.Group
		eg.SetLimit(r.workers(len(gens)))
		for i, g := range gens {
			res := &report.Results[i]
			eg.Go(func() error {
				r.runOne(ctx, env, logger, g, res)
				return nil
			})
		}
		_ = eg.Wait()
	}

	logger.Debug("run finished",
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"duration", time.Since(start).Round(time.Millisecond))
	return report
}

func (r *Runner) runOne(ctx context.Context, env generator.Env, logger *log.Logger, g generator.Generator, res *Result) {
	if err := ctx.Err(); err != nil {
		res.fail(err)
		logger.Warn("skipped", "diagram", res.Name, "reason", err)
		return
	}

	res.advance(StateRunning)
	hooks := env.Hooks
	hooks.OnGenerateStart(ctx, res.Name)
	logger.Debug("generating", "diagram", res.Name)

	start := time.Now()
	err := safeGenerate(ctx, g, env)
	res.Duration = time.Since(start)
	hooks.OnGenerateComplete(ctx, res.Name, res.Duration, err)

	if err != nil {
		res.fail(err)
		logger.Warn("generation failed", "diagram", res.Name, "err", firstLine(res.Message))
		return
	}
	res.advance(StateSucceeded)
	logger.Debug("generated", "diagram", res.Name, "output", res.Output, "duration", res.Duration.Round(time.Millisecond))
}

// safeGenerate converts a panic inside a generator into an error.
func safeGenerate(ctx context.Context, g generator.Generator, env generator.Env) (err error) {
	defer func() {
		if p := recover(); p != nil {
			env.Logger.Debug("generator panic", "diagram", g.Name(), "stack", string(debug.Stack()))
			err = fmt.Errorf("%s: %w", g.Name(), errors.New(errors.ErrCodeInternal, "panic: %v", p))
		}
	}()
	return g.Generate(ctx, env)
}

func (r *Runner) workers(n int) int {
	w := r.Workers
	if w < 1 {
		w = 1
	}
	if n > 0 && w > n {
		w = n
	}
	return w
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return r.Logger
}

func (r *Runner) hooks() observability.GeneratorHooks {
	if r.Hooks == nil {
		return observability.Generator()
	}
	return r.Hooks
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
