// Package pipeline runs a batch of diagram generators and reports per-diagram
// outcomes.
//
// The runner is the error boundary of an archviz run: a generator that fails,
// whether by returning an error, by a render failure or by panicking, is
// recorded as Failed and the batch moves on. [Runner.RunAll] itself never
// returns an error; the caller inspects the [Report].
//
// # Usage
//
//	runner := pipeline.NewRunner(generator.Env{
//	    OutDir:   "docs",
//	    Renderer: render.NewGraphviz(),
//	}, pipeline.WithLogger(logger), pipeline.WithWorkers(4))
//
//	report := runner.RunAll(ctx, diagrams.All())
//	fmt.Printf("Generated %d/%d diagrams\n", report.Succeeded(), report.Attempted())
//
// # Ordering
//
// Results are reported in declaration order. With a single worker the
// generators also run in that order; with more workers they run concurrently
// under an errgroup limit. Every generator writes a distinct output file and
// shares nothing else, so the outcome does not depend on execution order.
package pipeline
