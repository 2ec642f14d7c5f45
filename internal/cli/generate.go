package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafiki18/archviz/internal/config"
	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/generator"
	"github.com/rafiki18/archviz/pkg/pipeline"
	"github.com/rafiki18/archviz/pkg/render"
)

// generateOptions holds flag values. Only flags the user set override the
// config file.
type generateOptions struct {
	outDir    string
	engine    string
	dotBinary string
	timeout   time.Duration
	workers   int
	keepIR    bool
	strict    bool
	only      []string
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render every diagram (or a subset) to PNG",
		Long: `Render the diagrams to PNG images in the output directory.

Each diagram is generated independently: a failure is reported in the summary
and the remaining diagrams are still rendered. The command exits 0 on partial
success unless --strict is set.`,
		Example: `  archviz generate
  archviz generate -o docs/diagrams --engine dot
  archviz generate --only data_flow,fcm_flow --workers 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (default \".\")")
	f.StringVar(&opts.engine, "engine", "", "renderer for builder diagrams: wasm (in-process) or dot (Graphviz binary)")
	f.StringVar(&opts.dotBinary, "dot-binary", "", "path to the Graphviz dot binary")
	f.DurationVar(&opts.timeout, "timeout", 0, "per-render timeout (default 60s, 0 disables)")
	f.IntVarP(&opts.workers, "workers", "j", 0, "diagrams rendered in parallel")
	f.BoolVar(&opts.keepIR, "keep-ir", false, "keep the intermediate .dot file when a render fails")
	f.BoolVar(&opts.strict, "strict", false, "exit with an error if any diagram fails")
	f.StringSliceVar(&opts.only, "only", nil, "comma-separated diagram names to generate")

	_ = cmd.RegisterFlagCompletionFunc("only", c.diagramNames)
	_ = cmd.RegisterFlagCompletionFunc("engine", cobra.FixedCompletions(
		[]cobra.Completion{string(config.EngineWASM), string(config.EngineDot)}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// resolveConfig loads the config file and applies the flags the user set.
func (c *CLI) resolveConfig(cmd *cobra.Command, opts *generateOptions) (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("out") {
		cfg.OutputDir = opts.outDir
	}
	if changed("engine") {
		cfg.Engine = config.Engine(opts.engine)
	}
	if changed("dot-binary") {
		cfg.DotBinary = opts.dotBinary
	}
	if changed("timeout") {
		cfg.Timeout.Duration = opts.timeout
	}
	if changed("workers") {
		cfg.Workers = opts.workers
	}
	if changed("keep-ir") {
		cfg.KeepIR = opts.keepIR
	}
	if changed("strict") {
		cfg.Strict = opts.strict
	}
	if changed("only") {
		cfg.Diagrams = opts.only
	}

	return cfg, cfg.Validate()
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	gens, err := pipeline.Select(c.registry(), cfg.Diagrams)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", cfg.OutputDir)
	}

	diagrams, documents := c.renderers(cfg, logger)
	runner := pipeline.NewRunner(generator.Env{
		OutDir:     cfg.OutputDir,
		Renderer:   diagrams,
		IRRenderer: documents,
	}, pipeline.WithLogger(logger), pipeline.WithWorkers(cfg.Workers))

	printBanner(c.Out)
	logger.Debug("starting run",
		"diagrams", len(gens),
		"engine", cfg.Engine,
		"workers", cfg.Workers,
		"timeout", cfg.Timeout)

	prog := newProgress(logger)
	var spin *Spinner
	if isTerminal(os.Stderr) && logger.GetLevel() > LogDebug {
		spin = newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %d diagrams...", len(gens)))
		spin.Start()
	}
	report := runner.RunAll(ctx, gens)
	if spin != nil {
		spin.Stop()
	}
	prog.done(fmt.Sprintf("Rendered %d/%d diagrams", report.Succeeded(), report.Attempted()))

	printReport(c.Out, report, cfg.OutputDir)
	if cfg.KeepIR {
		printKeptIR(c.Out, keptIR(report))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if cfg.Strict && !report.OK() {
		return errors.New(errors.ErrCodeRenderFailed, "%d of %d diagrams failed", report.Failed(), report.Attempted())
	}
	return nil
}

// keptIR returns the intermediate DOT files that exist for failed diagrams.
func keptIR(report pipeline.Report) []string {
	var paths []string
	for _, res := range report.Failures() {
		p := render.IRPath(res.Output)
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}
