// Package cli implements the archviz command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rafiki18/archviz/internal/config"
	"github.com/rafiki18/archviz/internal/diagrams"
	"github.com/rafiki18/archviz/pkg/buildinfo"
	"github.com/rafiki18/archviz/pkg/generator"
	"github.com/rafiki18/archviz/pkg/render"
)

const appName = "archviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives human-readable output; logs go to Logger.
	Out io.Writer

	configPath string

	// registry and renderers are replaced in tests.
	registry  func() []generator.Generator
	renderers func(cfg config.Config, logger *log.Logger) (diagrams, documents render.Renderer)
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Out:      os.Stdout,
		registry: diagrams.All,
		renderers: func(cfg config.Config, logger *log.Logger) (render.Renderer, render.Renderer) {
			return cfg.Renderers(render.WithLogger(logger))
		},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Running the root command without a subcommand generates every diagram.
func (c *CLI) RootCommand() *cobra.Command {
	gen := c.generateCommand()

	root := &cobra.Command{
		Use:   appName,
		Short: "archviz renders the DivTracker architecture diagrams",
		Long: `archviz declares the DivTracker architecture diagrams in code and renders
each of them to a PNG image with Graphviz. A failing diagram never stops the
others; a summary reports what was generated.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &generateOptions{})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+config.FileName+" if present)")

	root.AddCommand(gen)
	root.AddCommand(c.listCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// diagramNames completes diagram names for positional arguments and flags.
func (c *CLI) diagramNames(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	var out []cobra.Completion
	for _, g := range c.registry() {
		out = append(out, g.Name())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
