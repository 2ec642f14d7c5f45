package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rafiki18/archviz/pkg/dot"
	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/generator"
	"github.com/rafiki18/archviz/pkg/pipeline"
)

func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "dot <diagram>",
		Short: "Print the DOT source of a diagram without rendering it",
		Example: `  archviz dot data_flow
  archviz dot entity_relationship -o er.dot
  archviz dot aws_architecture --validate`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.diagramNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			g, err := pipeline.Find(c.registry(), args[0])
			if err != nil {
				return err
			}
			ir, err := generator.IR(ctx, g)
			if err != nil {
				return err
			}
			if validate {
				if err := dot.Validate(ctx, ir); err != nil {
					return err
				}
				logger.Debug("DOT source parsed", "diagram", g.Name(), "bytes", len(ir))
			}

			if output == "" {
				_, err := c.Out.Write(ir)
				return err
			}
			if err := os.WriteFile(output, ir, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
			}
			printSuccess(c.Out, "Wrote DOT source for %s", g.Name())
			printFile(c.Out, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&validate, "validate", false, "parse the source with Graphviz before printing it")
	return cmd
}
