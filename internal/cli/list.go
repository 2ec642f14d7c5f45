package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rafiki18/archviz/pkg/generator"
)

func (c *CLI) listCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gens := c.registry()
			if plain {
				for _, g := range gens {
					fmt.Fprintln(c.Out, g.Name())
				}
				return nil
			}

			rows := make([][]string, len(gens))
			for i, g := range gens {
				rows[i] = []string{g.Name(), kind(g), g.Output()}
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Diagram", "Kind", "Output").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return styleTableHeader
					}
					if col == 0 {
						return styleTableCell.Foreground(colorCyan)
					}
					return styleTableCell.Foreground(colorGray)
				})
			fmt.Fprintln(c.Out, t.Render())
			printInfo(c.Out, "%d diagrams", len(gens))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print names only, one per line")
	return cmd
}

// kind describes how a generator produces its IR.
func kind(g generator.Generator) string {
	switch g.(type) {
	case *generator.Graph:
		return "graph"
	case *generator.Document:
		return "dot document"
	default:
		return "custom"
	}
}
