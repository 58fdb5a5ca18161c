package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmichalek/netlayout/pkg/io"
	"github.com/jmichalek/netlayout/pkg/layout"
)

// crossingsCommand creates the crossings command for measuring layout quality.
func (c *CLI) crossingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "crossings [topology.json]",
		Short: "Count link crossings at the stored positions",
		Long: `Count link crossings at the stored positions.

Two links cross when their segments properly intersect. Links that merely
share a device do not count. The count is a quality measure: fewer crossings
generally means a more readable diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := io.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load topology %s: %w", args[0], err)
			}

			count := layout.CountCrossings(g.Edges(), storedPositions(g))

			if count == 0 {
				printSuccess("No link crossings")
			} else {
				printInfo("%d link crossings", count)
			}
			printDetail("%d devices · %d links", g.NodeCount(), g.EdgeCount())
			return nil
		},
	}
}
