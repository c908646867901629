package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/pipeline"
	"github.com/tue-alga/Gridmap-sub002/pkg/render/nodelink"
)

// dualCommand creates the dual command for drawing the weak dual of a problem.
func (c *CLI) dualCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "dual [problem.toml]",
		Short: "Draw the weak dual of a problem",
		Long: `Draw the weak dual of a problem as a node-link diagram.

Nodes sit at the face centroids. Cut edges, whose removal disconnects the dual,
are drawn bold; the search slides the blocks on either side of them.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := readInput(args[0], "problem")
			if err != nil {
				return err
			}
			m, d, err := pipeline.LoadProblem(problem)
			if err != nil {
				return err
			}

			dot := nodelink.ToDOT(d, nodelink.Options{Map: m, Detailed: detailed, HighlightCuts: true})
			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				if data, err = nodelink.RenderSVG(dot); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", format)
			}

			if output == "" {
				output = basePath("", args[0]) + ".dual." + format
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			c.Logger.Debug("dual written", "faces", d.Len(), "edges", len(d.Edges()), "cut", len(d.CutEdges()))
			printSuccess("Dual graph")
			printFile(output)
			printDetail("%d faces · %d edges · %d cut edges", d.Len(), len(d.Edges()), len(d.CutEdges()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <problem>.dual.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show weight and degree in node labels")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedValues("svg", "dot"))

	return cmd
}
