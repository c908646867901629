package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/pipeline"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "validate [problem.toml] [grid.coords]",
		Short: "Check a grid and print per-region statistics",
		Long: `Check a grid against its problem.

A grid is valid when every region is connected and touches exactly the regions
it is adjacent to in the map. With --exact only connectivity is checked.
The command fails when the check does not hold.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, g, err := loadGrid(args[0], args[1])
			if err != nil {
				return err
			}
			s := g.Summarize()
			fmt.Println(regionTable(s, m))
			printStats(s, false)
			return reportValidity(g, exact)
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "check connectivity only")

	return cmd
}

// loadGrid reads a problem and a coordinate file into a grid.
func loadGrid(problemPath, coordsPath string) (*subdivision.Map, *mosaic.Grid, error) {
	problem, err := readInput(problemPath, "problem")
	if err != nil {
		return nil, nil, err
	}
	coords, err := readInput(coordsPath, "grid")
	if err != nil {
		return nil, nil, err
	}
	m, _, err := pipeline.LoadProblem(problem)
	if err != nil {
		return nil, nil, err
	}
	g, err := pipeline.InitialGrid(m, coords)
	if err != nil {
		return nil, nil, err
	}
	return m, g, nil
}

// reportValidity prints the outcome of the grid check and returns a
// *errors.GridError when it fails.
func reportValidity(g *mosaic.Grid, exact bool) error {
	property, ids := "valid", g.InvalidRegions()
	if exact {
		property, ids = "connected", g.DisconnectedRegions()
	}
	if len(ids) == 0 {
		printSuccess("Grid is %s", property)
		return nil
	}
	printError("Grid is not %s", property)
	printDetail("Regions: %v", ids)
	return &errors.GridError{Check: property, Regions: ids}
}
