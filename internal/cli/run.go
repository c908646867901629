package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/pipeline"
)

// runOpts holds the flags shared by run and finalize.
type runOpts struct {
	initial     string
	output      string
	formats     string
	shapes      bool
	diagnostics bool
	cellSize    float64
	table       bool
	cache       cacheFlags
	pipeline    pipeline.Options
}

func (o *runOpts) registerOutput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (default: <problem> without extension)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): coords (default), json, svg, dot, dual-svg (comma-separated)")
	cmd.Flags().BoolVar(&o.shapes, "shapes", false, "outline guiding shapes (svg)")
	cmd.Flags().BoolVar(&o.diagnostics, "diagnostics", false, "mark hole and alley cells (svg)")
	cmd.Flags().Float64Var(&o.cellSize, "cell-size", 0, "cell size in pixels (svg)")
	cmd.Flags().BoolVar(&o.table, "table", false, "print per-region statistics")
	cmd.Flags().BoolVar(&o.pipeline.ExactTiles, "exact", false, "polish to exact region sizes, checking connectivity only")
	cmd.Flags().BoolVar(&o.pipeline.Refresh, "refresh", false, "ignore cached checkpoints")
	o.cache.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", fixedValues(formatNames()...))
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [problem.toml]",
		Short: "Compute a mosaic cartogram",
		Long: `Compute a mosaic cartogram for a problem file.

Without --initial every face starts with the cell containing its centroid.
The search iterates until --max-no-improve consecutive sweeps bring no better
grid, then fills holes and alleys and polishes region sizes.

Values in the problem's [heuristic] table act as defaults for the flags.
Finished runs are cached; run again with --refresh to search anyway.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.initial, "initial", "i", "", "initial coordinate records")
	cmd.Flags().IntVarP(&opts.pipeline.MaxNoImprove, "max-no-improve", "n", 0, "stop after this many sweeps without improvement (default 10)")
	cmd.Flags().BoolVar(&opts.pipeline.SkipFinalize, "no-finalize", false, "skip hole and alley repair and polishing")
	cmd.Flags().StringVar(&opts.pipeline.Layout, "layout", "", "guiding-shape driver: force (default), static")
	cmd.Flags().Int64Var(&opts.pipeline.Seed, "seed", 0, "layout random seed (default 42)")
	_ = cmd.RegisterFlagCompletionFunc("layout", fixedValues(layoutNames()...))
	opts.registerOutput(cmd)

	return cmd
}

// finalizeCommand creates the finalize command.
func (c *CLI) finalizeCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:               "finalize [problem.toml] [grid.coords]",
		Short:             "Repair and polish an existing grid without searching",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeInputs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.initial = args[1]
			opts.pipeline.FinalizeOnly = true
			return c.runSearch(cmd.Context(), args[0], &opts)
		},
	}
	opts.registerOutput(cmd)

	return cmd
}

// runSearch executes the pipeline and writes its artifacts.
func (c *CLI) runSearch(ctx context.Context, input string, opts *runOpts) error {
	popts := opts.pipeline
	popts.Formats = parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(popts.Formats); err != nil {
		return err
	}
	popts.Shapes = opts.shapes
	popts.Diagnostics = opts.diagnostics
	popts.CellSize = opts.cellSize
	popts.Logger = c.Logger

	var err error
	if popts.Problem, err = readInput(input, "problem"); err != nil {
		return err
	}
	if opts.initial != "" {
		if popts.Initial, err = readInput(opts.initial, "initial grid"); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	msg := "Searching..."
	if popts.FinalizeOnly {
		msg = "Finalizing..."
	}
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, msg)
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	var gerr *errors.GridError
	if err != nil && !stderrors.As(err, &gerr) {
		spinner.StopWithError("Run failed")
		return err
	}
	spinner.Stop()
	prog.done("Run finished", "run", result.RunID)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	formats := slices.Sorted(maps.Keys(result.Artifacts))
	for _, format := range formats {
		path := outputPath(opts.output, input, format, len(formats) == 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		if gerr == nil {
			printSuccess("Wrote %s", format)
		} else {
			printWarning("Wrote %s", format)
		}
		printFile(path)
	}
	printStats(result.Summary, result.CacheHit)
	if opts.table {
		printNewline()
		fmt.Println(regionTable(result.Summary, result.Map))
	}

	if gerr != nil {
		printWarning("Grid is not %s: regions %v", gerr.Check, gerr.Regions)
		return err
	}
	return nil
}

// readInput reads a file, mapping a missing file to a FILE_NOT_FOUND error.
func readInput(path, what string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s %s", what, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", what, path, err)
	}
	return data, nil
}
