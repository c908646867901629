package pipeline

import (
	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/heuristic"
	"github.com/tue-alga/Gridmap-sub002/pkg/layout"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/polish"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// Search runs the heuristic from start. With FinalizeOnly set it only
// repairs and polishes. The returned grid is non-nil whenever the error is
// nil or a *errors.GridError.
func Search(m *subdivision.Map, d *dual.WeakDual, start *mosaic.Grid, opts Options) (*mosaic.Grid, *heuristic.Report, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, nil, err
	}
	h, err := heuristic.New(m, d, start,
		heuristic.WithLogger(opts.Logger),
		heuristic.WithPolisher(polish.New(d, polish.WithLogger(opts.Logger))),
	)
	if err != nil {
		return nil, nil, err
	}
	if opts.FinalizeOnly {
		return h.Finalize(opts.ExactTiles)
	}
	driver, err := layout.New(opts.Layout, m, d, opts.Seed)
	if err != nil {
		return nil, nil, err
	}
	return h.Execute(driver, opts.MaxNoImprove, !opts.SkipFinalize, opts.ExactTiles)
}
