// Package pipeline runs the cartogram engine end to end: load a problem,
// build the starting grid, search, finalize, and render.
//
// CLI commands go through this package so that defaults, caching and
// logging behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Problem: problemTOML,
//	    Initial: coordinateRecords,
//	    Formats: []string{pipeline.FormatCoords, pipeline.FormatSVG},
//	})
//	var gerr *errors.GridError
//	if stderrors.As(err, &gerr) {
//	    // result is still filled in; regions gerr.Regions broke the final check
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Caching
//
// A finished run is stored as coordinate records keyed by the problem, the
// initial coordinates and the options that steer the search. A later run
// with the same inputs loads the records instead of searching. Set Refresh
// to search anyway. Runs whose final check fails are not cached.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tue-alga/Gridmap-sub002/pkg/cache"
	"github.com/tue-alga/Gridmap-sub002/pkg/heuristic"
	"github.com/tue-alga/Gridmap-sub002/pkg/layout"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMaxNoImprove is the number of consecutive sweeps without a
	// better grid after which the search stops.
	DefaultMaxNoImprove = 10

	// DefaultLayout is the guiding-shape driver.
	DefaultLayout = layout.NameForce

	// DefaultSeed seeds the layout driver.
	DefaultSeed = int64(42)
)

// Format constants for output artifacts.
const (
	FormatCoords  = "coords"
	FormatJSON    = "json"
	FormatSVG     = "svg"
	FormatDOT     = "dot"
	FormatDualSVG = "dual-svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatCoords:  true,
	FormatJSON:    true,
	FormatSVG:     true,
	FormatDOT:     true,
	FormatDualSVG: true,
}

// ValidLayouts is the set of supported layout drivers.
var ValidLayouts = map[string]bool{
	layout.NameForce:  true,
	layout.NameStatic: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a run. Zero values mean "use the problem file's
// [heuristic] table, else the package default".
type Options struct {
	// Inputs
	Problem []byte `json:"-"` // TOML problem file contents
	Initial []byte `json:"-"` // coordinate records; empty seeds from face centroids

	// Search options
	MaxNoImprove int    `json:"max_no_improve,omitempty"`
	SkipFinalize bool   `json:"skip_finalize,omitempty"`
	FinalizeOnly bool   `json:"finalize_only,omitempty"`
	ExactTiles   bool   `json:"exact_tiles,omitempty"`
	Layout       string `json:"layout,omitempty"`
	Seed         int64  `json:"seed,omitempty"`
	Refresh      bool   `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Shapes      bool     `json:"shapes,omitempty"`
	Diagnostics bool     `json:"diagnostics,omitempty"`
	CellSize    float64  `json:"cell_size,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a run.
type Result struct {
	// RunID identifies the run in logs and hooks.
	RunID string

	Map  *subdivision.Map
	Grid *mosaic.Grid

	// Report is nil when the grid came from the cache.
	Report  *heuristic.Report
	Summary mosaic.Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	CacheKey string
	CacheHit bool
	Stats    Stats
}

// Stats contains run timings.
type Stats struct {
	Regions    int
	LoadTime   time.Duration
	SearchTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: coords, json, svg, dot, dual-svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLayout checks that a layout driver name is valid.
func ValidateLayout(name string) error {
	if !ValidLayouts[name] {
		return fmt.Errorf("invalid layout: %q (must be one of: force, static)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ApplySettings fills unset options from a problem's [heuristic] table.
func (o *Options) ApplySettings(s subdivision.Settings) {
	if o.MaxNoImprove == 0 && s.MaxNoImprove != nil {
		o.MaxNoImprove = *s.MaxNoImprove
	}
	if !o.SkipFinalize && s.Finalize != nil && !*s.Finalize {
		o.SkipFinalize = true
	}
	if !o.ExactTiles && s.ExactTiles != nil {
		o.ExactTiles = *s.ExactTiles
	}
	if o.Layout == "" && s.Layout != nil {
		o.Layout = *s.Layout
	}
	if o.Seed == 0 && s.Seed != nil {
		o.Seed = *s.Seed
	}
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Problem) == 0 {
		return fmt.Errorf("problem is required")
	}
	return o.setDefaults()
}

// setDefaults validates and defaults the search and render options.
func (o *Options) setDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxNoImprove < 0 {
		return fmt.Errorf("max_no_improve must not be negative, got %d", o.MaxNoImprove)
	}
	if o.FinalizeOnly && o.SkipFinalize {
		return fmt.Errorf("finalize_only and skip_finalize exclude each other")
	}
	if o.MaxNoImprove == 0 {
		o.MaxNoImprove = DefaultMaxNoImprove
	}
	o.Layout = strings.ToLower(strings.TrimSpace(o.Layout))
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatCoords}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// CheckpointKeyOpts returns the cache key options of the run.
func (o *Options) CheckpointKeyOpts() cache.CheckpointKeyOpts {
	return cache.CheckpointKeyOpts{
		InitialHash:  cache.HashRecords(o.Initial),
		MaxNoImprove: o.MaxNoImprove,
		Finalize:     !o.SkipFinalize,
		FinalizeOnly: o.FinalizeOnly,
		ExactTiles:   o.ExactTiles,
		Layout:       o.Layout,
		Seed:         o.Seed,
	}
}
