// Package heuristic builds a valid mosaic cartogram from an initial cell
// assignment by local search.
//
// A run moves through fixed phases:
//
//	seed shapes -> slide blocks -> iterate (layout step, take/release sweep) -> finalize
//
// Iteration stops after a number of consecutive sweeps that do not improve
// the best grid seen so far. Finalizing fills holes, fills alleys, and hands
// the grid to a polisher that fixes the remaining size errors.
//
// Everything runs on the calling goroutine. The grid handed to New is never
// modified; every run works on a duplicate.
package heuristic

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/moves"
	"github.com/tue-alga/Gridmap-sub002/pkg/observability"
	"github.com/tue-alga/Gridmap-sub002/pkg/polish"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// DefaultMaxSlideRounds bounds the rounds of the slide phase.
const DefaultMaxSlideRounds = 1000

// LayoutDriver moves guiding shapes between sweeps. layout.Driver
// implementations satisfy it.
type LayoutDriver interface {
	Step(g *mosaic.Grid) bool
}

// Polisher fixes the region sizes of a finalized grid. With exact set it
// must return connected regions of exactly their desired sizes when it can;
// otherwise it must keep the grid valid.
type Polisher interface {
	Polish(g *mosaic.Grid, exact bool) (*mosaic.Grid, error)
}

// Score orders grids. Lower is better; fields are compared in order.
type Score struct {
	Exact   float64 `json:"exact"`
	Relaxed float64 `json:"relaxed"`
	Shape   int     `json:"shape"`
}

// ScoreOf measures g.
func ScoreOf(g *mosaic.Grid) Score {
	return Score{Exact: g.Quality(true), Relaxed: g.Quality(false), Shape: g.ShapeError()}
}

// Less reports whether s is strictly better than o.
func (s Score) Less(o Score) bool {
	if s.Exact != o.Exact {
		return s.Exact < o.Exact
	}
	if s.Relaxed != o.Relaxed {
		return s.Relaxed < o.Relaxed
	}
	return s.Shape < o.Shape
}

// Report describes a finished run.
type Report struct {
	Slides       int             `json:"slides"`
	Iterations   int             `json:"iterations"`
	Takes        int             `json:"takes"`
	Releases     int             `json:"releases"`
	FilledHoles  int             `json:"filled_holes"`
	FilledAlleys int             `json:"filled_alleys"`
	Holes        []lattice.Coord `json:"-"`
	Alleys       []lattice.Coord `json:"-"`
	Best         Score           `json:"best"`
	Duration     time.Duration   `json:"duration"`
}

// Heuristic holds what stays fixed across runs over one map.
type Heuristic struct {
	m          *subdivision.Map
	dual       *dual.WeakDual
	grid       *mosaic.Grid
	separators []dual.Separator

	logger         *log.Logger
	hooks          observability.HeuristicHooks
	polisher       Polisher
	maxSlideRounds int
}

// Option configures a Heuristic.
type Option func(*Heuristic)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(h *Heuristic) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithHooks overrides the globally registered heuristic hooks.
func WithHooks(hooks observability.HeuristicHooks) Option {
	return func(h *Heuristic) {
		if hooks != nil {
			h.hooks = hooks
		}
	}
}

// WithPolisher replaces the flow polisher.
func WithPolisher(p Polisher) Option {
	return func(h *Heuristic) {
		if p != nil {
			h.polisher = p
		}
	}
}

// WithMaxSlideRounds overrides DefaultMaxSlideRounds.
func WithMaxSlideRounds(n int) Option {
	return func(h *Heuristic) {
		if n > 0 {
			h.maxSlideRounds = n
		}
	}
}

// New prepares runs starting from g. It computes one separator per cut edge
// of d and fails if any of them does not split the dual.
func New(m *subdivision.Map, d *dual.WeakDual, g *mosaic.Grid, opts ...Option) (*Heuristic, error) {
	if len(m.Faces) != d.Len() || len(g.Regions()) != d.Len() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"map has %d faces, dual %d vertices, grid %d regions", len(m.Faces), d.Len(), len(g.Regions()))
	}
	seps, err := dual.Separators(d)
	if err != nil {
		return nil, err
	}
	h := &Heuristic{
		m:              m,
		dual:           d,
		grid:           g,
		separators:     seps,
		logger:         log.New(io.Discard),
		hooks:          observability.Heuristic(),
		maxSlideRounds: DefaultMaxSlideRounds,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.polisher == nil {
		h.polisher = polish.New(d, polish.WithLogger(h.logger))
	}
	return h, nil
}

// Separators returns the separators, one per cut edge in dual order.
func (h *Heuristic) Separators() []dual.Separator { return h.separators }

// Execute runs the full search with driver moving the guiding shapes. It
// stops after maxNoImprove consecutive sweeps without a better grid. With
// finalize set the best grid is repaired and polished.
//
// The returned grid is never nil when the run got that far: on a final
// check failure it comes back together with a *errors.GridError, checking
// validity or, with exactTiles, only connectivity.
func (h *Heuristic) Execute(driver LayoutDriver, maxNoImprove int, finalize, exactTiles bool) (*mosaic.Grid, *Report, error) {
	start := time.Now()
	rep := &Report{}
	g := h.grid.Duplicate()
	if !g.IsValid() {
		h.logger.Warn("starting grid is not valid", "regions", g.InvalidRegions())
	}
	h.SeedGuidingShapes(g)

	h.phase(observability.PhaseSlide, func() {
		rep.Slides = h.SlideBlocks(g)
	})
	h.logger.Info("slide settled", "moves", rep.Slides)

	best, bestScore := g.Duplicate(), ScoreOf(g)
	h.phase(observability.PhaseIterate, func() {
		for bad := 0; bad < maxNoImprove; {
			driver.Step(g)
			takes, releases := h.RunIteration(g)
			rep.Takes += takes
			rep.Releases += releases
			rep.Iterations++

			s := ScoreOf(g)
			improved := s.Less(bestScore)
			if improved {
				best, bestScore, bad = g.Duplicate(), s, 0
			} else {
				bad++
			}
			h.hooks.OnIteration(rep.Iterations, s.Exact, s.Relaxed, improved)
			h.logger.Debug("iteration", "n", rep.Iterations, "exact", s.Exact, "relaxed", s.Relaxed,
				"shape", s.Shape, "improved", improved)
		}
	})
	h.logger.Info("search done", "iterations", rep.Iterations, "exact", bestScore.Exact, "relaxed", bestScore.Relaxed)

	g = best
	if finalize {
		var err error
		if g, err = h.finalize(g, exactTiles, rep); err != nil {
			return nil, rep, err
		}
	}
	rep.Best = ScoreOf(g)
	rep.Duration = time.Since(start)
	return g, rep, check(g, exactTiles)
}

// Finalize repairs and polishes a copy of the starting grid without
// searching. The guiding shapes keep their current translations.
func (h *Heuristic) Finalize(exactTiles bool) (*mosaic.Grid, *Report, error) {
	start := time.Now()
	rep := &Report{}
	g := h.grid.Duplicate()
	if !g.IsValid() {
		h.logger.Warn("starting grid is not valid", "regions", g.InvalidRegions())
	}
	g, err := h.finalize(g, exactTiles, rep)
	if err != nil {
		return nil, rep, err
	}
	rep.Best = ScoreOf(g)
	rep.Duration = time.Since(start)
	return g, rep, check(g, exactTiles)
}

func (h *Heuristic) finalize(g *mosaic.Grid, exactTiles bool, rep *Report) (*mosaic.Grid, error) {
	h.phase(observability.PhaseFillHoles, func() {
		rep.FilledHoles, rep.Holes = h.FillHoles(g)
	})
	h.hooks.OnRepair(observability.PhaseFillHoles, rep.FilledHoles, len(rep.Holes))
	if len(rep.Holes) > 0 {
		h.logger.Warn("holes left unresolved", "cells", len(rep.Holes))
	}

	h.phase(observability.PhaseFillAlleys, func() {
		rep.FilledAlleys, rep.Alleys = h.FillAlleys(g)
	})
	h.hooks.OnRepair(observability.PhaseFillAlleys, rep.FilledAlleys, len(rep.Alleys))
	if len(rep.Alleys) > 0 {
		h.logger.Warn("alleys left unresolved", "cells", len(rep.Alleys))
	}

	var polished *mosaic.Grid
	var err error
	h.phase(observability.PhasePolish, func() {
		polished, err = h.polisher.Polish(g, exactTiles)
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "polish")
	}
	s := ScoreOf(polished)
	h.logger.Info("finalized", "exact", s.Exact, "relaxed", s.Relaxed, "valid", polished.IsValid())
	return polished, nil
}

func (h *Heuristic) phase(name string, fn func()) {
	h.hooks.OnPhaseStart(name)
	start := time.Now()
	fn()
	h.hooks.OnPhaseComplete(name, time.Since(start))
}

func check(g *mosaic.Grid, exactTiles bool) error {
	if exactTiles {
		if ids := g.DisconnectedRegions(); len(ids) > 0 {
			return &errors.GridError{Check: "connected", Regions: ids}
		}
		return nil
	}
	if ids := g.InvalidRegions(); len(ids) > 0 {
		return &errors.GridError{Check: "valid", Regions: ids}
	}
	return nil
}

// SeedGuidingShapes centres every guiding shape on its region.
func (h *Heuristic) SeedGuidingShapes(g *mosaic.Grid) {
	for _, r := range g.Regions() {
		if r.Size() == 0 {
			continue
		}
		g.TranslateGuidingShape(r.ID(), r.Barycenter().Minus(r.Shape().Barycenter()))
	}
}

// SlideBlocks applies every valid slide, over all separators and unit
// directions in order, until a full round applies none. It returns the
// number of slides applied.
func (h *Heuristic) SlideBlocks(g *mosaic.Grid) int {
	applied := 0
	for round := 0; ; round++ {
		if round >= h.maxSlideRounds {
			h.logger.Warn("slide rounds exhausted", "rounds", round)
			return applied
		}
		changed := false
		for _, sep := range h.separators {
			for _, dir := range g.Lattice().UnitVectors() {
				sm := moves.NewSlide(g, h.m, sep, dir)
				if sm.Evaluate().Valid {
					sm.Execute()
					changed = true
					applied++
				}
			}
		}
		if !changed {
			return applied
		}
	}
}

// RunIteration lets every region take the desired cells around it until it
// can take no more, then release the cells it does not desire. Moves are
// applied as soon as they are found valid.
func (h *Heuristic) RunIteration(g *mosaic.Grid) (takes, releases int) {
	for _, r := range g.Regions() {
		for changed := true; changed; {
			changed = false
			for _, c := range r.Neighbours() {
				if !r.IsDesired(c) {
					continue
				}
				tm := moves.NewTake(h.dual, g, c, r.ID())
				if tm.Improves() && tm.Evaluate().Valid {
					tm.Execute()
					changed = true
					takes++
				}
			}
		}
	}
	for _, r := range g.Regions() {
		for _, c := range r.Cells() {
			if r.IsDesired(c) {
				continue
			}
			rm := moves.NewRelease(g, c)
			if rm.Evaluate().Valid {
				rm.Execute()
				releases++
			}
		}
	}
	return takes, releases
}
