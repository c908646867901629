package moves

import (
	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// Slide shifts every region on the small side of a separator by one unit.
type Slide struct {
	grid *mosaic.Grid
	m    *subdivision.Map
	sep  dual.Separator
	dir  lattice.Coord
}

// NewSlide creates a move shifting sep.Component1 by dir.
func NewSlide(g *mosaic.Grid, m *subdivision.Map, sep dual.Separator, dir lattice.Coord) *Slide {
	return &Slide{grid: g, m: m, sep: sep, dir: dir}
}

// DirectionImproves reports whether shifting brings the bearing between the
// barycenters of the separator endpoints closer to the bearing between the
// corresponding face centroids.
func (s *Slide) DirectionImproves() bool {
	r1, r2 := s.grid.Region(s.sep.V1), s.grid.Region(s.sep.V2)
	f1, f2 := s.m.Faces[s.sep.V1].Centroid, s.m.Faces[s.sep.V2].Centroid

	desired := f2.Sub(f1).Angle()
	b1, b2 := r1.ContinuousBarycenter(), r2.ContinuousBarycenter()
	moved := b1.Add(s.dir.Center())

	current := lattice.AngleDifference(desired, b2.Sub(b1).Angle())
	next := lattice.AngleDifference(desired, b2.Sub(moved).Angle())
	return next < current
}

// Evaluate checks the direction, then that no shifted cell lands on a region
// outside the block and that the shifted grid is valid.
func (s *Slide) Evaluate() Outcome {
	if !s.DirectionImproves() {
		return invalid()
	}
	for _, id := range s.sep.Component1 {
		for _, c := range s.grid.Region(id).Cells() {
			if o, ok := s.grid.Owner(c.Plus(s.dir)); ok && !s.sep.InComponent1(o) {
				return invalid()
			}
		}
	}

	undo := s.grid.Translate(s.sep.Component1, s.dir)
	o := Outcome{Valid: s.grid.IsValid(), Connected: s.grid.IsConnected(), Quality: Invalid, Necessity: 1}
	if o.Valid {
		o.Quality = s.grid.Quality(true)
	}
	undo()
	return o
}

// Execute performs the shift without checking anything.
func (s *Slide) Execute() {
	s.grid.Translate(s.sep.Component1, s.dir)
}
