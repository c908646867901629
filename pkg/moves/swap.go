package moves

import (
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
)

// Swap exchanges the owners of two occupied cells.
type Swap struct {
	grid *mosaic.Grid
	a, b lattice.Coord
}

// NewSwap creates a move exchanging the owners of a and b.
func NewSwap(g *mosaic.Grid, a, b lattice.Coord) *Swap {
	return &Swap{grid: g, a: a, b: b}
}

// Evaluate requires both cells to be owned by different regions, and both
// regions to stay valid.
func (s *Swap) Evaluate() Outcome {
	ida, oka := s.grid.Owner(s.a)
	idb, okb := s.grid.Owner(s.b)
	if !oka || !okb || ida == idb {
		return invalid()
	}
	undoA := s.grid.Assign(s.a, idb)
	undoB := s.grid.Assign(s.b, ida)

	ra, rb := s.grid.Region(ida), s.grid.Region(idb)
	o := Outcome{
		Valid:     s.grid.RegionValid(ida) && s.grid.RegionValid(idb),
		Connected: ra.IsConnected() && rb.IsConnected(),
		Quality:   Invalid,
		Necessity: max(ra.SymmetricDifference()+rb.SymmetricDifference(), 1),
	}
	if o.Valid {
		o.Quality = s.grid.Quality(true)
	}

	undoB()
	undoA()
	return o
}

// Execute exchanges the owners.
func (s *Swap) Execute() {
	ida, oka := s.grid.Owner(s.a)
	idb, okb := s.grid.Owner(s.b)
	if !oka || !okb {
		return
	}
	s.grid.Assign(s.a, idb)
	s.grid.Assign(s.b, ida)
}
