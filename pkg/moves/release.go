package moves

import (
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
)

// Release makes an occupied cell empty.
type Release struct {
	grid *mosaic.Grid
	pos  lattice.Coord
}

// NewRelease creates a move emptying pos.
func NewRelease(g *mosaic.Grid, pos lattice.Coord) *Release {
	return &Release{grid: g, pos: pos}
}

// Position is the cell being released.
func (m *Release) Position() lattice.Coord { return m.pos }

// Evaluate reports whether the owner stays connected and valid without the
// cell. Releasing an empty cell is invalid.
func (m *Release) Evaluate() Outcome {
	return m.evaluate(nil)
}

// EvaluateWithHoles is Evaluate that also sets CreatesHole.
func (m *Release) EvaluateWithHoles(before [][]lattice.Coord) Outcome {
	if before == nil {
		before = [][]lattice.Coord{}
	}
	return m.evaluate(before)
}

func (m *Release) evaluate(holesBefore [][]lattice.Coord) Outcome {
	id, ok := m.grid.Owner(m.pos)
	if !ok {
		return invalid()
	}
	r := m.grid.Region(id)
	sdBefore := r.SymmetricDifference()

	undo := m.grid.Remove(m.pos)

	o := Outcome{
		Connected: r.IsConnected(),
		Valid:     m.grid.RegionValid(id),
		Improves:  r.SymmetricDifference() < sdBefore,
		Quality:   Invalid,
		Necessity: max(r.SymmetricDifference(), 1),
	}
	if o.Valid {
		o.Quality = m.grid.Quality(true)
	}
	if holesBefore != nil {
		o.CreatesHole = m.grid.HoleBoundarySize() > holeCells(holesBefore)
	}

	undo()
	return o
}

// Execute empties the cell.
func (m *Release) Execute() {
	m.grid.Remove(m.pos)
}
