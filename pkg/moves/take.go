package moves

import (
	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
)

// Take gives a cell to a region, possibly taking it from another one.
type Take struct {
	dual  *dual.WeakDual
	grid  *mosaic.Grid
	pos   lattice.Coord
	owner int
}

// NewTake creates a move giving pos to region owner.
func NewTake(d *dual.WeakDual, g *mosaic.Grid, pos lattice.Coord, owner int) *Take {
	return &Take{dual: d, grid: g, pos: pos, owner: owner}
}

// Position is the cell being taken.
func (t *Take) Position() lattice.Coord { return t.pos }

// Owner is the receiving region.
func (t *Take) Owner() int { return t.owner }

// Improves is a cheap filter run before Evaluate. The receiving region must
// desire the cell. An empty cell, or one whose owner does not desire it, is
// always worth taking. When both regions desire it, the take must strictly
// lower the larger relative symmetric difference of the two.
func (t *Take) Improves() bool {
	r := t.grid.Region(t.owner)
	if !r.IsDesired(t.pos) {
		return false
	}
	prev, had := t.grid.Owner(t.pos)
	if !had {
		return true
	}
	if prev == t.owner {
		return false
	}
	p := t.grid.Region(prev)
	if !p.IsDesired(t.pos) {
		return true
	}
	newSD, newSize := float64(r.SymmetricDifference()), float64(r.DesiredSize())
	oldSD, oldSize := float64(p.SymmetricDifference()), float64(p.DesiredSize())
	current := max(newSD/newSize, oldSD/oldSize)
	next := max((newSD-1)/newSize, (oldSD+1)/oldSize)
	return next < current
}

// Evaluate reports the outcome of the take without changing the grid.
func (t *Take) Evaluate() Outcome {
	return t.evaluate(nil)
}

// EvaluateWithHoles is Evaluate that also sets CreatesHole when the total
// hole boundary grows compared to before.
func (t *Take) EvaluateWithHoles(before [][]lattice.Coord) Outcome {
	if before == nil {
		before = [][]lattice.Coord{}
	}
	return t.evaluate(before)
}

func (t *Take) evaluate(holesBefore [][]lattice.Coord) Outcome {
	prev, had := t.grid.Owner(t.pos)
	if had && prev == t.owner {
		return invalid()
	}
	r := t.grid.Region(t.owner)
	wasEmpty := r.Size() == 0

	neighbours := t.pos.Neighbours()
	alleysBefore := alleyFlags(t.grid, neighbours)

	undo := t.grid.Assign(t.pos, t.owner)

	var o Outcome
	for i, n := range neighbours {
		if !alleysBefore[i] && t.grid.IsAlley(n) {
			o.CreatesAlley = true
			break
		}
	}

	if had {
		o.Valid = t.grid.RegionValid(prev) && t.grid.RegionValid(t.owner)
		o.Connected = t.grid.Region(prev).IsConnected() && r.IsConnected()
	} else {
		touches, respects := false, true
		for _, n := range neighbours {
			id, ok := t.grid.Owner(n)
			switch {
			case !ok:
			case id == t.owner:
				touches = true
			case !t.dual.HasEdge(t.owner, id):
				respects = false
			}
		}
		o.Connected = touches || wasEmpty
		o.Valid = o.Connected && respects
	}

	o.Quality = Invalid
	if o.Valid {
		o.Quality = t.grid.Quality(true)
	}
	o.Necessity = max(r.SymmetricDifference(), 1)
	if holesBefore != nil {
		o.CreatesHole = t.grid.HoleBoundarySize() > holeCells(holesBefore)
	}

	undo()
	return o
}

// Execute applies the take.
func (t *Take) Execute() {
	t.grid.Assign(t.pos, t.owner)
}
