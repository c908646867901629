// Package moves implements the atomic, reversible grid changes of the local
// search: taking a cell, releasing a cell, sliding a block of regions, and
// swapping two cells.
//
// Every move has two phases. Evaluate applies the change to the grid,
// inspects the result, and undoes it before returning, so the grid is
// observably unchanged. Execute applies the same change permanently and is
// only meaningful after an Evaluate that reported a valid outcome with no
// mutation in between.
package moves

import (
	"math"

	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
)

// Invalid is the quality reported by invalid outcomes.
var Invalid = math.Inf(1)

// Outcome is the result of evaluating a move.
type Outcome struct {
	// Valid is true when the grid would satisfy the move's validity check.
	Valid bool
	// Connected is true when the touched regions would stay connected. It is
	// a weaker check than Valid, used when only connectivity must hold.
	Connected bool
	// Quality is the grid quality after the move, or Invalid.
	Quality float64
	// Necessity ranks equally good moves: higher is more urgent.
	Necessity int
	// CreatesAlley is set when a neighbouring empty cell becomes an alley.
	CreatesAlley bool
	// CreatesHole is set by hole-aware evaluation when holes grow.
	CreatesHole bool
	// Improves is set by releases that shrink the symmetric difference.
	Improves bool
}

// Better orders outcomes by quality, then by necessity descending.
func (o Outcome) Better(p Outcome) bool {
	if o.Quality != p.Quality {
		return o.Quality < p.Quality
	}
	return o.Necessity > p.Necessity
}

// Move is a two-phase grid change.
type Move interface {
	Evaluate() Outcome
	Execute()
}

func invalid() Outcome {
	return Outcome{Quality: Invalid}
}

func holeCells(holes [][]lattice.Coord) int {
	n := 0
	for _, h := range holes {
		n += len(h)
	}
	return n
}

func alleyFlags(g *mosaic.Grid, cs []lattice.Coord) []bool {
	flags := make([]bool, len(cs))
	for i, c := range cs {
		flags[i] = g.IsAlley(c)
	}
	return flags
}
