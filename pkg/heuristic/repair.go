package heuristic

import (
	"slices"

	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/moves"
)

// maxRepairPasses bounds the passes of a single repair.
const maxRepairPasses = 1000

// FillHoles gives the empty cells along hole boundaries to neighbouring
// regions. Candidates for a cell are the regions around it, most frequent
// first. When none of them can take the cell, the least frequent candidate
// sheds the cells it has next to the hole and the cell is not tried again.
// It returns the number of cells filled and the hole cells left over.
func (h *Heuristic) FillHoles(g *mosaic.Grid) (int, []lattice.Coord) {
	seen := make(map[lattice.Coord]bool)
	filled := 0
	for range maxRepairPasses {
		fresh := false
		for _, hole := range g.HoleBoundaries() {
			for _, c := range hole {
				if seen[c] {
					continue
				}
				if _, owned := g.Owner(c); owned {
					continue
				}
				fresh = true
				ranked := candidates(g, c)
				if h.takeFirst(g, c, ranked) {
					filled++
					continue
				}
				seen[c] = true
				h.shed(g, c, ranked)
			}
		}
		if !fresh {
			break
		}
	}

	var left []lattice.Coord
	for _, hole := range g.HoleBoundaries() {
		left = append(left, hole...)
	}
	return filled, left
}

// FillAlleys gives alley cells to a neighbouring region, most frequent
// first. Alleys no region can take are ignored from then on. It returns the
// number of alleys filled and the alleys left over.
func (h *Heuristic) FillAlleys(g *mosaic.Grid) (int, []lattice.Coord) {
	ignored := make(map[lattice.Coord]bool)
	filled := 0
	for range maxRepairPasses {
		var alleys []lattice.Coord
		for _, c := range g.Alleys() {
			if !ignored[c] {
				alleys = append(alleys, c)
			}
		}
		if len(alleys) == 0 {
			break
		}
		for _, c := range alleys {
			if h.takeFirst(g, c, candidates(g, c)) {
				filled++
			} else {
				ignored[c] = true
			}
		}
	}
	return filled, g.Alleys()
}

// candidates ranks the regions around c by how many of c's neighbours they
// own, highest first. Ties keep neighbour order.
func candidates(g *mosaic.Grid, c lattice.Coord) []int {
	count := make(map[int]int)
	var ids []int
	for _, nb := range c.Neighbours() {
		id, ok := g.Owner(nb)
		if !ok {
			continue
		}
		if count[id] == 0 {
			ids = append(ids, id)
		}
		count[id]++
	}
	slices.SortStableFunc(ids, func(a, b int) int { return count[b] - count[a] })
	return ids
}

// takeFirst lets the first candidate that validly can take c.
func (h *Heuristic) takeFirst(g *mosaic.Grid, c lattice.Coord, ranked []int) bool {
	for _, id := range ranked {
		tm := moves.NewTake(h.dual, g, c, id)
		if tm.Evaluate().Valid {
			tm.Execute()
			return true
		}
	}
	return false
}

// shed releases cells next to c, trying candidates from the lowest ranked
// up and stopping at the first one that lets go of anything.
func (h *Heuristic) shed(g *mosaic.Grid, c lattice.Coord, ranked []int) {
	for i := len(ranked) - 1; i >= 0; i-- {
		released := false
		for _, nb := range c.Neighbours() {
			if id, ok := g.Owner(nb); !ok || id != ranked[i] {
				continue
			}
			rm := moves.NewRelease(g, nb)
			if rm.Evaluate().Valid {
				rm.Execute()
				released = true
			}
		}
		if released {
			return
		}
	}
}
