package mosaic

import (
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
)

// HoleBoundaries returns, for every hole of the occupied set, the empty
// cells of that hole touching the set. A hole is a maximal empty pocket that
// cannot be reached from outside the footprint. Cells are collected from the
// vicinity of the occupied cells, grouped by lattice adjacency; the group
// holding the leftmost cell is the outside.
func HoleBoundaries(occupied []lattice.Coord) [][]lattice.Coord {
	occ := make(map[lattice.Coord]bool, len(occupied))
	for _, c := range occupied {
		occ[c] = true
	}
	var empty []lattice.Coord
	inEmpty := make(map[lattice.Coord]bool)
	for _, c := range occupied {
		for _, v := range c.Vicinity() {
			if !occ[v] && !inEmpty[v] {
				inEmpty[v] = true
				empty = append(empty, v)
			}
		}
	}
	if len(empty) == 0 {
		return nil
	}

	leftmost := empty[0]
	for _, c := range empty[1:] {
		p, q := c.Center(), leftmost.Center()
		if p.X < q.X || (p.X == q.X && p.Y < q.Y) {
			leftmost = c
		}
	}

	var holes [][]lattice.Coord
	for _, comp := range components(empty, inEmpty) {
		outside := false
		for _, c := range comp {
			if c == leftmost {
				outside = true
				break
			}
		}
		if !outside {
			holes = append(holes, comp)
		}
	}
	return holes
}

// components groups cells of members into lattice-connected components,
// visiting seeds in order.
func components(seeds []lattice.Coord, members map[lattice.Coord]bool) [][]lattice.Coord {
	seen := make(map[lattice.Coord]bool, len(seeds))
	var out [][]lattice.Coord
	for _, s := range seeds {
		if seen[s] {
			continue
		}
		seen[s] = true
		comp := []lattice.Coord{s}
		for i := 0; i < len(comp); i++ {
			for _, nb := range comp[i].Neighbours() {
				if members[nb] && !seen[nb] {
					seen[nb] = true
					comp = append(comp, nb)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// HoleBoundaries computes the hole boundaries of the whole grid.
func (g *Grid) HoleBoundaries() [][]lattice.Coord {
	return HoleBoundaries(g.Occupied())
}

// Holes returns the empty cells of every hole, boundary cells first,
// flood-filled through the unoccupied interior.
func (g *Grid) Holes() [][]lattice.Coord {
	var out [][]lattice.Coord
	for _, boundary := range g.HoleBoundaries() {
		seen := make(map[lattice.Coord]bool, len(boundary))
		cells := append([]lattice.Coord(nil), boundary...)
		for _, c := range cells {
			seen[c] = true
		}
		for i := 0; i < len(cells); i++ {
			for _, nb := range cells[i].Neighbours() {
				if _, owned := g.owner[nb]; !owned && !seen[nb] {
					seen[nb] = true
					cells = append(cells, nb)
				}
			}
		}
		out = append(out, cells)
	}
	return out
}

// HoleBoundarySize is the total number of hole boundary cells.
func (g *Grid) HoleBoundarySize() int {
	n := 0
	for _, h := range g.HoleBoundaries() {
		n += len(h)
	}
	return n
}

// IsAlley reports whether c is empty and all but one of its neighbours are
// occupied.
func (g *Grid) IsAlley(c lattice.Coord) bool {
	if _, owned := g.owner[c]; owned {
		return false
	}
	ns := c.Neighbours()
	occupied := 0
	for _, nb := range ns {
		if _, owned := g.owner[nb]; owned {
			occupied++
		}
	}
	return occupied == len(ns)-1
}

// Alleys returns every alley cell bordering a region, in region order.
func (g *Grid) Alleys() []lattice.Coord {
	seen := make(map[lattice.Coord]bool)
	var out []lattice.Coord
	for _, r := range g.regions {
		for _, c := range r.Neighbours() {
			if !seen[c] && g.IsAlley(c) {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
