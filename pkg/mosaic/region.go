package mosaic

import (
	"maps"
	"slices"

	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
)

// Region is the cell footprint of one face. Regions are owned by a Grid and
// mutated only through it.
type Region struct {
	id    int
	kind  lattice.Kind
	cells *orderedSet[lattice.Coord]
	// boundary counts, for every cell outside the region, how many region
	// cells it touches.
	boundary *multiset[lattice.Coord]
	// adjacent counts touching cell pairs per neighbouring region id.
	adjacent *multiset[int]
	shape    *Shape
	hits     int

	connected bool
	stale     bool
}

func newRegion(id int, kind lattice.Kind, template []lattice.Coord) *Region {
	return &Region{
		id:       id,
		kind:     kind,
		cells:    newOrderedSet[lattice.Coord](),
		boundary: newMultiset[lattice.Coord](),
		adjacent: newMultiset[int](),
		shape:    newShape(kind, template),
		stale:    true,
	}
}

// ID returns the face id this region represents.
func (r *Region) ID() int { return r.id }

// Size is the number of occupied cells.
func (r *Region) Size() int { return r.cells.Len() }

// Cells returns the occupied coordinates in insertion order.
func (r *Region) Cells() []lattice.Coord { return r.cells.Keys() }

// Contains reports whether the region occupies c.
func (r *Region) Contains(c lattice.Coord) bool { return r.cells.Has(c) }

// Neighbours returns the coordinates adjacent to the footprint that the
// region does not own. The order follows the cell order and, per cell, the
// lattice neighbour order, so it depends on nothing but Cells().
func (r *Region) Neighbours() []lattice.Coord {
	out := make([]lattice.Coord, 0, r.boundary.Len())
	seen := make(map[lattice.Coord]bool, r.boundary.Len())
	for n := r.cells.head; n != nil; n = n.next {
		for _, nb := range n.key.Neighbours() {
			if seen[nb] || r.boundary.Count(nb) == 0 {
				continue
			}
			seen[nb] = true
			out = append(out, nb)
		}
	}
	return out
}

// NeighbourMultiplicity is the number of region cells touching c.
func (r *Region) NeighbourMultiplicity(c lattice.Coord) int { return r.boundary.Count(c) }

// AdjacentRegions returns the ids of regions sharing a cell edge with this one.
// The ids are in ascending order.
func (r *Region) AdjacentRegions() []int { return slices.Sorted(maps.Keys(r.adjacent.count)) }

// Shape returns the guiding shape.
func (r *Region) Shape() *Shape { return r.shape }

// DesiredSize is the guiding-shape size.
func (r *Region) DesiredSize() int { return r.shape.Size() }

// IsDesired reports whether c lies in the translated guiding shape.
func (r *Region) IsDesired(c lattice.Coord) bool { return r.shape.Has(c) }

// Hits is the number of occupied cells inside the guiding shape.
func (r *Region) Hits() int { return r.hits }

// SymmetricDifference counts cells in exactly one of the footprint and the
// guiding shape.
func (r *Region) SymmetricDifference() int {
	return r.Size() + r.shape.Size() - 2*r.hits
}

// HexError is the occupied size minus the desired size.
func (r *Region) HexError() int { return r.Size() - r.shape.Size() }

// SizeDeviation is the absolute HexError.
func (r *Region) SizeDeviation() int {
	if e := r.HexError(); e < 0 {
		return -e
	}
	return r.HexError()
}

// ContinuousBarycenter is the mean center of the occupied cells.
func (r *Region) ContinuousBarycenter() lattice.Point {
	return lattice.Centroid(r.cells.Keys())
}

// Barycenter is the cell containing the continuous barycenter.
func (r *Region) Barycenter() lattice.Coord {
	return r.kind.Containing(r.ContinuousBarycenter())
}

// IsConnected reports whether the footprint is non-empty and connected
// under lattice adjacency.
func (r *Region) IsConnected() bool {
	if r.stale {
		r.connected = r.computeConnected()
		r.stale = false
	}
	return r.connected
}

func (r *Region) computeConnected() bool {
	n := r.cells.Len()
	if n == 0 {
		return false
	}
	start := r.cells.head.key
	seen := map[lattice.Coord]bool{start: true}
	stack := []lattice.Coord{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range c.Neighbours() {
			if r.cells.Has(nb) && !seen[nb] {
				seen[nb] = true
				stack = append(stack, nb)
			}
		}
	}
	return len(seen) == n
}

// TranslateGuidingShape shifts the guiding shape by delta.
func (r *Region) TranslateGuidingShape(delta lattice.Coord) {
	r.shape.translate(delta)
	r.recountHits()
}

func (r *Region) recountHits() {
	r.hits = 0
	for n := r.cells.head; n != nil; n = n.next {
		if r.shape.Has(n.key) {
			r.hits++
		}
	}
}

// add and remove keep boundary, hits and the connectivity cache in sync.
// Adjacency to other regions is maintained by the Grid.

func (r *Region) add(c lattice.Coord, pos *position[lattice.Coord]) {
	touches := false
	for _, nb := range c.Neighbours() {
		if r.cells.Has(nb) {
			touches = true
		} else {
			r.boundary.Add(nb)
		}
	}
	r.boundary.Clear(c)
	if pos != nil {
		r.cells.Restore(c, *pos)
	} else {
		r.cells.Add(c)
	}
	if r.shape.Has(c) {
		r.hits++
	}
	switch {
	case r.cells.Len() == 1:
		r.connected, r.stale = true, false
	case !r.stale && r.connected && touches:
	default:
		r.stale = true
	}
}

func (r *Region) remove(c lattice.Coord) position[lattice.Coord] {
	pos, _ := r.cells.Remove(c)
	for _, nb := range c.Neighbours() {
		if r.cells.Has(nb) {
			r.boundary.Add(c)
		} else {
			r.boundary.Remove(nb)
		}
	}
	if r.shape.Has(c) {
		r.hits--
	}
	r.stale = true
	return pos
}
