package layout

import (
	"math/rand"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

const (
	intensity         = 150.0
	attractionWeight  = 1.0
	repulsionWeight   = 35.0
	nonNeighbourForce = 40.0
	minimumNorm       = 5.0

	// Lattice units are one cell apart.
	timeStep    = 2.0 / (50 * intensity)
	maximumNorm = 1 / timeStep
)

// ForceDirected moves each guiding shape as a particle. Shapes of dual
// neighbours attract each other, and overlapping shapes repel along the
// bearing their faces have in the input map. A particle moves continuously
// and its shape follows whenever the particle crosses into another cell,
// unless the shape would lose contact with its region.
//
// Regions whose footprint has drifted far from their shape are shaken: the
// shape jumps onto a random cell of the region.
type ForceDirected struct {
	// MaxIterations bounds the iterations between global shakes.
	MaxIterations int
	// MaxBadIterations bounds how long a single region may stay shakeable
	// before it is shaken.
	MaxBadIterations int
	// MaxTotalIterations bounds a single Step.
	MaxTotalIterations int

	dual      *dual.WeakDual
	centroids []lattice.Point
	rng       *rand.Rand

	grid       *mosaic.Grid
	continuous []lattice.Point
	discrete   []lattice.Coord
	bad        []int
}

// NewForceDirected creates a driver for the faces of m related by d.
func NewForceDirected(m *subdivision.Map, d *dual.WeakDual, rng *rand.Rand) *ForceDirected {
	centroids := make([]lattice.Point, len(m.Faces))
	for i, f := range m.Faces {
		centroids[i] = f.Centroid
	}
	return &ForceDirected{
		MaxIterations:      400,
		MaxBadIterations:   100,
		MaxTotalIterations: 20000,
		dual:               d,
		centroids:          centroids,
		rng:                rng,
	}
}

// bind resets particle state when a different grid is driven.
func (f *ForceDirected) bind(g *mosaic.Grid) {
	if f.grid == g {
		return
	}
	f.grid = g
	n := len(g.Regions())
	f.continuous = make([]lattice.Point, n)
	f.discrete = make([]lattice.Coord, n)
	f.bad = make([]int, n)
	for _, r := range g.Regions() {
		f.place(r)
	}
}

func (f *ForceDirected) place(r *mosaic.Region) {
	p := r.Shape().ContinuousBarycenter()
	f.continuous[r.ID()] = p
	f.discrete[r.ID()] = f.grid.Lattice().Containing(p)
}

// Step runs the model until some shape has moved by at least one cell, the
// forces settle, or the iteration budget runs out.
func (f *ForceDirected) Step(g *mosaic.Grid) bool {
	f.bind(g)
	kind := g.Lattice()
	regions := g.Regions()
	moved := make([]lattice.Coord, len(regions))
	for i := range moved {
		moved[i] = kind.Origin()
	}

	since := 0
	for range f.MaxTotalIterations {
		if since++; since > f.MaxIterations {
			since = 0
			for _, r := range regions {
				f.shake(r)
			}
		}
		for _, r := range regions {
			if !shakeable(r) {
				continue
			}
			if f.bad[r.ID()]++; f.bad[r.ID()] > f.MaxBadIterations {
				f.shake(r)
				f.bad[r.ID()] = 0
			}
		}

		forces := f.forces(regions)
		largest, stop := 0.0, false
		for _, r := range regions {
			id := r.ID()
			largest = max(largest, forces[id].Length())
			inc := forces[id].Scale(timeStep)
			pos := f.continuous[id].Add(inc)
			f.continuous[id] = pos

			cell := kind.Containing(pos)
			if cell == f.discrete[id] {
				continue
			}
			t := cell.Minus(f.discrete[id])
			g.TranslateGuidingShape(id, t)
			if !touches(r) {
				g.TranslateGuidingShape(id, t.Times(-1))
				f.continuous[id] = pos.Sub(inc)
				continue
			}
			f.discrete[id] = cell
			moved[id] = moved[id].Plus(t)
			if moved[id].Norm() > 0 {
				stop = true
			}
		}
		if stop {
			return true
		}
		if largest <= minimumNorm {
			return false
		}
	}
	return false
}

// shake drops the shape of r onto a random cell of r if r is shakeable.
func (f *ForceDirected) shake(r *mosaic.Region) {
	if !shakeable(r) {
		return
	}
	cells, shape := r.Cells(), r.Shape().Cells()
	c := cells[f.rng.Intn(len(cells))]
	s := shape[f.rng.Intn(len(shape))]
	f.grid.TranslateGuidingShape(r.ID(), c.Minus(s))
	f.place(r)
}

func shakeable(r *mosaic.Region) bool {
	return r.Size() > 0 && float64(r.SymmetricDifference())/float64(r.DesiredSize()) >= 1
}

// touches reports whether the shape of r overlaps or borders its footprint.
func touches(r *mosaic.Region) bool {
	if r.Hits() > 0 {
		return true
	}
	for _, c := range r.Shape().Boundary() {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

func (f *ForceDirected) forces(regions []*mosaic.Region) []lattice.Point {
	boundary := make([]map[lattice.Coord]bool, len(regions))
	for _, r := range regions {
		set := make(map[lattice.Coord]bool)
		for _, c := range r.Shape().Boundary() {
			set[c] = true
		}
		boundary[r.ID()] = set
	}

	out := make([]lattice.Point, len(regions))
	for _, ru := range regions {
		u := ru.ID()
		var force lattice.Point
		neighbours := make(map[int]bool)
		for _, v := range f.dual.Neighbours(u) {
			neighbours[v] = true
			rv := regions[v]
			force = force.Add(attraction(ru.Shape(), rv.Shape()))
			force = force.Add(f.repulsion(ru, rv, nil, repulsionWeight))
		}
		for _, rv := range regions {
			if v := rv.ID(); v != u && !neighbours[v] {
				force = force.Add(f.repulsion(ru, rv, boundary[v], nonNeighbourForce))
			}
		}
		if force.Length() > maximumNorm {
			force = force.Normalized().Scale(maximumNorm)
		}
		out[u] = force
	}
	return out
}

// attraction pulls the shape of u toward the shape of v, harder the
// further apart they are.
func attraction(u, v *mosaic.Shape) lattice.Point {
	dir := v.ContinuousBarycenter().Sub(u.ContinuousBarycenter()).Normalized()
	return dir.Scale(intensity * attractionWeight * float64(max(1, distance(u, v))))
}

// repulsion pushes u away from v along the bearing of their faces when
// their shapes overlap. With near set, a cell of u next to the shape of v
// counts as overlap too, and one such cell is enough.
func (f *ForceDirected) repulsion(ru, rv *mosaic.Region, near map[lattice.Coord]bool, weight float64) lattice.Point {
	su, sv := ru.Shape(), rv.Shape()
	overlap := 0
	for _, c := range su.Cells() {
		if sv.Has(c) || near[c] {
			overlap++
			if near != nil {
				break
			}
		}
	}
	if overlap == 0 {
		return lattice.Point{}
	}
	dir := f.centroids[ru.ID()].Sub(f.centroids[rv.ID()]).Normalized()
	factor := 1 + float64(overlap)/float64(su.Size())
	return dir.Scale(intensity * weight * factor)
}

// distance is the smallest lattice distance between cells of two shapes.
func distance(u, v *mosaic.Shape) int {
	best := -1
	for _, a := range u.Cells() {
		for _, b := range v.Cells() {
			if d := a.Minus(b).Norm(); best < 0 || d < best {
				best = d
			}
		}
		if best == 0 {
			break
		}
	}
	return max(best, 0)
}
