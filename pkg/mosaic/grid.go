package mosaic

import (
	"slices"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/errors"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// Undo reverts the mutation that returned it. Undo values must be applied
// in reverse order of creation and before any unrelated mutation.
type Undo func()

// Grid maps lattice coordinates to the region that owns them.
type Grid struct {
	kind    lattice.Kind
	dual    *dual.WeakDual
	owner   map[lattice.Coord]int
	order   *orderedSet[lattice.Coord]
	regions []*Region
}

// New creates an empty grid with one region per dual vertex. templates[i]
// is the guiding-shape template of region i.
func New(kind lattice.Kind, d *dual.WeakDual, templates [][]lattice.Coord) (*Grid, error) {
	if len(templates) != d.Len() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"got %d guiding shapes for %d regions", len(templates), d.Len())
	}
	g := &Grid{
		kind:  kind,
		dual:  d,
		owner: make(map[lattice.Coord]int),
		order: newOrderedSet[lattice.Coord](),
	}
	for i, t := range templates {
		if len(t) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "region %d has an empty guiding shape", i)
		}
		g.regions = append(g.regions, newRegion(i, kind, t))
	}
	return g, nil
}

// FromMap creates an empty grid for the faces of m.
func FromMap(m *subdivision.Map) (*Grid, error) {
	d, err := m.Dual()
	if err != nil {
		return nil, err
	}
	templates := make([][]lattice.Coord, len(m.Faces))
	for i := range m.Faces {
		templates[i] = m.Template(i)
	}
	return New(m.Lattice, d, templates)
}

// Lattice returns the lattice kind.
func (g *Grid) Lattice() lattice.Kind { return g.kind }

// Dual returns the weak dual the grid is validated against.
func (g *Grid) Dual() *dual.WeakDual { return g.dual }

// Owner returns the region owning c, if any.
func (g *Grid) Owner(c lattice.Coord) (int, bool) {
	id, ok := g.owner[c]
	return id, ok
}

// Region returns region id.
func (g *Grid) Region(id int) *Region { return g.regions[id] }

// Regions returns all regions in id order.
func (g *Grid) Regions() []*Region { return slices.Clone(g.regions) }

// Occupied returns every owned coordinate.
func (g *Grid) Occupied() []lattice.Coord { return g.order.Keys() }

// Len is the number of owned coordinates.
func (g *Grid) Len() int { return g.order.Len() }

// Assign gives c to region id, taking it from its current owner if needed.
func (g *Grid) Assign(c lattice.Coord, id int) Undo {
	prev, had := g.owner[c]
	if had && prev == id {
		return func() {}
	}
	if !had {
		g.attach(c, id, nil, nil)
		return func() { g.detach(c, id) }
	}
	prevPos, gridPos := g.detach(c, prev)
	g.attach(c, id, nil, &gridPos)
	return func() {
		g.detach(c, id)
		g.attach(c, prev, &prevPos, &gridPos)
	}
}

// Remove makes c unowned.
func (g *Grid) Remove(c lattice.Coord) Undo {
	id, ok := g.owner[c]
	if !ok {
		return func() {}
	}
	pos, gridPos := g.detach(c, id)
	return func() { g.attach(c, id, &pos, &gridPos) }
}

// attach assumes c is unowned.
func (g *Grid) attach(c lattice.Coord, id int, pos, gridPos *position[lattice.Coord]) {
	r := g.regions[id]
	for _, nb := range c.Neighbours() {
		if o, ok := g.owner[nb]; ok && o != id {
			r.adjacent.Add(o)
			g.regions[o].adjacent.Add(id)
		}
	}
	r.add(c, pos)
	g.owner[c] = id
	if gridPos != nil {
		g.order.Restore(c, *gridPos)
	} else {
		g.order.Add(c)
	}
}

func (g *Grid) detach(c lattice.Coord, id int) (position[lattice.Coord], position[lattice.Coord]) {
	r := g.regions[id]
	for _, nb := range c.Neighbours() {
		if o, ok := g.owner[nb]; ok && o != id {
			r.adjacent.Remove(o)
			g.regions[o].adjacent.Remove(id)
		}
	}
	pos := r.remove(c)
	delete(g.owner, c)
	gridPos, _ := g.order.Remove(c)
	return pos, gridPos
}

// change is one attach or detach performed by a compound mutation. For
// detaches the former positions are kept so the undo restores them.
type change struct {
	c        lattice.Coord
	id       int
	attached bool
	pos      position[lattice.Coord]
	gridPos  position[lattice.Coord]
}

// Translate shifts every cell and the guiding shape of the given regions by
// t. Cells of other regions that end up underneath are taken over.
func (g *Grid) Translate(ids []int, t lattice.Coord) Undo {
	var moved []change
	for _, id := range ids {
		for _, c := range g.regions[id].Cells() {
			moved = append(moved, change{c: c, id: id})
		}
	}
	log := make([]change, 0, 2*len(moved))
	for _, m := range moved {
		m.pos, m.gridPos = g.detach(m.c, m.id)
		log = append(log, m)
	}
	for _, m := range moved {
		nc := m.c.Plus(t)
		if o, ok := g.owner[nc]; ok {
			p, gp := g.detach(nc, o)
			log = append(log, change{c: nc, id: o, pos: p, gridPos: gp})
		}
		g.attach(nc, m.id, nil, nil)
		log = append(log, change{c: nc, id: m.id, attached: true})
	}
	for _, id := range ids {
		g.regions[id].TranslateGuidingShape(t)
	}

	back := t.Times(-1)
	return func() {
		for _, id := range ids {
			g.regions[id].TranslateGuidingShape(back)
		}
		for i := len(log) - 1; i >= 0; i-- {
			ch := log[i]
			if ch.attached {
				g.detach(ch.c, ch.id)
			} else {
				g.attach(ch.c, ch.id, &ch.pos, &ch.gridPos)
			}
		}
	}
}

// TranslateGuidingShape shifts only the guiding shape of region id.
func (g *Grid) TranslateGuidingShape(id int, t lattice.Coord) {
	g.regions[id].TranslateGuidingShape(t)
}

// =============================================================================
// Invariants
// =============================================================================

// AdjacencyCorrect reports whether the regions touching region id are
// exactly its weak-dual neighbours.
func (g *Grid) AdjacencyCorrect(id int) bool {
	adj := g.regions[id].adjacent
	if adj.Len() != g.dual.Degree(id) {
		return false
	}
	for _, o := range g.regions[id].AdjacentRegions() {
		if !g.dual.HasEdge(id, o) {
			return false
		}
	}
	return true
}

// RegionValid reports whether region id is connected and touches exactly
// its weak-dual neighbours.
func (g *Grid) RegionValid(id int) bool {
	return g.regions[id].IsConnected() && g.AdjacencyCorrect(id)
}

// IsValid reports whether every region is valid.
func (g *Grid) IsValid() bool {
	return len(g.InvalidRegions()) == 0
}

// IsConnected reports whether every region is connected.
func (g *Grid) IsConnected() bool {
	return len(g.DisconnectedRegions()) == 0
}

// InvalidRegions lists the ids of regions failing RegionValid.
func (g *Grid) InvalidRegions() []int {
	var ids []int
	for _, r := range g.regions {
		if !g.RegionValid(r.id) {
			ids = append(ids, r.id)
		}
	}
	return ids
}

// DisconnectedRegions lists the ids of empty or disconnected regions.
func (g *Grid) DisconnectedRegions() []int {
	var ids []int
	for _, r := range g.regions {
		if !r.IsConnected() {
			ids = append(ids, r.id)
		}
	}
	return ids
}

// =============================================================================
// Quality
// =============================================================================

// Quality aggregates per-region size deviation. With exact set it is the
// total number of missing or surplus cells; otherwise each deviation is
// relative to the desired size. Both are zero iff every region has its
// desired size.
func (g *Grid) Quality(exact bool) float64 {
	var q float64
	for _, r := range g.regions {
		d := float64(r.SizeDeviation())
		if exact {
			q += d
		} else {
			q += d / float64(r.DesiredSize())
		}
	}
	return q
}

// ShapeError is the total symmetric difference between footprints and
// guiding shapes.
func (g *Grid) ShapeError() int {
	total := 0
	for _, r := range g.regions {
		total += r.SymmetricDifference()
	}
	return total
}

// Duplicate returns a deep copy sharing only the read-only weak dual.
func (g *Grid) Duplicate() *Grid {
	c := &Grid{
		kind:    g.kind,
		dual:    g.dual,
		owner:   make(map[lattice.Coord]int, len(g.owner)),
		order:   newOrderedSet[lattice.Coord](),
		regions: make([]*Region, len(g.regions)),
	}
	for i, r := range g.regions {
		nr := newRegion(r.id, r.kind, nil)
		nr.shape = r.shape.clone()
		c.regions[i] = nr
	}
	for _, r := range g.regions {
		for _, cell := range r.Cells() {
			c.attach(cell, r.id, nil, nil)
		}
	}
	return c
}
