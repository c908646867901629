package mosaic

import "github.com/tue-alga/Gridmap-sub002/pkg/lattice"

// Shape is a guiding shape: a fixed template of cells that can be translated
// as a whole. Its size never changes.
type Shape struct {
	kind        lattice.Kind
	template    []lattice.Coord
	translation lattice.Coord
	cells       []lattice.Coord
	set         map[lattice.Coord]bool
}

func newShape(kind lattice.Kind, template []lattice.Coord) *Shape {
	s := &Shape{
		kind:        kind,
		template:    append([]lattice.Coord(nil), template...),
		translation: kind.Origin(),
	}
	s.rebuild()
	return s
}

func (s *Shape) rebuild() {
	s.cells = make([]lattice.Coord, len(s.template))
	s.set = make(map[lattice.Coord]bool, len(s.template))
	for i, c := range s.template {
		t := c.Plus(s.translation)
		s.cells[i] = t
		s.set[t] = true
	}
}

func (s *Shape) clone() *Shape {
	c := &Shape{kind: s.kind, template: s.template, translation: s.translation}
	c.rebuild()
	return c
}

// Size is the number of cells in the template.
func (s *Shape) Size() int { return len(s.template) }

// Has reports whether c is covered by the translated shape.
func (s *Shape) Has(c lattice.Coord) bool { return s.set[c] }

// Cells returns the translated cells in template order.
func (s *Shape) Cells() []lattice.Coord {
	return append([]lattice.Coord(nil), s.cells...)
}

// Translation is the accumulated translation since construction.
func (s *Shape) Translation() lattice.Coord { return s.translation }

func (s *Shape) translate(t lattice.Coord) {
	s.translation = s.translation.Plus(t)
	s.rebuild()
}

// Boundary returns the cells adjacent to the shape but outside it.
func (s *Shape) Boundary() []lattice.Coord {
	seen := make(map[lattice.Coord]bool)
	var out []lattice.Coord
	for _, c := range s.cells {
		for _, n := range c.Neighbours() {
			if !s.set[n] && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// ContinuousBarycenter is the mean of the cell centers.
func (s *Shape) ContinuousBarycenter() lattice.Point {
	return lattice.Centroid(s.cells)
}

// Barycenter is the cell containing the continuous barycenter.
func (s *Shape) Barycenter() lattice.Coord {
	return s.kind.Containing(s.ContinuousBarycenter())
}
