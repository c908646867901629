package pipeline

import (
	"bytes"

	"github.com/tue-alga/Gridmap-sub002/pkg/dual"
	"github.com/tue-alga/Gridmap-sub002/pkg/lattice"
	"github.com/tue-alga/Gridmap-sub002/pkg/mosaic"
	"github.com/tue-alga/Gridmap-sub002/pkg/subdivision"
)

// LoadProblem decodes a TOML problem and builds its weak dual.
func LoadProblem(data []byte) (*subdivision.Map, *dual.WeakDual, error) {
	m, err := subdivision.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	d, err := m.Dual()
	if err != nil {
		return nil, nil, err
	}
	return m, d, nil
}

// InitialGrid builds the starting grid of a run. With coordinate records
// the grid is read from them. Otherwise every face gets the cell containing
// its centroid and its guiding shape is moved there. A face whose centroid
// cell is already taken is seeded on the nearest free cell instead, so no
// region starts empty.
func InitialGrid(m *subdivision.Map, initial []byte) (*mosaic.Grid, error) {
	g, err := mosaic.FromMap(m)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(initial)) > 0 {
		if err := g.ReadCoordinates(bytes.NewReader(initial)); err != nil {
			return nil, err
		}
		return g, nil
	}
	for _, f := range m.Faces {
		c := seedCell(g, f.ID, m.Lattice.Containing(f.Centroid))
		g.Assign(c, f.ID)
		g.TranslateGuidingShape(f.ID, c)
	}
	return g, nil
}

// seedCell returns c if it is free. Otherwise it searches the rings around c
// and returns the free cell with the lowest penalty, ties broken by ring
// order. A cell is penalised for touching a seeded region that is not a
// dual neighbour of id, for lying in another seeded guiding shape, and for
// not touching any dual neighbour.
func seedCell(g *mosaic.Grid, id int, c lattice.Coord) lattice.Coord {
	if _, owned := g.Owner(c); !owned {
		return c
	}
	d := g.Dual()
	for r := 1; ; r++ {
		var best lattice.Coord
		bestPenalty := -1
		for _, cand := range g.Lattice().Ring(c, r) {
			if _, owned := g.Owner(cand); owned {
				continue
			}
			penalty := 1
			for _, nb := range cand.Neighbours() {
				o, ok := g.Owner(nb)
				switch {
				case !ok:
				case d.HasEdge(id, o):
					penalty &^= 1
				default:
					penalty |= 4
				}
			}
			for _, other := range g.Regions() {
				if other.ID() != id && other.Size() > 0 && other.IsDesired(cand) {
					penalty |= 2
					break
				}
			}
			if bestPenalty < 0 || penalty < bestPenalty {
				best, bestPenalty = cand, penalty
			}
		}
		if bestPenalty >= 0 {
			return best
		}
	}
}
