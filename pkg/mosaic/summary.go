package mosaic

import "github.com/tue-alga/Gridmap-sub002/pkg/lattice"

// overlayRadius bounds the translations tried by BestOverlay.
const overlayRadius = 5

// BestOverlay finds the translation of the guiding shape, within a small
// disk around its current position, that covers the most occupied cells.
// It does not modify the region.
func (r *Region) BestOverlay() (offset lattice.Coord, hits int) {
	cells := r.shape.Cells()
	offset = r.kind.Origin()
	hits = -1
	for _, t := range r.kind.Disk(r.kind.Origin(), overlayRadius) {
		h := 0
		for _, c := range cells {
			if r.cells.Has(c.Plus(t)) {
				h++
			}
		}
		if h > hits {
			offset, hits = t, h
		}
	}
	return offset, hits
}

// RegionSummary reports the state of one region.
type RegionSummary struct {
	ID                  int  `json:"id"`
	Size                int  `json:"size"`
	Desired             int  `json:"desired"`
	SymmetricDifference int  `json:"symmetric_difference"`
	HexError            int  `json:"hex_error"`
	Connected           bool `json:"connected"`
	AdjacencyCorrect    bool `json:"adjacency_correct"`
	OverlayHits         int  `json:"overlay_hits"`
}

// Summary describes the whole grid.
type Summary struct {
	Regions    []RegionSummary `json:"regions"`
	Cells      int             `json:"cells"`
	Valid      bool            `json:"valid"`
	Connected  bool            `json:"connected"`
	Holes      int             `json:"holes"`
	Alleys     int             `json:"alleys"`
	Exact      float64         `json:"quality_exact"`
	Relaxed    float64         `json:"quality_relaxed"`
	ShapeError int             `json:"shape_error"`
}

// Summarize computes a Summary of g.
func (g *Grid) Summarize() Summary {
	s := Summary{
		Cells:      g.Len(),
		Valid:      g.IsValid(),
		Connected:  g.IsConnected(),
		Holes:      len(g.HoleBoundaries()),
		Alleys:     len(g.Alleys()),
		Exact:      g.Quality(true),
		Relaxed:    g.Quality(false),
		ShapeError: g.ShapeError(),
	}
	for _, r := range g.regions {
		_, hits := r.BestOverlay()
		s.Regions = append(s.Regions, RegionSummary{
			ID:                  r.id,
			Size:                r.Size(),
			Desired:             r.DesiredSize(),
			SymmetricDifference: r.SymmetricDifference(),
			HexError:            r.HexError(),
			Connected:           r.IsConnected(),
			AdjacencyCorrect:    g.AdjacencyCorrect(r.id),
			OverlayHits:         hits,
		})
	}
	return s
}
